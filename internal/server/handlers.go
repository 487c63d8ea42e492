package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/nlohse/stash/internal/exporter"
	"github.com/nlohse/stash/internal/importer"
	"github.com/nlohse/stash/internal/model"
	"github.com/nlohse/stash/internal/search"
	"github.com/nlohse/stash/internal/tagger"
)

// maxImportBytes caps the size of an uploaded bookmarks file.
const maxImportBytes = 16 << 20

type errorResponse struct {
	Error string `json:"error"`
}

type importResponse struct {
	Added      int `json:"added"`
	Duplicates int `json:"duplicates"`
	Total      int `json:"total"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleList returns the collection filtered by ?tag=, fuzzy-matched
// by ?q=, and ordered by ?sort= (date, title, likes, viewed).
func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	mode := parseSortMode(r.URL.Query().Get("sort"))
	result := search.Filter(s.store, r.URL.Query().Get("tag"), r.URL.Query().Get("q"), mode)
	if result == nil {
		result = []model.Bookmark{}
	}

	if r.URL.Query().Get("archived") != "1" {
		visible := result[:0]
		for _, b := range result {
			if !b.Archived {
				visible = append(visible, b)
			}
		}
		result = visible
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := s.store.ByID(chi.URLParam(r, "id"))
	if b == nil {
		writeError(w, http.StatusNotFound, "bookmark not found")
		return
	}
	writeJSON(w, http.StatusOK, b)
}

// handleFavicon resolves and streams the real favicon for a bookmark's
// site. The fetch runs outside the store lock; hosts that failed once
// are remembered by the fetcher and answered without a new request.
func (s *Server) handleFavicon(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	b := s.store.ByID(chi.URLParam(r, "id"))
	var siteURL string
	if b != nil {
		siteURL = b.URL
	}
	s.mu.Unlock()

	if siteURL == "" {
		writeError(w, http.StatusNotFound, "bookmark not found")
		return
	}

	icon, err := s.icons.Fetch(siteURL)
	if err != nil {
		writeError(w, http.StatusNotFound, "favicon unavailable")
		return
	}

	w.Header().Set("Content-Type", "image/x-icon")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	_, _ = w.Write(icon)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.store.Remove(chi.URLParam(r, "id")) {
		writeError(w, http.StatusNotFound, "bookmark not found")
		return
	}
	s.persist()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleLike(w http.ResponseWriter, r *http.Request) {
	s.command(w, r, s.store.Like)
}

func (s *Server) handleDislike(w http.ResponseWriter, r *http.Request) {
	s.command(w, r, s.store.Dislike)
}

func (s *Server) handleVisit(w http.ResponseWriter, r *http.Request) {
	s.command(w, r, s.store.RecordVisit)
}

func (s *Server) handleArchive(w http.ResponseWriter, r *http.Request) {
	s.command(w, r, func(id string) bool {
		return s.store.SetArchived(id, r.URL.Query().Get("undo") != "1")
	})
}

// command runs a store mutation keyed by the {id} route parameter and
// replies with the updated bookmark.
func (s *Server) command(w http.ResponseWriter, r *http.Request, fn func(id string) bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := chi.URLParam(r, "id")
	if !fn(id) {
		writeError(w, http.StatusNotFound, "bookmark not found")
		return
	}
	s.persist()
	writeJSON(w, http.StatusOK, s.store.ByID(id))
}

func (s *Server) handleTags(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	writeJSON(w, http.StatusOK, s.store.TagCounts())
}

// handleCategories returns the closed classification taxonomy, for
// clients that offer tag pickers or legends.
func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, tagger.Categories())
}

// handleImport accepts a bookmarks HTML export, either as a multipart
// "file" field or as a raw text/html body, and merges it into the
// collection. ?merge=0 disables metadata merging, ?clean=0 disables
// title cleaning. A failed parse leaves the collection untouched.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	body, err := importBody(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, importer.ErrInvalidFile.Error())
		return
	}

	batch, err := importer.ParseHTML(body)
	if err != nil {
		switch {
		case errors.Is(err, importer.ErrNoBookmarks):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusBadRequest, importer.ErrInvalidFile.Error())
		}
		return
	}

	opts := importer.MergeOptions{
		MergeMetadata: r.URL.Query().Get("merge") != "0",
		CleanTitles:   r.URL.Query().Get("clean") != "0",
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	result := importer.Merge(s.store, batch, opts)
	s.persist()

	writeJSON(w, http.StatusOK, importResponse{
		Added:      len(result.Added),
		Duplicates: result.Duplicates,
		Total:      len(s.store.Bookmarks),
	})
}

// importBody extracts the HTML payload from an import request.
func importBody(r *http.Request) (io.Reader, error) {
	contentType := r.Header.Get("Content-Type")

	if strings.HasPrefix(contentType, "multipart/form-data") {
		if err := r.ParseMultipartForm(maxImportBytes); err != nil {
			return nil, err
		}
		file, _, err := r.FormFile("file")
		if err != nil {
			return nil, err
		}
		return file, nil
	}

	if strings.Contains(contentType, "html") || contentType == "" {
		return io.LimitReader(r.Body, maxImportBytes), nil
	}
	return nil, importer.ErrInvalidFile
}

// handleExport streams the collection in the requested format:
// html (Netscape), page (self-contained), opml, or json.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		out         string
		err         error
		contentType string
		filename    string
	)

	switch format := chi.URLParam(r, "format"); format {
	case "html":
		out = exporter.ExportHTML(s.store)
		contentType = "text/html; charset=utf-8"
		filename = "bookmarks.html"
	case "page":
		out, err = exporter.ExportPage(s.store)
		contentType = "text/html; charset=utf-8"
		filename = "bookmarks-page.html"
	case "opml":
		out, err = exporter.ExportOPML(s.store)
		contentType = "text/x-opml; charset=utf-8"
		filename = "bookmarks.opml"
	case "json":
		out, err = exporter.ExportJSON(s.store)
		contentType = "application/json"
		filename = "bookmarks.json"
	default:
		writeError(w, http.StatusNotFound, "unknown export format: "+format)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	_, _ = io.WriteString(w, out)
}

func parseSortMode(v string) model.SortMode {
	switch v {
	case "title":
		return model.SortByTitle
	case "likes":
		return model.SortByLikes
	case "viewed":
		return model.SortByLastViewed
	default:
		return model.SortByDateAdded
	}
}
