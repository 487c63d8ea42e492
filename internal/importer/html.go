// Package importer turns browser bookmark exports into the bookmark
// collection: Netscape HTML parsing, browser-tree flattening, and
// merge/dedupe against an existing store.
package importer

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/nlohse/stash/internal/favicon"
	"github.com/nlohse/stash/internal/model"
	"github.com/nlohse/stash/internal/tagger"
	"github.com/nlohse/stash/internal/urlnorm"
)

var (
	// ErrNoBookmarks means the input parsed but contained no links.
	// Recoverable; the existing collection is untouched.
	ErrNoBookmarks = errors.New("no bookmarks found")

	// ErrInvalidFile means the input is not a bookmarks HTML file.
	ErrInvalidFile = errors.New("not a bookmarks HTML file")

	// ErrPermissionDenied means the bookmarks source refused access,
	// e.g. an unreadable export file. Distinct from ErrNoBookmarks so
	// the caller can surface the right message.
	ErrPermissionDenied = errors.New("bookmark access denied")
)

// ParseHTML parses Netscape bookmark HTML and returns the contained
// bookmarks, classified and deduplicated by normalized URL. Folder
// structure is ignored; only anchors are read. Returns ErrNoBookmarks
// if no anchor with an href is present.
func ParseHTML(r io.Reader) ([]model.Bookmark, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	var bookmarks []model.Bookmark
	seen := make(map[string]int) // normalized URL -> index in bookmarks

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && strings.EqualFold(n.Data, "a") {
			href := getAttr(n, "href")
			if href == "" {
				return // skip anchors without URL
			}

			b := bookmarkFromAnchor(n, href)

			key := urlnorm.Normalize(href)
			if i, dup := seen[key]; dup {
				// Same URL twice in one file: keep the later date.
				if b.DateAdded.After(bookmarks[i].DateAdded) {
					bookmarks[i] = b
				}
				return
			}
			seen[key] = len(bookmarks)
			bookmarks = append(bookmarks, b)
			return
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	if len(bookmarks) == 0 {
		return nil, ErrNoBookmarks
	}
	return bookmarks, nil
}

// ParseFile reads a bookmarks export from disk. Files without an HTML
// extension are rejected with ErrInvalidFile before parsing; files the
// process may not read map to ErrPermissionDenied.
func ParseFile(path string) ([]model.Bookmark, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
	default:
		return nil, ErrInvalidFile
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrPermission) {
			return nil, fmt.Errorf("%w: %s", ErrPermissionDenied, path)
		}
		return nil, err
	}
	defer f.Close()

	return ParseHTML(f)
}

// bookmarkFromAnchor builds a classified Bookmark from an <a> element.
func bookmarkFromAnchor(n *html.Node, href string) model.Bookmark {
	title := getTextContent(n)
	if title == "" {
		title = urlnorm.Host(href)
	}
	if title == "" {
		title = href
	}

	added := time.Now()
	if addDate := getAttr(n, "add_date"); addDate != "" {
		if ts, err := strconv.ParseInt(addDate, 10, 64); err == nil {
			added = time.Unix(ts, 0)
		}
	}

	return model.NewBookmark(model.NewBookmarkParams{
		URL:       href,
		Title:     title,
		Tags:      tagger.Classify(href, title, ""),
		Favicon:   favicon.DerivedURL(href),
		DateAdded: added,
	})
}

// getTextContent returns the trimmed text content of a node.
func getTextContent(n *html.Node) string {
	var text strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			text.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(text.String())
}

// getAttr returns the value of an attribute, case-insensitive.
func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if strings.EqualFold(attr.Key, key) {
			return attr.Val
		}
	}
	return ""
}
