// Package exporter writes the bookmark collection out in the formats
// other tools consume: Netscape HTML, a self-contained page, OPML,
// and raw JSON.
package exporter

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nlohse/stash/internal/model"
)

// DefaultExportPath returns the default export file path.
// Format: ~/Downloads/bookmarks-export-YYYY-MM-DD.html
func DefaultExportPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("bookmarks-export-%s.html", time.Now().Format("2006-01-02"))
	return filepath.Join(home, "Downloads", filename), nil
}

// ExportHTML exports the store to Netscape bookmark HTML format.
// Tags ride along in the TAGS attribute the way Firefox writes them.
func ExportHTML(store *model.Store) string {
	var b strings.Builder

	b.WriteString("<!DOCTYPE NETSCAPE-Bookmark-file-1>\n")
	b.WriteString("<META HTTP-EQUIV=\"Content-Type\" CONTENT=\"text/html; charset=UTF-8\">\n")
	b.WriteString("<TITLE>Bookmarks</TITLE>\n")
	b.WriteString("<H1>Bookmarks</H1>\n")
	b.WriteString("<DL><p>\n")

	for _, bm := range store.Bookmarks {
		fmt.Fprintf(&b,
			"    <DT><A HREF=\"%s\" ADD_DATE=\"%d\" TAGS=\"%s\">%s</A>\n",
			html.EscapeString(bm.URL),
			bm.DateAdded.Unix(),
			html.EscapeString(strings.Join(bm.Tags, ",")),
			html.EscapeString(bm.Title),
		)
		if bm.Description != "" {
			fmt.Fprintf(&b, "    <DD>%s\n", html.EscapeString(bm.Description))
		}
	}

	b.WriteString("</DL><p>\n")
	return b.String()
}
