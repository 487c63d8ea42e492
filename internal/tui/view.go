package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nlohse/stash/internal/model"
	"github.com/nlohse/stash/internal/tagger"
	"github.com/nlohse/stash/internal/tui/layout"
	"github.com/nlohse/stash/internal/urlnorm"
)

// renderView creates the complete list view: header, items, status,
// and hint bar.
func (a App) renderView() string {
	var b strings.Builder

	b.WriteString(a.renderHeader())
	b.WriteString("\n\n")

	if len(a.items) == 0 {
		b.WriteString(a.styles.Empty.Render("No bookmarks. Import some with `stash import <file.html>`."))
		b.WriteString("\n")
	} else {
		b.WriteString(a.renderList())
	}

	if a.mode == ModeFilter {
		b.WriteString("\n")
		b.WriteString(a.styles.Filter.Render("/" + a.filterInput.View()))
	} else if a.status != "" {
		b.WriteString("\n")
		b.WriteString(a.styles.Status.Render(a.status))
	}

	b.WriteString("\n")
	b.WriteString(a.renderHints())

	return a.styles.App.Render(b.String())
}

// renderHeader renders the title line with counts and the sort mode.
func (a App) renderHeader() string {
	title := a.styles.Title.Render("stash")
	info := fmt.Sprintf("%d bookmarks · sort: %s", len(a.items), a.sortMode)
	if a.tagFilter != "" {
		info += " · tag: " + a.tagFilter
	}
	if a.showArchived {
		info += " · archived shown"
	}
	if a.filterQuery != "" {
		info += fmt.Sprintf(" · filter: %s", a.filterQuery)
	}
	return title + "  " + a.styles.HintDesc.Render(info)
}

// renderList renders the visible window of bookmark rows around the
// cursor. Each bookmark takes two lines (title and URL).
func (a App) renderList() string {
	// Two lines per item; leave room for header, status, hints.
	visible := (a.height - 7) / 2
	if visible < 1 {
		visible = 1
	}

	start := 0
	if a.cursor >= visible {
		start = a.cursor - visible + 1
	}
	end := start + visible
	if end > len(a.items) {
		end = len(a.items)
	}

	var b strings.Builder
	for i := start; i < end; i++ {
		b.WriteString(a.renderItem(a.items[i], i == a.cursor))
	}
	return b.String()
}

// renderItem renders one bookmark as a title row with tags and likes,
// followed by a dimmed URL row.
func (a App) renderItem(bm model.Bookmark, selected bool) string {
	cursor := "  "
	style := a.styles.Item
	if selected {
		cursor = "> "
		style = a.styles.ItemSelected
	}
	if bm.Archived {
		style = a.styles.Archived
	}

	title, _ := layout.TruncateText(bm.Title, a.width-30)
	line := cursor + style.Render(title)

	for _, tag := range bm.Tags {
		line += " " + lipgloss.NewStyle().
			Foreground(lipgloss.Color(tagger.Color(tag))).
			Render("#"+tag)
	}
	if bm.Likes > 0 {
		line += " " + a.styles.Likes.Render(fmt.Sprintf("+%d", bm.Likes))
	}

	host, _ := layout.TruncateText(urlnorm.Host(bm.URL), a.width-8)
	return line + "\n    " + a.styles.URL.Render(host) + "\n"
}

// renderHints renders the bottom hint bar for the current mode.
func (a App) renderHints() string {
	var hints []string
	if a.mode == ModeFilter {
		hints = []string{"enter:apply", "esc:clear"}
	} else {
		hints = []string{
			"j/k:move", "l:open", "Y:yank", "+/-:rate", "a:archive",
			"d:delete", "/:filter", "t:tag", "o:sort", "A:archived", "q:quit",
		}
	}

	parts := make([]string, len(hints))
	for i, h := range hints {
		k, d, _ := strings.Cut(h, ":")
		parts[i] = a.styles.HintKey.Render(k) + ":" + a.styles.HintDesc.Render(d)
	}
	return strings.Join(parts, " ")
}
