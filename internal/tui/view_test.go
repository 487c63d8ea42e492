package tui_test

import (
	"strings"
	"testing"

	"gotest.tools/v3/assert"

	"github.com/nlohse/stash/internal/model"
	"github.com/nlohse/stash/internal/tui"
	"github.com/nlohse/stash/internal/tui/layout"
)

func TestView_ListsBookmarks(t *testing.T) {
	app := tui.NewApp(tui.AppParams{Store: testStore()})
	output := layout.StripANSI(app.View())

	assert.Assert(t, strings.Contains(output, "GitHub"))
	assert.Assert(t, strings.Contains(output, "github.com"))
	assert.Assert(t, strings.Contains(output, "#development"))
	assert.Assert(t, strings.Contains(output, "3 bookmarks"))
}

func TestView_CursorMarker(t *testing.T) {
	app := tui.NewApp(tui.AppParams{Store: testStore()})
	output := layout.StripANSI(app.View())

	// The cursor marks the first (newest) bookmark.
	assert.Assert(t, strings.Contains(output, "> GitHub"))
}

func TestView_EmptyState(t *testing.T) {
	app := tui.NewApp(tui.AppParams{Store: model.NewStore()})
	output := layout.StripANSI(app.View())

	assert.Assert(t, strings.Contains(output, "No bookmarks"))
}
