// Package tui implements the interactive bookmark browser: a single
// filterable list with vim-style navigation and bookmark commands.
package tui

import (
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nlohse/stash/internal/model"
	"github.com/nlohse/stash/internal/search"
)

// Mode identifies the current input mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModeFilter
)

// App is the main bubbletea model for the bookmark browser.
type App struct {
	store  *model.Store
	keys   KeyMap
	styles Styles

	mode         Mode
	filterInput  textinput.Model
	filterQuery  string
	tagFilter    string
	sortMode     model.SortMode
	showArchived bool

	cursor int
	items  []model.Bookmark
	status string

	// For gg command
	lastKeyWasG bool

	// Window dimensions
	width  int
	height int

	openURL func(string) error
	copyURL func(string) error
}

// AppParams holds parameters for creating a new App.
type AppParams struct {
	Store   *model.Store
	Keys    *KeyMap            // optional, uses default if nil
	Styles  *Styles            // optional, uses default if nil
	OpenURL func(string) error // optional, defaults to the system browser
	CopyURL func(string) error // optional, defaults to the system clipboard
}

// NewApp creates a new App with the given parameters.
func NewApp(params AppParams) App {
	keys := DefaultKeyMap()
	if params.Keys != nil {
		keys = *params.Keys
	}

	styles := DefaultStyles()
	if params.Styles != nil {
		styles = *params.Styles
	}

	openURL := params.OpenURL
	if openURL == nil {
		openURL = OpenInBrowser
	}

	copyURL := params.CopyURL
	if copyURL == nil {
		copyURL = clipboard.WriteAll
	}

	filter := textinput.New()
	filter.Placeholder = "Filter..."
	filter.CharLimit = 100
	filter.Width = 40

	app := App{
		store:       params.Store,
		keys:        keys,
		styles:      styles,
		filterInput: filter,
		sortMode:    model.SortByDateAdded,
		cursor:      0,
		width:       80,
		height:      24,
		openURL:     openURL,
		copyURL:     copyURL,
	}

	app.refreshItems()
	return app
}

// refreshItems rebuilds the items slice from the current filter, sort
// mode, and archived visibility.
func (a *App) refreshItems() {
	items := search.Filter(a.store, a.tagFilter, a.filterQuery, a.sortMode)

	if !a.showArchived {
		visible := items[:0]
		for _, b := range items {
			if !b.Archived {
				visible = append(visible, b)
			}
		}
		items = visible
	}

	a.items = items
	if a.cursor >= len(a.items) {
		a.cursor = len(a.items) - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
}

// Store returns the underlying bookmark store.
func (a App) Store() *model.Store {
	return a.store
}

// Cursor returns the current cursor position.
func (a App) Cursor() int {
	return a.cursor
}

// Items returns the current list of items.
func (a App) Items() []model.Bookmark {
	return a.items
}

// nextTag advances the tag filter through the collection's facets,
// most common first, wrapping back to no filter.
func (a App) nextTag() string {
	counts := a.store.TagCounts()
	if len(counts) == 0 {
		return ""
	}
	if a.tagFilter == "" {
		return counts[0].Tag
	}
	for i, tc := range counts {
		if tc.Tag == a.tagFilter && i+1 < len(counts) {
			return counts[i+1].Tag
		}
	}
	return ""
}

// selected returns the bookmark under the cursor, or nil.
func (a App) selected() *model.Bookmark {
	if len(a.items) == 0 || a.cursor >= len(a.items) {
		return nil
	}
	return &a.items[a.cursor]
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.KeyMsg:
		if a.mode == ModeFilter {
			return a.updateFilter(msg)
		}
		return a.updateNormal(msg)
	}

	return a, nil
}

// updateFilter handles keys while the filter input is focused.
func (a App) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		a.mode = ModeNormal
		a.filterInput.Blur()
		a.filterInput.Reset()
		a.filterQuery = ""
		a.refreshItems()
		return a, nil

	case tea.KeyEnter:
		a.mode = ModeNormal
		a.filterInput.Blur()
		return a, nil
	}

	var cmd tea.Cmd
	a.filterInput, cmd = a.filterInput.Update(msg)
	a.filterQuery = a.filterInput.Value()
	a.cursor = 0
	a.refreshItems()
	return a, cmd
}

// updateNormal handles keys in normal (list) mode.
func (a App) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a.status = ""

	// Handle gg sequence
	if key.Matches(msg, a.keys.Top) {
		if a.lastKeyWasG {
			a.cursor = 0
			a.lastKeyWasG = false
			return a, nil
		}
		a.lastKeyWasG = true
		return a, nil
	}
	a.lastKeyWasG = false

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, a.keys.Down):
		if len(a.items) > 0 && a.cursor < len(a.items)-1 {
			a.cursor++
		}

	case key.Matches(msg, a.keys.Up):
		if a.cursor > 0 {
			a.cursor--
		}

	case key.Matches(msg, a.keys.Bottom):
		if len(a.items) > 0 {
			a.cursor = len(a.items) - 1
		}

	case key.Matches(msg, a.keys.Filter):
		a.mode = ModeFilter
		a.filterInput.Focus()

	case key.Matches(msg, a.keys.CycleTag):
		a.tagFilter = a.nextTag()
		a.cursor = 0
		a.refreshItems()
		if a.tagFilter == "" {
			a.status = "tag filter off"
		} else {
			a.status = "tag: " + a.tagFilter
		}

	case key.Matches(msg, a.keys.Sort):
		a.sortMode = a.sortMode.Next()
		a.cursor = 0
		a.refreshItems()
		a.status = "sort: " + a.sortMode.String()

	case key.Matches(msg, a.keys.ShowArchived):
		a.showArchived = !a.showArchived
		a.cursor = 0
		a.refreshItems()

	case key.Matches(msg, a.keys.Open):
		if b := a.selected(); b != nil {
			a.store.RecordVisit(b.ID)
			if err := a.openURL(b.URL); err != nil {
				a.status = "open failed: " + err.Error()
			}
		}

	case key.Matches(msg, a.keys.YankURL):
		if b := a.selected(); b != nil {
			if err := a.copyURL(b.URL); err != nil {
				a.status = "yank failed: " + err.Error()
			} else {
				a.status = "yanked " + b.URL
			}
		}

	case key.Matches(msg, a.keys.Like):
		if b := a.selected(); b != nil {
			a.store.Like(b.ID)
			a.refreshItems()
		}

	case key.Matches(msg, a.keys.Dislike):
		if b := a.selected(); b != nil {
			a.store.Dislike(b.ID)
			a.refreshItems()
		}

	case key.Matches(msg, a.keys.Archive):
		if b := a.selected(); b != nil {
			a.store.SetArchived(b.ID, !b.Archived)
			a.refreshItems()
		}

	case key.Matches(msg, a.keys.Delete):
		if b := a.selected(); b != nil {
			a.store.Remove(b.ID)
			a.refreshItems()
		}
	}

	return a, nil
}

// View implements tea.Model.
func (a App) View() string {
	return a.renderView()
}
