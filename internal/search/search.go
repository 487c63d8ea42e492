// Package search provides fuzzy matching over the bookmark collection.
package search

import (
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/nlohse/stash/internal/model"
)

// Result represents a fuzzy search match.
type Result struct {
	Bookmark       *model.Bookmark
	MatchedIndexes []int
	Score          int
}

// bookmarkSource implements fuzzy.Source over title + URL so queries
// hit either.
type bookmarkSource []*model.Bookmark

func (bs bookmarkSource) String(i int) string {
	return bs[i].Title + " " + bs[i].URL
}

func (bs bookmarkSource) Len() int {
	return len(bs)
}

// Bookmarks searches the collection by title and URL using fuzzy
// matching. Results are sorted by match score (best first).
func Bookmarks(store *model.Store, query string) []Result {
	if query == "" {
		return nil
	}

	source := make(bookmarkSource, len(store.Bookmarks))
	for i := range store.Bookmarks {
		source[i] = &store.Bookmarks[i]
	}

	matches := fuzzy.FindFrom(query, source)

	results := make([]Result, len(matches))
	for i, m := range matches {
		results[i] = Result{
			Bookmark:       source[m.Index],
			MatchedIndexes: m.MatchedIndexes,
			Score:          m.Score,
		}
	}
	return results
}

// Filter returns the bookmarks matching a tag and/or a fuzzy query,
// in the given sort order. Empty tag and query mean no restriction.
func Filter(store *model.Store, tag, query string, mode model.SortMode) []model.Bookmark {
	var narrowed *model.Store
	if tag == "" {
		narrowed = store
	} else {
		narrowed = &model.Store{Bookmarks: store.WithTag(strings.ToLower(tag))}
	}

	if query == "" {
		return narrowed.Sorted(mode)
	}

	// Query results keep fuzzy score order instead of the sort mode.
	results := Bookmarks(narrowed, query)
	matched := make([]model.Bookmark, len(results))
	for i, r := range results {
		matched[i] = *r.Bookmark
	}
	return matched
}
