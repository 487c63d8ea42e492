package importer

import (
	"strings"

	"github.com/nlohse/stash/internal/model"
	"github.com/nlohse/stash/internal/urlnorm"
)

// MergeOptions controls how a parsed batch is reconciled against an
// existing collection.
type MergeOptions struct {
	// MergeMetadata unions tags into existing duplicates, takes the
	// strictly later dateAdded, and fills an empty description.
	MergeMetadata bool

	// CleanTitles strips trailing " - Site" / " | Site" suffixes and
	// trailing parentheticals from incoming titles before matching.
	CleanTitles bool
}

// MergeResult summarizes one merge pass.
type MergeResult struct {
	Added      []model.Bookmark
	Duplicates int
}

// Merge reconciles a freshly parsed batch against the store. Genuinely
// new bookmarks are appended; duplicates (by normalized URL) mutate the
// existing entry in place per the options. The existing bookmark's ID,
// likes, and dislikes are never overwritten, and nothing is deleted.
// Merging the same batch twice is a no-op the second time.
func Merge(store *model.Store, batch []model.Bookmark, opts MergeOptions) MergeResult {
	index := make(map[string]string, len(store.Bookmarks)) // normalized URL -> ID
	for i := range store.Bookmarks {
		index[urlnorm.Normalize(store.Bookmarks[i].URL)] = store.Bookmarks[i].ID
	}

	var result MergeResult
	for _, incoming := range batch {
		if opts.CleanTitles {
			incoming.Title = CleanTitle(incoming.Title)
		}

		key := urlnorm.Normalize(incoming.URL)
		if id, dup := index[key]; dup {
			result.Duplicates++
			if opts.MergeMetadata {
				mergeMetadata(store.ByID(id), &incoming)
			}
			continue
		}

		store.Add(incoming)
		index[key] = incoming.ID
		result.Added = append(result.Added, incoming)
	}
	return result
}

// mergeMetadata folds an incoming duplicate into the existing entry.
// Tags always union; dateAdded takes the strictly later value;
// description fills in only when the existing one is empty. The
// asymmetry is deliberate.
func mergeMetadata(existing *model.Bookmark, incoming *model.Bookmark) {
	if existing == nil {
		return
	}

	existing.AddTags(incoming.Tags...)

	if incoming.DateAdded.After(existing.DateAdded) {
		existing.DateAdded = incoming.DateAdded
	}

	if existing.Description == "" && incoming.Description != "" {
		existing.Description = incoming.Description
	}
}

// CleanTitle strips a trailing "- Site" or "| Site" suffix and any
// trailing parenthetical from a bookmark title. Cleaning never empties
// a title: if stripping would leave nothing, the original is kept.
func CleanTitle(title string) string {
	cleaned := strings.TrimSpace(title)

	for _, sep := range []string{" - ", " | ", " – ", " — "} {
		if i := strings.LastIndex(cleaned, sep); i > 0 {
			cleaned = strings.TrimSpace(cleaned[:i])
		}
	}

	// Trailing parentheticals, e.g. "Title (archived copy)".
	for strings.HasSuffix(cleaned, ")") {
		open := strings.LastIndex(cleaned, "(")
		if open <= 0 {
			break
		}
		cleaned = strings.TrimSpace(cleaned[:open])
	}

	if cleaned == "" {
		return strings.TrimSpace(title)
	}
	return cleaned
}
