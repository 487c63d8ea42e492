package model

import (
	"sort"
	"strings"
	"time"

	"github.com/nlohse/stash/internal/urlnorm"
)

// Store owns the bookmark collection. All mutation goes through its
// command methods so callers never share slice internals.
type Store struct {
	Bookmarks []Bookmark `json:"bookmarks"`
}

// NewStore creates an empty Store with an initialized slice.
func NewStore() *Store {
	return &Store{Bookmarks: []Bookmark{}}
}

// SortMode controls the order returned by Sorted.
type SortMode int

const (
	SortByDateAdded SortMode = iota // newest first
	SortByTitle
	SortByLikes
	SortByLastViewed
)

// String returns a short label for the sort mode.
func (m SortMode) String() string {
	switch m {
	case SortByDateAdded:
		return "date"
	case SortByTitle:
		return "title"
	case SortByLikes:
		return "likes"
	case SortByLastViewed:
		return "viewed"
	default:
		return "date"
	}
}

// Next cycles to the following sort mode.
func (m SortMode) Next() SortMode {
	return (m + 1) % 4
}

// TagCount is a tag facet with its aggregated bookmark count.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// Add appends a bookmark to the collection.
func (s *Store) Add(b Bookmark) {
	s.Bookmarks = append(s.Bookmarks, b)
}

// Remove deletes the bookmark with the given ID.
// Returns false if no bookmark matched.
func (s *Store) Remove(id string) bool {
	for i := range s.Bookmarks {
		if s.Bookmarks[i].ID == id {
			s.Bookmarks = append(s.Bookmarks[:i], s.Bookmarks[i+1:]...)
			return true
		}
	}
	return false
}

// ByID finds a bookmark by ID, returns nil if not found.
func (s *Store) ByID(id string) *Bookmark {
	for i := range s.Bookmarks {
		if s.Bookmarks[i].ID == id {
			return &s.Bookmarks[i]
		}
	}
	return nil
}

// ByURL finds a bookmark whose normalized URL matches the given one.
// Returns nil if not found.
func (s *Store) ByURL(rawURL string) *Bookmark {
	want := urlnorm.Normalize(rawURL)
	for i := range s.Bookmarks {
		if urlnorm.Normalize(s.Bookmarks[i].URL) == want {
			return &s.Bookmarks[i]
		}
	}
	return nil
}

// Like increments the like counter. Returns false if the ID is unknown.
func (s *Store) Like(id string) bool {
	b := s.ByID(id)
	if b == nil {
		return false
	}
	b.Likes++
	return true
}

// Dislike increments the dislike counter. Returns false if the ID is unknown.
func (s *Store) Dislike(id string) bool {
	b := s.ByID(id)
	if b == nil {
		return false
	}
	b.Dislikes++
	return true
}

// SetArchived sets the archived flag. Returns false if the ID is unknown.
func (s *Store) SetArchived(id string, archived bool) bool {
	b := s.ByID(id)
	if b == nil {
		return false
	}
	b.Archived = archived
	return true
}

// Remind sets a reminder time. Returns false if the ID is unknown.
func (s *Store) Remind(id string, at time.Time) bool {
	b := s.ByID(id)
	if b == nil {
		return false
	}
	b.RemindAt = &at
	return true
}

// RecordVisit updates last-viewed time and visit analytics.
// Returns false if the ID is unknown.
func (s *Store) RecordVisit(id string) bool {
	b := s.ByID(id)
	if b == nil {
		return false
	}
	now := time.Now()
	b.LastViewedAt = &now
	if b.Analytics == nil {
		b.Analytics = &Analytics{}
	}
	b.Analytics.Visits++
	return true
}

// WithTag returns the bookmarks carrying the given tag.
func (s *Store) WithTag(tag string) []Bookmark {
	var result []Bookmark
	for i := range s.Bookmarks {
		if s.Bookmarks[i].HasTag(tag) {
			result = append(result, s.Bookmarks[i])
		}
	}
	return result
}

// TagCounts aggregates tag facets across the collection,
// sorted by count (descending), ties broken by tag name.
func (s *Store) TagCounts() []TagCount {
	counts := make(map[string]int)
	for i := range s.Bookmarks {
		for _, t := range s.Bookmarks[i].Tags {
			counts[strings.ToLower(t)]++
		}
	}

	result := make([]TagCount, 0, len(counts))
	for tag, n := range counts {
		result = append(result, TagCount{Tag: tag, Count: n})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Tag < result[j].Tag
	})
	return result
}

// Sorted returns a copy of the collection in the given order.
func (s *Store) Sorted(mode SortMode) []Bookmark {
	result := make([]Bookmark, len(s.Bookmarks))
	copy(result, s.Bookmarks)

	switch mode {
	case SortByTitle:
		sort.SliceStable(result, func(i, j int) bool {
			return strings.ToLower(result[i].Title) < strings.ToLower(result[j].Title)
		})
	case SortByLikes:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].Likes > result[j].Likes
		})
	case SortByLastViewed:
		sort.SliceStable(result, func(i, j int) bool {
			ti, tj := result[i].LastViewedAt, result[j].LastViewedAt
			if ti == nil {
				return false
			}
			if tj == nil {
				return true
			}
			return ti.After(*tj)
		})
	default:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].DateAdded.After(result[j].DateAdded)
		})
	}
	return result
}
