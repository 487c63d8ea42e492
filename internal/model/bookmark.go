package model

import (
	"strings"
	"time"
)

// Bookmark represents a saved URL with metadata.
type Bookmark struct {
	ID           string     `json:"id"`
	URL          string     `json:"url"`
	Title        string     `json:"title"`
	Description  string     `json:"description,omitempty"`
	Tags         []string   `json:"tags"`
	Favicon      string     `json:"favicon,omitempty"`
	Screenshot   string     `json:"screenshot,omitempty"`
	Likes        int        `json:"likes"`
	Dislikes     int        `json:"dislikes"`
	Archived     bool       `json:"archived,omitempty"`
	DateAdded    time.Time  `json:"dateAdded"`
	RemindAt     *time.Time `json:"remindAt,omitempty"`
	LastViewedAt *time.Time `json:"lastViewedAt,omitempty"`
	Analytics    *Analytics `json:"analytics,omitempty"`
}

// Analytics tracks usage of a bookmark. Mutated by UI actions only,
// never by the import pipeline.
type Analytics struct {
	Visits int `json:"visits"`
}

// NewBookmarkParams holds parameters for creating a new Bookmark.
type NewBookmarkParams struct {
	URL         string
	Title       string
	Description string
	Tags        []string
	Favicon     string
	DateAdded   time.Time
}

// NewBookmark creates a Bookmark with a generated UUID.
// A zero DateAdded defaults to the current time.
func NewBookmark(params NewBookmarkParams) Bookmark {
	tags := params.Tags
	if tags == nil {
		tags = []string{}
	}

	added := params.DateAdded
	if added.IsZero() {
		added = time.Now()
	}

	return Bookmark{
		ID:          GenerateUUID(),
		URL:         params.URL,
		Title:       params.Title,
		Description: params.Description,
		Tags:        tags,
		Favicon:     params.Favicon,
		DateAdded:   added,
	}
}

// HasTag reports whether the bookmark carries the given tag.
// Comparison is case-insensitive.
func (b *Bookmark) HasTag(tag string) bool {
	for _, t := range b.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// AddTags unions the given tags into the bookmark's tag set,
// preserving the order of first appearance.
func (b *Bookmark) AddTags(tags ...string) {
	for _, t := range tags {
		if t == "" || b.HasTag(t) {
			continue
		}
		b.Tags = append(b.Tags, t)
	}
}
