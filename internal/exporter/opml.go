package exporter

import (
	"encoding/xml"
	"sort"
	"strings"
	"time"

	"github.com/nlohse/stash/internal/model"
)

// untaggedBucket collects bookmarks that carry no tags.
const untaggedBucket = "Untagged"

type opmlDocument struct {
	XMLName xml.Name    `xml:"opml"`
	Version string      `xml:"version,attr"`
	Head    opmlHead    `xml:"head"`
	Body    opmlBody    `xml:"body"`
}

type opmlHead struct {
	Title       string `xml:"title"`
	DateCreated string `xml:"dateCreated,omitempty"`
}

type opmlBody struct {
	Outlines []opmlOutline `xml:"outline"`
}

type opmlOutline struct {
	Text     string        `xml:"text,attr"`
	Type     string        `xml:"type,attr,omitempty"`
	URL      string        `xml:"url,attr,omitempty"`
	Children []opmlOutline `xml:"outline,omitempty"`
}

// ExportOPML exports the store as OPML 2.0, bookmarks grouped by tag.
// A bookmark with several tags appears under each of them; taggless
// bookmarks land in the "Untagged" bucket. Tag groups are alphabetical.
func ExportOPML(store *model.Store) (string, error) {
	groups := make(map[string][]model.Bookmark)
	for _, b := range store.Bookmarks {
		if len(b.Tags) == 0 {
			groups[untaggedBucket] = append(groups[untaggedBucket], b)
			continue
		}
		for _, tag := range b.Tags {
			tag = strings.ToLower(tag)
			groups[tag] = append(groups[tag], b)
		}
	}

	names := make([]string, 0, len(groups))
	for name := range groups {
		if name != untaggedBucket {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	if _, ok := groups[untaggedBucket]; ok {
		names = append(names, untaggedBucket)
	}

	doc := opmlDocument{
		Version: "2.0",
		Head: opmlHead{
			Title:       "Bookmarks",
			DateCreated: time.Now().Format(time.RFC1123Z),
		},
	}
	for _, name := range names {
		group := opmlOutline{Text: name}
		for _, b := range groups[name] {
			group.Children = append(group.Children, opmlOutline{
				Text: b.Title,
				Type: "link",
				URL:  b.URL,
			})
		}
		doc.Body.Outlines = append(doc.Body.Outlines, group)
	}

	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", err
	}
	return xml.Header + string(out) + "\n", nil
}
