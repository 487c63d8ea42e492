// Package tagger assigns category labels to bookmarks using a static
// rule table: domain overrides, ordered keyword buckets, and a small
// set of last-resort heuristics. It never calls out to the network.
package tagger

import (
	"net/url"
	"strings"

	"github.com/nlohse/stash/internal/urlnorm"
)

// maxKeywordCategories caps how many categories the keyword-bucket
// stage collects for a single bookmark.
const maxKeywordCategories = 2

// Categories returns the closed taxonomy in canonical order.
func Categories() []string {
	out := make([]string, len(categories))
	copy(out, categories)
	return out
}

// IsCategory reports whether the given label is part of the taxonomy.
func IsCategory(label string) bool {
	label = strings.ToLower(label)
	for _, c := range categories {
		if c == label {
			return true
		}
	}
	return false
}

// Classify maps a bookmark to an ordered, non-empty list of categories.
//
// Stages run in strict priority order and short-circuit: exact domain
// override, domain suffix override, keyword buckets (capped), path
// segment fallback, last-resort heuristics, then "other". Malformed
// URLs never fail classification; host-based stages are skipped and
// the raw string feeds the keyword stages.
func Classify(rawURL, title, description string) []string {
	host := urlnorm.Host(rawURL)

	// Exact domain override.
	if host != "" {
		if cat, ok := domainOverrides[host]; ok {
			return []string{cat}
		}
		// Suffix override: "gist.github.com" matches "github.com".
		// Most specific entry wins when several suffixes match.
		for _, domain := range overrideSuffixes {
			if strings.HasSuffix(host, "."+domain) {
				return []string{domainOverrides[domain]}
			}
		}
	}

	blob := strings.ToLower(rawURL + " " + title + " " + description)

	// Keyword buckets, in bucket order, capped.
	var found []string
	for _, b := range buckets {
		if len(found) >= maxKeywordCategories {
			break
		}
		if containsAny(blob, b.keywords) {
			found = append(found, b.category)
		}
	}
	if len(found) > 0 {
		return found
	}

	// Path segments, de-hyphenated, re-run through the buckets.
	for _, segment := range pathSegments(rawURL) {
		for _, b := range buckets {
			if containsAny(segment, b.keywords) {
				return []string{b.category}
			}
		}
	}

	// Last-resort heuristics, first match wins.
	for _, rule := range heuristics {
		if rule.match(host, blob) {
			return []string{rule.category}
		}
	}

	return []string{Other}
}

// Primary returns the first category Classify would assign.
func Primary(rawURL, title, description string) string {
	return Classify(rawURL, title, description)[0]
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

// pathSegments splits the URL path into lower-cased, de-hyphenated
// segments. A URL that does not parse yields no segments.
func pathSegments(rawURL string) []string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || u.Path == "" {
		return nil
	}

	var segments []string
	for _, seg := range strings.Split(u.Path, "/") {
		if seg == "" {
			continue
		}
		seg = strings.ToLower(seg)
		seg = strings.ReplaceAll(seg, "-", " ")
		segments = append(segments, seg)
	}
	return segments
}
