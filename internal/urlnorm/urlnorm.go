// Package urlnorm canonicalizes URLs so equivalent addresses compare equal.
package urlnorm

import (
	"net/url"
	"strings"
)

// Query parameters stripped during normalization. Keys starting with a
// tracking prefix are dropped wherever they appear.
var (
	trackingPrefixes = []string{"utm_", "fbclid", "gclid", "mc_"}
	blockedKeys      = map[string]bool{
		"source": true,
		"ref":    true,
	}
)

// Normalize returns the canonical form of a URL for equality comparison.
//
// The result is origin + path with a single trailing slash removed,
// tracking query parameters dropped, remaining parameters kept in their
// original relative order, the fragment appended verbatim, and the whole
// string lower-cased. Normalize never fails: input that does not parse
// as an absolute URL is returned lower-cased as-is.
//
// Normalize is idempotent: Normalize(Normalize(u)) == Normalize(u).
func Normalize(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return strings.ToLower(strings.TrimSpace(rawURL))
	}

	var b strings.Builder
	b.WriteString(u.Scheme)
	b.WriteString("://")
	b.WriteString(u.Host)
	b.WriteString(strings.TrimSuffix(u.EscapedPath(), "/"))

	if query := filterQuery(u.RawQuery); query != "" {
		b.WriteString("?")
		b.WriteString(query)
	}

	if frag := u.EscapedFragment(); frag != "" {
		b.WriteString("#")
		b.WriteString(frag)
	}

	return strings.ToLower(b.String())
}

// Host returns the normalized hostname of a URL with any leading "www."
// stripped, or "" if the input has no parseable host.
func Host(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || u.Host == "" {
		return ""
	}
	host := strings.ToLower(u.Hostname())
	return strings.TrimPrefix(host, "www.")
}

// filterQuery drops tracking parameters from a raw query string while
// preserving the relative order of the remaining parameters.
func filterQuery(rawQuery string) string {
	if rawQuery == "" {
		return ""
	}

	var kept []string
	for _, pair := range strings.Split(rawQuery, "&") {
		if pair == "" {
			continue
		}
		key := pair
		if i := strings.Index(pair, "="); i >= 0 {
			key = pair[:i]
		}
		if isTracking(strings.ToLower(key)) {
			continue
		}
		kept = append(kept, pair)
	}
	return strings.Join(kept, "&")
}

func isTracking(key string) bool {
	if blockedKeys[key] {
		return true
	}
	for _, prefix := range trackingPrefixes {
		if strings.HasPrefix(key, prefix) {
			return true
		}
	}
	return false
}
