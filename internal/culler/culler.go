// Package culler checks bookmark URLs for dead links so stale entries
// can be archived instead of cluttering the collection.
package culler

import (
	"io"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/nlohse/stash/internal/model"
	"github.com/nlohse/stash/internal/urlnorm"
)

// Status represents the health of a URL.
type Status int

const (
	Healthy     Status = iota // 2xx or 3xx response
	Dead                      // 404 or 410 Gone
	Unreachable               // timeout, DNS failure, connection refused, etc.
)

func (s Status) String() string {
	switch s {
	case Healthy:
		return "healthy"
	case Dead:
		return "dead"
	default:
		return "unreachable"
	}
}

// Result holds the check outcome for a single bookmark.
type Result struct {
	BookmarkID string
	URL        string
	Status     Status
	StatusCode int    // 0 if the connection failed
	Error      string // message for unreachable URLs
}

// ProgressFunc is called after each URL is checked.
type ProgressFunc func(completed, total int)

// DefaultConcurrency is the worker count used when none is given.
const DefaultConcurrency = 8

// CheckURLs checks all bookmark URLs concurrently. Domains listed in
// excludeDomains get their 404s reported as "possibly private" rather
// than dead, since auth walls often answer 404.
func CheckURLs(bookmarks []model.Bookmark, concurrency int, timeout time.Duration, excludeDomains []string, onProgress ProgressFunc) []Result {
	if len(bookmarks) == 0 {
		return nil
	}
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	// Suppress noisy HTTP client logging (protocol errors, unsolicited
	// responses from misbehaving servers).
	originalOutput := log.Writer()
	log.SetOutput(io.Discard)
	defer log.SetOutput(originalOutput)

	excluded := make(map[string]bool, len(excludeDomains))
	for _, domain := range excludeDomains {
		excluded[strings.ToLower(domain)] = true
	}

	client := &http.Client{
		Timeout: timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= 10 {
				return http.ErrUseLastResponse
			}
			return nil
		},
	}

	results := make([]Result, len(bookmarks))
	jobs := make(chan int, len(bookmarks))
	var wg sync.WaitGroup

	var progressMu sync.Mutex
	completed := 0

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				results[idx] = checkURL(client, &bookmarks[idx], excluded)

				if onProgress != nil {
					progressMu.Lock()
					completed++
					onProgress(completed, len(bookmarks))
					progressMu.Unlock()
				}
			}
		}()
	}

	for i := range bookmarks {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// ArchiveDead flags every dead result's bookmark as archived.
// Returns how many bookmarks were newly archived.
func ArchiveDead(store *model.Store, results []Result) int {
	archived := 0
	for _, r := range results {
		if r.Status != Dead {
			continue
		}
		if b := store.ByID(r.BookmarkID); b != nil && !b.Archived {
			b.Archived = true
			archived++
		}
	}
	return archived
}

func checkURL(client *http.Client, bookmark *model.Bookmark, excluded map[string]bool) Result {
	result := Result{
		BookmarkID: bookmark.ID,
		URL:        bookmark.URL,
	}

	// HEAD first; some servers refuse it, so fall back to GET.
	resp, err := client.Head(bookmark.URL)
	if err != nil {
		resp, err = client.Get(bookmark.URL)
		if err != nil {
			result.Status = Unreachable
			result.Error = normalizeError(err.Error())
			return result
		}
	}
	defer resp.Body.Close()

	result.StatusCode = resp.StatusCode

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 400:
		result.Status = Healthy
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		if isExcludedDomain(bookmark.URL, excluded) {
			result.Status = Unreachable
			result.Error = "Possibly private (auth required)"
		} else {
			result.Status = Dead
		}
	default:
		// 500s, 403s and friends may be temporary or auth-gated.
		result.Status = Unreachable
		result.Error = http.StatusText(resp.StatusCode)
	}

	return result
}

// isExcludedDomain matches the URL's host against the exclude list,
// including parent domains ("api.github.com" matches "github.com").
func isExcludedDomain(rawURL string, excluded map[string]bool) bool {
	host := urlnorm.Host(rawURL)
	if host == "" {
		return false
	}
	if excluded[host] {
		return true
	}
	for domain := range excluded {
		if strings.HasSuffix(host, "."+domain) {
			return true
		}
	}
	return false
}

// normalizeError simplifies verbose transport errors into readable
// categories.
func normalizeError(errStr string) string {
	lower := strings.ToLower(errStr)

	switch {
	case strings.Contains(lower, "no such host"):
		return "DNS failure"
	case strings.Contains(lower, "context deadline exceeded"),
		strings.Contains(lower, "timeout"):
		return "Timeout"
	case strings.Contains(lower, "connection refused"):
		return "Connection refused"
	case strings.Contains(lower, "certificate"):
		return "TLS/certificate error"
	case strings.Contains(lower, "network is unreachable"):
		return "Network unreachable"
	case strings.Contains(lower, "tls:"):
		return "TLS error"
	default:
		return errStr
	}
}
