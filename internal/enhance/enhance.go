// Package enhance enriches bookmarks with descriptions, categories,
// and placeholder screenshots by inspecting page content. Everything
// degrades to synthetic values: a failed fetch never fails the pass.
package enhance

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/nlohse/stash/internal/favicon"
	"github.com/nlohse/stash/internal/model"
	"github.com/nlohse/stash/internal/tagger"
	"github.com/nlohse/stash/internal/urlnorm"
)

// DefaultBatchSize is how many bookmarks one batch processes.
const DefaultBatchSize = 5

// ProgressFunc is called after each batch completes.
// processed is the number of bookmarks handled so far.
type ProgressFunc func(processed, total int)

// Result summarizes an enhancement pass.
type Result struct {
	Bookmarks []model.Bookmark
	Failed    int // bookmarks that fell back to synthetic values
}

// Enhancer runs the enhancement pipeline. Members of a batch are
// fetched concurrently; batches run strictly in order so progress
// reporting stays monotonic.
type Enhancer struct {
	client    *http.Client
	BatchSize int
	Delay     time.Duration // courtesy pause between batches

	// Screenshotter, when set, replaces the synthetic placeholder with
	// a real capture. It gets the bookmark and its primary category and
	// returns an image reference, or "" to keep the placeholder.
	Screenshotter func(b model.Bookmark, category string) string
}

// New creates an Enhancer with the default batch size and a 10 second
// per-page timeout.
func New() *Enhancer {
	return &Enhancer{
		client:    &http.Client{Timeout: 10 * time.Second},
		BatchSize: DefaultBatchSize,
	}
}

// Enhance processes the bookmarks in batches and returns the enriched
// copies. Cancellation is checked between batches: on a cancelled
// context the bookmarks handled so far are enhanced, the rest are
// returned untouched, and ctx.Err() is reported.
func (e *Enhancer) Enhance(ctx context.Context, bookmarks []model.Bookmark, onProgress ProgressFunc) (Result, error) {
	result := Result{Bookmarks: make([]model.Bookmark, len(bookmarks))}
	copy(result.Bookmarks, bookmarks)

	batchSize := e.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	total := len(result.Bookmarks)
	for start := 0; start < total; start += batchSize {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		end := start + batchSize
		if end > total {
			end = total
		}

		// Batch members run concurrently; the batch itself completes
		// before the next one starts.
		failed := make([]bool, end-start)
		var wg sync.WaitGroup
		for i := start; i < end; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				failed[i-start] = !e.enhanceOne(ctx, &result.Bookmarks[i])
			}(i)
		}
		wg.Wait()

		for _, f := range failed {
			if f {
				result.Failed++
			}
		}

		if onProgress != nil {
			onProgress(end, total)
		}

		if e.Delay > 0 && end < total {
			select {
			case <-time.After(e.Delay):
			case <-ctx.Done():
				return result, ctx.Err()
			}
		}
	}

	return result, nil
}

// enhanceOne enriches a single bookmark in place. Returns false when
// the page fetch failed and synthetic values were substituted.
func (e *Enhancer) enhanceOne(ctx context.Context, b *model.Bookmark) bool {
	page, err := fetchPage(ctx, e.client, b.URL)

	description := page.Description
	if description == "" {
		description = page.Excerpt
	}
	if err != nil || description == "" {
		description = syntheticDescription(b.URL, b.Title)
	}

	if b.Description == "" {
		b.Description = description
	}

	// Reclassify now that a description is available. Union keeps any
	// tags the user already assigned.
	b.AddTags(tagger.Classify(b.URL, b.Title, description)...)

	if b.Favicon == "" {
		b.Favicon = favicon.DerivedURL(b.URL)
	}

	if b.Screenshot == "" {
		primary := tagger.Primary(b.URL, b.Title, description)
		if e.Screenshotter != nil {
			b.Screenshot = e.Screenshotter(*b, primary)
		}
		if b.Screenshot == "" {
			b.Screenshot = PlaceholderScreenshot(b.Title, b.URL, primary)
		}
	}

	return err == nil
}

// syntheticDescription derives a stand-in description from the
// bookmark's domain when page content is unavailable.
func syntheticDescription(rawURL, title string) string {
	host := urlnorm.Host(rawURL)
	if host == "" {
		return fmt.Sprintf("Saved bookmark: %s", title)
	}
	return fmt.Sprintf("Content from %s", host)
}
