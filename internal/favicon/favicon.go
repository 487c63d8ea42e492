// Package favicon derives and optionally fetches favicons for bookmarks.
package favicon

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/net/html"

	"github.com/nlohse/stash/internal/urlnorm"
)

// DerivedURL returns a deterministic favicon URL for a bookmark's
// domain. The import pipeline uses this so imports stay offline; the
// real icon can be resolved later by a Fetcher.
func DerivedURL(bookmarkURL string) string {
	host := urlnorm.Host(bookmarkURL)
	if host == "" {
		return ""
	}
	return fmt.Sprintf("https://icons.duckduckgo.com/ip3/%s.ico", host)
}

// Fetcher resolves real favicon bytes for a site. Hosts that failed
// once are remembered and skipped for the lifetime of the Fetcher.
type Fetcher struct {
	client      *http.Client
	failedHosts sync.Map
}

// NewFetcher creates a Fetcher with a 10 second request timeout.
func NewFetcher() *Fetcher {
	return &Fetcher{
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// Fetch returns the favicon bytes for a site, trying the page's
// <link rel="icon"> first and /favicon.ico second.
func (f *Fetcher) Fetch(siteURL string) ([]byte, error) {
	u, err := url.Parse(siteURL)
	if err != nil || u.Host == "" {
		return nil, fmt.Errorf("favicon: unusable site URL %q", siteURL)
	}

	if _, failed := f.failedHosts.Load(u.Host); failed {
		return nil, fmt.Errorf("favicon: host %s previously failed", u.Host)
	}

	data, err := f.fromHTML(u)
	if err != nil {
		data, err = f.fromRoot(u)
	}
	if err != nil {
		f.failedHosts.Store(u.Host, true)
		return nil, err
	}
	return data, nil
}

// fromHTML fetches the page and scans it for an icon link.
func (f *Fetcher) fromHTML(site *url.URL) ([]byte, error) {
	resp, err := f.client.Get(site.String())
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("favicon: page fetch status %d", resp.StatusCode)
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return nil, err
	}

	href := findIconLink(doc)
	if href == "" {
		return nil, fmt.Errorf("favicon: no icon link in page")
	}

	resolved, err := site.Parse(href)
	if err != nil {
		return nil, err
	}
	return f.download(resolved.String())
}

func (f *Fetcher) fromRoot(site *url.URL) ([]byte, error) {
	return f.download(fmt.Sprintf("%s://%s/favicon.ico", site.Scheme, site.Host))
}

func (f *Fetcher) download(iconURL string) ([]byte, error) {
	resp, err := f.client.Get(iconURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("favicon: icon fetch status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// findIconLink returns the href of the first <link rel="icon"> or
// <link rel="shortcut icon"> element, or "".
func findIconLink(n *html.Node) string {
	if n.Type == html.ElementNode && strings.EqualFold(n.Data, "link") {
		var rel, href string
		for _, a := range n.Attr {
			switch strings.ToLower(a.Key) {
			case "rel":
				rel = strings.ToLower(a.Val)
			case "href":
				href = a.Val
			}
		}
		if (rel == "icon" || rel == "shortcut icon") && href != "" {
			return href
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findIconLink(c); found != "" {
			return found
		}
	}
	return ""
}
