package enhance

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"golang.org/x/net/html"
)

// maxPageBytes caps how much of a page body is read for inspection.
const maxPageBytes = 512 * 1024

// maxExcerptLen caps the body-text excerpt used as a description
// fallback.
const maxExcerptLen = 200

// PageInfo holds the content extracted from a fetched page.
type PageInfo struct {
	Title       string
	Description string
	Excerpt     string
}

// fetchPage retrieves a page and extracts its title, meta description,
// and a short body excerpt.
func fetchPage(ctx context.Context, client *http.Client, pageURL string) (PageInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return PageInfo{}, err
	}
	req.Header.Set("User-Agent", "stash/1.0 (+bookmark enhancement)")
	req.Header.Set("Accept", "text/html")

	resp, err := client.Do(req)
	if err != nil {
		return PageInfo{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return PageInfo{}, fmt.Errorf("page fetch status %d", resp.StatusCode)
	}

	doc, err := html.Parse(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return PageInfo{}, err
	}

	return extractPageInfo(doc), nil
}

// extractPageInfo pulls title, description meta tags, and the first
// paragraph text out of a parsed document.
func extractPageInfo(doc *html.Node) PageInfo {
	var info PageInfo

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch strings.ToLower(n.Data) {
			case "title":
				if info.Title == "" {
					info.Title = textContent(n)
				}
			case "meta":
				name := strings.ToLower(attr(n, "name"))
				property := strings.ToLower(attr(n, "property"))
				if info.Description == "" && (name == "description" || property == "og:description") {
					info.Description = strings.TrimSpace(attr(n, "content"))
				}
			case "p":
				if info.Excerpt == "" {
					if text := textContent(n); text != "" {
						info.Excerpt = truncate(text, maxExcerptLen)
					}
				}
			case "script", "style":
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return info
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, key) {
			return a.Val
		}
	}
	return ""
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.Join(strings.Fields(b.String()), " ")
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := s[:max]
	if i := strings.LastIndex(cut, " "); i > max/2 {
		cut = cut[:i]
	}
	return cut + "…"
}
