package enhance

import (
	"encoding/base64"
	"fmt"
	"html"

	"github.com/nlohse/stash/internal/tagger"
	"github.com/nlohse/stash/internal/urlnorm"
)

// PlaceholderScreenshot builds a synthetic screenshot as an SVG data
// URI, colored by the bookmark's category. Real capture is unreliable
// cross-origin, so this stands in unless a Screenshotter is plugged in.
func PlaceholderScreenshot(title, rawURL, category string) string {
	label := urlnorm.Host(rawURL)
	if label == "" {
		label = title
	}
	if len(label) > 40 {
		label = label[:40]
	}

	svg := fmt.Sprintf(
		`<svg xmlns="http://www.w3.org/2000/svg" width="640" height="400">`+
			`<rect width="640" height="400" fill="%s"/>`+
			`<text x="320" y="190" text-anchor="middle" font-family="sans-serif" font-size="28" fill="#ffffff">%s</text>`+
			`<text x="320" y="230" text-anchor="middle" font-family="sans-serif" font-size="16" fill="#ffffffcc">%s</text>`+
			`</svg>`,
		tagger.Color(category),
		html.EscapeString(label),
		html.EscapeString(category),
	)

	return "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString([]byte(svg))
}
