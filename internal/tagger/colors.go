package tagger

// categoryColors keys a display color off each category. Used for
// placeholder screenshots and UI accents.
var categoryColors = map[string]string{
	Development:   "#2563eb",
	Documentation: "#0891b2",
	Tutorial:      "#7c3aed",
	Tools:         "#475569",
	Streaming:     "#dc2626",
	News:          "#b91c1c",
	Shopping:      "#d97706",
	Social:        "#db2777",
	Design:        "#9333ea",
	Finance:       "#15803d",
	Science:       "#0d9488",
	Gaming:        "#4f46e5",
	Music:         "#c026d3",
	Education:     "#ca8a04",
	Reference:     "#64748b",
	Article:       "#ea580c",
	Community:     "#059669",
	Entertainment: "#e11d48",
	Tech:          "#1d4ed8",
	Other:         "#6b7280",
}

// Color returns the display color for a category. Unknown labels get
// the "other" color.
func Color(category string) string {
	if c, ok := categoryColors[category]; ok {
		return c
	}
	return categoryColors[Other]
}
