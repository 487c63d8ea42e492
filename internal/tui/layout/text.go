// Package layout provides text measurement helpers for terminal
// rendering: ANSI stripping, visible width, truncation.
package layout

import (
	"regexp"
	"unicode/utf8"
)

// Ellipsis is appended to truncated text.
const Ellipsis = "…"

// ansiRegex matches ANSI escape sequences.
var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// StripANSI removes ANSI escape codes from a string.
func StripANSI(s string) string {
	return ansiRegex.ReplaceAllString(s, "")
}

// VisibleLength returns the visible length of a string (excluding ANSI codes).
func VisibleLength(s string) int {
	return utf8.RuneCountInString(StripANSI(s))
}

// TruncateText truncates text to maxWidth with an ellipsis.
// Returns the truncated text and whether truncation occurred.
func TruncateText(text string, maxWidth int) (string, bool) {
	if maxWidth <= 0 {
		return "", true
	}

	textLen := utf8.RuneCountInString(text)
	if textLen <= maxWidth {
		return text, false
	}

	ellipsisLen := utf8.RuneCountInString(Ellipsis)
	if maxWidth <= ellipsisLen {
		runes := []rune(Ellipsis)
		return string(runes[:maxWidth]), true
	}

	runes := []rune(text)
	return string(runes[:maxWidth-ellipsisLen]) + Ellipsis, true
}
