package domain

import (
	"html"
	"regexp"
	"strings"
)

var tagRegex = regexp.MustCompile(`<[^>]*>`)

// StripHTML removes markup from provider text: search titles and blog
// descriptions arrive with <b> highlighting and escaped entities.
// Whitespace is collapsed so joined snippets stay single-spaced.
func StripHTML(s string) string {
	if s == "" {
		return ""
	}
	s = tagRegex.ReplaceAllString(s, "")
	s = html.UnescapeString(s)
	return strings.Join(strings.Fields(s), " ")
}

// TruncateRunes cuts s to at most n runes. Provider text is multi-byte
// Korean, so byte slicing would split characters.
func TruncateRunes(s string, n int) string {
	if n <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
