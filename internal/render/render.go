// Package render formats assistant responses for terminal display.
package render

import (
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
)

// Response converts a backend response to terminal-friendly text. The
// AI occasionally answers with HTML markup; that is converted to
// markdown. Plain text passes through unchanged.
func Response(text string) string {
	if !looksLikeHTML(text) {
		return text
	}
	md, err := htmltomarkdown.ConvertString(text)
	if err != nil {
		return text
	}
	return strings.TrimSpace(md)
}

// looksLikeHTML is a cheap heuristic: a tag-like angle bracket pair
// anywhere in the text.
func looksLikeHTML(text string) bool {
	open := strings.IndexByte(text, '<')
	if open < 0 {
		return false
	}
	close := strings.IndexByte(text[open:], '>')
	return close > 1
}
