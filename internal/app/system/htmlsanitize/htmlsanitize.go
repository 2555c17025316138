// Package htmlsanitize strips markup from free-text fields before they are
// stored. Card descriptions and customer messages are rendered by browser
// clients, so nothing that can carry script is kept.
package htmlsanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strict   = bluemonday.StrictPolicy()
	brackets = strings.NewReplacer("<", "", ">", "")
)

// Text removes all HTML elements and returns the remaining text, trimmed.
// Script and style element contents are dropped entirely. Entities are
// decoded so apostrophes and ampersands are stored as typed; angle brackets
// never survive.
func Text(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(brackets.Replace(html.UnescapeString(strict.Sanitize(s))))
}

// IsPlainText reports whether s contains no markup that Text would remove.
func IsPlainText(s string) bool {
	return !strings.ContainsAny(s, "<>")
}
