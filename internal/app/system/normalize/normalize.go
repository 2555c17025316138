// Package normalize provides canonical forms for user-supplied identifiers
// so that stores and handlers compare the same values.
package normalize

import (
	"strings"

	"github.com/dalemusser/waffle/pantry/text"
)

// Email lowercases and trims an email address.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims surrounding whitespace; case is preserved.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// Phone trims whitespace. Inner spaces and hyphens are kept as entered.
func Phone(s string) string {
	return strings.TrimSpace(s)
}

// Fold returns the case/diacritic-insensitive form used for search fields.
func Fold(s string) string {
	return text.Fold(strings.TrimSpace(s))
}
