// Package normalize holds the byte-level hygiene passes shared by the pipeline
// Sanitize drops control characters and invalid UTF-8 (see sanitize.go)
// Collapse squeezes every whitespace run to one ASCII space and trims the edges
package normalize

import (
	"strings"
	"unicode"
)

// Collapse converts whitespace runs (spaces, tabs, newlines, NBSP and friends in
// any mixture) to a single ASCII space and trims both ends. Idempotent
func Collapse(s string) string {
	if s == "" {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	inWS := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			inWS = true
			continue
		}
		if inWS && b.Len() > 0 {
			b.WriteByte(' ')
		}
		inWS = false
		b.WriteRune(r)
	}
	return b.String()
}

// IsBlank reports whether s has no non-whitespace content
func IsBlank(s string) bool {
	return strings.TrimFunc(s, unicode.IsSpace) == ""
}
