// Package pii masks personal identifiers: email addresses and links
package pii

import "textprep/internal/core/patterns"

// Placeholder tokens written into the cleaned text
const (
	EmailToken = "<EMAIL>"
	URLToken   = "<URL>"
)

// Stats counts replacements made by MaskCount
type Stats struct {
	Emails int `json:"emails"`
	URLs   int `json:"urls"`
}

// Mask replaces emails, then links, with fixed tokens.
// Emails go first so the link matcher never sees a half-masked address
func Mask(s string) string {
	out, _ := MaskCount(s)
	return out
}

// MaskCount is Mask that also reports how many spans were replaced
func MaskCount(s string) (string, Stats) {
	var st Stats
	if s == "" {
		return s, st
	}

	s = patterns.Email.ReplaceAllStringFunc(s, func(string) string {
		st.Emails++
		return EmailToken
	})

	// the whole non-space run goes, punctuation glued to the link included
	s = patterns.URL.ReplaceAllStringFunc(s, func(string) string {
		st.URLs++
		return URLToken
	})

	return s, st
}
