// Package segment splits cleaned text into sentences.
//
// The algorithm runs in three explicit phases over immutable strings:
//
//	Protect  periods that cannot end a sentence (abbreviations, decimals,
//	         initials) are swapped for Sentinel
//	Split    the protected text is cut wherever terminal punctuation is followed
//	         by whitespace and a sentence opener (capital letter, digit, quote)
//	Restore  sentinels turn back into periods, segments are trimmed, blanks dropped
//
// Sentences that start with a lowercase letter are merged into the previous one.
// That is intentional for the news text this was built for
package segment

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"textprep/internal/core/patterns"
)

// Sentinel replaces protected periods between Protect and Restore.
// normalize.Sanitize strips NUL from pipeline text so it cannot collide
const Sentinel = "\x00"

// Span is a sentence with its byte offsets in the text given to Spans
type Span struct {
	Text  string `json:"text"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// Segmenter splits text using one locale's patterns
type Segmenter struct {
	lib *patterns.Library
}

// New returns a Segmenter for lib; nil means the default locale
func New(lib *patterns.Library) *Segmenter {
	if lib == nil {
		lib = patterns.Default()
	}
	return &Segmenter{lib: lib}
}

var def = New(nil)

// Segment splits text with the default locale
func Segment(text string) []string { return def.Segment(text) }

// Segment returns the ordered, trimmed, non-empty sentences of text.
// Blank input yields an empty (non-nil) slice
func (s *Segmenter) Segment(text string) []string {
	text = strings.ReplaceAll(text, Sentinel, "")
	if strings.TrimSpace(text) == "" {
		return []string{}
	}

	out := Restore(s.Split(s.Protect(text)))
	if len(out) == 0 {
		// nothing survived restore; the text itself is the only sentence
		return []string{strings.TrimSpace(text)}
	}
	return out
}

// Spans is Segment with byte offsets into text. Offsets are stable because
// protection swaps one byte ('.') for one byte (Sentinel)
func (s *Segmenter) Spans(text string) []Span {
	text = strings.ReplaceAll(text, Sentinel, "")
	protected := s.Protect(text)

	out := make([]Span, 0, 4)
	for _, r := range s.cuts(protected) {
		seg := text[r[0]:r[1]]
		lead := len(seg) - len(strings.TrimLeftFunc(seg, unicode.IsSpace))
		trimmed := strings.TrimSpace(seg)
		if trimmed == "" {
			continue
		}
		start := r[0] + lead
		out = append(out, Span{Text: trimmed, Start: start, End: start + len(trimmed)})
	}
	return out
}

// Protect applies all three protections in the required order:
// abbreviations before initials so multi-letter tokens are claimed first
func (s *Segmenter) Protect(text string) string {
	text = s.ProtectAbbreviations(text)
	text = ProtectDecimals(text)
	return s.ProtectInitials(text)
}

// ProtectAbbreviations swaps the period after every locale abbreviation for Sentinel.
// Matching is case-insensitive and whole-word; token text is left as written
func (s *Segmenter) ProtectAbbreviations(text string) string {
	return protectMatches(text, s.lib.Abbrev)
}

// ProtectInitials swaps the period after a lone capital letter (В. О. Зеленський)
func (s *Segmenter) ProtectInitials(text string) string {
	return protectMatches(text, s.lib.Initial)
}

// ProtectDecimals swaps a period with a digit on both sides (15.5, 1.2.3, 01.09)
func ProtectDecimals(text string) string {
	if !strings.Contains(text, ".") {
		return text
	}
	b := []byte(text)
	changed := false
	for i := 0; i < len(b); i++ {
		if b[i] != '.' || i == 0 || i+1 >= len(b) {
			continue
		}
		prev, _ := utf8.DecodeLastRune(b[:i])
		next, _ := utf8.DecodeRune(b[i+1:])
		if unicode.IsDigit(prev) && unicode.IsDigit(next) {
			b[i] = Sentinel[0]
			changed = true
		}
	}
	if !changed {
		return text
	}
	return string(b)
}

// protectMatches replaces the trailing period of every match of re that starts
// on a word boundary. A match rejected for its boundary only advances one rune,
// so a valid match starting inside it is still found
func protectMatches(text string, re interface {
	FindStringIndex(string) []int
}) string {
	if !strings.Contains(text, ".") {
		return text
	}
	var b []byte
	for pos := 0; pos < len(text); {
		loc := re.FindStringIndex(text[pos:])
		if loc == nil {
			break
		}
		start, end := pos+loc[0], pos+loc[1]
		if !patterns.WordBoundaryBefore(text, start) {
			_, size := utf8.DecodeRuneInString(text[start:])
			pos = start + size
			continue
		}
		if b == nil {
			b = []byte(text)
		}
		b[end-1] = Sentinel[0] // every pattern ends in a literal '.'
		pos = end
	}
	if b == nil {
		return text
	}
	return string(b)
}

// Split cuts protected text at sentence boundaries. The terminal mark stays on
// the left segment, the whitespace is dropped and the opener starts the right one
func (s *Segmenter) Split(protected string) []string {
	cuts := s.cuts(protected)
	out := make([]string, 0, len(cuts))
	for _, c := range cuts {
		out = append(out, protected[c[0]:c[1]])
	}
	return out
}

// cuts returns [start,end) byte ranges of the raw segments in protected
func (s *Segmenter) cuts(protected string) [][2]int {
	if protected == "" {
		return nil
	}
	var out [][2]int
	start := 0
	for _, m := range s.lib.Boundary.FindAllStringIndex(protected, -1) {
		// m spans mark + whitespace + opener
		_, markSize := utf8.DecodeRuneInString(protected[m[0]:])
		_, openerSize := utf8.DecodeLastRuneInString(protected[:m[1]])
		out = append(out, [2]int{start, m[0] + markSize})
		start = m[1] - openerSize
	}
	return append(out, [2]int{start, len(protected)})
}

// Restore turns sentinels back into periods, trims each segment and drops blanks
func Restore(segments []string) []string {
	out := make([]string, 0, len(segments))
	for _, seg := range segments {
		seg = strings.TrimSpace(strings.ReplaceAll(seg, Sentinel, "."))
		if seg != "" {
			out = append(out, seg)
		}
	}
	return out
}
