// Package mojibake undoes the classic Cyrillic encoding accident: UTF-8 bytes
// that were decoded with a single-byte code page and re-encoded as UTF-8
// ("РџСЂРёРІС–С‚" for "Привіт"). The output is always NFC
package mojibake

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"textprep/internal/core/langhint"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/unicode/norm"
)

// Repairer reverses mojibake produced by any of its code pages
type Repairer struct {
	pages []*charmap.Charmap
}

// DefaultPages are tried in order; the first best-scoring candidate wins
var DefaultPages = []*charmap.Charmap{
	charmap.Windows1251,
	charmap.KOI8R,
	charmap.CodePage866,
	charmap.Windows1252,
	charmap.ISO8859_1,
}

// New returns a Repairer over pages, DefaultPages when none are given
func New(pages ...*charmap.Charmap) *Repairer {
	if len(pages) == 0 {
		pages = DefaultPages
	}
	return &Repairer{pages: pages}
}

var def = New()

// Repair fixes s with the default code pages
func Repair(s string) string { return def.Repair(s) }

// Repair returns s with mojibake reversed where that clearly helps, then NFC.
// Text without markers is only normalized
func (r *Repairer) Repair(s string) string {
	if s == "" {
		return s
	}
	orig := langhint.Profile(s)
	if orig.Suspicious == 0 {
		return norm.NFC.String(s)
	}

	best, bestScore := s, orig.Suspicious
	for _, cm := range r.pages {
		cand, ok := reverse(s, cm)
		if !ok {
			continue
		}
		p := langhint.Profile(cand)
		if p.Suspicious < bestScore && p.Letters > 0 {
			best, bestScore = cand, p.Suspicious
		}
	}
	return norm.NFC.String(best)
}

// Name is the stage name reported by the pipeline
func (r *Repairer) Name() string { return "mojibake" }

// reverse re-encodes the ASCII-space separated tokens of s with cm and swaps in
// every result fix accepts. ok is false when no token changed
func reverse(s string, cm *charmap.Charmap) (string, bool) {
	enc := cm.NewEncoder()

	var b strings.Builder
	b.Grow(len(s))
	changed := false
	for len(s) > 0 {
		i := strings.IndexAny(s, " \t\n\r")
		if i < 0 {
			i = len(s)
		}
		tok := s[:i]
		if fixed, ok := fix(enc, tok); ok {
			b.WriteString(fixed)
			changed = true
		} else {
			b.WriteString(tok)
		}
		if i == len(s) {
			break
		}
		b.WriteByte(s[i])
		s = s[i+1:]
	}
	return b.String(), changed
}

// fix re-encodes one token. The result must be UTF-8 made only of clean runes
// and must either remove a marker the token carried or spell out Cyrillic
// letters. Tokens that are pure ASCII never change
func fix(enc *encoding.Encoder, tok string) (string, bool) {
	if isASCII(tok) {
		return "", false
	}
	fixed, err := enc.String(tok)
	if err != nil || fixed == tok || !utf8.ValidString(fixed) {
		return "", false
	}
	cyr := false
	for _, r := range fixed {
		if !clean(r) {
			return "", false
		}
		if cyrillic(r) {
			cyr = true
		}
	}
	return fixed, cyr || marked(tok)
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

func marked(s string) bool {
	for _, r := range s {
		if langhint.Suspicious(r) {
			return true
		}
	}
	return false
}

// cyrillic is a letter of the Ukrainian or Russian alphabet
func cyrillic(r rune) bool {
	if r >= 0x0410 && r <= 0x044F {
		return true
	}
	switch r {
	case 'Ё', 'ё', 'І', 'і', 'Ї', 'ї', 'Є', 'є', 'Ґ', 'ґ':
		return true
	}
	return false
}

// typographic symbols real text carries; a repair may produce them
const symbols = "«»„“”‘’ʼ–—…№€°±²³™©®·\u00a0"

// clean is what a repaired token may contain: printable ASCII, Latin and
// Cyrillic letters and common typography. Combining marks, Greek, marker
// letters like Ð and the non-Slavic Cyrillic letters a wrong code page
// yields are not clean
func clean(r rune) bool {
	switch {
	case r >= 0x20 && r < 0x7F:
		return true
	case cyrillic(r):
		return true
	case unicode.Is(unicode.Latin, r) && unicode.IsLetter(r):
		return !langhint.Suspicious(r)
	}
	return strings.ContainsRune(symbols, r)
}
