package normalize

import (
	"strings"
	"unicode/utf8"
)

// Sanitize removes bytes/runes that must never reach the cleanup stages:
//   - NUL and every other ASCII control except '\n', '\r', '\t'; '\v' and '\f' become spaces
//   - DEL (0x7F) and C1 controls U+0080..U+009F
//   - invisible format runes scraped pages are full of: soft hyphen, zero-width
//     space/joiners, word joiner, BOM
//   - invalid UTF-8 bytes
//
// NUL doubles as the segmenter's period sentinel, so it has to go before segmentation.
// Fast path returns s unchanged when no cleaning is needed
func Sanitize(s string) string {
	i := firstDirty(s)
	if i == len(s) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	b.WriteString(s[:i]) // keep clean prefix

	for i < len(s) {
		r, size := utf8.DecodeRuneInString(s[i:])
		switch {
		case r == utf8.RuneError && size == 1:
			// invalid byte -> drop
		case r == '\v' || r == '\f':
			b.WriteByte(' ')
		case drop(r):
		default:
			// exact bytes, no re-encode
			b.WriteString(s[i : i+size])
		}
		i += size
	}
	return b.String()
}

// firstDirty returns the byte offset of the first rune Sanitize would touch, or len(s)
func firstDirty(s string) int {
	for i := 0; i < len(s); {
		c := s[i]
		if c < utf8.RuneSelf {
			if c < 0x20 && c != '\n' && c != '\r' && c != '\t' || c == 0x7F {
				return i
			}
			i++
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 || drop(r) {
			return i
		}
		i += size
	}
	return len(s)
}

func drop(r rune) bool {
	switch {
	case r < 0x20:
		return r != '\n' && r != '\r' && r != '\t'
	case r == 0x7F, r >= 0x80 && r <= 0x9F:
		return true
	}
	switch r {
	case '\u00AD', '\u200B', '\u200C', '\u200D', '\u2060', '\uFEFF':
		return true
	}
	return false
}
