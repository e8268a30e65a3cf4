// Package langhint gives cheap script and language hints for a string.
// It counts runes; it does not model languages
package langhint

import (
	"unicode"
)

// Counts is a rune census of one string
type Counts struct {
	Letters  int `json:"letters"`
	Cyrillic int `json:"cyrillic"`
	Latin    int `json:"latin"`

	// Ukrainian and Russian count letters only one of the two alphabets has
	Ukrainian int `json:"ukrainian"`
	Russian   int `json:"russian"`

	// Suspicious counts runes that show up when UTF-8 Cyrillic was decoded
	// with a single-byte code page (Ð, Ñ, џ, ‚, box drawing, C1 controls...)
	Suspicious int `json:"suspicious"`

	scripts map[string]int
}

// scripts in tie-break order: specific scripts win over Latin
var scripts = []struct {
	name  string
	table *unicode.RangeTable
}{
	{"Hiragana", unicode.Hiragana},
	{"Katakana", unicode.Katakana},
	{"Hangul", unicode.Hangul},
	{"Han", unicode.Han},
	{"Arabic", unicode.Arabic},
	{"Hebrew", unicode.Hebrew},
	{"Thai", unicode.Thai},
	{"Greek", unicode.Greek},
	{"Cyrillic", unicode.Cyrillic},
	{"Georgian", unicode.Georgian},
	{"Armenian", unicode.Armenian},
	{"Devanagari", unicode.Devanagari},
	{"Latin", unicode.Latin},
}

// Profile counts letters by script and flags mojibake markers
func Profile(s string) Counts {
	var c Counts
	for _, r := range s {
		if Suspicious(r) {
			c.Suspicious++
		}
		if !unicode.IsLetter(r) {
			continue
		}
		c.Letters++

		switch {
		case isUkrainianOnly(r):
			c.Ukrainian++
		case isRussianOnly(r):
			c.Russian++
		}

		for _, sc := range scripts {
			if unicode.Is(sc.table, r) {
				if c.scripts == nil {
					c.scripts = make(map[string]int, 2)
				}
				c.scripts[sc.name]++
				break
			}
		}
	}
	c.Cyrillic = c.scripts["Cyrillic"]
	c.Latin = c.scripts["Latin"]
	return c
}

// Script is the predominant script name, "" when there are no letters
func (c Counts) Script() string {
	best, n := "", 0
	for _, sc := range scripts {
		if c.scripts[sc.name] > n {
			best, n = sc.name, c.scripts[sc.name]
		}
	}
	return best
}

// DetectScriptAndLang returns a coarse script name (always) and a best-effort BCP-47 lang code.
// Lang is only set once there are enough letters and the mapping is unambiguous;
// for Cyrillic that means one of the uk/ru-only letters decides it
func DetectScriptAndLang(s string) (script string, lang string) {
	const minLetters = 20

	c := Profile(s)
	script = c.Script()
	if c.Letters < minLetters {
		return script, ""
	}

	switch {
	case c.scripts["Hiragana"] > 0 || c.scripts["Katakana"] > 0:
		lang = "ja"
	case c.scripts["Hangul"] > 0:
		lang = "ko"
	case c.scripts["Arabic"] > 0:
		lang = "ar"
	case c.scripts["Hebrew"] > 0:
		lang = "he"
	case c.scripts["Thai"] > 0:
		lang = "th"
	case c.scripts["Greek"] > 0:
		lang = "el"
	case script == "Cyrillic" && c.Ukrainian > c.Russian:
		lang = "uk"
	case script == "Cyrillic" && c.Russian > c.Ukrainian:
		lang = "ru"
	}
	return script, lang
}

func isUkrainianOnly(r rune) bool {
	switch r {
	case 'і', 'ї', 'є', 'ґ', 'І', 'Ї', 'Є', 'Ґ':
		return true
	}
	return false
}

func isRussianOnly(r rune) bool {
	switch r {
	case 'ы', 'э', 'ъ', 'ё', 'Ы', 'Э', 'Ъ', 'Ё':
		return true
	}
	return false
}

// Suspicious reports whether r is a typical mojibake marker for Cyrillic text
func Suspicious(r rune) bool {
	switch {
	case r >= 0x80 && r <= 0x9F: // C1 controls
		return true
	case r == 'Ð' || r == 'Ñ' || r == 'Ã' || r == 'Â':
		return true
	case r >= 0x2500 && r <= 0x259F: // box drawing, block elements
		return true
	case r >= 0x0400 && r <= 0x045F:
		// Cyrillic block letters outside the uk/ru alphabets (Ђ, Ѓ, Љ, џ...)
		return !(r >= 0x0410 && r <= 0x044F) && !isUkrainianOnly(r) && r != 'Ё' && r != 'ё'
	}
	switch r {
	case '‚', '†', '‡', '‰', '‹', '›', '™', '€', '¤', '¦', '¬', '¶', '±', 'µ', '¸', '¹', '³', '²', '¼', '½', '¾':
		return true
	}
	return false
}
