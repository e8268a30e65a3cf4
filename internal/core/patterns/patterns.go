// Package patterns holds the compiled matchers shared by the cleanup stages and
// the sentence segmenter. Everything here is read-only after construction and
// safe to share between goroutines
package patterns

import (
	"regexp"
	"sort"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"textprep/internal/core/locale"
	perr "textprep/internal/platform/errors"

	"golang.org/x/text/runes"
	"golang.org/x/text/unicode/rangetable"
)

// Canonical glyphs the typography stage maps variants onto
const (
	Quote      = '"'
	Dash       = '-'
	Apostrophe = '\''
)

// Glyph variants, kept as strings so they read like the character classes they are
const (
	QuoteVariants      = "«»“”„"
	DashVariants       = "—–"
	ApostropheVariants = "`’‘ʼ"
)

// wsClass matches what unicode.IsSpace accepts; RE2's \s alone is ASCII-only
const wsClass = `\s\v\x{85}\p{Z}`

var (
	// URL covers scheme links, bare www hosts and bit.ly shortlinks
	URL = regexp.MustCompile(`https?://[^` + wsClass + `]+|www\.[^` + wsClass + `]+|bit\.ly/[^` + wsClass + `]+`)

	// Email is local@domain.tld with a 2-7 letter TLD
	Email = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,7}\b`)

	// QuoteRun is two or more double quotes in a row
	QuoteRun = regexp.MustCompile(`""+`)

	// Whitespace is any run of whitespace in the unicode.IsSpace sense
	Whitespace = regexp.MustCompile(`[` + wsClass + `]+`)
)

// Delimiters are table/markup separators replaced by a space
const Delimiters = "|"

// Rune sets for the typography transformer
var (
	Quotes      = runes.In(rangetable.New([]rune(QuoteVariants)...))
	Dashes      = runes.In(rangetable.New([]rune(DashVariants)...))
	Apostrophes = runes.In(rangetable.New([]rune(ApostropheVariants)...))
)

// Terminal reports whether r can end a sentence
func Terminal(r rune) bool {
	return r == '.' || r == '!' || r == '?' || r == '…'
}

// IsWordRune mirrors a unicode-aware \w: letters, digits, marks and underscore
func IsWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r)
}

// WordBoundaryBefore reports whether byte offset i in s starts a word, i.e. the
// rune before it (if any) is not a word rune
func WordBoundaryBefore(s string, i int) bool {
	if i <= 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(s[:i])
	return !IsWordRune(r)
}

// Library is the locale-specific half of the pattern set
type Library struct {
	Code string

	// Abbrev matches an abbreviation token followed by a period, case-insensitive.
	// Left word boundaries are checked by the caller since RE2 \b is ASCII-only
	Abbrev *regexp.Regexp

	// Initial matches one capital letter followed by a period
	Initial *regexp.Regexp

	// Boundary matches terminal punctuation, whitespace, then a sentence opener
	Boundary *regexp.Regexp

	// Dateline matches a leading "(City) - " prefix
	Dateline *regexp.Regexp

	// Noise matches platform boilerplate phrases; nil when the pack has none
	Noise *regexp.Regexp
}

// New compiles a Library for loc
func New(loc *locale.Locale) (*Library, error) {
	if loc == nil {
		return nil, perr.InvalidArgf("patterns: nil locale")
	}
	capitals := loc.Upper + "A-Z"

	lib := &Library{Code: loc.Code}
	var err error

	if lib.Abbrev, err = regexp.Compile(`(?i)(?:` + alternation(loc.Abbreviations) + `)\.`); err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeInvalidArgument, "patterns: abbreviations")
	}
	if lib.Initial, err = regexp.Compile(`[` + capitals + `]\.`); err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeInvalidArgument, "patterns: upper class")
	}
	if lib.Boundary, err = regexp.Compile(`[.!?…][` + wsClass + `]+[` + capitals + `0-9"«]`); err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeInvalidArgument, "patterns: boundary")
	}
	dl := `^\([` + loc.Upper + `][` + loc.Lower + `]+\)[` + wsClass + `]*[-–—][` + wsClass + `]*`
	if lib.Dateline, err = regexp.Compile(dl); err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeInvalidArgument, "patterns: dateline")
	}
	if len(loc.NoisePhrases) > 0 {
		if lib.Noise, err = regexp.Compile(`(?i)(?:` + alternation(loc.NoisePhrases) + `)`); err != nil {
			return nil, perr.Wrap(err, perr.ErrorCodeInvalidArgument, "patterns: noise")
		}
	}
	return lib, nil
}

// MustNew is New that panics, for package-level defaults
func MustNew(loc *locale.Locale) *Library {
	lib, err := New(loc)
	if err != nil {
		panic(err)
	}
	return lib
}

var (
	defOnce sync.Once
	def     *Library
)

// Default returns the Library for the embedded default locale
func Default() *Library {
	defOnce.Do(func() { def = MustNew(locale.Default()) })
	return def
}

// alternation quotes each literal and orders longer ones first so that
// "рр" is tried before "р" at the same position
func alternation(lits []string) string {
	sorted := make([]string, 0, len(lits))
	for _, l := range lits {
		if l != "" {
			sorted = append(sorted, l)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return utf8.RuneCountInString(sorted[i]) > utf8.RuneCountInString(sorted[j])
	})
	for i, l := range sorted {
		sorted[i] = regexp.QuoteMeta(l)
	}
	return strings.Join(sorted, "|")
}
