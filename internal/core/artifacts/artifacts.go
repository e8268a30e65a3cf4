// Package artifacts removes source boilerplate from news and social posts:
// leading datelines, table delimiters, doubled quotes, platform captions and,
// when enabled, HTML markup
package artifacts

import (
	"html"
	"regexp"
	"strings"

	"textprep/internal/core/patterns"

	"github.com/microcosm-cc/bluemonday"
)

// Options toggles the optional passes
type Options struct {
	// StripHTML removes tags and unescapes entities before anything else runs
	StripHTML bool
}

// Stripper applies the artifact passes for one locale
type Stripper struct {
	lib    *patterns.Library
	policy *bluemonday.Policy
}

var (
	delimiters = strings.NewReplacer(patterns.Delimiters, " ")

	// block-level tags become spaces so neighbouring words stay apart
	blockTags = regexp.MustCompile(`(?i)<br\s*/?>|</?(?:p|div|li|ul|ol|tr|td|th|table|pre|blockquote|h[1-6])(?:\s[^>]*)?>`)
)

// New builds a Stripper over lib
func New(lib *patterns.Library, opt Options) *Stripper {
	if lib == nil {
		lib = patterns.Default()
	}
	s := &Stripper{lib: lib}
	if opt.StripHTML {
		s.policy = bluemonday.StrictPolicy()
	}
	return s
}

// Strip runs every pass: dateline, markup (if enabled), delimiters, quote runs, noise
func (s *Stripper) Strip(text string) string {
	text = s.Dateline(text)
	text = s.Markup(text)
	text = Delimiters(text)
	text = CollapseQuotes(text)
	return s.Noise(text)
}

// Dateline drops a "(City) - " prefix when text opens with it. Anything before
// the paren, whitespace included, leaves text unchanged
func (s *Stripper) Dateline(text string) string {
	if text == "" || text[0] != '(' {
		return text
	}
	if loc := s.lib.Dateline.FindStringIndex(text); loc != nil {
		return text[loc[1]:]
	}
	return text
}

// Noise removes platform caption boilerplate wherever it occurs
func (s *Stripper) Noise(text string) string {
	if s.lib.Noise == nil || text == "" {
		return text
	}
	return s.lib.Noise.ReplaceAllString(text, "")
}

// Markup strips HTML when the Stripper was built with StripHTML, otherwise it is a no-op
func (s *Stripper) Markup(text string) string {
	if s.policy == nil || !strings.ContainsRune(text, '<') {
		return text
	}
	text = blockTags.ReplaceAllString(text, " ")
	return html.UnescapeString(s.policy.Sanitize(text))
}

// Enabled lists the optional passes that are switched on
func (s *Stripper) Enabled() []string {
	if s.policy != nil {
		return []string{"markup"}
	}
	return nil
}

// Delimiters replaces table/markup separators with a space
func Delimiters(text string) string { return delimiters.Replace(text) }

// CollapseQuotes squeezes runs of double quotes down to one
func CollapseQuotes(text string) string {
	if !strings.Contains(text, `""`) {
		return text
	}
	return patterns.QuoteRun.ReplaceAllString(text, `"`)
}
