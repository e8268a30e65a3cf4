// Package typography unifies quote, dash and apostrophe glyphs.
// Pipeline order
// 1 apostrophe variants -> '
// 2 quote variants (guillemets, curly) -> "
// 3 em/en dash -> -
// Each step maps disjoint glyph sets onto canonical ASCII, so the whole thing
// is idempotent
package typography

import (
	"sync"

	"textprep/internal/core/patterns"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// pool of fresh transformer chains
var chainPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			runes.Map(fold(patterns.Apostrophes, patterns.Apostrophe)),
			runes.Map(fold(patterns.Quotes, patterns.Quote)),
			runes.Map(fold(patterns.Dashes, patterns.Dash)),
		)
	},
}

// fold maps every rune in set onto canon
func fold(set runes.Set, canon rune) func(rune) rune {
	return func(r rune) rune {
		if set.Contains(r) {
			return canon
		}
		return r
	}
}

// Normalize returns s with typography variants replaced by their canonical forms
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	tr := chainPool.Get().(transform.Transformer)
	out, _, err := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)
	if err != nil {
		// unreachable with runes.Map stages; keep the input rather than lose it
		return s
	}
	return out
}
