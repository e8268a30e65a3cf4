// Package locale loads the language packs that drive segmentation and cleanup.
// A pack carries the abbreviation list, the script letter classes and the
// platform noise phrases for one language. Packs are embedded JSON; callers can
// also Parse their own to support another script without touching the algorithms
package locale

import (
	"embed"
	"encoding/json"
	"fmt"
	"path"
	"strings"
	"sync"

	perr "textprep/internal/platform/errors"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
)

//go:embed packs/*.json
var packs embed.FS

// DefaultCode is the pack used when nothing else is configured
const DefaultCode = "uk"

// Locale is a validated language pack
type Locale struct {
	Version int    `json:"version" validate:"required,eq=1"`
	Code    string `json:"code" validate:"required,alpha,min=2,max=8"`
	Name    string `json:"name" validate:"required"`

	// Upper and Lower are regexp character-class bodies (no brackets), e.g. "А-ЯІЇЄҐ"
	Upper string `json:"upper" validate:"required"`
	Lower string `json:"lower" validate:"required"`

	// Abbreviations are tokens whose trailing period never ends a sentence.
	// Order is preserved; inner dots are allowed ("т.д")
	Abbreviations []string `json:"abbreviations" validate:"required,min=1,dive,required"`

	// NoisePhrases are removed case-insensitively wherever they occur
	NoisePhrases []string `json:"noise_phrases" validate:"dive,required"`
}

var (
	vOnce sync.Once
	v     *validator.Validate

	mu    sync.Mutex
	cache = map[string]*Locale{}
)

func validate() *validator.Validate {
	vOnce.Do(func() {
		v = validator.New(validator.WithRequiredStructEnabled())
	})
	return v
}

// Default returns the embedded Ukrainian pack and panics if it is broken
func Default() *Locale {
	l, err := Load(DefaultCode)
	if err != nil {
		panic("locale: embedded default pack: " + err.Error())
	}
	return l
}

// Load returns the embedded pack for code, parsing it on first use
func Load(code string) (*Locale, error) {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		code = DefaultCode
	}

	mu.Lock()
	defer mu.Unlock()
	if l, ok := cache[code]; ok {
		return l, nil
	}

	b, err := packs.ReadFile(path.Join("packs", code+".json"))
	if err != nil {
		return nil, perr.Newf(perr.ErrorCodeInvalidArgument, "locale: unknown pack %q", code)
	}
	l, err := Parse(b)
	if err != nil {
		return nil, err
	}
	if l.Code != code {
		return nil, perr.Newf(perr.ErrorCodeValidation, "locale: pack %s.json declares code %q", code, l.Code)
	}
	cache[code] = l
	return l, nil
}

// Available lists the embedded pack codes
func Available() []string {
	ents, err := packs.ReadDir("packs")
	if err != nil {
		return nil
	}
	out := make([]string, 0, len(ents))
	for _, e := range ents {
		if n := e.Name(); strings.HasSuffix(n, ".json") {
			out = append(out, strings.TrimSuffix(n, ".json"))
		}
	}
	return out
}

// Parse decodes and validates a pack. Abbreviations are trimmed, stripped of a
// trailing period and de-duplicated case-insensitively (first spelling wins)
func Parse(b []byte) (*Locale, error) {
	var l Locale
	if err := json.Unmarshal(b, &l); err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeJSON, "locale: parse pack")
	}

	l.Abbreviations = dedupeFold(l.Abbreviations)
	l.NoisePhrases = dedupeFold(l.NoisePhrases)

	if err := validate().Struct(l); err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeValidation, fmt.Sprintf("locale: invalid pack %q", l.Code))
	}
	return &l, nil
}

func dedupeFold(in []string) []string {
	if len(in) == 0 {
		return in
	}
	fold := cases.Fold()
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSuffix(strings.TrimSpace(s), ".")
		if s == "" {
			// keep blanks so validation reports them
			out = append(out, s)
			continue
		}
		k := fold.String(s)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, s)
	}
	return out
}
