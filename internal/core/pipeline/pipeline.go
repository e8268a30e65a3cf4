// Package pipeline chains the cleanup stages and the segmenter into the single
// Preprocess call the rest of the service uses
package pipeline

import (
	"fmt"
	"reflect"
	"sync"

	"textprep/internal/core/artifacts"
	"textprep/internal/core/locale"
	"textprep/internal/core/mojibake"
	"textprep/internal/core/normalize"
	"textprep/internal/core/patterns"
	"textprep/internal/core/pii"
	"textprep/internal/core/segment"
	"textprep/internal/core/typography"
	"textprep/internal/platform/config"
	perr "textprep/internal/platform/errors"
	"textprep/internal/platform/logger"

	"github.com/rs/zerolog"
)

// Result is the outcome of Preprocess
type Result struct {
	Raw       string   `json:"raw"`
	Clean     string   `json:"clean"`
	Sentences []string `json:"sentences"`
}

// Repairer fixes encoding damage before any other stage sees the text
type Repairer interface {
	Repair(string) string
}

// RepairFunc adapts a plain function to Repairer
type RepairFunc func(string) string

// Repair calls f(s)
func (f RepairFunc) Repair(s string) string { return f(s) }

// Stage is one named text transform
type Stage struct {
	Name string
	Fn   func(string) string
}

// Options configures a Pipeline. The zero value is the default pipeline
type Options struct {
	// Locale is a pack code; ignored when Pack is set. Empty means locale.DefaultCode
	Locale string

	// Pack injects a caller-built language pack
	Pack *locale.Locale

	// StripHTML enables the markup stage
	StripHTML bool

	// NoRepair drops the encoding repair stage
	NoRepair bool

	// Repairer overrides the default mojibake repairer
	Repairer Repairer

	// Logger receives per-stage debug events; nil means logger.Named("pipeline")
	Logger *logger.Logger
}

// Pipeline is immutable after New and safe for concurrent use
type Pipeline struct {
	code   string
	stages []Stage
	seg    *segment.Segmenter
	log    *logger.Logger
}

// SegmentStage is the name reported for the final split
const SegmentStage = "segment"

// New builds a Pipeline from opt
func New(opt Options) (*Pipeline, error) {
	loc := opt.Pack
	if loc == nil {
		var err error
		if loc, err = locale.Load(opt.Locale); err != nil {
			return nil, err
		}
	}
	lib, err := patterns.New(loc)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "pipeline: locale %q", loc.Code)
	}

	log := opt.Logger
	if log == nil {
		log = logger.Named("pipeline")
	}

	strip := artifacts.New(lib, artifacts.Options{StripHTML: opt.StripHTML})

	stages := make([]Stage, 0, 11)
	if !opt.NoRepair {
		r := opt.Repairer
		if r == nil {
			r = mojibake.New()
		}
		stages = append(stages, Stage{"repair", r.Repair})
	}
	stages = append(stages,
		Stage{"sanitize", normalize.Sanitize},
		Stage{"dateline", strip.Dateline},
	)
	if opt.StripHTML {
		stages = append(stages, Stage{"markup", strip.Markup})
	}
	stages = append(stages,
		Stage{"typography", typography.Normalize},
		Stage{"delimiters", artifacts.Delimiters},
		Stage{"quotes", artifacts.CollapseQuotes},
		Stage{"noise", strip.Noise},
		Stage{"pii", pii.Mask},
		Stage{"whitespace", normalize.Collapse},
	)

	return &Pipeline{
		code:   loc.Code,
		stages: stages,
		seg:    segment.New(lib),
		log:    log,
	}, nil
}

// MustNew is New that panics
func MustNew(opt Options) *Pipeline {
	p, err := New(opt)
	if err != nil {
		panic(err)
	}
	return p
}

// FromConfig reads TEXTPREP_* settings from c and builds a Pipeline
func FromConfig(c config.Conf) (*Pipeline, error) {
	tc := c.Prefix("TEXTPREP_")
	return New(Options{
		Locale:    tc.MayString("LOCALE", locale.DefaultCode),
		StripHTML: tc.MayBool("STRIP_HTML", false),
		NoRepair:  !tc.MayBool("REPAIR", true),
	})
}

// Locale is the pack code the pipeline was built with
func (p *Pipeline) Locale() string { return p.code }

// Stages lists the stage names in execution order, ending with the split
func (p *Pipeline) Stages() []string {
	out := make([]string, 0, len(p.stages)+1)
	for _, s := range p.stages {
		out = append(out, s.Name)
	}
	return append(out, SegmentStage)
}

// Segmenter exposes the locale segmenter for callers that only split
func (p *Pipeline) Segmenter() *segment.Segmenter { return p.seg }

// Clean runs every cleanup stage over text and returns the clean string
func (p *Pipeline) Clean(text string) string {
	debug := p.log.GetLevel() <= zerolog.DebugLevel && zerolog.GlobalLevel() <= zerolog.DebugLevel
	for _, s := range p.stages {
		out := s.Fn(text)
		if debug && out != text {
			p.log.Debug().Str("stage", s.Name).Int("bytes_in", len(text)).Int("bytes_out", len(out)).Msg("stage changed text")
		}
		text = out
	}
	return text
}

// Preprocess cleans and segments input. Strings and byte slices are text; any
// other value, and blank text, gives an empty result with Raw rendered
func (p *Pipeline) Preprocess(input any) Result {
	text, ok := render(input)
	if !ok || normalize.IsBlank(text) {
		return Result{Raw: text, Clean: "", Sentences: []string{}}
	}

	clean := p.Clean(text)
	return Result{Raw: text, Clean: clean, Sentences: p.seg.Segment(clean)}
}

// render returns input as a string and whether it is text at all. Zero values
// and empty containers render as ""
func render(input any) (string, bool) {
	switch v := input.(type) {
	case nil:
		return "", false
	case string:
		return v, true
	case []byte:
		return string(v), true
	}
	v := reflect.ValueOf(input)
	if v.IsZero() {
		return "", false
	}
	switch v.Kind() {
	case reflect.Slice, reflect.Map, reflect.Array:
		if v.Len() == 0 {
			return "", false
		}
	}
	return fmt.Sprint(input), false
}

var (
	defOnce sync.Once
	def     *Pipeline
)

// Default is the pipeline with default options, built on first use so the
// process logger is configured before it is captured
func Default() *Pipeline {
	defOnce.Do(func() { def = MustNew(Options{}) })
	return def
}

// Preprocess runs the default pipeline
func Preprocess(input any) Result { return Default().Preprocess(input) }
