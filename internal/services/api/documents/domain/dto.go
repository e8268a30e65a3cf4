package domain

import (
	"time"

	"textprep/internal/core/segment"
)

// MaxBatch caps the items of one batch request
const MaxBatch = 500

// PreprocessInput is the body of POST /documents/preprocess
type PreprocessInput struct {
	Text    string `json:"text"    example:"(Київ) - Пишіть на info@news.ua. Дякуємо!"`
	Persist bool   `json:"persist" example:"false"`
}

// Result is a cleaned and segmented document
type Result struct {
	ID        string   `json:"id,omitempty" example:"4b9f0c8e-3c4a-4a39-9d2f-0a1f0e1c2b3d"`
	Locale    string   `json:"locale"       example:"uk"`
	Script    string   `json:"script,omitempty" example:"Cyrillic"`
	Lang      string   `json:"lang,omitempty"   example:"uk"`
	Raw       string   `json:"raw"`
	Clean     string   `json:"clean"`
	Sentences []string `json:"sentences"`
}

// SegmentInput is the body of POST /documents/segment
type SegmentInput struct {
	Text string `json:"text" example:"Про це заявив В.О. Зеленський у м. Львів. Всі раді."`
}

// SegmentOutput lists sentences with byte offsets into the input text
type SegmentOutput struct {
	Sentences []string       `json:"sentences"`
	Spans     []segment.Span `json:"spans"`
}

// BatchInput is the body of POST /documents/batch
type BatchInput struct {
	Items   []string `json:"items"   validate:"required,min=1,max=500"`
	Persist bool     `json:"persist"`
}

// BatchOutput holds one result per input item, in input order
type BatchOutput struct {
	Count   int      `json:"count"`
	Results []Result `json:"results"`
}

// LookupInput names a stored document
type LookupInput struct {
	ID string `json:"id" validate:"nonblank,uuid"`
}

// StoredDocument is a persisted result with its timestamp
type StoredDocument struct {
	Result
	CreatedAt time.Time `json:"created_at"`
}

// PipelineInfo describes the configured pipeline
type PipelineInfo struct {
	Locale     string   `json:"locale"      example:"uk"`
	Stages     []string `json:"stages"`
	Persistent bool     `json:"persistent"`
}
