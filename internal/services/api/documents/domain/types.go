// Package domain holds the document types shared by the documents layers
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Document is one processed text as it is stored
type Document struct {
	ID        uuid.UUID
	Locale    string
	Script    string
	Lang      string
	Raw       string
	Clean     string
	Sentences []string
	CreatedAt time.Time
}

// Sentence is one row of the columnar sentence table. Offsets are bytes into
// the document's clean text
type Sentence struct {
	DocumentID uuid.UUID `json:"document_id"`
	Ordinal    int       `json:"ordinal"`
	Text       string    `json:"text"`
	Start      int       `json:"start"`
	End        int       `json:"end"`
	Locale     string    `json:"locale"`
	CreatedAt  time.Time `json:"created_at"`
}

// ResultFrom renders d as the wire result
func ResultFrom(d Document) Result {
	r := Result{
		Locale:    d.Locale,
		Script:    d.Script,
		Lang:      d.Lang,
		Raw:       d.Raw,
		Clean:     d.Clean,
		Sentences: d.Sentences,
	}
	if d.ID != uuid.Nil {
		r.ID = d.ID.String()
	}
	if r.Sentences == nil {
		r.Sentences = []string{}
	}
	return r
}
