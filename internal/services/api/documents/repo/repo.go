// Package repo persists documents to postgres and their sentences to clickhouse
package repo

import (
	"context"
	"errors"
	"time"

	"textprep/internal/modkit/repokit"
	perr "textprep/internal/platform/errors"
	"textprep/internal/platform/store"
	"textprep/internal/services/api/documents/domain"

	"github.com/google/uuid"
)

// Repo is the postgres surface the service uses
type Repo interface {
	Insert(ctx context.Context, d domain.Document) error
	Get(ctx context.Context, id uuid.UUID) (domain.Document, error)
	Count(ctx context.Context) (int64, error)
}

type (
	// PG binds the postgres implementation to a Queryer or transaction
	PG      struct{}
	queries struct{ q repokit.Queryer }
)

// NewPG returns the postgres binder
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind attaches q
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

func (r *queries) Insert(ctx context.Context, d domain.Document) error {
	const sql = `
		INSERT INTO documents (id, locale, script, lang, raw, clean, sentences, sentence_count, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	sentences := d.Sentences
	if sentences == nil {
		sentences = []string{}
	}
	err := store.ExecOne(ctx, r.q, sql,
		d.ID, d.Locale, d.Script, d.Lang, d.Raw, d.Clean, sentences, len(sentences), d.CreatedAt)
	return perr.FromPostgres(err, "insert document")
}

func (r *queries) Get(ctx context.Context, id uuid.UUID) (domain.Document, error) {
	const sql = `
		SELECT id, locale, script, lang, raw, clean, sentences, created_at
		FROM documents
		WHERE id = $1
	`
	d, err := store.One(ctx, r.q, scanDocument, sql, id)
	if errors.Is(err, perr.ErrNotFound) {
		return d, perr.NotFoundf("document %s not found", id)
	}
	return d, perr.FromPostgres(err, "get document")
}

func (r *queries) Count(ctx context.Context) (int64, error) {
	n, err := store.Scalar[int64](ctx, r.q, `SELECT count(*) FROM documents`)
	return n, perr.FromPostgres(err, "count documents")
}

func scanDocument(row store.Row) (domain.Document, error) {
	var (
		d  domain.Document
		at time.Time
	)
	if err := row.Scan(&d.ID, &d.Locale, &d.Script, &d.Lang, &d.Raw, &d.Clean, &d.Sentences, &at); err != nil {
		return d, err
	}
	d.CreatedAt = at.UTC()
	return d, nil
}
