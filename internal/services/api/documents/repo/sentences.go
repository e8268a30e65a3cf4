package repo

import (
	"context"

	"textprep/internal/modkit/repokit"
	perr "textprep/internal/platform/errors"
	"textprep/internal/platform/store"
	"textprep/internal/services/api/documents/domain"

	"github.com/google/uuid"
)

// SentenceTable is the clickhouse table sentences land in
const SentenceTable = "document_sentences"

// Sentences is the columnar sentence store
type Sentences interface {
	Write(ctx context.Context, rows []domain.Sentence) error
	List(ctx context.Context, id uuid.UUID) ([]domain.Sentence, error)
	Enabled() bool
}

// NewSentences returns the clickhouse sentence store; a nil c gives one that
// drops writes and lists nothing
func NewSentences(c repokit.Columnar) Sentences {
	if c == nil {
		return noopSentences{}
	}
	return chSentences{c: c}
}

type chSentences struct{ c repokit.Columnar }

// Write inserts rows in the table's column order
func (s chSentences) Write(ctx context.Context, rows []domain.Sentence) error {
	if len(rows) == 0 {
		return nil
	}
	batch := make([][]any, 0, len(rows))
	for _, r := range rows {
		batch = append(batch, []any{
			r.DocumentID, uint32(r.Ordinal), r.Text, uint32(r.Start), uint32(r.End), r.Locale, r.CreatedAt,
		})
	}
	return perr.FromClickHouse(s.c.Insert(ctx, SentenceTable, batch), "insert sentences")
}

func (s chSentences) List(ctx context.Context, id uuid.UUID) ([]domain.Sentence, error) {
	const sql = `
		SELECT document_id, ordinal, text, start_offset, end_offset, locale, created_at
		FROM document_sentences
		WHERE document_id = ?
		ORDER BY ordinal
	`
	out, err := store.Many(ctx, storeRows{s.c}, scanSentence, sql, id)
	if err != nil {
		return nil, perr.FromClickHouse(err, "list sentences")
	}
	return out, nil
}

func (chSentences) Enabled() bool { return true }

func scanSentence(row store.Row) (domain.Sentence, error) {
	var (
		s                   domain.Sentence
		ordinal, start, end uint32
	)
	if err := row.Scan(&s.DocumentID, &ordinal, &s.Text, &start, &end, &s.Locale, &s.CreatedAt); err != nil {
		return s, err
	}
	s.Ordinal, s.Start, s.End = int(ordinal), int(start), int(end)
	s.CreatedAt = s.CreatedAt.UTC()
	return s, nil
}

// storeRows lets store.Many read from the columnar seam, which only queries
type storeRows struct{ c repokit.Columnar }

func (s storeRows) Query(ctx context.Context, sql string, args ...any) (store.Rows, error) {
	return s.c.Query(ctx, sql, args...)
}

func (s storeRows) Exec(context.Context, string, ...any) (store.CommandTag, error) {
	return nil, perr.Internalf("exec is not supported on the columnar reader")
}

func (s storeRows) QueryRow(context.Context, string, ...any) store.Row {
	return errRow{}
}

type errRow struct{}

func (errRow) Scan(...any) error {
	return perr.Internalf("query row is not supported on the columnar reader")
}

type noopSentences struct{}

func (noopSentences) Write(context.Context, []domain.Sentence) error { return nil }
func (noopSentences) List(context.Context, uuid.UUID) ([]domain.Sentence, error) {
	return []domain.Sentence{}, nil
}
func (noopSentences) Enabled() bool { return false }
