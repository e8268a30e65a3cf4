package repo

import (
	"context"

	"textprep/internal/modkit/repokit"
	perr "textprep/internal/platform/errors"
)

const pgSchema = `
CREATE TABLE IF NOT EXISTS documents (
	id             uuid        PRIMARY KEY,
	locale         text        NOT NULL,
	script         text        NOT NULL DEFAULT '',
	lang           text        NOT NULL DEFAULT '',
	raw            text        NOT NULL,
	clean          text        NOT NULL,
	sentences      text[]      NOT NULL,
	sentence_count integer     NOT NULL,
	created_at     timestamptz NOT NULL DEFAULT now()
)`

const chSchema = `
CREATE TABLE IF NOT EXISTS document_sentences (
	document_id  UUID,
	ordinal      UInt32,
	text         String,
	start_offset UInt32,
	end_offset   UInt32,
	locale       LowCardinality(String),
	created_at   DateTime64(3, 'UTC')
) ENGINE = MergeTree
ORDER BY (document_id, ordinal)`

// Migrate creates the tables on whichever backends are configured
func Migrate(ctx context.Context, q repokit.Queryer, c repokit.Columnar) error {
	if q != nil {
		if _, err := q.Exec(ctx, pgSchema); err != nil {
			return perr.FromPostgres(err, "migrate documents")
		}
	}
	if c != nil {
		if err := c.Exec(ctx, chSchema); err != nil {
			return perr.FromClickHouse(err, "migrate document_sentences")
		}
	}
	return nil
}
