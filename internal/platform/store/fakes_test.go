package store

import (
	"context"
	"errors"
	"fmt"
	"reflect"
)

// memRows serves fixed rows; Scan copies values into pointer destinations
type memRows struct {
	cols   []string
	data   [][]any
	idx    int
	err    error
	closed bool
}

func newMemRows(cols []string, data ...[]any) *memRows {
	return &memRows{cols: cols, data: data, idx: -1}
}

func (r *memRows) Next() bool {
	r.idx++
	return r.idx < len(r.data)
}

func (r *memRows) Scan(dest ...any) error {
	if r.idx < 0 || r.idx >= len(r.data) {
		return errors.New("scan out of range")
	}
	src := r.data[r.idx]
	if len(src) != len(dest) {
		return fmt.Errorf("want %d dest, got %d", len(src), len(dest))
	}
	for i := range dest {
		reflect.ValueOf(dest[i]).Elem().Set(reflect.ValueOf(src[i]))
	}
	return nil
}

func (r *memRows) Err() error        { return r.err }
func (r *memRows) Close()            { r.closed = true }
func (r *memRows) Columns() []string { return r.cols }

type memTag int64

func (t memTag) String() string      { return fmt.Sprintf("UPDATE %d", int64(t)) }
func (t memTag) RowsAffected() int64 { return int64(t) }

// memQuerier returns canned results and records the statements it saw
type memQuerier struct {
	rows     *memRows
	tag      memTag
	err      error
	stmts    []string
	pingErr  error
	closeErr error
}

func (q *memQuerier) Exec(_ context.Context, sql string, _ ...any) (CommandTag, error) {
	q.stmts = append(q.stmts, sql)
	return q.tag, q.err
}

func (q *memQuerier) Query(_ context.Context, sql string, _ ...any) (Rows, error) {
	q.stmts = append(q.stmts, sql)
	if q.err != nil {
		return nil, q.err
	}
	return q.rows, nil
}

func (q *memQuerier) QueryRow(_ context.Context, sql string, _ ...any) Row {
	q.stmts = append(q.stmts, sql)
	q.rows.Next()
	return q.rows
}

func (q *memQuerier) Tx(ctx context.Context, fn func(RowQuerier) error) error { return fn(q) }
func (q *memQuerier) Ping(context.Context) error                              { return q.pingErr }
func (q *memQuerier) Close() error                                            { return q.closeErr }

// memCH is an in-memory Clickhouse
type memCH struct {
	inserted map[string][][]any
	pingErr  error
	closed   bool
}

func (c *memCH) Insert(_ context.Context, table string, rows [][]any) error {
	if c.inserted == nil {
		c.inserted = map[string][][]any{}
	}
	c.inserted[table] = append(c.inserted[table], rows...)
	return nil
}

func (c *memCH) Query(context.Context, string, ...any) (Rows, error) { return newMemRows(nil), nil }
func (c *memCH) Exec(context.Context, string, ...any) error          { return nil }
func (c *memCH) Ping(context.Context) error                          { return c.pingErr }
func (c *memCH) Close() error                                        { c.closed = true; return nil }
