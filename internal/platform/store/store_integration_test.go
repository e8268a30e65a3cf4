//go:build integration_pg

package store

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func startPostgres(t *testing.T) string {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "postgres",
				"POSTGRES_DB":       "textprep",
			},
			WaitingFor: wait.ForAll(
				wait.ForListeningPort("5432/tcp"),
				wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
			).WithDeadline(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("start postgres: %v", err)
	}
	t.Cleanup(func() { _ = c.Terminate(context.Background()) })

	host, err := c.Host(ctx)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	mapped, err := c.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("mapped port: %v", err)
	}
	return fmt.Sprintf("postgres://postgres:postgres@%s:%s/textprep?sslmode=disable", host, mapped.Port())
}

func TestStore_PG_Integration(t *testing.T) {
	dsn := startPostgres(t)
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	s, err := Open(ctx, Config{
		AppName: "textprep-it",
		PG:      PGConfig{Enabled: true, URL: dsn, MaxConns: 2, LogSQL: true},
	}, WithLogger(zerolog.Nop()))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close(context.Background()) })

	if err := s.Guard(ctx); err != nil {
		t.Fatalf("Guard: %v", err)
	}

	if _, err := s.PG.Exec(ctx, `CREATE TABLE docs (id text PRIMARY KEY, n int NOT NULL)`); err != nil {
		t.Fatalf("create: %v", err)
	}

	err = s.PG.Tx(ctx, func(q RowQuerier) error {
		if err := ExecOne(ctx, q, `INSERT INTO docs (id, n) VALUES ($1, $2)`, "a", 1); err != nil {
			return err
		}
		return ExecOne(ctx, q, `INSERT INTO docs (id, n) VALUES ($1, $2)`, "b", 2)
	})
	if err != nil {
		t.Fatalf("tx: %v", err)
	}

	rollback := errors.New("rollback")
	err = s.PG.Tx(ctx, func(q RowQuerier) error {
		_ = ExecOne(ctx, q, `INSERT INTO docs (id, n) VALUES ($1, $2)`, "c", 3)
		return rollback
	})
	if !errors.Is(err, rollback) {
		t.Fatalf("rollback err = %v", err)
	}

	n, err := Scalar[int64](ctx, s.PG, `SELECT count(*) FROM docs`)
	if err != nil || n != 2 {
		t.Fatalf("count = %d, %v", n, err)
	}

	app, err := Scalar[string](ctx, s.PG, `SELECT current_setting('application_name')`)
	if err != nil || app != "textprep-it" {
		t.Fatalf("application_name = %q, %v", app, err)
	}

	type row struct {
		ID string
		N  int32
	}
	got, err := Many(ctx, s.PG, func(r Row) (row, error) {
		var x row
		err := r.Scan(&x.ID, &x.N)
		return x, err
	}, `SELECT id, n FROM docs ORDER BY id`)
	if err != nil || len(got) != 2 || got[1].ID != "b" {
		t.Fatalf("Many = %+v, %v", got, err)
	}
}
