package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"textprep/internal/platform/config"
	kit "textprep/internal/platform/testkit"

	"github.com/rs/zerolog"
)

func TestOpen_NothingEnabled(t *testing.T) {
	s, err := Open(context.Background(), Config{}, WithLogger(zerolog.Nop()))
	if err != nil {
		t.Fatal(err)
	}
	if s.PG != nil || s.CH != nil || s.Enabled() {
		t.Fatalf("unexpected backends: %+v", s)
	}
	if err := s.Guard(context.Background()); err != nil {
		t.Fatalf("Guard = %v", err)
	}
	if err := s.Close(context.Background()); err != nil {
		t.Fatalf("Close = %v", err)
	}
}

func TestOpen_BadBackends(t *testing.T) {
	ctx := context.Background()
	if _, err := Open(ctx, Config{PG: PGConfig{Enabled: true, URL: "://bad"}}); err == nil {
		t.Fatal("bad pg url should fail")
	}
	if _, err := Open(ctx, Config{CH: CHConfig{Enabled: true, URL: "clickhouse://%zz"}}); err == nil {
		t.Fatal("bad ch url should fail")
	}
}

func TestOpen_OptionError(t *testing.T) {
	boom := func(*Store) error { return errors.New("boom") }
	if _, err := Open(context.Background(), Config{}, boom); err == nil {
		t.Fatal("option error should surface")
	}
}

func TestGuard(t *testing.T) {
	ctx := context.Background()

	var nilStore *Store
	if nilStore.Guard(ctx) == nil {
		t.Fatal("nil store should fail Guard")
	}

	s := &Store{PG: &memQuerier{}, CH: &memCH{}}
	if err := s.Guard(ctx); err != nil {
		t.Fatalf("healthy Guard = %v", err)
	}

	s = &Store{PG: &memQuerier{pingErr: errors.New("pg down")}, CH: &memCH{pingErr: errors.New("ch down")}}
	err := s.Guard(ctx)
	kit.MustContain(t, err.Error(), "pg: pg down")
	kit.MustContain(t, err.Error(), "clickhouse: ch down")
}

func TestClose_JoinsErrors(t *testing.T) {
	ch := &memCH{}
	s := &Store{PG: &memQuerier{closeErr: errors.New("pg close")}, CH: ch}
	err := s.Close(context.Background())
	if err == nil || !ch.closed {
		t.Fatalf("Close = %v, ch closed %v", err, ch.closed)
	}
	if (*Store)(nil).Close(context.Background()) != nil {
		t.Fatal("nil store Close should be nil")
	}
}

func TestFromConfig(t *testing.T) {
	kit.Env(t, map[string]string{
		"SERVICE_PGSQL_DBURL":           "postgres://u:p@db/textprep",
		"SERVICE_PGSQL_MAX_CONNS":       "9",
		"SERVICE_PGSQL_LOG_SQL":         "true",
		"SERVICE_PGSQL_PING_TIMEOUT":    "1s",
		"SERVICE_CLICKHOUSE_DBURL":      "",
		"SERVICE_PGSQL_SLOW_MS":         "",
		"SERVICE_PGSQL_CONNECT_RETRIES": "",
	})

	cfg := FromConfig(config.New(), "textprep", "api")
	if !cfg.PG.Enabled || cfg.PG.MaxConns != 9 || !cfg.PG.LogSQL || cfg.PG.PingTimeout != time.Second {
		t.Fatalf("pg = %+v", cfg.PG)
	}
	if cfg.PG.SlowQueryMs != 500 || cfg.PG.ConnectRetries != 20 {
		t.Fatalf("pg defaults = %+v", cfg.PG)
	}
	if cfg.CH.Enabled || cfg.CH.ClientName != "textprep" || cfg.CH.ClientTag != "api" {
		t.Fatalf("ch = %+v", cfg.CH)
	}
}
