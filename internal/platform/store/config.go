package store

import (
	"time"

	"textprep/internal/platform/config"
)

// Config aggregates per backend configuration
type Config struct {
	AppName string

	PG PGConfig
	CH CHConfig
}

// PGConfig configures postgres connectivity and tracing
type PGConfig struct {
	Enabled     bool
	URL         string
	MaxConns    int32
	LogSQL      bool
	SlowQueryMs int

	ConnectRetries int           // default 20
	PingTimeout    time.Duration // default 3s
}

// CHConfig configures clickhouse connectivity
type CHConfig struct {
	Enabled    bool
	URL        string
	ClientName string
	ClientTag  string
}

// FromConfig reads SERVICE_PGSQL_* and SERVICE_CLICKHOUSE_* from root.
// A backend is enabled only when its DBURL is set
func FromConfig(root config.Conf, app, role string) Config {
	pgc := root.Prefix("SERVICE_PGSQL_")
	chc := root.Prefix("SERVICE_CLICKHOUSE_")

	pgURL := pgc.MayString("DBURL", "")
	chURL := chc.MayString("DBURL", "")

	return Config{
		AppName: app,
		PG: PGConfig{
			Enabled:        pgURL != "",
			URL:            pgURL,
			MaxConns:       int32(pgc.MayInt("MAX_CONNS", 4)),
			SlowQueryMs:    pgc.MayInt("SLOW_MS", 500),
			LogSQL:         pgc.MayBool("LOG_SQL", false),
			ConnectRetries: pgc.MayInt("CONNECT_RETRIES", 20),
			PingTimeout:    pgc.MayDuration("PING_TIMEOUT", 3*time.Second),
		},
		CH: CHConfig{
			Enabled:    chURL != "",
			URL:        chURL,
			ClientName: app,
			ClientTag:  role,
		},
	}
}
