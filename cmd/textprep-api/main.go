// Command textprep-api serves text cleaning and sentence segmentation over HTTP
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"textprep/internal/core/pipeline"
	"textprep/internal/modkit/repokit"
	"textprep/internal/platform/config"
	"textprep/internal/platform/logger"
	phttp "textprep/internal/platform/net/http"
	"textprep/internal/platform/store"

	"textprep/internal/services/api"
	docsrepo "textprep/internal/services/api/documents/repo"
)

const service = "textprep-api"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// service-scoped config for HTTP etc (CORE_API_*)
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	opts := logger.FromEnv()
	opts.Service = service
	logger.Init(opts)
	l := logger.Get()

	// persistence is optional: SERVICE_PGSQL_DBURL and SERVICE_CLICKHOUSE_DBURL
	st, err := store.Open(ctx, store.FromConfig(root, "textprep", "api"), store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	if st.Enabled() {
		repokit.MustGuard(ctx, st)
	}
	if st.Enabled() && apiCfg.MayBool("MIGRATE", true) {
		if err := docsrepo.Migrate(ctx, st.PG, st.CH); err != nil {
			l.Panic().Err(err).Msg("migrate failed")
		}
	}
	if st.PG != nil {
		n, err := repokit.MustBind(docsrepo.NewPG(), st.PG).Count(ctx)
		if err != nil {
			l.Panic().Err(err).Msg("documents table unreadable")
		}
		l.Info().Int64("documents", n).Msg("document store ready")
	}

	pipe, err := pipeline.FromConfig(root)
	if err != nil {
		l.Panic().Err(err).Msg("pipeline config")
	}
	l.Info().Str("locale", pipe.Locale()).Strs("stages", pipe.Stages()).Bool("persistent", st.Enabled()).Msg("pipeline ready")

	// http server (reads CORE_API_PORT / CORE_API_ADDR)
	srv := phttp.NewServer(apiCfg)

	api.Mount(srv.Router(), api.Options{
		Service:        service,
		Config:         apiCfg,
		Store:          st,
		Logger:         l,
		Pipeline:       pipe,
		EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
		EnableProfiler: apiCfg.MayBool("PROFILER", false),
	})

	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
