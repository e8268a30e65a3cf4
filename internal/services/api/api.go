// Package api assembles the HTTP API from its modules
package api

import (
	"textprep/internal/core/pipeline"
	"textprep/internal/platform/config"
	"textprep/internal/platform/logger"
	phttp "textprep/internal/platform/net/http"
	"textprep/internal/platform/net/middleware"
	"textprep/internal/platform/store"

	"textprep/internal/modkit"
	"textprep/internal/modkit/httpkit"
	"textprep/internal/modkit/module"
	"textprep/internal/modkit/swaggerkit"

	"textprep/internal/services/api/documents/domain"
	docsmod "textprep/internal/services/api/documents/module"
	metamod "textprep/internal/services/api/meta/module"
)

// Options are the API options
type Options struct {
	Service       string
	Config        config.Conf
	Store         *store.Store
	Logger        *logger.Logger
	Pipeline      *pipeline.Pipeline
	EnableSwagger bool

	// EnableProfiler serves pprof under /debug
	EnableProfiler bool
}

// Mount mounts every module under /api/v1, the docs under /api/docs and,
// when enabled, pprof under /debug. r must not have routes yet: /ping is
// answered ahead of the router
func Mount(r phttp.Router, opt Options) {
	r.Use(middleware.Heartbeat("/ping"))

	log := opt.Logger
	if log == nil {
		log = logger.Nop()
	}
	deps := modkit.Deps{
		Log:      log.With().Str("component", "api").Logger(),
		Cfg:      opt.Config,
		Pipeline: opt.Pipeline,
	}
	if opt.Store != nil {
		deps.PG = opt.Store.PG
		deps.CH = opt.Store.CH
	}

	docs := docsmod.New(deps)
	meta := metamod.New(deps, opt.Service, modkit.WithPorts(metamod.Ports{
		Info:   module.MustPortsOf[domain.InfoPort](docs),
		Routes: func() []httpkit.Route { return httpkit.Routes(r) },
	}))

	mods := []module.Module{meta, docs}

	swaggerkit.Mount(r, opt.EnableSwagger, opt.Service)
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

	httpkit.MountAPIV1(r, httpkit.CommonStack(httpkit.StackFromConfig(opt.Config)), func(api httpkit.Router) {
		for _, m := range mods {
			module.Register(m.Name(), m.Ports())
			m.MountRoutes(api)
		}
	})
}
