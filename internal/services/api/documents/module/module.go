// Package module wires documents into the API using modkit
package module

import (
	"net/http"

	modkit "textprep/internal/modkit"
	"textprep/internal/modkit/httpkit"
	str "textprep/internal/platform/strings"
	"textprep/internal/services/api/documents/domain"
	docshttp "textprep/internal/services/api/documents/http"
	docsrepo "textprep/internal/services/api/documents/repo"
	docssvc "textprep/internal/services/api/documents/service"
)

// Ports is what documents offers other modules
type Ports struct {
	Service domain.ServicePort
	Info    domain.InfoPort
}

// Module implements the documents module
type Module struct {
	built modkit.Built
	svc   docssvc.Service
	http  docshttp.Options
}

// New constructs the documents module. CORE_API_MAX_BODY_BYTES and
// CORE_API_BATCH_WORKERS are read from deps.Cfg
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("documents"),
		modkit.WithPrefix("/documents"),
	}, opts...)...)

	svc := docssvc.New(deps.PipelineOrDefault(), docssvc.Options{
		DB:        deps.PG,
		Binder:    docsrepo.NewPG(),
		Sentences: docsrepo.NewSentences(deps.CH),
		Workers:   deps.Cfg.MayInt("BATCH_WORKERS", 0),
	})

	return &Module{
		built: b,
		svc:   svc,
		http:  docshttp.Options{MaxBody: deps.Cfg.MayInt64("MAX_BODY_BYTES", 0)},
	}
}

// MountRoutes mounts the module routes under its prefix
func (m *Module) MountRoutes(r httpkit.Router) {
	m.built.Mount(r, func(rr httpkit.Router) {
		docshttp.Register(rr, m.svc, m.http)
	})
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.built.Name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.built.Prefix) }

// Middlewares returns the module middlewares
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.built.Mw }

// Ports returns the service and pipeline info ports
func (m *Module) Ports() any { return Ports{Service: m.svc, Info: m.svc} }
