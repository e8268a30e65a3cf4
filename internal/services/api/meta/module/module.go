// Package module wires meta endpoints into the API using a tiny module
package module

import (
	"net/http"
	"time"

	modkit "textprep/internal/modkit"
	"textprep/internal/modkit/httpkit"
	str "textprep/internal/platform/strings"
	"textprep/internal/services/api/documents/domain"

	metahttp "textprep/internal/services/api/meta/http"
)

// Ports are what meta needs from other modules
type Ports struct {
	Info domain.InfoPort

	// Routes lists the mounted API; set once everything is mounted
	Routes func() []httpkit.Route
}

// Module implements the modkit.Module interface
type Module struct {
	built     modkit.Built
	deps      metahttp.Deps
	startedAt time.Time
}

// New constructs a meta module. Ports must carry an InfoPort
func New(deps modkit.Deps, service string, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("meta"),
		modkit.WithPrefix("/meta"),
	}, opts...)...)

	p, ok := b.Ports.(Ports)
	if !ok || p.Info == nil {
		panic("meta module requires Ports with an InfoPort")
	}

	started := time.Now()
	return &Module{
		built:     b,
		startedAt: started,
		deps: metahttp.Deps{
			ServiceName: service,
			StartedAt:   started,
			PG:          orNil(deps.PG),
			CH:          orNil(deps.CH),
			Info:        p.Info,
			Routes:      p.Routes,
		},
	}
}

// orNil keeps nil interfaces of any type as untyped nil
func orNil[T any](v T) any {
	if any(v) == nil {
		return nil
	}
	return v
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	m.built.Mount(r, func(rr httpkit.Router) {
		metahttp.Register(rr, m.deps)
	})
}

// Name implements the modkit.Module interface
func (m *Module) Name() string { return str.MustString(m.built.Name, "module name") }

// Prefix returns the mount prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.built.Prefix) }

// Middlewares returns the module middlewares
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.built.Mw }

// Ports implements the modkit.Module interface
func (m *Module) Ports() any { return nil }
