package modkit

import (
	"net/http"

	"textprep/internal/modkit/httpkit"
	str "textprep/internal/platform/strings"
)

// Built is the resolved option set a module keeps
type Built struct {
	Name   string
	Prefix string
	Mw     []func(http.Handler) http.Handler
	Ports  any

	Subrouter func(httpkit.Router) httpkit.Router
	Register  func(httpkit.Router)
}

// Build applies opts in order and fills the router hooks with no-ops
func Build(opts ...Option) Built {
	var c buildCfg
	for _, o := range opts {
		o(&c)
	}
	if c.subrouter == nil {
		c.subrouter = func(r httpkit.Router) httpkit.Router { return r }
	}
	if c.register == nil {
		c.register = func(httpkit.Router) {}
	}
	return Built{
		Name:      c.name,
		Prefix:    c.prefix,
		Mw:        append([]func(http.Handler) http.Handler(nil), c.mw...),
		Ports:     c.ports,
		Subrouter: c.subrouter,
		Register:  c.register,
	}
}

// Mount mounts register under b.Prefix with b's middleware and hooks.
// Modules call it from MountRoutes
func (b Built) Mount(r httpkit.Router, register func(httpkit.Router)) {
	r.Route(str.MustPrefix(b.Prefix), func(rr httpkit.Router) {
		if len(b.Mw) > 0 {
			rr.Use(b.Mw...)
		}
		rr = b.Subrouter(rr)
		register(rr)
		b.Register(rr)
	})
}
