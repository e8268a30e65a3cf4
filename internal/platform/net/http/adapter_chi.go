package http

import (
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"
)

type chiRouter struct{ r chi.Router }

// AdaptChi wraps a chi router as a Router
func AdaptChi(r chi.Router) Router { return chiRouter{r: r} }

func (c chiRouter) Method(m, p string, h Handler) { c.r.Method(m, p, http.HandlerFunc(h)) }
func (c chiRouter) Get(p string, h Handler)       { c.Method(http.MethodGet, p, h) }
func (c chiRouter) Post(p string, h Handler)      { c.Method(http.MethodPost, p, h) }
func (c chiRouter) Put(p string, h Handler)       { c.Method(http.MethodPut, p, h) }
func (c chiRouter) Delete(p string, h Handler)    { c.Method(http.MethodDelete, p, h) }

func (c chiRouter) Handle(p string, h http.Handler)           { c.r.Handle(p, h) }
func (c chiRouter) Use(mw ...func(http.Handler) http.Handler) { c.r.Use(mw...) }
func (c chiRouter) Mux() http.Handler                         { return c.r }

func (c chiRouter) Group(fn func(Router)) {
	c.r.Group(func(sub chi.Router) { fn(chiRouter{r: sub}) })
}

func (c chiRouter) Route(pattern string, fn func(Router)) {
	c.r.Route(pattern, func(sub chi.Router) { fn(chiRouter{r: sub}) })
}

// Routes lists what is mounted on r, sorted by pattern then method.
// Routers not backed by chi report nothing
func Routes(r Router) []Route {
	routes, ok := r.Mux().(chi.Routes)
	if !ok {
		return nil
	}
	var out []Route
	_ = chi.Walk(routes, func(method, pattern string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		out = append(out, Route{Method: method, Pattern: pattern})
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].Pattern != out[j].Pattern {
			return out[i].Pattern < out[j].Pattern
		}
		return out[i].Method < out[j].Method
	})
	return out
}

// Param returns the URL parameter name matched by the router, "" when absent
func Param(r *http.Request, name string) string { return chi.URLParam(r, name) }
