// Package http is the HTTP transport: the Router seam over chi, the server
// lifecycle and the JSON envelope writers
package http

import "net/http"

// Handler is the handler shape every route uses
type Handler = func(http.ResponseWriter, *http.Request)

// Router is the routing surface modules mount against. It keeps chi out of
// module code
type Router interface {
	Get(path string, h Handler)
	Post(path string, h Handler)
	Put(path string, h Handler)
	Delete(path string, h Handler)
	Method(method, path string, h Handler)

	Handle(path string, h http.Handler)
	Use(mw ...func(http.Handler) http.Handler)
	Group(fn func(Router))
	Route(pattern string, fn func(Router))

	Mux() http.Handler
}

// Route is one registered method and pattern
type Route struct {
	Method  string `json:"method"`
	Pattern string `json:"pattern"`
}
