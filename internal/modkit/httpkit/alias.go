// Package httpkit provides handler and routing helpers that alias the platform http package.
// Modules use these so they do not import internal/platform/net/http directly
package httpkit

import (
	"net/http"

	phttp "textprep/internal/platform/net/http"
	"textprep/internal/platform/net/http/bind"
)

type (
	// Envelope is the transport envelope type
	Envelope = phttp.Envelope

	// Response is the HTTP response type
	Response = phttp.Response

	// Handler is the platform handler type
	Handler = phttp.Handler

	// Router is a re-export of the platform router seam
	Router = phttp.Router

	// Route is one registered method and pattern
	Route = phttp.Route

	// JSONOptions tunes request body decoding
	JSONOptions = bind.JSONOptions
)

// OK returns a 200 response
func OK(data any) Response { return phttp.OK(data) }

// Created returns a 201 response
func Created(data any) Response { return phttp.Created(data) }

// NoContent returns a 204 response
func NoContent() Response { return phttp.NoContent() }

// Error returns a response that maps err to status and envelope
func Error(err error) Response { return phttp.Error(err) }

// Handle adapts a Response-returning function
func Handle(fn func(*http.Request) Response) Handler { return phttp.Handle(fn) }

// JSON decodes and validates a T body, then calls fn
func JSON[T any](fn func(*http.Request, T) (any, error), opts ...JSONOptions) Handler {
	return phttp.JSONHandler(fn, opts...)
}

// Call adapts a handler that takes no body
func Call(fn func(*http.Request) (any, error)) Handler { return phttp.NoBodyHandler(fn) }

// Routes lists what is mounted on r
func Routes(r Router) []Route { return phttp.Routes(r) }

// Param returns a URL path parameter
func Param(r *http.Request, name string) string { return phttp.Param(r, name) }

// Validate runs the request validator over v
func Validate(v any) error { return bind.Validate(v) }
