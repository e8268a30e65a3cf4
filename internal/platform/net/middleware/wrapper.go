// Package middleware is the HTTP middleware set: thin wrappers over chi's
// middleware and go-chi/cors, plus the JSON-aware ones written here
package middleware

import (
	"compress/flate"
	"net/http"
	"time"

	pstrings "textprep/internal/platform/strings"

	chimw "github.com/go-chi/chi/v5/middleware"
	chicors "github.com/go-chi/cors"
)

// Middleware is the standard net/http middleware shape
type Middleware = func(http.Handler) http.Handler

// RequestID propagates X-Request-Id or generates one
func RequestID() Middleware { return chimw.RequestID }

// RealIP rewrites RemoteAddr from X-Real-IP / X-Forwarded-For
func RealIP() Middleware { return chimw.RealIP }

// Timeout cancels the request context after d
func Timeout(d time.Duration) Middleware { return chimw.Timeout(d) }

// NoCache disables client and proxy caching
func NoCache() Middleware { return chimw.NoCache }

// Compress gzips or deflates responses the client accepts
func Compress(level int) Middleware { return chimw.Compress(level) }

// AllowContentType rejects bodies of other content types with 415
func AllowContentType(ct ...string) Middleware { return chimw.AllowContentType(ct...) }

// Throttle caps in-flight requests; the rest get 429 after backlogTimeout
func Throttle(limit, backlog int, backlogTimeout time.Duration) Middleware {
	return chimw.ThrottleBacklog(limit, backlog, backlogTimeout)
}

// Heartbeat answers GET path with 200 before routing
func Heartbeat(path string) Middleware { return chimw.Heartbeat(path) }

// CORSOptions is the part of go-chi/cors the API configures
type CORSOptions struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
	MaxAge         int
}

// CORS applies cors with GET/POST/OPTIONS and the JSON headers by default
func CORS(o CORSOptions) Middleware {
	return chicors.Handler(chicors.Options{
		AllowedOrigins: pstrings.IfEmpty(o.AllowedOrigins, []string{"*"}),
		AllowedMethods: pstrings.IfEmpty(o.AllowedMethods, []string{"GET", "POST", "OPTIONS"}),
		AllowedHeaders: pstrings.IfEmpty(o.AllowedHeaders, []string{"Accept", "Content-Type", "X-Request-Id"}),
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         o.MaxAge,
	})
}

// StackOptions tunes Stack
type StackOptions struct {
	MaxBody     int64
	Timeout     time.Duration
	SlowRequest time.Duration
	MaxInFlight int
	CORS        CORSOptions
}

// Stack is the API middleware chain in order: ids, panic recovery, access
// log, CORS, body limit, content type, throttle, timeout and compression
func Stack(o StackOptions) []Middleware {
	if o.Timeout <= 0 {
		o.Timeout = 30 * time.Second
	}
	mw := []Middleware{
		RealIP(),
		RequestID(),
		RecoverJSON,
		AccessLog(AccessLogOptions{Slow: o.SlowRequest}),
		CORS(o.CORS),
		MaxBody(o.MaxBody),
		AllowContentType("application/json"),
	}
	if o.MaxInFlight > 0 {
		mw = append(mw, Throttle(o.MaxInFlight, o.MaxInFlight*4, 10*time.Second))
	}
	return append(mw,
		Timeout(o.Timeout),
		NoCache(),
		Compress(flate.BestSpeed),
	)
}
