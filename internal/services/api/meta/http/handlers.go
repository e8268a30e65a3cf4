// Package http provides meta endpoints
package http

import (
	stdctx "context"
	"net/http"
	"time"

	"textprep/internal/core/version"
	"textprep/internal/modkit/httpkit"
	"textprep/internal/services/api/documents/domain"
)

// Pinger is satisfied by seams that expose Ping
type Pinger interface {
	Ping(stdctx.Context) error
}

// Deps are the handler dependencies. PG and CH may be nil
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	PG          any
	CH          any
	Info        domain.InfoPort
	Routes      func() []httpkit.Route
}

type handlers struct {
	deps Deps
}

// Register mounts the meta routes
func Register(r httpkit.Router, d Deps) {
	h := &handlers{deps: d}

	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/ready", h.ready)
	httpkit.Get(r, "/version", h.version)
	httpkit.Get(r, "/service", h.service)
	httpkit.Get(r, "/pipeline", h.pipeline)
	httpkit.Get(r, "/routes", h.routes)
}

// HealthResponse is the health payload
type HealthResponse struct {
	OK      bool   `json:"ok"      example:"true"`
	Service string `json:"service" example:"textprep-api"`
	Started string `json:"started" example:"2026-10-19T13:00:00Z"`
	Now     string `json:"now"     example:"2026-10-19T13:05:00Z"`
}

// ReadyCheck describes a single dependency check
type ReadyCheck struct {
	Name   string `json:"name"   example:"pg"`
	Status string `json:"status" example:"ok"` // ok fail skipped unknown
	Error  string `json:"error,omitempty"`
}

// ReadyResponse summarizes readiness
type ReadyResponse struct {
	Status string       `json:"status" example:"ok"` // ok fail
	Checks []ReadyCheck `json:"checks"`
	Now    string       `json:"now"`
}

// ServiceResponse describes service info
type ServiceResponse struct {
	Name    string `json:"name"    example:"textprep-api"`
	Started string `json:"started" example:"2026-10-19T13:00:00Z"`
	Uptime  int64  `json:"uptime"  example:"300"`
}

// @Summary Health check
// @Tags Meta
// @Produce json
// @Success 200 {object} HealthResponse "ok"
// @Router /meta/health [get]
func (h *handlers) health(_ *http.Request) (any, error) {
	return HealthResponse{
		OK:      true,
		Service: h.deps.ServiceName,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Now:     time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// @Summary Readiness probe with dependency checks
// @Tags Meta
// @Produce json
// @Success 200 {object} ReadyResponse "ok"
// @Failure 503 {object} ReadyResponse "a configured backend is down"
// @Router /meta/ready [get]
func (h *handlers) ready(r *http.Request) (any, error) {
	ctx, cancel := stdctx.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	check := func(name string, c any) ReadyCheck {
		if c == nil {
			return ReadyCheck{Name: name, Status: "skipped"}
		}
		p, ok := c.(Pinger)
		if !ok {
			return ReadyCheck{Name: name, Status: "unknown"}
		}
		if err := p.Ping(ctx); err != nil {
			return ReadyCheck{Name: name, Status: "fail", Error: err.Error()}
		}
		return ReadyCheck{Name: name, Status: "ok"}
	}

	resp := ReadyResponse{
		Status: "ok",
		Checks: []ReadyCheck{check("pg", h.deps.PG), check("ch", h.deps.CH)},
		Now:    time.Now().UTC().Format(time.RFC3339),
	}
	for _, c := range resp.Checks {
		if c.Status == "fail" {
			resp.Status = "fail"
			return httpkit.Response{Status: http.StatusServiceUnavailable, Body: resp}, nil
		}
	}
	return resp, nil
}

// @Summary Build and version info
// @Tags Meta
// @Produce json
// @Success 200 {object} version.BuildInfo "ok"
// @Router /meta/version [get]
func (h *handlers) version(_ *http.Request) (any, error) {
	return version.Info(h.deps.ServiceName), nil
}

// @Summary Service info and uptime
// @Tags Meta
// @Produce json
// @Success 200 {object} ServiceResponse "ok"
// @Router /meta/service [get]
func (h *handlers) service(_ *http.Request) (any, error) {
	return ServiceResponse{
		Name:    h.deps.ServiceName,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Uptime:  int64(time.Since(h.deps.StartedAt) / time.Second),
	}, nil
}

// @Summary Locale and stage order of the pipeline
// @Tags Meta
// @Produce json
// @Success 200 {object} domain.PipelineInfo "ok"
// @Router /meta/pipeline [get]
func (h *handlers) pipeline(_ *http.Request) (any, error) {
	return h.deps.Info.PipelineInfo(), nil
}

// @Summary Mounted routes
// @Tags Meta
// @Produce json
// @Success 200 {array} httpkit.Route "ok"
// @Router /meta/routes [get]
func (h *handlers) routes(_ *http.Request) (any, error) {
	if h.deps.Routes == nil {
		return []httpkit.Route{}, nil
	}
	return h.deps.Routes(), nil
}
