package http

import (
	"encoding/json"
	stdhttp "net/http"

	perr "textprep/internal/platform/errors"
	pnet "textprep/internal/platform/net"
)

// Envelope wraps every JSON response body
type Envelope struct {
	StatusCode int            `json:"status_code"`
	Status     string         `json:"status"`
	Code       perr.ErrorCode `json:"code,omitempty"`
	Error      string         `json:"error,omitempty"`
	Field      string         `json:"field,omitempty"`
	RequestID  string         `json:"request_id,omitempty"`
	Data       any            `json:"data,omitempty"`
}

// JSON writes v with status
func JSON(w stdhttp.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func envelope(r *stdhttp.Request, status int, data any) Envelope {
	return Envelope{
		StatusCode: status,
		Status:     stdhttp.StatusText(status),
		RequestID:  pnet.RequestID(r.Context()),
		Data:       data,
	}
}

func errorEnvelope(r *stdhttp.Request, err error) Envelope {
	status, wire := perr.HTTP(err)
	env := envelope(r, status, nil)
	env.Code, env.Error, env.Field = wire.Code, wire.Message, wire.Field
	return env
}

// RespondOK writes a 200 envelope around data
func RespondOK(w stdhttp.ResponseWriter, r *stdhttp.Request, data any) {
	JSON(w, stdhttp.StatusOK, envelope(r, stdhttp.StatusOK, data))
}

// RespondError writes the envelope err maps to
func RespondError(w stdhttp.ResponseWriter, r *stdhttp.Request, err error) {
	env := errorEnvelope(r, err)
	JSON(w, env.StatusCode, env)
}

// Response is what return-style handlers produce. A non-nil error Body
// turns into an error envelope
type Response struct {
	Status int
	Body   any
	Header stdhttp.Header
}

// Handle adapts a return-style handler
func Handle(h func(*stdhttp.Request) Response) Handler {
	return func(w stdhttp.ResponseWriter, r *stdhttp.Request) { h(r).write(w, r) }
}

func (resp Response) write(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	for k, vv := range resp.Header {
		for _, v := range vv {
			w.Header().Add(k, v)
		}
	}
	if err, ok := resp.Body.(error); ok && err != nil {
		RespondError(w, r, err)
		return
	}
	status := resp.Status
	if status == 0 {
		status = stdhttp.StatusOK
	}
	if status == stdhttp.StatusNoContent {
		w.WriteHeader(status)
		return
	}
	JSON(w, status, envelope(r, status, resp.Body))
}

// OK is a 200 response
func OK(data any) Response { return Response{Status: stdhttp.StatusOK, Body: data} }

// Created is a 201 response
func Created(data any) Response { return Response{Status: stdhttp.StatusCreated, Body: data} }

// NoContent is a 204 response
func NoContent() Response { return Response{Status: stdhttp.StatusNoContent} }

// Error is the response err maps to
func Error(err error) Response { return Response{Body: err} }
