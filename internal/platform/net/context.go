// Package net holds request-scoped context helpers shared by transports
package net

import (
	"context"

	"textprep/internal/platform/logger"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// WithRequest stores reqID where chi's RequestID middleware would
func WithRequest(ctx context.Context, reqID string) context.Context {
	if reqID == "" {
		return ctx
	}
	return context.WithValue(ctx, chimw.RequestIDKey, reqID)
}

// RequestID returns the request id on ctx, or ""
func RequestID(ctx context.Context) string { return chimw.GetReqID(ctx) }

// Logged copies the request id onto ctx for logger.C
func Logged(ctx context.Context) context.Context {
	return logger.WithRequest(ctx, RequestID(ctx))
}
