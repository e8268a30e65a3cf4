package middleware

import (
	"net/http"
	"time"

	"textprep/internal/platform/logger"
	pnet "textprep/internal/platform/net"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// AccessLogOptions tunes AccessLog
type AccessLogOptions struct {
	// Slow logs requests at warn level once they take at least this long; 0 disables
	Slow time.Duration
	// Logger overrides logger.C for tests
	Logger *logger.Logger
}

// AccessLog writes one zerolog line per request with status, size and latency.
// 5xx responses log at error level
func AccessLog(opt AccessLogOptions) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			elapsed := time.Since(start)
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			log := opt.Logger
			if log == nil {
				log = logger.C(pnet.Logged(r.Context()))
			} else if id := pnet.RequestID(r.Context()); id != "" {
				ll := log.With().Str("request_id", id).Logger()
				log = &ll
			}
			evt := log.Info()
			switch {
			case status >= http.StatusInternalServerError:
				evt = log.Error()
			case opt.Slow > 0 && elapsed >= opt.Slow:
				evt = log.Warn()
			}
			evt.Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", status).
				Int("bytes", ww.BytesWritten()).
				Dur("elapsed", elapsed).
				Msg("request")
		})
	}
}
