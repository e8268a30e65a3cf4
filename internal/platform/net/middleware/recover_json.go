package middleware

import (
	"net/http"
	"runtime/debug"

	perr "textprep/internal/platform/errors"
	"textprep/internal/platform/logger"
	pnet "textprep/internal/platform/net"
	phttp "textprep/internal/platform/net/http"
)

// RecoverJSON turns a handler panic into a logged stack and a 500 envelope.
// http.ErrAbortHandler is re-panicked
func RecoverJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			if v == http.ErrAbortHandler {
				panic(v)
			}
			logger.C(pnet.Logged(r.Context())).Error().
				Interface("panic", v).
				Bytes("stack", debug.Stack()).
				Msg("panic recovered")

			if id := pnet.RequestID(r.Context()); id != "" {
				w.Header().Set("X-Request-Id", id)
			}
			phttp.RespondError(w, r, perr.PanicErrf("internal error"))
		}()
		next.ServeHTTP(w, r)
	})
}
