package middleware

import (
	"net/http"

	perr "textprep/internal/platform/errors"
	phttp "textprep/internal/platform/net/http"
)

// MaxBody rejects requests whose declared length exceeds n with a 413 envelope
// and caps the body reader at n for the rest. n <= 0 disables the limit
func MaxBody(n int64) Middleware {
	return func(next http.Handler) http.Handler {
		if n <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > n {
				phttp.RespondError(w, r, perr.TooLargef("request body exceeds %d bytes", n))
				return
			}
			r.Body = http.MaxBytesReader(w, r.Body, n)
			next.ServeHTTP(w, r)
		})
	}
}
