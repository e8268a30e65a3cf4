package httpkit

import (
	"net/http"
	"time"

	"textprep/internal/platform/config"
	"textprep/internal/platform/net/middleware"
)

// CommonStack is the middleware every versioned API scope gets
func CommonStack(o middleware.StackOptions) []func(http.Handler) http.Handler {
	return middleware.Stack(o)
}

// StackFromConfig reads the stack knobs from c:
// MAX_BODY_BYTES, REQUEST_TIMEOUT, SLOW_REQUEST, MAX_IN_FLIGHT, CORS_ORIGINS
func StackFromConfig(c config.Conf) middleware.StackOptions {
	return middleware.StackOptions{
		MaxBody:     c.MayInt64("MAX_BODY_BYTES", 4<<20),
		Timeout:     c.MayDuration("REQUEST_TIMEOUT", 30*time.Second),
		SlowRequest: c.MayDuration("SLOW_REQUEST", time.Second),
		MaxInFlight: c.MayInt("MAX_IN_FLIGHT", 0),
		CORS: middleware.CORSOptions{
			AllowedOrigins: c.MayCSV("CORS_ORIGINS", nil),
		},
	}
}
