package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/httprate"
	"github.com/goccy/go-json"
)

// NewRateLimiter returns a middleware that allows at most limit requests per
// client IP within window. Further requests get 429 with a JSON error body and
// the Retry-After header set by httprate.
//
// The client IP is taken from r.RemoteAddr, so wire chimiddleware.RealIP
// ahead of it when running behind a proxy.
func NewRateLimiter(limit int, window time.Duration) func(http.Handler) http.Handler {
	return httprate.Limit(limit, window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, _ *http.Request) {
			writeError(w, http.StatusTooManyRequests, "rate_limited", "too many requests, retry later")
		}),
	)
}

// writeError mirrors the handler package's error envelope for responses
// produced before a request reaches a handler.
func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck
	json.NewEncoder(w).Encode(map[string]map[string]string{
		"error": {"code": code, "message": message},
	})
}
