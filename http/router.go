package http

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires the API routes. Every route except /metrics goes through
// the rate limiter.
func NewRouter(
	loans *LoanHandler,
	sessions *SessionHandler,
	limiter *RateLimiter,
) *http.ServeMux {
	limited := func(h http.HandlerFunc) http.Handler {
		return RateLimitMiddleware(limiter, h)
	}

	mux := http.NewServeMux()
	mux.Handle("/loan/calculate", limited(loans.CalculateLoan))

	mux.Handle("POST /sessions", limited(sessions.Start))
	mux.Handle("GET /sessions/{id}", limited(sessions.Get))
	mux.Handle("POST /sessions/{id}/edit", limited(sessions.Edit))
	mux.Handle("DELETE /sessions/{id}", limited(sessions.End))

	mux.Handle("/metrics", promhttp.Handler())

	return mux
}
