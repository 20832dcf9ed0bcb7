package middleware

import (
	"net/http"

	"github.com/garrettladley/terrahook/internal/metrics"
	"github.com/garrettladley/terrahook/internal/ratelimit"
	"github.com/garrettladley/terrahook/internal/xerrors"
	"github.com/garrettladley/terrahook/internal/xhttp"
	"github.com/garrettladley/terrahook/internal/xslog"
)

type RateLimiter interface {
	Allow(addr string) ratelimit.Decision
}

// RateLimit admits requests per caller address and answers 429 with
// Retry-After once an address exceeds its window.
func RateLimit(limiter RateLimiter, m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			addr := xhttp.ClientAddress(r)

			decision := limiter.Allow(addr)
			if !decision.Allowed {
				m.RateLimited()
				ctx := xslog.With(r.Context(), xslog.IP(addr), xslog.Count(decision.Count))
				xerrors.WriteError(ctx, w, xerrors.TooManyRequests(
					xerrors.WithMessage("Too Many Requests"),
					xerrors.WithRetryAfter(decision.RetryAfter),
				))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
