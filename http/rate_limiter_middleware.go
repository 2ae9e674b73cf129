package http

import (
	"math"
	"net"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"deal-calculator/metrics"
)

// RateLimitMiddleware rejects clients that exhausted their bucket. RemoteAddr
// is expected to already carry the real client address (chi's RealIP).
func RateLimitMiddleware(limiter *RateLimiter, log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			client, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				client = r.RemoteAddr
			}

			if !limiter.Allow(client) {
				metrics.RateLimitedRequests.Inc()
				retry := int(math.Ceil(limiter.RetryAfter().Seconds()))
				w.Header().Set("Retry-After", strconv.Itoa(retry))
				writeJSON(w, log, http.StatusTooManyRequests, errorResponse{
					Code:    "RATE_LIMITED",
					Message: "rate limit exceeded",
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
