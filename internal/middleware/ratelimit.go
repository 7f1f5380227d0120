package middleware

import (
	"math"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/vyrodovalexey/itemserver/internal/handler"
)

const rateLimitMessage = "Rate limit exceeded, retry later."

var rateLimitRejects = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "http_rate_limit_rejects_total",
		Help: "Total number of requests rejected by the rate limiter",
	},
)

// RateLimit returns a middleware that admits requests through limiter and
// answers the rest with 429 Too Many Requests. A nil limiter admits everything.
func RateLimit(limiter *rate.Limiter, logger *zap.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		if limiter == nil {
			return next
		}

		limit := strconv.Itoa(int(math.Ceil(float64(limiter.Limit()))))

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				rateLimitRejects.Inc()
				logger.Debug("rate limit exceeded",
					zap.String("path", r.URL.EscapedPath()),
					zap.String("request_id", requestID(r)),
				)
				w.Header().Set("Retry-After", "1")
				handler.WriteError(w, logger, http.StatusTooManyRequests, rateLimitMessage)
				return
			}

			w.Header().Set("X-RateLimit-Limit", limit)
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(int(limiter.Tokens())))

			next.ServeHTTP(w, r)
		})
	}
}
