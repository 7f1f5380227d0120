package middleware

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"github.com/vyrodovalexey/itemserver/internal/handler"
)

const panicMessage = "An unexpected error occurred while processing the request."

var panicRecoveries = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "http_panic_recoveries_total",
		Help: "Total number of panics recovered while serving requests",
	},
)

// Recovery turns a handler panic into a 500 with the uniform JSON error body.
// http.ErrAbortHandler is re-raised so the server can drop the connection.
func Recovery(logger *zap.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				panicRecoveries.Inc()
				logger.Error("panic recovered",
					zap.Any("panic", rec),
					zap.Stack("stack"),
					zap.String("method", r.Method),
					zap.String("path", r.URL.EscapedPath()),
					zap.String("request_id", requestID(r)),
				)
				handler.WriteError(w, logger, http.StatusInternalServerError, panicMessage)
			}()

			next.ServeHTTP(w, r)
		})
	}
}
