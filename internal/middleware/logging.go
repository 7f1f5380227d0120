package middleware

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

// quietPaths are polled by orchestrators and scrapers and logged at debug level.
var quietPaths = map[string]struct{}{
	"/health":  {},
	"/ready":   {},
	"/metrics": {},
}

// Logging logs one line per request. Server errors are logged at error level.
func Logging(logger *zap.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := newStatusRecorder(w)
			r, info := withRouteInfo(r)

			next.ServeHTTP(rec, r)

			fields := []zap.Field{
				zap.String("method", r.Method),
				zap.String("path", r.URL.EscapedPath()),
				zap.String("route", routeLabel(r, info)),
				zap.Int("status", rec.status),
				zap.Int("bytes", rec.bytes),
				zap.Duration("duration", time.Since(start)),
				zap.String("remote_addr", r.RemoteAddr),
				zap.String("request_id", requestID(r)),
			}

			if _, quiet := quietPaths[r.URL.Path]; quiet {
				logger.Debug("request served", fields...)
				return
			}
			if rec.status >= http.StatusInternalServerError {
				logger.Error("request failed", fields...)
				return
			}
			logger.Info("request served", fields...)
		})
	}
}
