// Package middleware provides the HTTP middleware chain of the item API.
package middleware

import (
	"bufio"
	"net"
	"net/http"

	"github.com/vyrodovalexey/itemserver/internal/router"
)

// Middleware wraps an http.Handler.
type Middleware func(http.Handler) http.Handler

// Chain composes middlewares into one. The first middleware is outermost.
func Chain(middlewares ...Middleware) Middleware {
	return func(next http.Handler) http.Handler {
		for i := len(middlewares) - 1; i >= 0; i-- {
			next = middlewares[i](next)
		}
		return next
	}
}

// statusRecorder remembers the status code and body size written through it.
type statusRecorder struct {
	http.ResponseWriter
	status      int
	bytes       int
	wroteHeader bool
}

func newStatusRecorder(w http.ResponseWriter) *statusRecorder {
	return &statusRecorder{ResponseWriter: w, status: http.StatusOK}
}

func (s *statusRecorder) WriteHeader(code int) {
	if s.wroteHeader {
		return
	}
	s.status = code
	s.wroteHeader = true
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	if !s.wroteHeader {
		s.WriteHeader(http.StatusOK)
	}
	n, err := s.ResponseWriter.Write(b)
	s.bytes += n
	return n, err
}

// Hijack lets the websocket upgrader take over the connection.
func (s *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hijacker, ok := s.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, http.ErrNotSupported
	}
	return hijacker.Hijack()
}

func (s *statusRecorder) Flush() {
	if flusher, ok := s.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

// Unwrap exposes the underlying writer to http.ResponseController.
func (s *statusRecorder) Unwrap() http.ResponseWriter {
	return s.ResponseWriter
}

// withRouteInfo makes sure r carries a RouteInfo the item router can fill in.
func withRouteInfo(r *http.Request) (*http.Request, *router.RouteInfo) {
	if info, ok := router.RouteInfoFromContext(r.Context()); ok {
		return r, info
	}
	ctx, info := router.WithRouteInfo(r.Context())
	return r.WithContext(ctx), info
}

// routeLabel returns the item route that served r, or the request path for
// the fixed infrastructure routes that bypass the item router.
func routeLabel(r *http.Request, info *router.RouteInfo) string {
	if info.Label != "" {
		return info.Label
	}
	return r.URL.Path
}
