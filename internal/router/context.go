package router

import (
	"context"
	"net/http"
)

const notFoundLabel = "not_found"

type contextKey struct{}

// RouteInfo is filled in by Router.ServeHTTP with the label of the route
// that handled the request. Middleware that runs outside the router installs
// it with WithRouteInfo and reads it after the handler returns.
type RouteInfo struct {
	Label string
}

// WithRouteInfo returns a context carrying an empty RouteInfo.
func WithRouteInfo(ctx context.Context) (context.Context, *RouteInfo) {
	info := &RouteInfo{}
	return context.WithValue(ctx, contextKey{}, info), info
}

// RouteInfoFromContext returns the RouteInfo installed in ctx, if any.
func RouteInfoFromContext(ctx context.Context) (*RouteInfo, bool) {
	info, ok := ctx.Value(contextKey{}).(*RouteInfo)
	return info, ok
}

func setRouteLabel(r *http.Request, label string) {
	if info, ok := RouteInfoFromContext(r.Context()); ok {
		info.Label = label
	}
}
