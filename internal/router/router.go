// Package router provides an ordered, first-match-wins request router.
//
// Routes are scanned in the order they were registered. A route matches when
// the request method is equal to the route method and the request path is
// either equal to the route pattern (Exact) or starts with it (Prefix). The
// first matching route handles the request, so an Exact route must be
// registered before any Prefix route that shares its stem.
package router

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// MatchKind selects how a route pattern is compared with the request path.
type MatchKind int

const (
	// Exact requires the path to equal the pattern byte for byte.
	Exact MatchKind = iota
	// Prefix requires the path to start with the pattern.
	Prefix
)

// String returns the match kind name.
func (k MatchKind) String() string {
	switch k {
	case Exact:
		return "exact"
	case Prefix:
		return "prefix"
	default:
		return fmt.Sprintf("MatchKind(%d)", int(k))
	}
}

// ErrShadowedRoute reports a route that can never be selected.
var ErrShadowedRoute = errors.New("route is shadowed by an earlier route")

// Route binds a method and path rule to a handler.
type Route struct {
	Method  string
	Pattern string
	Match   MatchKind
	Name    string // label for logs and metrics; see Label
	Handler http.Handler
}

// Matches reports whether the route accepts method and path.
func (r *Route) Matches(method, path string) bool {
	if method != r.Method {
		return false
	}

	switch r.Match {
	case Exact:
		return path == r.Pattern
	case Prefix:
		return strings.HasPrefix(path, r.Pattern)
	default:
		return false
	}
}

// Label returns the name used for the route in logs and metrics.
func (r *Route) Label() string {
	if r.Name != "" {
		return r.Name
	}
	if r.Match == Prefix {
		return r.Pattern + "*"
	}
	return r.Pattern
}

// covers reports whether r matches every request that other matches.
func (r *Route) covers(other *Route) bool {
	if r.Method != other.Method {
		return false
	}

	switch r.Match {
	case Exact:
		return other.Match == Exact && other.Pattern == r.Pattern
	case Prefix:
		return strings.HasPrefix(other.Pattern, r.Pattern)
	default:
		return false
	}
}

// Router dispatches requests over an ordered route table.
type Router struct {
	routes   []Route
	notFound http.Handler
}

// New creates a Router with the given routes, in order. Requests that match
// no route are passed to notFound; a nil notFound uses http.NotFoundHandler.
func New(notFound http.Handler, routes ...Route) *Router {
	if notFound == nil {
		notFound = http.NotFoundHandler()
	}

	rt := &Router{notFound: notFound}
	for _, route := range routes {
		rt.Handle(route)
	}

	return rt
}

// Handle appends a route to the end of the table.
// It panics on an incomplete route, as http.ServeMux does.
func (rt *Router) Handle(route Route) {
	if route.Method == "" || route.Pattern == "" {
		panic("router: route requires a method and a pattern")
	}
	if route.Handler == nil {
		panic("router: nil handler for " + route.Method + " " + route.Pattern)
	}
	if route.Match != Exact && route.Match != Prefix {
		panic("router: unknown match kind " + route.Match.String())
	}

	rt.routes = append(rt.routes, route)
}

// HandleFunc appends a route backed by fn.
func (rt *Router) HandleFunc(method, pattern string, match MatchKind, fn http.HandlerFunc) {
	rt.Handle(Route{Method: method, Pattern: pattern, Match: match, Handler: fn})
}

// Routes returns a copy of the route table in dispatch order.
func (rt *Router) Routes() []Route {
	routes := make([]Route, len(rt.routes))
	copy(routes, rt.routes)
	return routes
}

// Dispatch returns the first route matching method and path.
func (rt *Router) Dispatch(method, path string) (*Route, bool) {
	for i := range rt.routes {
		if rt.routes[i].Matches(method, path) {
			return &rt.routes[i], true
		}
	}
	return nil, false
}

// Validate reports every route that an earlier route makes unreachable.
func (rt *Router) Validate() error {
	var errs []error

	for i := range rt.routes {
		for j := 0; j < i; j++ {
			if rt.routes[j].covers(&rt.routes[i]) {
				errs = append(errs, fmt.Errorf("%w: %s %s (%s) by %s %s (%s)",
					ErrShadowedRoute,
					rt.routes[i].Method, rt.routes[i].Pattern, rt.routes[i].Match,
					rt.routes[j].Method, rt.routes[j].Pattern, rt.routes[j].Match,
				))
				break
			}
		}
	}

	return errors.Join(errs...)
}

// ServeHTTP implements http.Handler. Routes match the escaped request path,
// so percent-encoded bytes never match a literal pattern.
func (rt *Router) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	route, ok := rt.Dispatch(r.Method, r.URL.EscapedPath())
	if !ok {
		setRouteLabel(r, notFoundLabel)
		rt.notFound.ServeHTTP(w, r)
		return
	}

	setRouteLabel(r, route.Label())
	route.Handler.ServeHTTP(w, r)
}
