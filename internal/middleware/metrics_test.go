package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/vyrodovalexey/itemserver/internal/router"
)

func TestMetrics_UsesRouteLabel(t *testing.T) {
	// Arrange
	counter := httpRequestsTotal.WithLabelValues(http.MethodGet, "/api/v1/items/{id}", "418")
	before := testutil.ToFloat64(counter)
	h := Metrics()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		info, _ := router.RouteInfoFromContext(r.Context())
		info.Label = "/api/v1/items/{id}"
		w.WriteHeader(http.StatusTeapot)
	}))

	// Act
	for _, id := range []string{"1", "2", "3"} {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/items/"+id, nil))
	}

	// Assert
	if got := testutil.ToFloat64(counter) - before; got != 3 {
		t.Errorf("counter delta = %v, want 3", got)
	}
}

func TestMetrics_FallsBackToPath(t *testing.T) {
	// Arrange
	counter := httpRequestsTotal.WithLabelValues(http.MethodGet, "/ready", "503")
	before := testutil.ToFloat64(counter)
	h := Metrics()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))

	// Act
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ready", nil))

	// Assert
	if got := testutil.ToFloat64(counter) - before; got != 1 {
		t.Errorf("counter delta = %v, want 1", got)
	}
}

func TestMetrics_SharesRouteInfoWithOuterMiddleware(t *testing.T) {
	// Arrange
	var inner *router.RouteInfo
	h := Metrics()(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		inner, _ = router.RouteInfoFromContext(r.Context())
	}))
	ctx, outer := router.WithRouteInfo(httptest.NewRequest(http.MethodGet, "/", nil).Context())
	req := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx)

	// Act
	h.ServeHTTP(httptest.NewRecorder(), req)

	// Assert
	if inner != outer {
		t.Error("Metrics installed a second RouteInfo instead of reusing the existing one")
	}
}

func TestMetrics_InFlightReturnsToZero(t *testing.T) {
	// Arrange
	before := testutil.ToFloat64(httpRequestsInFlight)
	var during float64
	h := Metrics()(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		during = testutil.ToFloat64(httpRequestsInFlight)
	}))

	// Act
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	// Assert
	if during != before+1 {
		t.Errorf("in flight during request = %v, want %v", during, before+1)
	}
	if got := testutil.ToFloat64(httpRequestsInFlight); got != before {
		t.Errorf("in flight after request = %v, want %v", got, before)
	}
}
