// Package server provides the HTTP server implementation.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/vyrodovalexey/itemserver/internal/config"
	"github.com/vyrodovalexey/itemserver/internal/events"
	"github.com/vyrodovalexey/itemserver/internal/handler"
	"github.com/vyrodovalexey/itemserver/internal/middleware"
	"github.com/vyrodovalexey/itemserver/internal/router"
	"github.com/vyrodovalexey/itemserver/internal/store"
)

// Server represents the HTTP server.
type Server struct {
	httpServer  *http.Server
	probeServer *http.Server
	router      *mux.Router
	probeRouter *mux.Router
	itemRouter  *router.Router
	config      *config.Config
	logger      *zap.Logger
	items       *handler.ItemHandler
	wsHandler   *handler.WebSocketHandler
	hub         *events.Hub
}

// New creates a new Server instance. A nil hub disables the /ws event stream.
func New(cfg *config.Config, logger *zap.Logger, itemStore store.Store, hub *events.Hub) *Server {
	s := &Server{
		router:      mux.NewRouter().SkipClean(true).UseEncodedPath(),
		probeRouter: mux.NewRouter(),
		config:      cfg,
		logger:      logger,
		hub:         hub,
	}

	// A nil *events.Hub must not become a non-nil interface value.
	var publisher handler.EventPublisher
	if hub != nil {
		publisher = hub
	}
	s.items = handler.NewItemHandler(itemStore, logger, publisher)

	s.setupMiddleware()
	s.setupRoutes()
	s.setupProbeRoutes()
	s.setupHTTPServer()

	return s
}

// setupMiddleware configures the middleware chain.
func (s *Server) setupMiddleware() {
	allowedOrigins := []string{"*"}
	allowedMethods := []string{
		http.MethodGet,
		http.MethodPost,
		http.MethodPut,
		http.MethodDelete,
		http.MethodOptions,
	}
	allowedHeaders := []string{
		"Content-Type",
		middleware.RequestIDHeader,
	}

	// Apply middleware in order (first applied = outermost)
	s.router.Use(mux.MiddlewareFunc(middleware.Recovery(s.logger)))
	s.router.Use(mux.MiddlewareFunc(middleware.RequestID()))

	if s.config.MetricsEnabled {
		s.router.Use(mux.MiddlewareFunc(middleware.Metrics()))
	}

	s.router.Use(mux.MiddlewareFunc(middleware.Logging(s.logger)))
	s.router.Use(mux.MiddlewareFunc(middleware.CORS(allowedOrigins, allowedMethods, allowedHeaders)))

	if s.config.RateLimitEnabled() {
		limiter := rate.NewLimiter(rate.Limit(s.config.RateLimit), s.config.RateLimitBurst)
		s.router.Use(mux.MiddlewareFunc(middleware.RateLimit(limiter, s.logger)))
	}
}

// setupRoutes configures the API routes. The item routes are served by an
// ordered router mounted last so that every other request reaches it and
// receives the JSON not-found body.
func (s *Server) setupRoutes() {
	s.items.RegisterProbeRoutes(s.router)

	if s.config.MetricsEnabled {
		s.router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	}

	if s.hub != nil {
		s.wsHandler = handler.NewWebSocketHandler(s.hub, s.logger)
		s.wsHandler.RegisterRoutes(s.router)
	}

	s.itemRouter = router.New(http.HandlerFunc(s.items.NotFound), s.items.Routes()...)
	if err := s.itemRouter.Validate(); err != nil {
		s.logger.Warn("item routes are shadowed", zap.Error(err))
	}

	s.router.PathPrefix("/").Handler(s.itemRouter)
}

// setupProbeRoutes configures the probe router. Probe routes carry no
// middleware so that probes stay cheap.
func (s *Server) setupProbeRoutes() {
	s.items.RegisterProbeRoutes(s.probeRouter)

	if s.config.MetricsEnabled {
		s.probeRouter.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	}
}

// setupHTTPServer configures the HTTP servers.
func (s *Server) setupHTTPServer() {
	s.httpServer = &http.Server{
		Addr:              s.config.Address(),
		Handler:           s.router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1 MB
	}

	if s.config.ProbePort > 0 {
		s.probeServer = &http.Server{
			Addr:              s.config.ProbeAddress(),
			Handler:           s.probeRouter,
			ReadTimeout:       5 * time.Second,
			ReadHeaderTimeout: 2 * time.Second,
			WriteTimeout:      5 * time.Second,
			IdleTimeout:       30 * time.Second,
			MaxHeaderBytes:    1 << 20,
		}
	}
}

// servers returns the configured HTTP servers.
func (s *Server) servers() []*http.Server {
	if s.probeServer == nil {
		return []*http.Server{s.httpServer}
	}
	return []*http.Server{s.httpServer, s.probeServer}
}

// Start starts the API server and, when configured, the probe server. It
// blocks until both have stopped. If either fails, the other is closed.
func (s *Server) Start() error {
	s.logger.Info("starting server",
		zap.String("address", s.config.Address()),
		zap.Int("probe_port", s.config.ProbePort),
		zap.Bool("metrics_enabled", s.config.MetricsEnabled),
		zap.Bool("events_enabled", s.hub != nil),
		zap.Bool("rate_limit_enabled", s.config.RateLimitEnabled()),
	)

	var g errgroup.Group
	for _, srv := range s.servers() {
		g.Go(func() error {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				s.closeServers()
				return fmt.Errorf("server %s listen and serve: %w", srv.Addr, err)
			}
			return nil
		})
	}

	return g.Wait()
}

// closeServers closes every server immediately.
func (s *Server) closeServers() {
	for _, srv := range s.servers() {
		if err := srv.Close(); err != nil {
			s.logger.Debug("error closing server", zap.String("address", srv.Addr), zap.Error(err))
		}
	}
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down server")

	// WebSocket connections are hijacked and not tracked by http.Server.
	if s.wsHandler != nil {
		s.wsHandler.CloseAllConnections()
	}
	if s.hub != nil {
		s.hub.Close()
	}

	var errs []error
	for _, srv := range s.servers() {
		if err := srv.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("server %s shutdown: %w", srv.Addr, err))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return err
	}

	s.logger.Info("server shutdown complete")
	return nil
}

// Router returns the server's router for testing purposes.
func (s *Server) Router() *mux.Router {
	return s.router
}

// ProbeRouter returns the probe server's router for testing purposes.
func (s *Server) ProbeRouter() *mux.Router {
	return s.probeRouter
}
