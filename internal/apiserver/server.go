// Package apiserver wires the REST handlers into an http.Server managed by
// the lifecycle manager.
package apiserver

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/netatlas/netatlas/internal/api"
	"github.com/netatlas/netatlas/internal/api/response"
	"github.com/netatlas/netatlas/internal/logging"
)

// ReadinessChecker is an interface for checking component readiness
type ReadinessChecker interface {
	IsReady() bool
}

// NoOpReadinessChecker is a ReadinessChecker that always returns true.
type NoOpReadinessChecker struct{}

// IsReady always returns true for the no-op checker.
func (n *NoOpReadinessChecker) IsReady() bool {
	return true
}

// Server handles HTTP API requests
type Server struct {
	port             int
	server           *http.Server
	logger           *logging.Logger
	router           *http.ServeMux
	metrics          *api.Metrics
	registry         *prometheus.Registry
	hierarchyHandler *api.HierarchyHandler
	transformHandler *api.TransformHandler
	readinessChecker ReadinessChecker
}

// New creates an API server serving the given hierarchy service. The
// registry backs the /metrics endpoint; pass the same registry the service
// and upstream metrics were registered on.
func New(port int, service *api.HierarchyService, metrics *api.Metrics, registry *prometheus.Registry, readinessChecker ReadinessChecker) *Server {
	logger := logging.GetLogger("api")
	if readinessChecker == nil {
		readinessChecker = &NoOpReadinessChecker{}
	}

	s := &Server{
		port:             port,
		logger:           logger,
		router:           http.NewServeMux(),
		metrics:          metrics,
		registry:         registry,
		hierarchyHandler: api.NewHierarchyHandler(service, logger),
		transformHandler: api.NewTransformHandler(service, logger),
		readinessChecker: readinessChecker,
	}

	s.registerHandlers()

	handler := s.corsMiddleware(s.requestIDMiddleware(s.metricsMiddleware(s.router)))
	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      handler,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Handler returns the fully wired HTTP handler, middleware included.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start implements the lifecycle.Component interface
func (s *Server) Start(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error("HTTP server error: %v", err)
		}
	}()

	s.logger.Info("API server listening on port %d", s.port)
	return nil
}

// Stop implements the lifecycle.Component interface
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping API server...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.server.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("HTTP server shutdown error: %v", err)
		return err
	}

	s.logger.Info("API server stopped")
	return nil
}

// Name implements the lifecycle.Component interface
func (s *Server) Name() string {
	return "API Server"
}

// GetPort returns the port the server is listening on
func (s *Server) GetPort() int {
	return s.port
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	_ = response.WriteSuccess(w, map[string]interface{}{
		"status": "healthy",
	})
}

// handleReady handles readiness check requests
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ready := s.readinessChecker.IsReady()

	w.Header().Set("Content-Type", "application/json")
	if ready {
		w.WriteHeader(http.StatusOK)
	} else {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	_ = response.WriteJSON(w, map[string]interface{}{
		"ready": ready,
	})
}
