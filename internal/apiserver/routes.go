package apiserver

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// registerHandlers wires every route onto the router.
func (s *Server) registerHandlers() {
	s.router.HandleFunc("/v1/hierarchy", s.withMethod(http.MethodGet, s.hierarchyHandler.Handle))
	s.router.HandleFunc("/v1/transform", s.withMethod(http.MethodPost, s.transformHandler.Handle))
	s.router.HandleFunc("/v1/health", s.withMethod(http.MethodGet, s.handleHealth))
	s.router.HandleFunc("/v1/ready", s.withMethod(http.MethodGet, s.handleReady))
	s.router.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
}
