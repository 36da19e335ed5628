// Package api implements the HTTP handlers and services behind the NetAtlas
// REST surface.
package api

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/netatlas/netatlas/internal/logging"
	"github.com/netatlas/netatlas/internal/topology"
)

// SnapshotSource provides topology graphs, typically the cached upstream
// client.
type SnapshotSource interface {
	Snapshot(ctx context.Context, scope string) (*topology.Graph, error)
}

// HierarchyService turns topology snapshots into containment hierarchies.
// It is shared by the REST handlers and the CLI.
type HierarchyService struct {
	source  SnapshotSource
	logger  *logging.Logger
	tracer  trace.Tracer
	metrics *Metrics

	mu       sync.RWMutex
	defaults topology.Defaults
}

// NewHierarchyService creates a hierarchy service. A nil tracer disables
// span creation.
func NewHierarchyService(source SnapshotSource, defaults topology.Defaults, metrics *Metrics, tracer trace.Tracer) *HierarchyService {
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("api")
	}
	return &HierarchyService{
		source:   source,
		defaults: defaults,
		logger:   logging.GetLogger("hierarchy"),
		tracer:   tracer,
		metrics:  metrics,
	}
}

// SetDefaults swaps the fallback policy, picked up by subsequent transforms.
// Called by the config watcher on hot reload.
func (s *HierarchyService) SetDefaults(d topology.Defaults) {
	s.mu.Lock()
	s.defaults = d
	s.mu.Unlock()
}

// Hierarchy fetches the snapshot for the given scope and transforms it.
func (s *HierarchyService) Hierarchy(ctx context.Context, scope string) (*topology.Hierarchy, error) {
	ctx, span := s.tracer.Start(ctx, "api.Hierarchy")
	defer span.End()

	graph, err := s.source.Snapshot(ctx, scope)
	if err != nil {
		return nil, err
	}
	return s.TransformGraph(ctx, graph), nil
}

// TransformGraph runs the pure transformation with the configured defaults,
// recording metrics. It never fails: unclassifiable input surfaces as
// external resources, not errors.
func (s *HierarchyService) TransformGraph(ctx context.Context, graph *topology.Graph) *topology.Hierarchy {
	_, span := s.tracer.Start(ctx, "api.TransformGraph")
	defer span.End()

	s.mu.RLock()
	defaults := s.defaults
	s.mu.RUnlock()

	begin := time.Now()
	hierarchy := topology.TransformWithDefaults(*graph, defaults)
	elapsed := time.Since(begin)

	s.metrics.TransformsTotal.Inc()
	s.metrics.TransformDuration.Observe(elapsed.Seconds())
	s.logger.Debug("Transformed graph (%d nodes, %d edges) into %d networks, %d external resources in %dms",
		len(graph.Nodes), len(graph.Edges), len(hierarchy.Networks), len(hierarchy.ExternalResources),
		elapsed.Milliseconds())
	return hierarchy
}
