// Package upstream fetches topology snapshots from the scanner service and
// caches them so repeated hierarchy requests do not hammer the scanner.
package upstream

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"golang.org/x/sync/errgroup"

	"github.com/netatlas/netatlas/internal/ingest"
	"github.com/netatlas/netatlas/internal/logging"
	"github.com/netatlas/netatlas/internal/topology"
)

// Config holds the upstream client configuration.
type Config struct {
	BaseURL   string
	Timeout   time.Duration
	CacheSize int
	CacheTTL  time.Duration
}

type cacheEntry struct {
	graph     *topology.Graph
	fetchedAt time.Time
}

// Client fetches topology snapshots over HTTP. Snapshots are cached per
// scope with an LRU bound and a TTL; expired entries are refetched on the
// next request.
type Client struct {
	baseURL string
	http    *http.Client
	cache   *lru.Cache[string, cacheEntry]
	ttl     time.Duration
	logger  *logging.Logger
	tracer  trace.Tracer
	metrics *Metrics

	// now is swapped out in tests to exercise TTL expiry.
	now func() time.Time
}

// NewClient creates an upstream client. A nil tracer disables span creation.
func NewClient(cfg Config, metrics *Metrics, tracer trace.Tracer) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("upstream base URL must not be empty")
	}
	if cfg.CacheSize <= 0 {
		return nil, fmt.Errorf("snapshot cache size must be positive, got %d", cfg.CacheSize)
	}
	if cfg.CacheTTL <= 0 {
		return nil, fmt.Errorf("snapshot cache TTL must be positive, got %s", cfg.CacheTTL)
	}

	cache, err := lru.New[string, cacheEntry](cfg.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create snapshot cache: %w", err)
	}
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("upstream")
	}

	return &Client{
		baseURL: cfg.BaseURL,
		http:    &http.Client{Timeout: cfg.Timeout},
		cache:   cache,
		ttl:     cfg.CacheTTL,
		logger:  logging.GetLogger("upstream"),
		tracer:  tracer,
		metrics: metrics,
		now:     time.Now,
	}, nil
}

// Snapshot returns the topology graph for the given scope, served from the
// cache when a fresh entry exists. Scope selects the scanner-side slice of
// the estate (an account or region); the empty scope means everything.
func (c *Client) Snapshot(ctx context.Context, scope string) (*topology.Graph, error) {
	ctx, span := c.tracer.Start(ctx, "upstream.Snapshot")
	defer span.End()

	if entry, ok := c.cache.Get(scope); ok && c.now().Sub(entry.fetchedAt) < c.ttl {
		c.metrics.CacheHits.Inc()
		return entry.graph, nil
	}
	c.metrics.CacheMisses.Inc()

	graph, err := c.fetch(ctx, scope)
	if err != nil {
		return nil, err
	}

	c.cache.Add(scope, cacheEntry{graph: graph, fetchedAt: c.now()})
	return graph, nil
}

// Invalidate drops the cached snapshot for the given scope.
func (c *Client) Invalidate(scope string) {
	c.cache.Remove(scope)
}

// Purge drops every cached snapshot, forcing fresh fetches. Used when the
// configuration is reloaded at runtime.
func (c *Client) Purge() {
	c.cache.Purge()
}

// fetch pulls nodes and edges in parallel and normalizes them into the
// canonical graph.
func (c *Client) fetch(ctx context.Context, scope string) (*topology.Graph, error) {
	c.metrics.FetchTotal.Inc()

	var nodes []ingest.NodeRecord
	var edges []ingest.EdgeRecord

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		doc, err := c.get(ctx, "/api/topology/nodes", scope)
		if err != nil {
			return err
		}
		nodes = doc.Nodes
		return nil
	})
	group.Go(func() error {
		doc, err := c.get(ctx, "/api/topology/edges", scope)
		if err != nil {
			return err
		}
		edges = doc.Edges
		return nil
	})
	if err := group.Wait(); err != nil {
		c.metrics.FetchErrors.Inc()
		return nil, err
	}

	doc := ingest.Document{Nodes: nodes, Edges: edges}
	graph, err := doc.Normalize()
	if err != nil {
		c.metrics.FetchErrors.Inc()
		return nil, fmt.Errorf("upstream returned an invalid topology document: %w", err)
	}

	c.logger.Debug("Fetched topology snapshot for scope %q: %d nodes, %d edges",
		scope, len(graph.Nodes), len(graph.Edges))
	return graph, nil
}

func (c *Client) get(ctx context.Context, path, scope string) (*ingest.Document, error) {
	endpoint := c.baseURL + path
	if scope != "" {
		endpoint += "?scope=" + url.QueryEscape(scope)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build upstream request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upstream request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("upstream returned status %d for %s", resp.StatusCode, path)
	}
	return ingest.DecodeDocument(resp.Body)
}
