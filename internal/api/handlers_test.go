package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netatlas/netatlas/internal/logging"
	"github.com/netatlas/netatlas/internal/topology"
)

type fakeSource struct {
	graph *topology.Graph
	err   error
}

func (f *fakeSource) Snapshot(ctx context.Context, scope string) (*topology.Graph, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.graph, nil
}

func sampleGraph() *topology.Graph {
	return &topology.Graph{
		Nodes: []topology.Node{
			{ID: "vpc-1", Name: "prod", Type: "vpc", CIDR: "10.0.0.0/16"},
			{ID: "sub-a", Type: "subnet", NetworkID: "vpc-1", Zone: "az-a"},
			{ID: "i-web", Type: "instance", SubnetID: "sub-a"},
		},
		Edges: []topology.Edge{
			{Source: "i-web", Target: "i-db", Kind: topology.EdgeKindTraffic},
		},
	}
}

func newService(source SnapshotSource) *HierarchyService {
	return NewHierarchyService(source, topology.DefaultPolicy(), NewMetrics(prometheus.NewRegistry()), nil)
}

func TestHierarchyHandlerReturnsHierarchy(t *testing.T) {
	h := NewHierarchyHandler(newService(&fakeSource{graph: sampleGraph()}), logging.GetLogger("test"))
	rec := httptest.NewRecorder()

	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/v1/hierarchy", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var hierarchy topology.Hierarchy
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &hierarchy))
	require.Len(t, hierarchy.Networks, 1)
	assert.Equal(t, "vpc-1", hierarchy.Networks[0].ID)
	require.Len(t, hierarchy.Networks[0].Subnets, 1)
	assert.Len(t, hierarchy.Networks[0].Subnets[0].Resources, 1)
	assert.Len(t, hierarchy.Edges, 1)
}

func TestHierarchyHandlerUpstreamFailure(t *testing.T) {
	h := NewHierarchyHandler(newService(&fakeSource{err: fmt.Errorf("scanner down")}), logging.GetLogger("test"))
	rec := httptest.NewRecorder()

	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/v1/hierarchy", nil))

	require.Equal(t, http.StatusBadGateway, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "UPSTREAM_ERROR", body["error"])
}

func TestTransformHandlerTransformsDocument(t *testing.T) {
	h := NewTransformHandler(newService(&fakeSource{}), logging.GetLogger("test"))
	doc := `{
		"nodes": [
			{"id": "vpc-1", "type": "VPC"},
			{"id": "sub-a", "type": "subnet", "vpcId": "vpc-1"},
			{"id": "i-1", "type": "instance", "subnet_id": "sub-a", "gap_count": 3}
		],
		"edges": [
			{"source": "i-1", "target": "ext", "label": "has_traffic"}
		]
	}`
	rec := httptest.NewRecorder()

	h.Handle(rec, httptest.NewRequest(http.MethodPost, "/v1/transform", strings.NewReader(doc)))

	require.Equal(t, http.StatusOK, rec.Code)
	var hierarchy topology.Hierarchy
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &hierarchy))
	require.Len(t, hierarchy.Networks, 1)
	require.Len(t, hierarchy.Networks[0].Subnets, 1)
	require.Len(t, hierarchy.Networks[0].Subnets[0].Resources, 1)
	res := hierarchy.Networks[0].Subnets[0].Resources[0]
	assert.True(t, res.HasActiveTraffic)
	assert.Equal(t, 3, res.GapCount)
}

func TestTransformHandlerRejectsMalformedBody(t *testing.T) {
	h := NewTransformHandler(newService(&fakeSource{}), logging.GetLogger("test"))
	rec := httptest.NewRecorder()

	h.Handle(rec, httptest.NewRequest(http.MethodPost, "/v1/transform", strings.NewReader("{not json")))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "INVALID_REQUEST", body["error"])
}

func TestTransformHandlerRejectsInvalidRecords(t *testing.T) {
	h := NewTransformHandler(newService(&fakeSource{}), logging.GetLogger("test"))
	rec := httptest.NewRecorder()
	doc := `{"nodes": [], "edges": [{"source": "", "target": "x"}]}`

	h.Handle(rec, httptest.NewRequest(http.MethodPost, "/v1/transform", strings.NewReader(doc)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHierarchyServiceRecordsTransformMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	svc := NewHierarchyService(&fakeSource{graph: sampleGraph()}, topology.DefaultPolicy(), NewMetrics(reg), nil)

	_, err := svc.Hierarchy(context.Background(), "")
	require.NoError(t, err)

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make(map[string]bool, len(families))
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["netatlas_transforms_total"])
	assert.True(t, names["netatlas_transform_duration_seconds"])
}
