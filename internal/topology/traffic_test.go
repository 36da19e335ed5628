package topology

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func boolPtr(b bool) *bool { return &b }

func TestBuildTrafficIndexMarksBothEndpoints(t *testing.T) {
	edges := []Edge{
		{Source: "a", Target: "b", Kind: EdgeKindTraffic, Active: boolPtr(true)},
	}

	idx := BuildTrafficIndex(edges)

	assert.True(t, idx.Has("a"))
	assert.True(t, idx.Has("b"))
	assert.False(t, idx.Has("c"))
}

func TestBuildTrafficIndexMissingActivityIsFailOpen(t *testing.T) {
	// No activity flag at all: the absence of an explicit negative must not
	// hide a live connection.
	edges := []Edge{
		{Source: "a", Target: "b", Kind: EdgeKindTraffic},
	}

	idx := BuildTrafficIndex(edges)

	assert.True(t, idx.Has("a"))
	assert.True(t, idx.Has("b"))
}

func TestBuildTrafficIndexExplicitFalseExcluded(t *testing.T) {
	edges := []Edge{
		{Source: "a", Target: "b", Kind: EdgeKindTraffic, Active: boolPtr(false)},
	}

	idx := BuildTrafficIndex(edges)

	assert.Empty(t, idx)
}

func TestBuildTrafficIndexIgnoresOtherKinds(t *testing.T) {
	edges := []Edge{
		{Source: "a", Target: "b", Kind: EdgeKindAllowed, Active: boolPtr(true)},
		{Source: "c", Target: "d", Kind: "PEERED_WITH"},
	}

	idx := BuildTrafficIndex(edges)

	assert.Empty(t, idx)
}

func TestBuildTrafficIndexOrderIndependent(t *testing.T) {
	edges := []Edge{
		{Source: "a", Target: "b", Kind: EdgeKindTraffic},
		{Source: "b", Target: "c", Kind: EdgeKindTraffic, Active: boolPtr(false)},
		{Source: "d", Target: "e", Kind: EdgeKindTraffic, Active: boolPtr(true)},
	}
	reversed := []Edge{edges[2], edges[1], edges[0]}

	assert.Equal(t, BuildTrafficIndex(edges), BuildTrafficIndex(reversed))
}
