package topology

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// Generators for random topology graphs. Node IDs are drawn from a small
// alphabet so parent references sometimes resolve and sometimes dangle,
// exercising both containment and the external-resource path.

func genNodeType() gopter.Gen {
	return gen.OneConstOf("vpc", "VPC", "subnet", "Subnet", "ec2_instance", "rds_instance", "lambda", "")
}

func genID() gopter.Gen {
	return gen.OneConstOf("n1", "n2", "n3", "n4", "n5", "n6", "n7", "n8")
}

func genNode() gopter.Gen {
	return gopter.CombineGens(
		genID(), genNodeType(), genID(), genID(), gen.AlphaString(),
	).Map(func(vals []interface{}) Node {
		return Node{
			ID:        vals[0].(string),
			Type:      vals[1].(string),
			SubnetID:  vals[2].(string),
			NetworkID: vals[3].(string),
			Zone:      vals[4].(string),
		}
	})
}

func genEdge() gopter.Gen {
	return gopter.CombineGens(
		genID(), genID(),
		gen.OneConstOf(EdgeKindTraffic, EdgeKindAllowed, "PEERED_WITH"),
		gen.OneConstOf(-1, 0, 1), // -1: absent, 0: false, 1: true
	).Map(func(vals []interface{}) Edge {
		e := Edge{
			Source: vals[0].(string),
			Target: vals[1].(string),
			Kind:   vals[2].(string),
		}
		switch vals[3].(int) {
		case 0:
			e.Active = boolPtr(false)
		case 1:
			e.Active = boolPtr(true)
		}
		return e
	})
}

func genGraph() gopter.Gen {
	return gopter.CombineGens(
		gen.SliceOf(genNode()),
		gen.SliceOf(genEdge()),
	).Map(func(vals []interface{}) Graph {
		return Graph{
			Nodes: vals[0].([]Node),
			Edges: vals[1].([]Edge),
		}
	})
}

func reverseEdges(edges []Edge) []Edge {
	out := make([]Edge, len(edges))
	for i, e := range edges {
		out[len(edges)-1-i] = e
	}
	return out
}

// TestTransformProperties checks the structural invariants of the
// transformation against randomly generated graphs.
func TestTransformProperties(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping property-based test in short mode")
	}

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("every leaf resource is placed exactly once", prop.ForAll(
		func(g Graph) bool {
			h := Transform(g)

			// Count distinct leaf IDs in the input. Duplicate IDs collapse
			// to one placement because the assembler tracks placed IDs.
			leaves := map[string]struct{}{}
			for _, n := range Classify(g.Nodes).Resources {
				leaves[n.ID] = struct{}{}
			}

			placed := map[string]int{}
			for _, net := range h.Networks {
				for _, s := range net.Subnets {
					for _, r := range s.Resources {
						placed[r.ID]++
					}
				}
			}
			external := map[string]int{}
			for _, r := range h.ExternalResources {
				external[r.ID]++
			}

			for id := range leaves {
				if placed[id]+external[id] < 1 {
					return false
				}
				if placed[id] > 0 && external[id] > 0 {
					return false
				}
			}
			return true
		},
		genGraph(),
	))

	properties.Property("edge order does not change indices or placement", prop.ForAll(
		func(g Graph) bool {
			reordered := Graph{Nodes: g.Nodes, Edges: reverseEdges(g.Edges)}

			if !indicesEqual(BuildTrafficIndex(g.Edges), BuildTrafficIndex(reordered.Edges)) {
				return false
			}
			if !gapsEqual(BuildGapIndex(g.Edges), BuildGapIndex(reordered.Edges)) {
				return false
			}

			h1 := Transform(g)
			h2 := Transform(reordered)
			return hierarchyBodyEqual(h1, h2)
		},
		genGraph(),
	))

	properties.Property("transform is idempotent", prop.ForAll(
		func(g Graph) bool {
			return hierarchyBodyEqual(Transform(g), Transform(g))
		},
		genGraph(),
	))

	properties.TestingRun(t)
}

func indicesEqual(a, b TrafficIndex) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if !b.Has(k) {
			return false
		}
	}
	return true
}

func gapsEqual(a, b GapIndex) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if b[k] != v {
			return false
		}
	}
	return true
}

// hierarchyBodyEqual compares networks and external resources, ignoring the
// pass-through edge list (which legitimately reflects input order).
func hierarchyBodyEqual(a, b *Hierarchy) bool {
	if len(a.Networks) != len(b.Networks) || len(a.ExternalResources) != len(b.ExternalResources) {
		return false
	}
	for i := range a.Networks {
		if !networksEqual(a.Networks[i], b.Networks[i]) {
			return false
		}
	}
	for i := range a.ExternalResources {
		if !resourcesEqual(a.ExternalResources[i], b.ExternalResources[i]) {
			return false
		}
	}
	return true
}

func networksEqual(a, b Network) bool {
	if a.ID != b.ID || len(a.Subnets) != len(b.Subnets) {
		return false
	}
	for i := range a.Subnets {
		sa, sb := a.Subnets[i], b.Subnets[i]
		if sa.ID != sb.ID || sa.Public != sb.Public || sa.Zone != sb.Zone || len(sa.Resources) != len(sb.Resources) {
			return false
		}
		for j := range sa.Resources {
			if !resourcesEqual(sa.Resources[j], sb.Resources[j]) {
				return false
			}
		}
	}
	return true
}

func resourcesEqual(a, b Resource) bool {
	return a.ID == b.ID &&
		a.HasActiveTraffic == b.HasActiveTraffic &&
		a.GapCount == b.GapCount
}
