package topology

// GapIndex maps a source node ID to its count of allowed-but-unused edges.
// IDs with no qualifying edges are absent; callers treat absence as zero.
type GapIndex map[string]int

// Count returns the gap count for id, zero when absent.
func (g GapIndex) Count(id string) int {
	return g[id]
}

// BuildGapIndex scans edges once and counts, per source node, the ALLOWED
// edges that are explicitly inactive: a granted permission or connection
// confirmed never exercised. Only the source is credited; the target of a
// gap edge is not. An edge without an explicit false activity flag is not a
// gap. Counts are independent of edge order.
func BuildGapIndex(edges []Edge) GapIndex {
	idx := make(GapIndex)
	for _, e := range edges {
		if e.Kind != EdgeKindAllowed {
			continue
		}
		if e.Active == nil || *e.Active {
			continue
		}
		idx[e.Source]++
	}
	return idx
}
