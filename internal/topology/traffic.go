package topology

// TrafficIndex is the set of node IDs observed on at least one active
// traffic edge.
type TrafficIndex map[string]struct{}

// Has reports whether id carries observed traffic.
func (t TrafficIndex) Has(id string) bool {
	_, ok := t[id]
	return ok
}

// BuildTrafficIndex scans edges once and collects every endpoint (source or
// target) of a HAS_TRAFFIC edge that is not explicitly inactive. An edge with
// no activity flag counts as active: the absence of an explicit negative must
// not hide a live connection. Membership is independent of edge order.
func BuildTrafficIndex(edges []Edge) TrafficIndex {
	idx := make(TrafficIndex)
	for _, e := range edges {
		if e.Kind != EdgeKindTraffic {
			continue
		}
		if e.Active != nil && !*e.Active {
			continue
		}
		idx[e.Source] = struct{}{}
		idx[e.Target] = struct{}{}
	}
	return idx
}
