package topology

// Transform runs the full pipeline with the production default policy:
// classify, build both indices, assemble.
func Transform(g Graph) *Hierarchy {
	return TransformWithDefaults(g, DefaultPolicy())
}

// TransformWithDefaults runs the full pipeline with an explicit defaults
// policy. The two index builders depend only on the edge set, so computing
// them before assembly is equivalent to any other ordering. The call
// allocates all working state itself and never mutates g.
func TransformWithDefaults(g Graph, defs Defaults) *Hierarchy {
	partition := Classify(g.Nodes)
	traffic := BuildTrafficIndex(g.Edges)
	gaps := BuildGapIndex(g.Edges)
	return Assemble(partition, traffic, gaps, g.Edges, defs)
}
