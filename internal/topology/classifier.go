package topology

import "strings"

// Partition holds the three disjoint node groups produced by Classify.
// Every input node lands in exactly one group; nothing is dropped.
type Partition struct {
	Networks  []Node
	Subnets   []Node
	Resources []Node
}

// Classify partitions nodes by their declared type tag. Matching against the
// recognized network and subnet labels is case-insensitive; every node that
// matches neither is a leaf resource. An empty input yields three empty
// groups, never an error.
func Classify(nodes []Node) Partition {
	var p Partition
	for _, n := range nodes {
		switch strings.ToLower(n.Type) {
		case TypeNetwork:
			p.Networks = append(p.Networks, n)
		case TypeSubnet:
			p.Subnets = append(p.Subnets, n)
		default:
			p.Resources = append(p.Resources, n)
		}
	}
	return p
}
