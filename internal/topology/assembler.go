package topology

import "sort"

// Assemble places every leaf resource under its owning subnet and every
// subnet under its owning network, deriving per-resource traffic and gap
// annotations from the two indices. Resources that match no subnet are
// captured as external; there is no unplaced-and-dropped outcome.
//
// Parent matching tolerates upstream producers that reference a parent by
// identifier or by name: a child reference matches a parent when it equals
// the parent's ID or its display name. When a resource reference matches
// more than one subnet the first match in input order wins, keeping each
// resource in exactly one place.
func Assemble(p Partition, traffic TrafficIndex, gaps GapIndex, edges []Edge, defs Defaults) *Hierarchy {
	h := &Hierarchy{
		Networks:          make([]Network, 0, len(p.Networks)),
		ExternalResources: []Resource{},
		Edges:             edges,
	}

	placed := make(map[string]struct{}, len(p.Resources))

	for _, netNode := range p.Networks {
		network := Network{
			ID:      netNode.ID,
			Name:    netNode.Name,
			CIDR:    netNode.CIDR,
			Subnets: []Subnet{},
		}

		for _, subnetNode := range p.Subnets {
			if !refMatches(subnetNode.NetworkID, netNode) {
				continue
			}

			subnet := Subnet{
				ID:        subnetNode.ID,
				Name:      subnetNode.Name,
				CIDR:      subnetNode.CIDR,
				Zone:      subnetNode.Zone,
				Public:    subnetIsPublic(subnetNode, defs),
				Resources: []Resource{},
			}
			if subnet.Zone == "" {
				subnet.Zone = defs.Zone
			}

			for _, resNode := range p.Resources {
				if _, done := placed[resNode.ID]; done {
					continue
				}
				if !refMatches(resNode.SubnetID, subnetNode) {
					continue
				}
				subnet.Resources = append(subnet.Resources, buildResource(resNode, traffic, gaps))
				placed[resNode.ID] = struct{}{}
			}

			network.Subnets = append(network.Subnets, subnet)
		}

		sortSubnets(network.Subnets)
		h.Networks = append(h.Networks, network)
	}

	// Everything not claimed by a subnet surfaces as external, in input order.
	for _, resNode := range p.Resources {
		if _, done := placed[resNode.ID]; done {
			continue
		}
		h.ExternalResources = append(h.ExternalResources, buildResource(resNode, traffic, gaps))
	}

	return h
}

// buildResource merges a leaf node with its derived annotations. The gap
// index is authoritative; a node-level precomputed count is the fallback,
// and zero the default when both are absent.
func buildResource(n Node, traffic TrafficIndex, gaps GapIndex) Resource {
	gapCount := 0
	if c, ok := gaps[n.ID]; ok {
		gapCount = c
	} else if n.GapCount != nil {
		gapCount = *n.GapCount
	}

	return Resource{
		ID:               n.ID,
		Name:             n.Name,
		Type:             n.Type,
		PrivateIP:        n.PrivateIP,
		PublicIP:         n.PublicIP,
		ACLs:             n.ACLs,
		HasActiveTraffic: traffic.Has(n.ID),
		GapCount:         gapCount,
	}
}

// refMatches reports whether a child's parent reference points at the given
// parent node, by identifier or by name. Empty references match nothing.
func refMatches(ref string, parent Node) bool {
	if ref == "" {
		return false
	}
	return ref == parent.ID || ref == parent.Name
}

// subnetIsPublic derives the exposure classification from the subnet's own
// flags: private only when either flag is explicitly false, otherwise the
// configured default applies.
func subnetIsPublic(n Node, defs Defaults) bool {
	if n.Public != nil && !*n.Public {
		return false
	}
	if n.MapPublicIP != nil && !*n.MapPublicIP {
		return false
	}
	if n.Public == nil && n.MapPublicIP == nil {
		return defs.SubnetPublic
	}
	return true
}

// sortSubnets orders subnets public-first, then by zone label. The sort is
// stable so subnets tied on both keys keep their relative input order.
func sortSubnets(subnets []Subnet) {
	sort.SliceStable(subnets, func(i, j int) bool {
		if subnets[i].Public != subnets[j].Public {
			return subnets[i].Public
		}
		return subnets[i].Zone < subnets[j].Zone
	})
}
