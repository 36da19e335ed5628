// Package ingest decodes topology documents produced by the upstream scanner
// and normalizes their schema drift into the canonical shapes consumed by
// internal/topology.
//
// Multiple upstream producers emit the same semantic fields under different
// names: an edge's relationship kind arrives as "kind", "type" or "label",
// its activity flag as "active" or "is_active", and node parent references in
// snake_case or camelCase. All of that is resolved here, in one place, so the
// transformation core never sees a synonym. Structurally malformed records
// (missing identifiers) are rejected here too; the core is total over
// anything this package lets through.
package ingest

// Document is the wire shape of a topology snapshot.
type Document struct {
	Nodes []NodeRecord `json:"nodes"`
	Edges []EdgeRecord `json:"edges"`
}

// NodeRecord is a raw topology node as serialized by the scanner.
// Parent references carry both spellings; exactly one is usually set.
type NodeRecord struct {
	ID   string `json:"id" validate:"required"`
	Name string `json:"name"`
	Type string `json:"type"`

	PrivateIP string   `json:"private_ip"`
	PublicIP  string   `json:"public_ip"`
	ACLs      []string `json:"acls"`

	SubnetIDSnake string `json:"subnet_id"`
	SubnetIDCamel string `json:"subnetId"`
	VPCIDSnake    string `json:"vpc_id"`
	VPCIDCamel    string `json:"vpcId"`

	CIDR string `json:"cidr"`
	Zone string `json:"zone"`

	Public      *bool `json:"public"`
	MapPublicIP *bool `json:"map_public_ip"`

	GapCount *int `json:"gap_count"`
}

// EdgeRecord is a raw relationship as serialized by the scanner. Kind, Type
// and Label are synonyms for the relationship kind; Active and IsActive for
// the activity flag.
type EdgeRecord struct {
	Source string `json:"source" validate:"required"`
	Target string `json:"target" validate:"required"`

	Kind  string `json:"kind"`
	Type  string `json:"type"`
	Label string `json:"label"`

	Active   *bool `json:"active"`
	IsActive *bool `json:"is_active"`
}
