// Package topology transforms a flat cloud-network graph into a strict
// containment hierarchy (network → subnet → resource) annotated with two
// derived security signals: observed traffic and allowed-but-unused "gap"
// counts.
//
// The package is a pure, synchronous transformation over in-memory values.
// It performs no I/O, holds no locks, and never mutates its input, so it is
// safe to call concurrently on independent inputs. Inputs are expected to be
// structurally valid; schema normalization and validation happen at the
// ingestion boundary (see internal/ingest), never here.
package topology

// NodeType values recognized by the classifier. Matching is case-insensitive.
// Any other type tag is treated as a leaf resource.
const (
	TypeNetwork = "vpc"
	TypeSubnet  = "subnet"
)

// Canonical edge kinds. The ingestion layer maps upstream synonyms onto
// these values before the core ever sees an edge.
const (
	// EdgeKindTraffic marks an edge carrying observed network traffic.
	EdgeKindTraffic = "HAS_TRAFFIC"
	// EdgeKindAllowed marks a granted permission or connection. When such an
	// edge is explicitly inactive it represents a gap: allowed but never used.
	EdgeKindAllowed = "ALLOWED"
)

// Node is a canonical topology graph node. Identity is by ID; attribute
// equality is not defined. Optional attributes stay zero-valued when the
// upstream document omits them.
type Node struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`

	PrivateIP string   `json:"privateIp,omitempty"`
	PublicIP  string   `json:"publicIp,omitempty"`
	ACLs      []string `json:"acls,omitempty"`

	// Parent references. SubnetID points at the owning subnet for leaf
	// resources, NetworkID at the owning network for subnets. Upstream
	// producers reference parents by identifier or by name; the assembler
	// tolerates both.
	SubnetID  string `json:"subnetId,omitempty"`
	NetworkID string `json:"vpcId,omitempty"`

	CIDR string `json:"cidr,omitempty"`
	Zone string `json:"zone,omitempty"`

	// Subnet exposure flags. A subnet is public unless one of these is
	// explicitly false.
	Public      *bool `json:"public,omitempty"`
	MapPublicIP *bool `json:"mapPublicIp,omitempty"`

	// GapCount is an optional precomputed count carried by some producers.
	// The gap index built from edges is authoritative when it has an entry.
	GapCount *int `json:"gapCount,omitempty"`
}

// Edge is a canonical directed relationship between two node IDs.
// Active is nil when the upstream document carried no activity information;
// the two index builders interpret that absence differently (see traffic.go
// and gaps.go).
type Edge struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Kind   string `json:"kind"`
	Active *bool  `json:"active,omitempty"`
}

// Graph is the raw input to the transformation.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Resource is a leaf node enriched with the two derived security signals.
type Resource struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Type      string   `json:"type"`
	PrivateIP string   `json:"privateIp,omitempty"`
	PublicIP  string   `json:"publicIp,omitempty"`
	ACLs      []string `json:"acls,omitempty"`

	HasActiveTraffic bool `json:"hasActiveTraffic"`
	GapCount         int  `json:"gapCount"`
}

// Subnet is a subnet node with its contained resources and a public/private
// classification.
type Subnet struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	CIDR      string     `json:"cidr"`
	Zone      string     `json:"zone"`
	Public    bool       `json:"public"`
	Resources []Resource `json:"resources"`
}

// Network is a network node with its ordered subnets.
type Network struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	CIDR    string   `json:"cidr,omitempty"`
	Subnets []Subnet `json:"subnets"`
}

// Hierarchy is the root output of the transformation: networks in input
// order, leaf resources that matched no subnet, and the raw edges passed
// through untouched for downstream consumers that draw traffic lines.
type Hierarchy struct {
	Networks          []Network  `json:"networks"`
	ExternalResources []Resource `json:"externalResources"`
	Edges             []Edge     `json:"edges"`
}

// Defaults names the fallback policy applied when optional node attributes
// are absent. Kept in one place so default policy is auditable and testable
// independently of the assembly algorithm.
type Defaults struct {
	// Zone is used when a subnet carries no availability-zone label.
	Zone string
	// SubnetPublic is the exposure classification assumed when neither
	// subnet flag is present.
	SubnetPublic bool
}

// DefaultPolicy returns the production default policy: unknown zone label,
// subnets public unless explicitly marked private.
func DefaultPolicy() Defaults {
	return Defaults{
		Zone:         "unknown",
		SubnetPublic: true,
	}
}
