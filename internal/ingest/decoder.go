package ingest

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/netatlas/netatlas/internal/topology"
)

var validate = validator.New()

// DecodeGraph reads a topology document from r and returns the canonical
// graph: decode, validate, normalize.
func DecodeGraph(r io.Reader) (*topology.Graph, error) {
	doc, err := DecodeDocument(r)
	if err != nil {
		return nil, err
	}
	return doc.Normalize()
}

// DecodeDocument reads the raw wire document from r without validating it.
func DecodeDocument(r io.Reader) (*Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode topology document: %w", err)
	}
	return &doc, nil
}

// Normalize validates every record and maps it onto the canonical shapes.
// Schema drift (synonym field names) is resolved here and is never an error;
// a record missing a required identifier is.
func (d *Document) Normalize() (*topology.Graph, error) {
	g := &topology.Graph{
		Nodes: make([]topology.Node, 0, len(d.Nodes)),
		Edges: make([]topology.Edge, 0, len(d.Edges)),
	}

	for i, rec := range d.Nodes {
		if err := validate.Struct(rec); err != nil {
			return nil, fmt.Errorf("invalid node at index %d: %w", i, err)
		}
		g.Nodes = append(g.Nodes, rec.normalize())
	}

	for i, rec := range d.Edges {
		if err := validate.Struct(rec); err != nil {
			return nil, fmt.Errorf("invalid edge at index %d: %w", i, err)
		}
		g.Edges = append(g.Edges, rec.normalize())
	}

	return g, nil
}

// normalize maps a raw node onto the canonical shape, collapsing the two
// parent-reference spellings. Snake case wins when both are set; upstream
// producers are not expected to emit conflicting values.
func (r NodeRecord) normalize() topology.Node {
	return topology.Node{
		ID:          r.ID,
		Name:        r.Name,
		Type:        r.Type,
		PrivateIP:   r.PrivateIP,
		PublicIP:    r.PublicIP,
		ACLs:        r.ACLs,
		SubnetID:    firstNonEmpty(r.SubnetIDSnake, r.SubnetIDCamel),
		NetworkID:   firstNonEmpty(r.VPCIDSnake, r.VPCIDCamel),
		CIDR:        r.CIDR,
		Zone:        r.Zone,
		Public:      r.Public,
		MapPublicIP: r.MapPublicIP,
		GapCount:    r.GapCount,
	}
}

// normalize maps a raw edge onto the canonical shape. The relationship kind
// is taken from the first synonym present (kind, type, label) and uppercased
// to the canonical spelling; the activity flag from active, then is_active,
// staying nil when neither is present so the index builders can apply their
// own absence semantics.
func (r EdgeRecord) normalize() topology.Edge {
	active := r.Active
	if active == nil {
		active = r.IsActive
	}
	return topology.Edge{
		Source: r.Source,
		Target: r.Target,
		Kind:   strings.ToUpper(firstNonEmpty(r.Kind, r.Type, r.Label)),
		Active: active,
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
