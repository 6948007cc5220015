package temporalgraph

import (
	"encoding/json"
	"fmt"
)

// A Document is the interchange record for a temporal Graph, consumed from and
// produced to external boundaries such as HTTP bodies or files. Snapshots hold
// 2-element vertex pairs; Lifetime is derived and must match the snapshot
// count on import.
type Document struct {
	Vertices  []int      `json:"vertices"`
	Snapshots [][][2]int `json:"snapshots"`
	Lifetime  int        `json:"lifetime"`
}

// Document returns the interchange record describing g. The record preserves
// the graph's vertex and edge ordering, so encoding the same Graph twice
// yields byte-identical output.
func (g Graph) Document() Document {
	doc := Document{
		Vertices:  g.Vertices(),
		Snapshots: make([][][2]int, g.Lifetime()),
		Lifetime:  g.Lifetime(),
	}
	for t, edges := range g.snapshots {
		doc.Snapshots[t] = make([][2]int, len(edges))
		for i, e := range edges {
			doc.Snapshots[t][i] = [2]int{e.U, e.V}
		}
	}
	return doc
}

// Graph validates the record and returns the temporal graph it describes. It
// rejects, with a *GraphError: duplicate vertices, edges referencing unknown
// vertices, self-loop pairs, and a Lifetime that does not match the snapshot
// count.
func (d Document) Graph() (Graph, error) {
	if d.Lifetime != len(d.Snapshots) {
		return Graph{}, &GraphError{
			Field:  "lifetime",
			Value:  d.Lifetime,
			Reason: fmt.Sprintf("does not match snapshots list length %d", len(d.Snapshots)),
		}
	}
	snapshots := make([][]Edge, len(d.Snapshots))
	for t, pairs := range d.Snapshots {
		snapshots[t] = make([]Edge, len(pairs))
		for i, p := range pairs {
			snapshots[t][i] = Edge{U: p[0], V: p[1]}
		}
	}
	return New(d.Vertices, snapshots)
}

// MarshalJSON encodes g as its interchange Document.
func (g Graph) MarshalJSON() ([]byte, error) {
	return json.Marshal(g.Document())
}

// UnmarshalJSON decodes and validates an interchange Document into g.
func (g *Graph) UnmarshalJSON(data []byte) error {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("decode graph document: %w", err)
	}
	parsed, err := doc.Graph()
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}

// Edge types used in expansion interchange records.
const (
	EdgeTypeBlack = "black"
	EdgeTypeRed   = "red"
)

// A NodeRecord is the interchange record for one expansion node. The ID
// combines vertex and time ("3_t2"); the Label is the rendering layer's
// display text for the vertex.
type NodeRecord struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Vertex int    `json:"vertex"`
	Time   int    `json:"time"`
}

// An EdgeRecord is the interchange record for one expansion edge. Source and
// Target reference NodeRecord IDs; Type is EdgeTypeBlack or EdgeTypeRed.
type EdgeRecord struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Target string `json:"target"`
	Type   string `json:"type"`
}

// A Summary carries the aggregate counts trailing an expansion document.
type Summary struct {
	NumNodes      int `json:"num_nodes"`
	NumBlackEdges int `json:"num_black_edges"`
	NumRedEdges   int `json:"num_red_edges"`
}

// An ExpansionDocument is the interchange record for an Expansion. The engine
// owns its content; rendering and persistence layers own its transport.
type ExpansionDocument struct {
	Nodes []NodeRecord `json:"nodes"`
	Edges []EdgeRecord `json:"edges"`
	Stats Summary      `json:"stats"`
}

// Document returns the interchange record describing x. Records follow the
// expansion's enumeration order (black edges before red), so encoding the same
// Expansion twice yields byte-identical output.
func (x Expansion) Document() ExpansionDocument {
	doc := ExpansionDocument{
		Nodes: make([]NodeRecord, 0, len(x.nodes)),
		Edges: make([]EdgeRecord, 0, len(x.black)+len(x.red)),
		Stats: Summary{
			NumNodes:      x.NumNodes(),
			NumBlackEdges: x.NumBlackEdges(),
			NumRedEdges:   x.NumRedEdges(),
		},
	}
	for _, tv := range x.nodes {
		doc.Nodes = append(doc.Nodes, NodeRecord{
			ID:     nodeID(tv),
			Label:  fmt.Sprintf("v%d", tv.Vertex),
			Vertex: tv.Vertex,
			Time:   tv.Time,
		})
	}
	for i, e := range x.black {
		doc.Edges = append(doc.Edges, EdgeRecord{
			ID:     fmt.Sprintf("b_%d", i),
			Source: nodeID(e.From),
			Target: nodeID(e.To),
			Type:   EdgeTypeBlack,
		})
	}
	for i, e := range x.red {
		doc.Edges = append(doc.Edges, EdgeRecord{
			ID:     fmt.Sprintf("r_%d", i),
			Source: nodeID(e.From),
			Target: nodeID(e.To),
			Type:   EdgeTypeRed,
		})
	}
	return doc
}

func nodeID(tv TimeVertex) string {
	return fmt.Sprintf("%d_t%d", tv.Vertex, tv.Time)
}
