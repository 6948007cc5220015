package temporalgraph

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestGraphDocumentRoundTrip(t *testing.T) {
	g := scenarioGraph(t)

	data, err := json.Marshal(g)
	if err != nil {
		t.Fatalf("Marshal() = %v", err)
	}

	var decoded Graph
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() = %v", err)
	}
	if diff := cmp.Diff(g.Document(), decoded.Document()); diff != "" {
		t.Errorf("round trip mismatch (-original +decoded):\n%s", diff)
	}
}

func TestDocumentImportValidation(t *testing.T) {
	tests := []struct {
		name string
		doc  Document
	}{
		{
			name: "LifetimeMismatch",
			doc: Document{
				Vertices:  []int{0, 1},
				Snapshots: [][][2]int{{}},
				Lifetime:  2,
			},
		},
		{
			name: "DuplicateVertices",
			doc: Document{
				Vertices:  []int{0, 1, 0},
				Snapshots: [][][2]int{{}},
				Lifetime:  1,
			},
		},
		{
			name: "UnknownEndpoint",
			doc: Document{
				Vertices:  []int{0, 1},
				Snapshots: [][][2]int{{{0, 9}}},
				Lifetime:  1,
			},
		},
		{
			name: "SelfLoop",
			doc: Document{
				Vertices:  []int{0, 1},
				Snapshots: [][][2]int{{{1, 1}}},
				Lifetime:  1,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.doc.Graph()
			var graphErr *GraphError
			if !errors.As(err, &graphErr) {
				t.Fatalf("Document.Graph() error = %v; want a *GraphError", err)
			}
		})
	}
}

func TestExpansionDocumentShapes(t *testing.T) {
	g := scenarioGraph(t)
	x, err := ExpandFull(g)
	if err != nil {
		t.Fatalf("ExpandFull() = %v", err)
	}
	doc := x.Document()

	want := Summary{NumNodes: 8, NumBlackEdges: 4, NumRedEdges: 4}
	if diff := cmp.Diff(want, doc.Stats); diff != "" {
		t.Errorf("Stats mismatch (-want +got):\n%s", diff)
	}
	if got := len(doc.Nodes); got != 8 {
		t.Fatalf("len(Nodes) = %d; want 8", got)
	}
	if got := len(doc.Edges); got != 8 {
		t.Fatalf("len(Edges) = %d; want 8", got)
	}

	first := NodeRecord{ID: "0_t0", Label: "v0", Vertex: 0, Time: 0}
	if diff := cmp.Diff(first, doc.Nodes[0]); diff != "" {
		t.Errorf("Nodes[0] mismatch (-want +got):\n%s", diff)
	}

	// Black edges precede red edges, each numbered within its class.
	if diff := cmp.Diff(EdgeRecord{ID: "b_0", Source: "0_t0", Target: "1_t0", Type: EdgeTypeBlack}, doc.Edges[0]); diff != "" {
		t.Errorf("Edges[0] mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(EdgeRecord{ID: "r_0", Source: "0_t0", Target: "0_t1", Type: EdgeTypeRed}, doc.Edges[4]); diff != "" {
		t.Errorf("Edges[4] mismatch (-want +got):\n%s", diff)
	}
	for i, e := range doc.Edges {
		if e.Type != EdgeTypeBlack && e.Type != EdgeTypeRed {
			t.Errorf("Edges[%d].Type = %q; want %q or %q", i, e.Type, EdgeTypeBlack, EdgeTypeRed)
		}
	}
}
