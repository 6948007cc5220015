package temporalgraph

import (
	"fmt"
	"sort"
)

// An Edge is an unordered pair of distinct vertices present in one snapshot of
// a temporal graph. Snapshots are simple: no self-loops and no multi-edges.
type Edge struct {
	U, V int
}

// canonical returns the edge with its endpoints in ascending order, so that
// {u,v} and {v,u} compare equal.
func (e Edge) canonical() Edge {
	if e.U > e.V {
		return Edge{U: e.V, V: e.U}
	}
	return e
}

// A Graph is a temporal graph: a fixed vertex set together with one edge set
// per discrete time step (the snapshots). The number of snapshots is the
// graph's lifetime.
//
// A Graph is immutable after construction. All accessors copy, so no caller
// can mutate a Graph in place; downstream computations are pure functions of
// the graph they are handed.
type Graph struct {
	vertices  []int
	snapshots [][]Edge
}

// New validates the given vertex set and snapshot edge sets and returns the
// temporal graph they describe.
//
// It rejects, with a *GraphError naming the offending field and value:
// duplicate or negative vertex identifiers, an empty snapshot list (a temporal
// graph has lifetime >= 1), self-loop pairs, edges referencing unknown
// vertices, and a pair appearing more than once in the same snapshot.
//
// The inputs are copied; the caller may reuse its slices afterwards.
func New(vertices []int, snapshots [][]Edge) (Graph, error) {
	if len(snapshots) == 0 {
		return Graph{}, &GraphError{Field: "snapshots", Value: 0, Reason: "a temporal graph has at least one snapshot"}
	}

	known := make(map[int]struct{}, len(vertices))
	for _, v := range vertices {
		if v < 0 {
			return Graph{}, &GraphError{Field: "vertices", Value: v, Reason: "vertex identifiers are non-negative"}
		}
		if _, dup := known[v]; dup {
			return Graph{}, &GraphError{Field: "vertices", Value: v, Reason: "duplicate vertex identifier"}
		}
		known[v] = struct{}{}
	}

	for t, edges := range snapshots {
		seen := make(map[Edge]struct{}, len(edges))
		for _, e := range edges {
			field := fmt.Sprintf("snapshots[%d]", t)
			if e.U == e.V {
				return Graph{}, &GraphError{Field: field, Value: e, Reason: "self-loop"}
			}
			if _, ok := known[e.U]; !ok {
				return Graph{}, &GraphError{Field: field, Value: e.U, Reason: "edge references unknown vertex"}
			}
			if _, ok := known[e.V]; !ok {
				return Graph{}, &GraphError{Field: field, Value: e.V, Reason: "edge references unknown vertex"}
			}
			c := e.canonical()
			if _, dup := seen[c]; dup {
				return Graph{}, &GraphError{Field: field, Value: e, Reason: "pair appears more than once in snapshot"}
			}
			seen[c] = struct{}{}
		}
	}

	g := Graph{
		vertices:  make([]int, len(vertices)),
		snapshots: make([][]Edge, len(snapshots)),
	}
	copy(g.vertices, vertices)
	for t, edges := range snapshots {
		g.snapshots[t] = make([]Edge, len(edges))
		copy(g.snapshots[t], edges)
	}
	return g, nil
}

// NumVertices returns the cardinality of the vertex set.
func (g Graph) NumVertices() int { return len(g.vertices) }

// Lifetime returns the number of snapshots.
func (g Graph) Lifetime() int { return len(g.snapshots) }

// Vertices returns a copy of the vertex set, in construction order.
func (g Graph) Vertices() []int {
	vs := make([]int, len(g.vertices))
	copy(vs, g.vertices)
	return vs
}

// Snapshot returns a copy of the edge set present at time t, in insertion
// order. It panics if t is outside [0, Lifetime()).
func (g Graph) Snapshot(t int) []Edge {
	edges := make([]Edge, len(g.snapshots[t]))
	copy(edges, g.snapshots[t])
	return edges
}

// VisitEdges calls fn for every edge of snapshot t, in insertion order, until
// fn returns false.
func (g Graph) VisitEdges(t int, fn func(e Edge) bool) {
	for _, e := range g.snapshots[t] {
		if !fn(e) {
			return
		}
	}
}

// EdgeCounts returns the number of edges in each snapshot, indexed by time.
func (g Graph) EdgeCounts() []int {
	counts := make([]int, len(g.snapshots))
	for t, edges := range g.snapshots {
		counts[t] = len(edges)
	}
	return counts
}

// UnionEdges returns the edge set of the union graph: every pair that is an
// edge in at least one snapshot. Edges are canonicalised (smaller endpoint
// first) and sorted ascending, so the enumeration is stable across calls.
func (g Graph) UnionEdges() []Edge {
	set := make(map[Edge]struct{})
	for _, edges := range g.snapshots {
		for _, e := range edges {
			set[e.canonical()] = struct{}{}
		}
	}
	union := make([]Edge, 0, len(set))
	for e := range set {
		union = append(union, e)
	}
	sort.Slice(union, func(i, j int) bool {
		if union[i].U != union[j].U {
			return union[i].U < union[j].U
		}
		return union[i].V < union[j].V
	})
	return union
}

// neighbourhoods returns, for snapshot t, the open neighbourhood of every
// vertex as a set. Vertices with no incident edges map to an empty set.
func (g Graph) neighbourhoods(t int) map[int]map[int]struct{} {
	n := make(map[int]map[int]struct{}, len(g.vertices))
	for _, v := range g.vertices {
		n[v] = make(map[int]struct{})
	}
	for _, e := range g.snapshots[t] {
		n[e.U][e.V] = struct{}{}
		n[e.V][e.U] = struct{}{}
	}
	return n
}
