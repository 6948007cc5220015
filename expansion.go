package temporalgraph

// A Window selects the contiguous range of snapshots [T0, T0+Delta) of a
// temporal graph. The zero value is not a valid window; Delta is at least 1.
type Window struct {
	T0    int
	Delta int
}

// FullWindow returns the window covering the entire lifetime of g.
func FullWindow(g Graph) Window {
	return Window{T0: 0, Delta: g.Lifetime()}
}

// validate reports whether w is a legal window for the given lifetime.
func (w Window) validate(lifetime int) error {
	if w.T0 < 0 || w.Delta < 1 || w.T0+w.Delta > lifetime {
		return &WindowError{T0: w.T0, Delta: w.Delta, Lifetime: lifetime}
	}
	return nil
}

// A TimeVertex is a node of an expansion graph: the copy of vertex Vertex at
// time Time.
type TimeVertex struct {
	Vertex int
	Time   int
}

// An ExpansionEdge connects two nodes of an expansion graph. Black edges are
// undirected and keep the endpoint order of the snapshot they came from; red
// edges are directed from (v,t) to (v,t+1).
type ExpansionEdge struct {
	From, To TimeVertex
}

// An Expansion is the static expansion of a temporal graph restricted to a
// window: one node per (vertex, time) pair in range, a black edge per snapshot
// edge, and a red edge per vertex and consecutive pair of in-range times.
//
// An Expansion is built fresh per query by Expand and never cached, so
// independent queries produce independent instances.
//
// Do not modify the slices returned from its functions.
type Expansion struct {
	window Window
	nodes  []TimeVertex
	index  map[TimeVertex]int
	black  []ExpansionEdge
	red    []ExpansionEdge
}

// Expand builds the static expansion of g restricted to the given window.
//
// Node and edge enumeration order is stable: nodes ascend by time, then by
// vertex position in the graph's vertex set; black edges follow snapshot
// insertion order within each ascending time; red edges ascend by time, then
// by vertex position. Repeated calls on identical input therefore yield
// identical output.
//
// Expand fails with a *WindowError if the window falls outside [0, Lifetime()].
func Expand(g Graph, w Window) (Expansion, error) {
	if err := w.validate(g.Lifetime()); err != nil {
		return Expansion{}, err
	}

	n := g.NumVertices()
	x := Expansion{
		window: w,
		nodes:  make([]TimeVertex, 0, n*w.Delta),
		index:  make(map[TimeVertex]int, n*w.Delta),
		red:    make([]ExpansionEdge, 0, n*(w.Delta-1)),
	}

	for t := w.T0; t < w.T0+w.Delta; t++ {
		for _, v := range g.vertices {
			tv := TimeVertex{Vertex: v, Time: t}
			x.index[tv] = len(x.nodes)
			x.nodes = append(x.nodes, tv)
		}

		// Black edges: within-snapshot adjacency.
		for _, e := range g.snapshots[t] {
			x.black = append(x.black, ExpansionEdge{
				From: TimeVertex{Vertex: e.U, Time: t},
				To:   TimeVertex{Vertex: e.V, Time: t},
			})
		}

		// Red edges: temporal continuity to the next in-range time step. The
		// continuity rule is regenerated here on demand rather than stored on
		// the Graph, which would carry an O(n*lifetime) duplication on every
		// instance.
		if t < w.T0+w.Delta-1 {
			for _, v := range g.vertices {
				x.red = append(x.red, ExpansionEdge{
					From: TimeVertex{Vertex: v, Time: t},
					To:   TimeVertex{Vertex: v, Time: t + 1},
				})
			}
		}
	}
	return x, nil
}

// ExpandFull builds the static expansion of g over its entire lifetime. It is
// equivalent to Expand(g, FullWindow(g)).
func ExpandFull(g Graph) (Expansion, error) {
	return Expand(g, FullWindow(g))
}

// Window returns the window this expansion was built for.
func (x Expansion) Window() Window { return x.window }

// Nodes returns the expansion's nodes in enumeration order.
func (x Expansion) Nodes() []TimeVertex { return x.nodes }

// BlackEdges returns the within-snapshot adjacency edges in enumeration order.
func (x Expansion) BlackEdges() []ExpansionEdge { return x.black }

// RedEdges returns the temporal-continuity edges in enumeration order.
func (x Expansion) RedEdges() []ExpansionEdge { return x.red }

// NumNodes returns the number of nodes in the expansion.
func (x Expansion) NumNodes() int { return len(x.nodes) }

// NumBlackEdges returns the number of black edges in the expansion.
func (x Expansion) NumBlackEdges() int { return len(x.black) }

// NumRedEdges returns the number of red edges in the expansion.
func (x Expansion) NumRedEdges() int { return len(x.red) }

// adjacency returns the undirected adjacency lists of the expansion, indexed
// by node enumeration order. Red edges count in both directions.
func (x Expansion) adjacency() [][]int {
	adj := make([][]int, len(x.nodes))
	add := func(e ExpansionEdge) {
		from, to := x.index[e.From], x.index[e.To]
		adj[from] = append(adj[from], to)
		adj[to] = append(adj[to], from)
	}
	for _, e := range x.black {
		add(e)
	}
	for _, e := range x.red {
		add(e)
	}
	return adj
}
