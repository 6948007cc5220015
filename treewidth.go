package temporalgraph

import (
	"context"
	"fmt"
	"math/bits"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"
)

// ExactNodeLimit is the largest expansion, by node count, for which Treewidth
// performs exhaustive search over elimination orderings. Larger expansions
// unconditionally fall back to the min-degree heuristic bound, keeping the
// worst-case latency of a single computation bounded. The subset search is
// O(2^n * n * (n+m)), so raising this limit grows the cost steeply.
const ExactNodeLimit = 12

// Mode records which procedure produced the width in a Report, so callers can
// distinguish an exact value from a heuristic upper bound.
type Mode string

const (
	// ModeExact marks widths obtained by exhaustive search over elimination
	// orderings. Such widths equal the tree-width of the expansion.
	ModeExact Mode = "exact"
	// ModeHeuristic marks upper bounds obtained from the min-degree
	// elimination heuristic. The true tree-width may be smaller.
	ModeHeuristic Mode = "heuristic"
)

// A Report carries the tree-width computed for a single expansion graph: the
// width itself, the elimination ordering that witnesses it (the maximum bag
// met while eliminating in this order is Width+1), and the Mode that produced
// the number.
type Report struct {
	Width int
	Order []TimeVertex
	Mode  Mode
}

// Treewidth computes the tree-width of the given expansion.
//
// Tree-width is NP-hard to compute exactly. For expansions of at most
// ExactNodeLimit nodes the result is exact; above that, Treewidth reports a
// valid upper bound obtained by repeatedly eliminating the node of minimum
// current degree. Ties in minimum-degree selection break towards the node
// enumerated first (ascending time, then vertex), so repeated runs on
// identical expansions give identical bounds and orderings.
//
// An expansion with at most one node has tree-width 0, returned without
// invoking the elimination procedure. An expansion with no edges reports 0.
func Treewidth(x Expansion) Report {
	n := x.NumNodes()
	if n <= 1 {
		order := make([]TimeVertex, len(x.nodes))
		copy(order, x.nodes)
		return Report{Width: 0, Order: order, Mode: ModeExact}
	}

	var width int
	var order []int
	var mode Mode
	if n <= ExactNodeLimit {
		width, order = exactElimination(bitmaskAdjacency(x))
		mode = ModeExact
	} else {
		width, order = minDegreeElimination(setAdjacency(x))
		mode = ModeHeuristic
	}

	witness := make([]TimeVertex, len(order))
	for i, id := range order {
		witness[i] = x.nodes[id]
	}
	return Report{Width: width, Order: witness, Mode: mode}
}

// setAdjacency returns the expansion's undirected adjacency as one
// neighbour-set per node, ready for destructive elimination.
func setAdjacency(x Expansion) []map[int]struct{} {
	adj := make([]map[int]struct{}, len(x.nodes))
	for v, neighbours := range x.adjacency() {
		adj[v] = make(map[int]struct{}, len(neighbours))
		for _, u := range neighbours {
			adj[v][u] = struct{}{}
		}
	}
	return adj
}

// bitmaskAdjacency returns the expansion's undirected adjacency as one bitmask
// per node. Valid only while the node count fits a machine word; callers gate
// on ExactNodeLimit.
func bitmaskAdjacency(x Expansion) []uint64 {
	adj := make([]uint64, len(x.nodes))
	for v, neighbours := range x.adjacency() {
		for _, u := range neighbours {
			adj[v] |= 1 << u
		}
	}
	return adj
}

// minDegreeElimination repeatedly eliminates the node of minimum current
// degree, connecting its remaining neighbours into a clique, and returns the
// maximum degree met at elimination time together with the elimination order.
// That maximum is the witnessed bag size minus one, an upper bound on the
// tree-width. Ties break towards the smallest node identifier.
//
// The adjacency sets are consumed.
func minDegreeElimination(adj []map[int]struct{}) (width int, order []int) {
	n := len(adj)
	order = make([]int, 0, n)
	eliminated := make([]bool, n)

	for len(order) < n {
		best := -1
		for v := 0; v < n; v++ {
			if eliminated[v] {
				continue
			}
			if best == -1 || len(adj[v]) < len(adj[best]) {
				best = v
			}
		}

		if d := len(adj[best]); d > width {
			width = d
		}

		neighbours := make([]int, 0, len(adj[best]))
		for u := range adj[best] {
			neighbours = append(neighbours, u)
		}
		// Fill-in: the eliminated node's neighbours become a clique.
		for i, a := range neighbours {
			for _, b := range neighbours[i+1:] {
				adj[a][b] = struct{}{}
				adj[b][a] = struct{}{}
			}
		}
		for _, u := range neighbours {
			delete(adj[u], best)
		}
		adj[best] = nil
		eliminated[best] = true
		order = append(order, best)
	}
	return width, order
}

// exactElimination finds a minimum-width elimination ordering by dynamic
// programming over subsets of eliminated nodes. dp[s] is the best achievable
// maximum elimination degree when the nodes of s are eliminated first, in some
// order; dp over the full set is the tree-width.
func exactElimination(adj []uint64) (int, []int) {
	n := len(adj)
	full := uint64(1)<<n - 1

	dp := make([]int8, full+1)
	choice := make([]int8, full+1)
	for s := uint64(1); s <= full; s++ {
		dp[s] = int8(n) // no elimination degree can exceed n-1
		for v := 0; v < n; v++ {
			bit := uint64(1) << v
			if s&bit == 0 {
				continue
			}
			rest := s &^ bit
			w := int8(fillDegree(adj, v, rest))
			if dp[rest] > w {
				w = dp[rest]
			}
			if w < dp[s] {
				dp[s] = w
				choice[s] = int8(v)
			}
		}
	}

	// The recorded choice at each subset is the node eliminated last among it;
	// walking back from the full set yields the ordering reversed.
	order := make([]int, n)
	i := n
	for s := full; s != 0; s &^= 1 << choice[s] {
		i--
		order[i] = int(choice[s])
	}
	return int(dp[full]), order
}

// fillDegree returns the degree node v would have in the fill graph once the
// nodes of elim are eliminated: the number of non-eliminated nodes reachable
// from v by a path whose internal nodes all lie in elim.
func fillDegree(adj []uint64, v int, elim uint64) int {
	visited := uint64(1) << v
	frontier := adj[v] &^ visited
	var outside uint64
	for frontier != 0 {
		u := bits.TrailingZeros64(frontier)
		bit := uint64(1) << u
		frontier &^= bit
		visited |= bit
		if elim&bit != 0 {
			frontier |= adj[u] &^ visited
		} else {
			outside |= bit
		}
	}
	return bits.OnesCount64(outside)
}

// A WindowWidth pairs a window start time with the tree-width computed for the
// expansion starting there.
type WindowWidth struct {
	T0    int
	Width int
	Mode  Mode
}

// A DifferentialReport aggregates tree-width across all valid start times of
// width-Delta windows: the full per-start sequence, in ascending start time,
// and its minimum (the Delta-differential tree-width).
type DifferentialReport struct {
	Delta    int
	Minimum  int
	PerStart []WindowWidth
}

// DifferentialTreewidth computes the Delta-differential tree-width of g: for
// every valid start time t0 in [0, Lifetime()-delta] it builds the windowed
// expansion, computes its tree-width, and reports the minimum over all start
// times together with the full per-start sequence.
//
// The per-start computations are mutually independent and run concurrently;
// the sequence is assembled back into ascending start-time order before being
// returned. DifferentialTreewidth fails with a *WindowError when delta < 1 or
// delta exceeds the lifetime, leaving no valid start times.
func DifferentialTreewidth(ctx context.Context, g Graph, delta int) (DifferentialReport, error) {
	if delta < 1 || delta > g.Lifetime() {
		return DifferentialReport{}, &WindowError{T0: 0, Delta: delta, Lifetime: g.Lifetime()}
	}

	starts := g.Lifetime() - delta + 1
	perStart := make([]WindowWidth, starts)

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for t0 := 0; t0 < starts; t0++ {
		eg.Go(func() error {
			start := time.Now()
			x, err := Expand(g, Window{T0: t0, Delta: delta})
			if err != nil {
				return fmt.Errorf("expand window t0=%d: %w", t0, err)
			}
			report := Treewidth(x)
			measureTreewidth(ctx, report.Mode, time.Since(start))
			perStart[t0] = WindowWidth{T0: t0, Width: report.Width, Mode: report.Mode}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return DifferentialReport{}, err
	}

	minimum := perStart[0].Width
	for _, w := range perStart[1:] {
		if w.Width < minimum {
			minimum = w.Width
		}
	}
	return DifferentialReport{Delta: delta, Minimum: minimum, PerStart: perStart}, nil
}
