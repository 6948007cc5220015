// Package temporalgraph provides a library for analysing temporal graphs - A
// temporal graph is a sequence of graph snapshots over one fixed vertex set,
// one snapshot per discrete time step - using the differential-operator
// framework: each temporal graph is unrolled into a static directed graph (the
// static expansion) whose structure encodes both instantaneous adjacency and
// temporal continuity.
//
// Specifically, the static expansion gives each (vertex, time) pair its own
// node, connecting same-time adjacent vertices with black edges and same-vertex
// consecutive times with red edges. Restricting the expansion to a contiguous
// time window of width delta yields the windowed differential, over which the
// analytical queries of this package are computed: eternal-twin detection,
// maximum degree, and (exact or heuristic) tree-width, including the
// delta-differential tree-width aggregate over all valid window start times.
//
// All computations are pure functions of their inputs. A Graph is immutable
// after construction and every Expansion is built fresh per query, so
// independent queries never interfere.
package temporalgraph
