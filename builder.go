package temporalgraph

import "unsafe"

// A GraphBuilder is used to safely and elegantly build a temporal Graph using
// fluent calls.
// The zero value is ready to use.
// Do not copy a non-zero GraphBuilder.
type GraphBuilder struct {
	vertices  []int
	seen      map[int]struct{}
	snapshots [][]Edge
	// address of receiver - to detect copies by value.
	// see copyCheck below for details.
	addr *GraphBuilder
}

// Vertices shall append the given vertices to b's vertex set, skipping any
// identifier already present. Vertices keep their insertion order.
func (b *GraphBuilder) Vertices(vertex ...int) {
	b.copyCheck()
	if b.seen == nil {
		b.seen = make(map[int]struct{}, len(vertex))
	}
	for _, v := range vertex {
		if _, ok := b.seen[v]; ok {
			continue
		}
		b.seen[v] = struct{}{}
		b.vertices = append(b.vertices, v)
	}
}

// VertexRange appends the vertices 0..n-1 to b's vertex set.
func (b *GraphBuilder) VertexRange(n int) {
	b.copyCheck()
	for v := 0; v < n; v++ {
		b.Vertices(v)
	}
}

// Connect appends the edge {u,v} to snapshot t, adding u and v to the vertex
// set and growing the snapshot sequence to include time t as needed. Snapshots
// created by growing are empty.
func (b *GraphBuilder) Connect(t, u, v int) {
	b.copyCheck()
	b.Vertices(u, v)
	b.Grow(t + 1)
	b.snapshots[t] = append(b.snapshots[t], Edge{U: u, V: v})
}

// Grow extends b's snapshot sequence with empty snapshots until it has at
// least the given lifetime. It shall panic if lifetime is negative.
func (b *GraphBuilder) Grow(lifetime int) {
	b.copyCheck()
	if lifetime < 0 {
		panic("temporalgraph.GraphBuilder.Grow: negative lifetime")
	}
	for len(b.snapshots) < lifetime {
		b.snapshots = append(b.snapshots, nil)
	}
}

// Build validates the accumulated description and returns the temporal Graph
// it describes. The builder may continue to be used afterwards; Build copies.
func (b *GraphBuilder) Build() (Graph, error) {
	return New(b.vertices, b.snapshots)
}

// Reset resets the Builder to be empty.
func (b *GraphBuilder) Reset() {
	b.vertices = nil
	b.seen = nil
	b.snapshots = nil
	b.addr = nil
}

// Noescape hides a pointer from escape analysis.
// It is the identity function, but escape analysis does not think the
// output depends on the input.
// Noescape is inlined and currently compiles down to zero instructions.
// USE CAREFULLY!
// This was copied from the runtime; see issues 23382 and 7921 (github.com/golang/go).
//
//go:nosplit
//go:nocheckptr
func noescape(p unsafe.Pointer) unsafe.Pointer {
	x := uintptr(p)
	return unsafe.Pointer(x ^ 0) //nolint:govet,staticcheck,gosec // copied from the standard library
}

func (b *GraphBuilder) copyCheck() {
	if b.addr == nil {
		// This hack works around a failing of Go's escape analysis
		// that was causing b to escape and be heap-allocated.
		// See issue 23382 (github.com/golang/go).
		// once issue 7921 is fixed, this should be reverted to just "b.addr = b".
		b.addr = (*GraphBuilder)(noescape(unsafe.Pointer(b)))
	} else if b.addr != b {
		panic("temporalgraph: illegal use of non-zero GraphBuilder copied by value")
	}
}
