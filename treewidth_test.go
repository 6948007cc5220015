package temporalgraph

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// completeSnapshot builds a temporal graph whose single snapshot is the
// complete graph on n vertices.
func completeSnapshot(t *testing.T, n int) Graph {
	t.Helper()
	var b GraphBuilder
	b.VertexRange(n)
	b.Grow(1)
	for u := 0; u < n; u++ {
		for v := u + 1; v < n; v++ {
			b.Connect(0, u, v)
		}
	}
	g, err := b.Build()
	if err != nil {
		t.Fatalf("Build() = %v", err)
	}
	return g
}

func expand(t *testing.T, g Graph, w Window) Expansion {
	t.Helper()
	x, err := Expand(g, w)
	if err != nil {
		t.Fatalf("Expand(%+v) = %v", w, err)
	}
	return x
}

func TestTreewidthOfTrivialExpansions(t *testing.T) {
	single, err := New([]int{0}, [][]Edge{{}})
	if err != nil {
		t.Fatalf("New() = %v", err)
	}
	report := Treewidth(expand(t, single, Window{T0: 0, Delta: 1}))
	if report.Width != 0 || report.Mode != ModeExact {
		t.Errorf("Treewidth(single node) = %+v; want width 0, exact", report)
	}
	if len(report.Order) != 1 {
		t.Errorf("Order has %d entries; want 1", len(report.Order))
	}

	if got := Treewidth(Expansion{}); got.Width != 0 || got.Mode != ModeExact {
		t.Errorf("Treewidth(empty expansion) = %+v; want width 0, exact", got)
	}
}

func TestTreewidthOfEdgelessExpansion(t *testing.T) {
	g, err := New([]int{0, 1, 2, 3, 4}, [][]Edge{{}})
	if err != nil {
		t.Fatalf("New() = %v", err)
	}
	report := Treewidth(expand(t, g, Window{T0: 0, Delta: 1}))
	if report.Width != 0 {
		t.Errorf("Treewidth(edgeless) width = %d; want 0", report.Width)
	}
}

func TestTreewidthOfCompleteGraphExact(t *testing.T) {
	g := completeSnapshot(t, 4)
	report := Treewidth(expand(t, g, Window{T0: 0, Delta: 1}))
	if report.Width != 3 {
		t.Errorf("Treewidth(K4) width = %d; want 3", report.Width)
	}
	if report.Mode != ModeExact {
		t.Errorf("Treewidth(K4) mode = %q; want %q (4 nodes are within ExactNodeLimit)", report.Mode, ModeExact)
	}
	if len(report.Order) != 4 {
		t.Errorf("Order has %d entries; want 4", len(report.Order))
	}
}

func TestTreewidthOfCompleteGraphHeuristic(t *testing.T) {
	n := ExactNodeLimit + 1
	g := completeSnapshot(t, n)
	report := Treewidth(expand(t, g, Window{T0: 0, Delta: 1}))
	if report.Width != n-1 {
		t.Errorf("Treewidth(K%d) width = %d; want %d", n, report.Width, n-1)
	}
	if report.Mode != ModeHeuristic {
		t.Errorf("Treewidth(K%d) mode = %q; want %q (%d nodes exceed ExactNodeLimit)", n, report.Mode, ModeHeuristic, n)
	}
}

func TestTreewidthOfPaths(t *testing.T) {
	// A path within one snapshot.
	path, err := New([]int{0, 1, 2, 3}, [][]Edge{
		{{U: 0, V: 1}, {U: 1, V: 2}, {U: 2, V: 3}},
	})
	if err != nil {
		t.Fatalf("New() = %v", err)
	}
	if got := Treewidth(expand(t, path, Window{T0: 0, Delta: 1})); got.Width != 1 || got.Mode != ModeExact {
		t.Errorf("Treewidth(path snapshot) = %+v; want width 1, exact", got)
	}

	// A path formed purely by red edges: one vertex through five time steps.
	var b GraphBuilder
	b.Vertices(0)
	b.Grow(5)
	chain, err := b.Build()
	if err != nil {
		t.Fatalf("Build() = %v", err)
	}
	if got := Treewidth(expand(t, chain, Window{T0: 0, Delta: 5})); got.Width != 1 || got.Mode != ModeExact {
		t.Errorf("Treewidth(red chain) = %+v; want width 1, exact", got)
	}
}

func TestTreewidthIsDeterministic(t *testing.T) {
	g, err := NewSeededGenerator(11).Generate(8, 3, 0.3)
	if err != nil {
		t.Fatalf("Generate() = %v", err)
	}
	x := expand(t, g, FullWindow(g)) // 24 nodes forces the heuristic branch
	first := Treewidth(x)
	second := Treewidth(x)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("repeated Treewidth runs differ (-first +second):\n%s", diff)
	}
	if first.Mode != ModeHeuristic {
		t.Errorf("mode = %q; want %q", first.Mode, ModeHeuristic)
	}
}

func TestDifferentialTreewidth(t *testing.T) {
	g, err := NewSeededGenerator(3).Generate(5, 6, 0.35)
	if err != nil {
		t.Fatalf("Generate() = %v", err)
	}

	delta := 2
	report, err := DifferentialTreewidth(context.Background(), g, delta)
	if err != nil {
		t.Fatalf("DifferentialTreewidth() = %v", err)
	}

	if want := g.Lifetime() - delta + 1; len(report.PerStart) != want {
		t.Fatalf("PerStart has %d entries; want %d", len(report.PerStart), want)
	}

	minimum := report.PerStart[0].Width
	for i, ww := range report.PerStart {
		if ww.T0 != i {
			t.Errorf("PerStart[%d].T0 = %d; want %d (ascending start times)", i, ww.T0, i)
		}
		if ww.Width < minimum {
			minimum = ww.Width
		}

		// Each entry matches an independent single-window computation.
		if got := Treewidth(expand(t, g, Window{T0: i, Delta: delta})); got.Width != ww.Width {
			t.Errorf("PerStart[%d].Width = %d; independent computation = %d", i, ww.Width, got.Width)
		}
	}
	if report.Minimum != minimum {
		t.Errorf("Minimum = %d; want %d, the minimum of PerStart", report.Minimum, minimum)
	}
	if report.Delta != delta {
		t.Errorf("Delta = %d; want %d", report.Delta, delta)
	}
}

func TestDifferentialTreewidthRejectsInvalidDelta(t *testing.T) {
	g := scenarioGraph(t)
	for _, delta := range []int{0, -1, g.Lifetime() + 1} {
		_, err := DifferentialTreewidth(context.Background(), g, delta)
		var windowErr *WindowError
		if !errors.As(err, &windowErr) {
			t.Errorf("DifferentialTreewidth(delta=%d) error = %v; want a *WindowError", delta, err)
		}
	}
}

func TestAnalyze(t *testing.T) {
	g := scenarioGraph(t)
	analysis, err := Analyze(context.Background(), g, 0, 2)
	if err != nil {
		t.Fatalf("Analyze() = %v", err)
	}

	x := expand(t, g, Window{T0: 0, Delta: 2})
	if got, want := analysis.MaxDegree, x.MaxDegree(); got != want {
		t.Errorf("MaxDegree = %d; want %d", got, want)
	}
	if got, want := analysis.WindowReport.Width, Treewidth(x).Width; got != want {
		t.Errorf("WindowReport.Width = %d; want %d", got, want)
	}
	if got, want := analysis.WindowReport.Width, analysis.Differential.PerStart[0].Width; got != want {
		t.Errorf("WindowReport.Width = %d; differential reports %d for the same window", got, want)
	}
	if analysis.NumVertices != 4 || analysis.Lifetime != 2 {
		t.Errorf("metadata = (%d vertices, lifetime %d); want (4, 2)", analysis.NumVertices, analysis.Lifetime)
	}
	if diff := cmp.Diff([]int{2, 2}, analysis.EdgeCounts); diff != "" {
		t.Errorf("EdgeCounts mismatch (-want +got):\n%s", diff)
	}
	if analysis.UnionEdgeCount != 3 {
		t.Errorf("UnionEdgeCount = %d; want 3", analysis.UnionEdgeCount)
	}
}

func TestAnalyzeRejectsInvalidWindows(t *testing.T) {
	g := scenarioGraph(t)
	tests := []struct{ t0, delta int }{
		{0, 3}, // delta exceeds the lifetime
		{1, 2}, // window runs past the lifetime
		{-1, 1},
	}
	for _, tt := range tests {
		_, err := Analyze(context.Background(), g, tt.t0, tt.delta)
		var windowErr *WindowError
		if !errors.As(err, &windowErr) {
			t.Errorf("Analyze(t0=%d, delta=%d) error = %v; want a *WindowError", tt.t0, tt.delta, err)
		}
	}
}
