package temporalgraph

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// An Analysis bundles every analytical result for one temporal graph and one
// requested window: the eternal twins of the full lifetime, the maximum degree
// and tree-width of the requested windowed expansion, and the
// Delta-differential tree-width aggregate over all valid start times, plus
// descriptive metadata about the graph itself.
type Analysis struct {
	Window         Window
	Twins          []TwinPair
	MaxDegree      int
	WindowReport   Report
	Differential   DifferentialReport
	NumVertices    int
	Lifetime       int
	EdgeCounts     []int
	UnionEdgeCount int
}

// Analyze runs the full analytical query against g for the window starting at
// t0 with width delta. It fails with a *WindowError when delta exceeds the
// lifetime or the window runs past it; the twin detection alone never fails,
// but a combined analysis is only meaningful for a valid window.
//
// Analyze is stateless: it builds its expansions fresh and leaves no state
// behind, so concurrent calls never interfere.
func Analyze(ctx context.Context, g Graph, t0, delta int) (analysis Analysis, err error) {
	ctx, span := tracer.Start(ctx, "temporalgraph.Analyze", trace.WithAttributes(
		attribute.Int("window.t0", t0),
		attribute.Int("window.delta", delta),
		attribute.Int("graph.vertices", g.NumVertices()),
		attribute.Int("graph.lifetime", g.Lifetime()),
	))
	defer span.End()

	defer func(start time.Time) {
		measureAnalysis(ctx, err == nil, time.Since(start))
	}(time.Now())

	window := Window{T0: t0, Delta: delta}
	x, err := Expand(g, window)
	if err != nil {
		return Analysis{}, fmt.Errorf("expand window: %w", err)
	}

	elimStart := time.Now()
	report := Treewidth(x)
	measureTreewidth(ctx, report.Mode, time.Since(elimStart))

	differential, err := DifferentialTreewidth(ctx, g, delta)
	if err != nil {
		return Analysis{}, fmt.Errorf("differential tree-width: %w", err)
	}

	return Analysis{
		Window:         window,
		Twins:          EternalTwins(g),
		MaxDegree:      x.MaxDegree(),
		WindowReport:   report,
		Differential:   differential,
		NumVertices:    g.NumVertices(),
		Lifetime:       g.Lifetime(),
		EdgeCounts:     g.EdgeCounts(),
		UnionEdgeCount: len(g.UnionEdges()),
	}, nil
}
