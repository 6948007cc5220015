package temporalgraph

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var tracer = otel.Tracer("github.com/go-temporalgraph/go-temporalgraph")
var meter = otel.Meter("github.com/go-temporalgraph/go-temporalgraph")

// ---- treewidth.go ----

const (
	// treewidthMode is the attribute key used to associate each record with the
	// procedure (exact vs. heuristic-upper-bound) that produced the width. This
	// enables examining the two modes collectively as well as individually,
	// which matters because only the exhaustive branch is potentially expensive.
	treewidthMode = "treewidth.mode"
)

var (
	// treewidthDuration measures the duration of a single tree-width
	// computation over one expansion graph, excluding the construction of the
	// expansion itself.
	//
	// Each record is associated with the treewidthMode.
	treewidthDuration metric.Float64Histogram
	// analysisDuration measures the duration of a combined analysis: twin
	// detection, the windowed expansion with its degree and tree-width, and the
	// differential aggregate.
	analysisDuration metric.Float64Histogram
	// analysisFailures measures the number of failed combined analyses. All
	// failures are caller contract violations (invalid windows), so a non-zero
	// rate points at a misbehaving caller, not at the engine.
	analysisFailures metric.Int64Counter
)

func init() {
	var err error
	treewidthDuration, err = meter.Float64Histogram(
		"treewidth.computation.duration",
		metric.WithDescription("The duration of a single tree-width computation over one expansion graph, excluding the construction of the expansion itself."),
		metric.WithUnit("ms"),
	)
	if err != nil {
		panic("temporalgraph: failed to init 'treewidth.computation.duration' instrument")
	}

	analysisDuration, err = meter.Float64Histogram(
		"analysis.duration",
		metric.WithDescription("The duration of a combined analysis: twin detection, the windowed expansion with its degree and tree-width, and the differential aggregate."),
		metric.WithUnit("ms"),
	)
	if err != nil {
		panic("temporalgraph: failed to init 'analysis.duration' instrument")
	}

	analysisFailures, err = meter.Int64Counter(
		"analysis.failures",
		metric.WithDescription("The number of combined analyses that have failed."),
	)
	if err != nil {
		panic("temporalgraph: failed to init 'analysis.failures' instrument")
	}
}

// measureTreewidth records the duration of one tree-width computation,
// labelled with the mode that produced the width.
//
// According to [metric] documentation, [metric.WithAttributeSet] should be used
// instead of [metric.WithAttributes] for performance optimization.
func measureTreewidth(ctx context.Context, mode Mode, d time.Duration) {
	attrs := attribute.NewSet(attribute.String(treewidthMode, string(mode)))
	treewidthDuration.Record(ctx, float64(d.Milliseconds()), metric.WithAttributeSet(attrs))
}

// measureAnalysis measures a combined analysis. If the analysis succeeded, we
// record its duration. If it failed, we increment the failure counter.
func measureAnalysis(ctx context.Context, succeeded bool, d time.Duration) {
	if succeeded {
		analysisDuration.Record(ctx, float64(d.Milliseconds()))
	} else {
		analysisFailures.Add(ctx, 1)
	}
}
