package temporalgraph

import (
	"bytes"
	"context"
	"encoding/gob"
	"errors"
	"fmt"
	"log/slog"

	"github.com/danielorbach/go-component"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gocloud.dev/pubsub"
)

// AnalysisRequested asks the analysis worker to run the combined analytical
// query against the carried temporal graph. The graph travels inside the
// message so the worker stays stateless across requests.
type AnalysisRequested struct {
	Graph Document
	T0    int
	Delta int
}

// AnalysisCompleted carries the outcome of one AnalysisRequested message. A
// non-empty Error means the request violated the engine's contract (invalid
// graph or window); the offending field is named in the message. Contract
// violations are not retryable, so they are reported back rather than failing
// the worker.
type AnalysisCompleted struct {
	Request  AnalysisRequested
	Analysis Analysis
	Error    string
}

type analyzer struct {
	source *pubsub.Subscription
	sink   *pubsub.Topic
}

// NewAnalyzer returns a [component.Procedure] that serves analysis requests
// over a message queue: it decodes gob AnalysisRequested messages received
// from the given source, runs the engine, and publishes a gob
// AnalysisCompleted message to the specified sink for each request.
//
// Requests that violate the engine's contract produce an AnalysisCompleted
// with its Error set; only transport failures stop the worker.
func NewAnalyzer(source *pubsub.Subscription, sink *pubsub.Topic) component.Procedure {
	return analyzer{source: source, sink: sink}
}

func (a analyzer) Exec(l *component.L) {
	logger := component.Logger(l.Context())
	for l.Continue() {
		msg, err := a.source.Receive(l.GraceContext())
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
				return
			}

			// Based on the pubsub Receive function documentation, if Receive
			// returns an error, it is either a non-retryable error from the
			// underlying driver or indicates that the provided context is
			// Done. In case of a non-retryable error, we should either
			// recreate the Subscription or exit. Since we currently lack the
			// mechanism to recreate the target Subscription, we opt to
			// trigger a process shutdown.
			panic("cannot receive messages from the pubsub service")
		}

		err = a.handleMessage(l.GraceContext(), logger, msg)
		if err != nil {
			// A handling failure at this point is a failure to publish the
			// result, so the worker shuts down and retries the same message
			// after a restart, maintaining the at-least-once constraint.
			logger.Error("Couldn't handle AnalysisRequested message",
				slog.Any("error", err),
			)
			panic("cannot proceed to the next AnalysisRequested message due to failure")
		}

		// Acknowledge the message only once the result has been published, as
		// the worker maintains an at-least-once delivery constraint.
		msg.Ack()
	}
}

// handleMessage handles one AnalysisRequested message: it decodes the request,
// runs the combined analysis, and publishes the AnalysisCompleted result. It
// returns an error only if the result cannot be encoded or published.
func (a analyzer) handleMessage(ctx context.Context, logger *slog.Logger, msg *pubsub.Message) (err error) {
	ctx, span := tracer.Start(ctx, "analyzer.handleMessage", trace.WithAttributes(
		attribute.String("msg.id", msg.LoggableID),
	))
	defer span.End()

	logger.Debug("New AnalysisRequested message received, starting message handling...")
	var requested AnalysisRequested
	if err := gob.NewDecoder(bytes.NewReader(msg.Body)).Decode(&requested); err != nil {
		err := fmt.Errorf("decode gob: %w", err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	completed := AnalysisCompleted{Request: requested}
	if graph, err := requested.Graph.Graph(); err != nil {
		logger.Info("AnalysisRequested carries an invalid graph", slog.Any("error", err))
		completed.Error = err.Error()
	} else if analysis, err := Analyze(ctx, graph, requested.T0, requested.Delta); err != nil {
		logger.Info("AnalysisRequested carries an invalid window", slog.Any("error", err))
		completed.Error = err.Error()
	} else {
		completed.Analysis = analysis
	}

	logger.Debug("Encoding AnalysisCompleted message using gob...")
	var b bytes.Buffer
	if err := gob.NewEncoder(&b).Encode(completed); err != nil {
		err := fmt.Errorf("encode gob: %w", err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	logger.Debug("Sending AnalysisCompleted message...")
	// The window is included as metadata on the message to enable key-based
	// partitioning on brokers that support it, keeping results for the same
	// window in order for downstream consumers.
	out := &pubsub.Message{
		Body:     b.Bytes(),
		Metadata: map[string]string{"window": fmt.Sprintf("%d+%d", requested.T0, requested.Delta)},
	}
	if err := a.sink.Send(ctx, out); err != nil {
		err := fmt.Errorf("send: %w", err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	logger.Debug("AnalysisRequested message handled successfully")

	return nil
}
