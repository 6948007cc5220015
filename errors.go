package temporalgraph

import "fmt"

// The errors in this file describe caller contract violations. They are local,
// synchronous and non-retryable: a malformed request yields one of them and
// leaves no state behind, since every computation in this package is stateless
// and pure per call.

// A ParameterError reports a malformed generator argument. The Field and Value
// identify the offending parameter so callers can correct the request.
type ParameterError struct {
	Field string
	Value any
}

func (e *ParameterError) Error() string {
	return fmt.Sprintf("temporalgraph: invalid parameter %s=%v", e.Field, e.Value)
}

// A WindowError reports a time window that falls outside the lifetime of the
// temporal graph it was applied to.
type WindowError struct {
	T0       int
	Delta    int
	Lifetime int
}

func (e *WindowError) Error() string {
	return fmt.Sprintf("temporalgraph: invalid window t0=%d delta=%d for lifetime %d: need 0 <= t0, delta >= 1 and t0+delta <= lifetime",
		e.T0, e.Delta, e.Lifetime)
}

// A GraphError reports an invalid temporal-graph description, such as a
// dangling vertex reference or a self-loop, detected during construction or
// import validation.
type GraphError struct {
	Field  string // the offending field, e.g. "vertices" or "snapshots[3]"
	Value  any    // the offending value
	Reason string
}

func (e *GraphError) Error() string {
	return fmt.Sprintf("temporalgraph: invalid graph: %s=%v: %s", e.Field, e.Value, e.Reason)
}
