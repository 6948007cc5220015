package httpapi

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	temporalgraph "github.com/go-temporalgraph/go-temporalgraph"
)

func newTestHandler() http.Handler {
	return New(slog.New(slog.NewTextHandler(io.Discard, nil)), nil)
}

func post(t *testing.T, h http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func scenarioDocument(t *testing.T) temporalgraph.Document {
	t.Helper()
	g, err := temporalgraph.New([]int{0, 1, 2, 3}, [][]temporalgraph.Edge{
		{{U: 0, V: 1}, {U: 1, V: 2}},
		{{U: 0, V: 1}, {U: 2, V: 3}},
	})
	require.NoError(t, err)
	return g.Document()
}

func TestInitRandomDefaults(t *testing.T) {
	h := newTestHandler()
	rec := post(t, h, "/api/init-random", map[string]any{})
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode[initRandomResponse](t, rec)
	assert.Equal(t, "ok", resp.Status)
	assert.Len(t, resp.Graph.Vertices, defaultVertices)
	assert.Len(t, resp.Graph.Snapshots, defaultSnapshots)
	assert.Equal(t, defaultSnapshots, resp.Graph.Lifetime)
}

func TestInitRandomClampsParameters(t *testing.T) {
	h := newTestHandler()
	rec := post(t, h, "/api/init-random", map[string]any{
		"num_nodes":     100,
		"num_snapshots": 50,
		"edge_prob":     2.0,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode[initRandomResponse](t, rec)
	assert.Len(t, resp.Graph.Vertices, maxVertices)
	assert.Len(t, resp.Graph.Snapshots, maxSnapshots)
	// edge_prob clamps to 1: every snapshot is the complete graph.
	complete := maxVertices * (maxVertices - 1) / 2
	for _, snapshot := range resp.Graph.Snapshots {
		assert.Len(t, snapshot, complete)
	}
}

func TestDifferentialEndpoint(t *testing.T) {
	h := newTestHandler()
	rec := post(t, h, "/api/differential", map[string]any{
		"graph": scenarioDocument(t),
		"t":     0,
		"delta": 2,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	doc := decode[temporalgraph.ExpansionDocument](t, rec)
	assert.Equal(t, temporalgraph.Summary{NumNodes: 8, NumBlackEdges: 4, NumRedEdges: 4}, doc.Stats)
	assert.Len(t, doc.Nodes, 8)
	assert.Len(t, doc.Edges, 8)
}

func TestDifferentialRequiresGraph(t *testing.T) {
	h := newTestHandler()
	rec := post(t, h, "/api/differential", map[string]any{"t": 0, "delta": 1})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	resp := decode[map[string]string](t, rec)
	assert.Contains(t, resp["error"], "graph")
}

func TestDifferentialRejectsInvalidWindow(t *testing.T) {
	h := newTestHandler()
	rec := post(t, h, "/api/differential", map[string]any{
		"graph": scenarioDocument(t),
		"t":     1,
		"delta": 2,
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	resp := decode[map[string]string](t, rec)
	assert.Contains(t, resp["error"], "invalid window")
}

func TestStaticExpansionEndpoint(t *testing.T) {
	h := newTestHandler()
	rec := post(t, h, "/api/static-expansion", map[string]any{"graph": scenarioDocument(t)})
	require.Equal(t, http.StatusOK, rec.Code)

	doc := decode[temporalgraph.ExpansionDocument](t, rec)
	assert.Equal(t, temporalgraph.Summary{NumNodes: 8, NumBlackEdges: 4, NumRedEdges: 4}, doc.Stats)
}

func TestAnalyzeEndpoint(t *testing.T) {
	h := newTestHandler()
	rec := post(t, h, "/api/analyze", map[string]any{
		"graph": scenarioDocument(t),
		"t":     0,
		"delta": 2,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode[analyzeResponse](t, rec)
	assert.Equal(t, 2, resp.Lifetime)
	assert.Equal(t, 4, resp.NumVertices)
	assert.Equal(t, []int{2, 2}, resp.EdgeCountsPerSnapshot)
	assert.Equal(t, 3, resp.UnionGraphEdgeCount)
	assert.Equal(t, len(resp.EternalTwins), resp.NumEternalTwins)
	require.Len(t, resp.DtwPerT, 1)
	assert.Equal(t, resp.DtwDelta, resp.DtwPerT[0][1])
	assert.NotEmpty(t, resp.TwMode)
}

func TestAnalyzeRejectsInvalidGraph(t *testing.T) {
	h := newTestHandler()
	doc := temporalgraph.Document{
		Vertices:  []int{0, 1},
		Snapshots: [][][2]int{{{1, 1}}},
		Lifetime:  1,
	}
	rec := post(t, h, "/api/analyze", map[string]any{"graph": doc, "t": 0, "delta": 1})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	resp := decode[map[string]string](t, rec)
	assert.Contains(t, resp["error"], "self-loop")
}

func TestEndpointsRejectNonPost(t *testing.T) {
	h := newTestHandler()
	req := httptest.NewRequest(http.MethodGet, "/api/analyze", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
