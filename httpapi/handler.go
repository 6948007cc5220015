/*
Package httpapi exposes the temporalgraph engine over HTTP.

The engine itself owns only the content of the interchange documents; this
package owns their transport: request decoding and validation, mapping of the
engine's contract errors to 400 responses, and CORS for browser-rendered
clients.

Endpoints, all POST with JSON bodies:

	/api/init-random       generate a random temporal graph
	/api/differential      compute the windowed differential expansion
	/api/static-expansion  compute the full static expansion
	/api/analyze           run the combined analysis

Every request carries the full temporal-graph document, so the handlers work
correctly in stateless deployments.
*/
package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/rs/cors"

	temporalgraph "github.com/go-temporalgraph/go-temporalgraph"
)

// Request ceilings for generated graphs, keeping expansion sizes renderable.
const (
	maxVertices  = 30
	maxSnapshots = 20
)

// Generator defaults applied when the request omits a parameter.
const (
	defaultVertices  = 10
	defaultSnapshots = 5
	defaultEdgeProb  = 0.2
	defaultDelta     = 2
)

type handler struct {
	logger    *slog.Logger
	generator temporalgraph.Generator
}

// New returns the engine's HTTP boundary. Requests from the given CORS origins
// are allowed; an empty list allows all origins.
func New(logger *slog.Logger, origins []string) http.Handler {
	h := &handler{logger: logger}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/init-random", h.initRandom)
	mux.HandleFunc("POST /api/differential", h.differential)
	mux.HandleFunc("POST /api/static-expansion", h.staticExpansion)
	mux.HandleFunc("POST /api/analyze", h.analyze)

	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodPost},
		AllowedHeaders: []string{"Content-Type"},
	})
	return c.Handler(mux)
}

type initRandomRequest struct {
	NumNodes     *int     `json:"num_nodes"`
	NumSnapshots *int     `json:"num_snapshots"`
	EdgeProb     *float64 `json:"edge_prob"`
}

type initRandomResponse struct {
	Status string                 `json:"status"`
	Graph  temporalgraph.Document `json:"graph"`
}

func (h *handler) initRandom(w http.ResponseWriter, r *http.Request) {
	var req initRandomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.error(w, http.StatusBadRequest, fmt.Errorf("decode request: %w", err))
		return
	}

	n := clamp(orDefault(req.NumNodes, defaultVertices), 1, maxVertices)
	lifetime := clamp(orDefault(req.NumSnapshots, defaultSnapshots), 1, maxSnapshots)
	p := orDefault(req.EdgeProb, defaultEdgeProb)
	if p < 0 {
		p = 0
	} else if p > 1 {
		p = 1
	}

	graph, err := h.generator.Generate(n, lifetime, p)
	if err != nil {
		h.error(w, http.StatusBadRequest, err)
		return
	}
	h.json(w, initRandomResponse{Status: "ok", Graph: graph.Document()})
}

type windowedRequest struct {
	Graph *temporalgraph.Document `json:"graph"`
	T     *int                    `json:"t"`
	Delta *int                    `json:"delta"`
}

// graphOf decodes and validates the request's graph document. A missing graph
// field is a contract violation because the handlers are stateless.
func (req windowedRequest) graphOf() (temporalgraph.Graph, error) {
	if req.Graph == nil {
		return temporalgraph.Graph{}, errors.New("request must include 'graph' data")
	}
	return req.Graph.Graph()
}

func (h *handler) differential(w http.ResponseWriter, r *http.Request) {
	var req windowedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.error(w, http.StatusBadRequest, fmt.Errorf("decode request: %w", err))
		return
	}
	graph, err := req.graphOf()
	if err != nil {
		h.error(w, http.StatusBadRequest, err)
		return
	}

	window := temporalgraph.Window{T0: orDefault(req.T, 0), Delta: orDefault(req.Delta, defaultDelta)}
	expansion, err := temporalgraph.Expand(graph, window)
	if err != nil {
		h.error(w, http.StatusBadRequest, err)
		return
	}
	h.json(w, expansion.Document())
}

func (h *handler) staticExpansion(w http.ResponseWriter, r *http.Request) {
	var req windowedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.error(w, http.StatusBadRequest, fmt.Errorf("decode request: %w", err))
		return
	}
	graph, err := req.graphOf()
	if err != nil {
		h.error(w, http.StatusBadRequest, err)
		return
	}

	expansion, err := temporalgraph.ExpandFull(graph)
	if err != nil {
		h.error(w, http.StatusBadRequest, err)
		return
	}
	h.json(w, expansion.Document())
}

type twinRecord struct {
	U int `json:"u"`
	V int `json:"v"`
}

type analyzeResponse struct {
	EternalTwins          []twinRecord `json:"eternal_twins"`
	NumEternalTwins       int          `json:"num_eternal_twins"`
	MaxDegreeDifferential int          `json:"max_degree_differential"`
	TwCurrentDifferential int          `json:"tw_current_differential"`
	TwMode                string       `json:"tw_mode"`
	DtwDelta              int          `json:"dtw_delta"`
	DtwPerT               [][2]int     `json:"dtw_per_t"`
	Lifetime              int          `json:"lifetime"`
	NumVertices           int          `json:"num_vertices"`
	EdgeCountsPerSnapshot []int        `json:"edge_counts_per_snapshot"`
	UnionGraphEdgeCount   int          `json:"union_graph_edge_count"`
}

func (h *handler) analyze(w http.ResponseWriter, r *http.Request) {
	var req windowedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.error(w, http.StatusBadRequest, fmt.Errorf("decode request: %w", err))
		return
	}
	graph, err := req.graphOf()
	if err != nil {
		h.error(w, http.StatusBadRequest, err)
		return
	}

	analysis, err := temporalgraph.Analyze(r.Context(), graph, orDefault(req.T, 0), orDefault(req.Delta, defaultDelta))
	if err != nil {
		h.error(w, h.status(err), err)
		return
	}

	resp := analyzeResponse{
		EternalTwins:          make([]twinRecord, 0, len(analysis.Twins)),
		NumEternalTwins:       len(analysis.Twins),
		MaxDegreeDifferential: analysis.MaxDegree,
		TwCurrentDifferential: analysis.WindowReport.Width,
		TwMode:                string(analysis.WindowReport.Mode),
		DtwDelta:              analysis.Differential.Minimum,
		DtwPerT:               make([][2]int, 0, len(analysis.Differential.PerStart)),
		Lifetime:              analysis.Lifetime,
		NumVertices:           analysis.NumVertices,
		EdgeCountsPerSnapshot: analysis.EdgeCounts,
		UnionGraphEdgeCount:   analysis.UnionEdgeCount,
	}
	for _, twin := range analysis.Twins {
		resp.EternalTwins = append(resp.EternalTwins, twinRecord{U: twin.U, V: twin.V})
	}
	for _, ww := range analysis.Differential.PerStart {
		resp.DtwPerT = append(resp.DtwPerT, [2]int{ww.T0, ww.Width})
	}
	h.json(w, resp)
}

// status maps the engine's contract-violation errors to 400; anything else is
// unexpected and reported as 500.
func (h *handler) status(err error) int {
	var graphErr *temporalgraph.GraphError
	var windowErr *temporalgraph.WindowError
	var paramErr *temporalgraph.ParameterError
	if errors.As(err, &graphErr) || errors.As(err, &windowErr) || errors.As(err, &paramErr) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (h *handler) json(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("Couldn't encode response", slog.Any("error", err))
	}
}

func (h *handler) error(w http.ResponseWriter, status int, err error) {
	h.logger.Info("Request rejected", slog.Int("status", status), slog.Any("error", err))
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}

func orDefault[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
