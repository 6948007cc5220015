package temporalgraph

import (
	"math/rand"

	"gonum.org/v1/gonum/stat/combin"
)

// A Generator produces synthetic temporal graphs for experimentation. Each
// snapshot is an independent Erdős–Rényi sample: every one of the C(n,2)
// vertex pairs is included with the configured probability.
//
// The zero value is ready to use and draws from the shared global source, with
// no determinism guarantee. Set Rand to a seeded source for reproducible
// output.
type Generator struct {
	Rand *rand.Rand
}

// NewSeededGenerator returns a Generator whose output is reproducible for the
// given seed.
func NewSeededGenerator(seed int64) Generator {
	return Generator{Rand: rand.New(rand.NewSource(seed))}
}

// Generate returns a temporal graph with vertices 0..n-1 and the given
// lifetime, sampling each snapshot independently with edge probability p.
//
// It fails with a *ParameterError when n < 1, lifetime < 1 or p is outside
// [0, 1].
func (gen Generator) Generate(n, lifetime int, p float64) (Graph, error) {
	if n < 1 {
		return Graph{}, &ParameterError{Field: "n", Value: n}
	}
	if lifetime < 1 {
		return Graph{}, &ParameterError{Field: "lifetime", Value: lifetime}
	}
	if p < 0 || p > 1 {
		return Graph{}, &ParameterError{Field: "p", Value: p}
	}

	vertices := make([]int, n)
	for v := range vertices {
		vertices[v] = v
	}

	snapshots := make([][]Edge, lifetime)
	pair := make([]int, 2)
	for t := range snapshots {
		pairs := combin.NewCombinationGenerator(n, 2)
		for pairs.Next() {
			pairs.Combination(pair)
			if gen.float() < p {
				snapshots[t] = append(snapshots[t], Edge{U: pair[0], V: pair[1]})
			}
		}
	}

	return New(vertices, snapshots)
}

func (gen Generator) float() float64 {
	if gen.Rand != nil {
		return gen.Rand.Float64()
	}
	return rand.Float64()
}
