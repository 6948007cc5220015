package temporalgraph

import "gonum.org/v1/gonum/stat/combin"

// A TwinPair is an unordered pair of distinct vertices that are eternal twins:
// structurally indistinguishable in every snapshot of the temporal graph's
// full lifetime. U holds the smaller identifier.
type TwinPair struct {
	U, V int
}

// EternalTwins returns all eternal-twin pairs of g.
//
// Two vertices u and v are twins at time t iff their snapshot neighbourhoods,
// each with the other excluded, are identical: N_t(u)\{v} == N_t(v)\{u}. This
// holds whether or not {u,v} itself is an edge at t, since excluding the
// mutual edge collapses the closed and open readings to the same set. The
// pair is an eternal twin iff it is a twin at every t in [0, Lifetime()).
//
// The comparison is exact; an empty result is valid and common. A graph with
// no vertices yields an empty result, not an error.
func EternalTwins(g Graph) []TwinPair {
	if g.NumVertices() < 2 {
		return nil
	}

	hoods := make([]map[int]map[int]struct{}, g.Lifetime())
	for t := range hoods {
		hoods[t] = g.neighbourhoods(t)
	}

	var twins []TwinPair
	gen := combin.NewCombinationGenerator(g.NumVertices(), 2)
	pair := make([]int, 2)
	for gen.Next() {
		gen.Combination(pair)
		u, v := g.vertices[pair[0]], g.vertices[pair[1]]
		if eternalTwins(hoods, u, v) {
			if u > v {
				u, v = v, u
			}
			twins = append(twins, TwinPair{U: u, V: v})
		}
	}
	return twins
}

func eternalTwins(hoods []map[int]map[int]struct{}, u, v int) bool {
	for _, n := range hoods {
		if !twinsAt(n[u], n[v], u, v) {
			return false
		}
	}
	return true
}

// twinsAt reports whether nu\{v} equals nv\{u}. Both sets being empty after
// the exclusion trivially matches, so degree-0 vertices are twins of each
// other at that time.
func twinsAt(nu, nv map[int]struct{}, u, v int) bool {
	// The mutual edge is symmetric, so excluding it shrinks both sides alike
	// and a size comparison stays valid.
	if len(nu) != len(nv) {
		return false
	}
	for w := range nu {
		if w == v {
			continue
		}
		if _, ok := nv[w]; !ok {
			return false
		}
	}
	for w := range nv {
		if w == u {
			continue
		}
		if _, ok := nu[w]; !ok {
			return false
		}
	}
	return true
}
