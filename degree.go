package temporalgraph

// MaxDegree returns the maximum degree over all nodes of the expansion, where
// a node's degree counts both incident black edges and incident red edges in
// either direction. The maximum degree of an empty expansion is 0.
func (x Expansion) MaxDegree() int {
	max := 0
	for _, neighbours := range x.adjacency() {
		if len(neighbours) > max {
			max = len(neighbours)
		}
	}
	return max
}
