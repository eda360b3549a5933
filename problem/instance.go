package problem

// New validates the raw instance data and builds an immutable Instance.
//
// Inputs are copied; later mutation of quotas, energy or edges by the caller
// does not affect the Instance. The number of atom types k is len(quotas).
//
// Errors: a *ValidationError matching ErrInvalidInstance and one reason
// sentinel (see errors.go).
//
// Complexity: O(k² + t + |E|) time and space.
func New(nodeCount int, quotas []int, energy [][]int64, edges []Edge) (*Instance, error) {
	if err := validateAll(nodeCount, quotas, energy, edges); err != nil {
		return nil, err
	}

	k := len(quotas)
	inst := &Instance{
		nodeCount: nodeCount,
		atomCount: k,
		quota:     make([]int, k),
		energy:    make([]int64, k*k),
		edges:     make([]Edge, len(edges)),
		out:       make([][]int, nodeCount),
		in:        make([][]int, nodeCount),
	}
	copy(inst.quota, quotas)
	copy(inst.edges, edges)

	var i int
	for i = 0; i < k; i++ {
		copy(inst.energy[i*k:(i+1)*k], energy[i])
	}

	// Degree pass first so adjacency rows are allocated exactly once.
	outDeg := make([]int, nodeCount)
	inDeg := make([]int, nodeCount)
	var e Edge
	for _, e = range edges {
		outDeg[e.From]++
		inDeg[e.To]++
	}
	for i = 0; i < nodeCount; i++ {
		inst.out[i] = make([]int, 0, outDeg[i])
		inst.in[i] = make([]int, 0, inDeg[i])
	}
	for _, e = range edges {
		inst.out[e.From] = append(inst.out[e.From], e.To)
		inst.in[e.To] = append(inst.in[e.To], e.From)
	}

	return inst, nil
}

// NodeCount returns t, the number of graph nodes.
func (p *Instance) NodeCount() int { return p.nodeCount }

// AtomCount returns k, the number of atom types.
func (p *Instance) AtomCount() int { return p.atomCount }

// EdgeCount returns the number of edge entries.
func (p *Instance) EdgeCount() int { return len(p.edges) }

// Quota returns the number of nodes that must receive atom type i.
func (p *Instance) Quota(i int) int { return p.quota[i] }

// Quotas returns a copy of the quota vector.
func (p *Instance) Quotas() []int {
	out := make([]int, len(p.quota))
	copy(out, p.quota)

	return out
}

// Energy returns the interaction energy of a type-i node adjacent to a
// type-j node through an edge entry i → j.
func (p *Instance) Energy(i, j int) int64 { return p.energy[i*p.atomCount+j] }

// EnergyRow returns row i of the energy matrix. The slice is shared with the
// Instance and must not be modified.
func (p *Instance) EnergyRow(i int) []int64 {
	return p.energy[i*p.atomCount : (i+1)*p.atomCount]
}

// Edges returns a copy of the edge list in input order.
func (p *Instance) Edges() []Edge {
	out := make([]Edge, len(p.edges))
	copy(out, p.edges)

	return out
}

// Neighbors returns the targets of the edge entries leaving node, in input
// order, duplicates preserved. The slice is shared and must not be modified.
func (p *Instance) Neighbors(node int) []int { return p.out[node] }

// InNeighbors returns the sources of the edge entries entering node.
// The slice is shared and must not be modified.
func (p *Instance) InNeighbors(node int) []int { return p.in[node] }

// Degree returns the number of edge entries incident to node in either
// direction; a self-loop counts twice.
func (p *Instance) Degree(node int) int { return len(p.out[node]) + len(p.in[node]) }
