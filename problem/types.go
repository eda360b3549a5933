package problem

// Edge is one ordered edge entry (From → To) of the target graph.
// From == To is a legal self-loop.
type Edge struct {
	From int
	To   int
}

// Instance is a validated, immutable problem instance.
// Construct it with New; the zero value is an empty instance (t = 0, k = 0).
type Instance struct {
	nodeCount int
	atomCount int

	quota  []int
	energy []int64 // row-major k×k: energy[i*k+j] == Energy(i, j)
	edges  []Edge

	out [][]int // out[u] = targets of edge entries leaving u, in listed order
	in  [][]int // in[v]  = sources of edge entries entering v, in listed order
}
