// Package problem - validation of raw instance data.
//
// Stages (first failure wins, in this order):
//  1. node count sign,
//  2. quota signs and quota sum,
//  3. energy matrix shape (k rows of k columns),
//  4. edge endpoints in range.
//
// All helpers are side-effect free and return *ValidationError via invalidf.
package problem

// validateAll runs every stage over the raw inputs.
//
// Complexity: O(k² + |E|).
func validateAll(nodeCount int, quotas []int, energy [][]int64, edges []Edge) error {
	var err error

	if nodeCount < 0 {
		return invalidf(ErrNegativeNodeCount, -1, "node count %d", nodeCount)
	}
	if err = validateQuotas(nodeCount, quotas); err != nil {
		return err
	}
	if err = validateEnergy(len(quotas), energy); err != nil {
		return err
	}

	return validateEdges(nodeCount, edges)
}

// validateQuotas checks quota[i] ≥ 0 and Σ quota == nodeCount.
func validateQuotas(nodeCount int, quotas []int) error {
	var (
		i, q int
		sum  int
	)
	for i, q = range quotas {
		if q < 0 {
			return invalidf(ErrNegativeQuota, i, "quota %d", q)
		}
		sum += q
	}
	if sum != nodeCount {
		return invalidf(ErrQuotaSum, -1, "sum %d, node count %d", sum, nodeCount)
	}

	return nil
}

// validateEnergy checks that energy has exactly k rows of exactly k entries.
func validateEnergy(k int, energy [][]int64) error {
	if len(energy) != k {
		return invalidf(ErrEnergyShape, -1, "%d rows, want %d", len(energy), k)
	}

	var (
		i   int
		row []int64
	)
	for i, row = range energy {
		if len(row) != k {
			return invalidf(ErrEnergyShape, i, "%d columns, want %d", len(row), k)
		}
	}

	return nil
}

// validateEdges checks both endpoints of every edge against [0, nodeCount).
func validateEdges(nodeCount int, edges []Edge) error {
	var (
		i int
		e Edge
	)
	for i, e = range edges {
		if e.From < 0 || e.From >= nodeCount || e.To < 0 || e.To >= nodeCount {
			return invalidf(ErrEdgeOutOfRange, i, "edge (%d, %d), node count %d", e.From, e.To, nodeCount)
		}
	}

	return nil
}
