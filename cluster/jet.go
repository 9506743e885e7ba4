package cluster

import "github.com/jetflow-ml/jetflow/fourvec"

// Jet is a finalized cluster candidate removed from further merging.
type Jet struct {
	// P is the summed four-vector of the jet's constituents.
	P fourvec.Vec

	// Constituents holds the original particle slot indices in
	// first-merged-first order: the order in which they joined the jet,
	// not re-sorted.
	Constituents []int
}

// Perp returns the jet's transverse momentum.
func (j Jet) Perp() float64 {
	return j.P.Perp()
}
