package cluster

import (
	"math"

	"github.com/jetflow-ml/jetflow/event"
	"github.com/jetflow-ml/jetflow/fourvec"
)

// candidate is one entry in the clusterer's working pool. Candidates are
// addressed by their slice index (a stable handle) and flagged inactive
// instead of being deleted, so merge bookkeeping never moves entries.
type candidate struct {
	p      fourvec.Vec
	eta    float64
	phi    float64
	invKt2 float64 // kt⁻²; +Inf for zero-momentum candidates
	active bool

	// constituents holds original slot indices in join order. The backing
	// array is reused across events.
	constituents []int
}

func (c *candidate) refresh() {
	c.eta = c.p.Eta()
	c.phi = c.p.Phi()
	perp2 := c.p.Perp2()
	if perp2 == 0 {
		c.invKt2 = math.Inf(1)
		return
	}
	c.invKt2 = 1 / perp2
}

// Clusterer runs anti-kt sequential recombination over one event at a time.
// All scratch storage is reused across calls, so a Clusterer is not safe for
// concurrent use; give each worker its own.
type Clusterer struct {
	radius2      float64
	numParticles int

	cands []candidate
	jets  []Jet
}

// NewClusterer creates a clusterer for the given radius and particle count.
func NewClusterer(radius float64, numParticles int) (*Clusterer, error) {
	if radius <= 0 {
		return nil, &ErrInvalidRadius{Radius: radius}
	}
	return &Clusterer{
		radius2:      radius * radius,
		numParticles: numParticles,
		// An event of n leaves produces at most 2n-1 candidates.
		cands: make([]candidate, 0, 2*numParticles),
		jets:  make([]Jet, 0, numParticles),
	}, nil
}

// Cluster partitions ev's particle slots into jets. Every slot index ends up
// in exactly one returned jet. The returned slice and the jets' constituent
// slices are owned by the Clusterer and valid until the next call.
func (c *Clusterer) Cluster(ev event.Event) ([]Jet, error) {
	if ev.Len() != c.numParticles {
		return nil, &event.ErrShapeMismatch{Dim: "particles", Expected: c.numParticles, Actual: ev.Len()}
	}

	c.reset(ev)

	for remaining := c.numParticles; remaining > 0; remaining-- {
		i, j := c.closest()
		if j >= 0 {
			c.merge(i, j)
		} else {
			c.finalize(i)
		}
	}

	return c.jets, nil
}

// reset refills the pool with one leaf candidate per particle slot.
func (c *Clusterer) reset(ev event.Event) {
	c.cands = c.cands[:0]
	c.jets = c.jets[:0]
	for j := 0; j < ev.Len(); j++ {
		cd := c.push()
		cd.p = fourvec.FromPtEtaPhi(ev.Pt(j), ev.Eta(j), ev.Phi(j))
		cd.active = true
		cd.constituents = append(cd.constituents, j)
		cd.refresh()
	}
}

// push extends the pool by one slot, reusing a retired entry's constituent
// backing array when the capacity allows.
func (c *Clusterer) push() *candidate {
	if len(c.cands) < cap(c.cands) {
		c.cands = c.cands[:len(c.cands)+1]
	} else {
		c.cands = append(c.cands, candidate{})
	}
	cd := &c.cands[len(c.cands)-1]
	cd.constituents = cd.constituents[:0]
	return cd
}

// closest returns the handles of the globally closest pair (i, j), or
// (i, -1) if candidate i's beam distance is the global minimum. Scans run in
// ascending handle order with a strict comparison, so ties resolve to the
// first pair encountered, and a pairwise tie with a beam distance resolves to
// the pair. If every distance is infinite (only zero-momentum candidates
// remain), the lowest active handle is finalized via its beam distance.
func (c *Clusterer) closest() (int, int) {
	bestI, bestJ := -1, -1
	best := math.Inf(1)

	for i := range c.cands {
		if !c.cands[i].active {
			continue
		}
		for j := i + 1; j < len(c.cands); j++ {
			if !c.cands[j].active {
				continue
			}
			if d := c.pairDistance(i, j); d < best {
				best, bestI, bestJ = d, i, j
			}
		}
	}

	for i := range c.cands {
		if !c.cands[i].active {
			continue
		}
		if d := c.cands[i].invKt2; d < best {
			best, bestI, bestJ = d, i, -1
		}
	}

	if bestI < 0 {
		for i := range c.cands {
			if c.cands[i].active {
				return i, -1
			}
		}
	}
	return bestI, bestJ
}

func (c *Clusterer) pairDistance(i, j int) float64 {
	ci, cj := &c.cands[i], &c.cands[j]
	// A zero-momentum candidate sits at the eta-phi origin, where a nearby
	// physical particle would see a finite distance through the other side's
	// kt⁻². It must never pair, so either side at +Inf makes the pair +Inf.
	// This also keeps coincident zero-momentum pairs at +Inf instead of NaN.
	if math.IsInf(ci.invKt2, 1) || math.IsInf(cj.invKt2, 1) {
		return math.Inf(1)
	}
	m := ci.invKt2
	if cj.invKt2 < m {
		m = cj.invKt2
	}
	return m * fourvec.DeltaR2(ci.eta, ci.phi, cj.eta, cj.phi) / c.radius2
}

// merge retires candidates i and j and inserts their combination, with i's
// constituents preceding j's.
func (c *Clusterer) merge(i, j int) {
	c.cands[i].active = false
	c.cands[j].active = false

	cd := c.push()
	// push may grow the slice; re-take the retired entries afterwards.
	ci, cj := &c.cands[i], &c.cands[j]
	cd.p = ci.p.Add(cj.p)
	cd.active = true
	cd.constituents = append(cd.constituents, ci.constituents...)
	cd.constituents = append(cd.constituents, cj.constituents...)
	cd.refresh()
}

// finalize retires candidate i and emits it as a jet.
func (c *Clusterer) finalize(i int) {
	cd := &c.cands[i]
	cd.active = false
	c.jets = append(c.jets, Jet{P: cd.p, Constituents: cd.constituents})
}
