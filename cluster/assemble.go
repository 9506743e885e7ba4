package cluster

import (
	"slices"

	"github.com/RoaringBitmap/roaring/v2"
)

// Assembler turns the jets of one event into a particle-slot permutation:
// jets ordered by transverse momentum descending, constituents within each
// jet in join order, any unassigned slots appended in ascending order.
// Scratch storage is reused across calls; not safe for concurrent use.
type Assembler struct {
	numParticles int
	seen         *roaring.Bitmap
	order        []int
	perps        []float64
	perm         []int
}

// NewAssembler creates an assembler for events with the given particle count.
func NewAssembler(numParticles int) *Assembler {
	return &Assembler{
		numParticles: numParticles,
		seen:         roaring.New(),
		order:        make([]int, 0, numParticles),
		perps:        make([]float64, 0, numParticles),
		perm:         make([]int, 0, numParticles),
	}
}

// Permutation assembles the slot permutation for one event's jets.
//
// A slot assigned to more than one jet is a fatal internal error, never
// deduplicated. Slots missing from every jet are appended in ascending
// order.
// The returned slice is owned by the Assembler and valid until the next call.
func (a *Assembler) Permutation(jets []Jet) ([]int, error) {
	a.order = a.order[:0]
	a.perps = a.perps[:0]
	for i := range jets {
		a.order = append(a.order, i)
		a.perps = append(a.perps, jets[i].Perp())
	}

	// Momentum descending; equal momenta resolve by the first constituent's
	// slot index so the ordering never depends on emission order.
	slices.SortStableFunc(a.order, func(x, y int) int {
		switch {
		case a.perps[x] > a.perps[y]:
			return -1
		case a.perps[x] < a.perps[y]:
			return 1
		default:
			return firstConstituent(jets[x]) - firstConstituent(jets[y])
		}
	})

	a.seen.Clear()
	a.perm = a.perm[:0]
	for _, ji := range a.order {
		for _, idx := range jets[ji].Constituents {
			if idx < 0 || idx >= a.numParticles {
				return nil, &ErrConstituentOutOfRange{Index: idx, Limit: a.numParticles}
			}
			if !a.seen.CheckedAdd(uint32(idx)) {
				return nil, &ErrDuplicateConstituent{Index: idx}
			}
			a.perm = append(a.perm, idx)
		}
	}

	if len(a.perm) < a.numParticles {
		for idx := 0; idx < a.numParticles; idx++ {
			if !a.seen.Contains(uint32(idx)) {
				a.perm = append(a.perm, idx)
			}
		}
	}

	return a.perm, nil
}

func firstConstituent(j Jet) int {
	if len(j.Constituents) == 0 {
		return -1
	}
	return j.Constituents[0]
}
