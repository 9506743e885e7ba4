package rank

import (
	"fmt"
	"math"
	"slices"

	"github.com/jetflow-ml/jetflow/event"
)

// SortMode selects the per-particle ordering strategy.
type SortMode int

const (
	// SortByPt orders by transverse momentum.
	SortByPt SortMode = iota
	// SortByEta orders by pseudorapidity.
	SortByEta
	// SortByPhi orders by azimuthal angle.
	SortByPhi
	// SortByDeltaR orders by angular distance sqrt(eta² + phi²).
	SortByDeltaR
	// SortByKt orders by pt · sqrt(eta² + phi²).
	SortByKt
	// SortByCluster orders by anti-kt jet clustering. It is not a scalar
	// mode; a Ranker rejects it.
	SortByCluster
)

// ErrUnknownSortMode indicates a sort mode that is not supported.
type ErrUnknownSortMode struct {
	Mode string
}

func (e *ErrUnknownSortMode) Error() string {
	return fmt.Sprintf("unknown sort mode: %q", e.Mode)
}

// String returns the command-line spelling of the mode.
func (m SortMode) String() string {
	switch m {
	case SortByPt:
		return "pt"
	case SortByEta:
		return "eta"
	case SortByPhi:
		return "phi"
	case SortByDeltaR:
		return "delta_R"
	case SortByKt:
		return "kt"
	case SortByCluster:
		return "cluster"
	default:
		return fmt.Sprintf("SortMode(%d)", int(m))
	}
}

// Valid reports whether m is a supported mode.
func (m SortMode) Valid() bool {
	return m >= SortByPt && m <= SortByCluster
}

// IsScalar reports whether m is a simple scalar-key sort.
func (m SortMode) IsScalar() bool {
	return m.Valid() && m != SortByCluster
}

// ParseSortMode parses the command-line spelling of a sort mode.
func ParseSortMode(s string) (SortMode, error) {
	switch s {
	case "pt":
		return SortByPt, nil
	case "eta":
		return SortByEta, nil
	case "phi":
		return SortByPhi, nil
	case "delta_R":
		return SortByDeltaR, nil
	case "kt":
		return SortByKt, nil
	case "cluster":
		return SortByCluster, nil
	default:
		return 0, &ErrUnknownSortMode{Mode: s}
	}
}

// Ranker produces descending scalar-key permutations for events of a fixed
// particle count. Key and permutation buffers are reused across calls, so a
// Ranker is not safe for concurrent use; give each worker its own.
type Ranker struct {
	mode SortMode
	keys []float64
	perm []int
}

// NewRanker creates a Ranker for a scalar mode and particle count. The mode
// is checked at Rank time so misconfiguration surfaces as an error, not a
// panic.
func NewRanker(mode SortMode, numParticles int) *Ranker {
	return &Ranker{
		mode: mode,
		keys: make([]float64, numParticles),
		perm: make([]int, numParticles),
	}
}

// Rank returns the permutation that orders ev's particle slots by the
// ranker's key, descending, ties broken by original slot index ascending.
// The returned slice is owned by the Ranker and valid until the next call.
func (r *Ranker) Rank(ev event.Event) ([]int, error) {
	if !r.mode.IsScalar() {
		return nil, &ErrUnknownSortMode{Mode: r.mode.String()}
	}
	if ev.Len() != len(r.keys) {
		return nil, &event.ErrShapeMismatch{Dim: "particles", Expected: len(r.keys), Actual: ev.Len()}
	}

	for j := range r.keys {
		r.keys[j] = r.mode.key(ev, j)
		r.perm[j] = j
	}

	// Stable sort on a perm initialized in slot order makes the original
	// index the tie-break.
	slices.SortStableFunc(r.perm, func(a, b int) int {
		switch {
		case r.keys[a] > r.keys[b]:
			return -1
		case r.keys[a] < r.keys[b]:
			return 1
		default:
			return 0
		}
	})

	return r.perm, nil
}

func (m SortMode) key(ev event.Event, j int) float64 {
	switch m {
	case SortByPt:
		return ev.Pt(j)
	case SortByEta:
		return ev.Eta(j)
	case SortByPhi:
		return ev.Phi(j)
	case SortByDeltaR:
		return math.Hypot(ev.Eta(j), ev.Phi(j))
	case SortByKt:
		return ev.Pt(j) * math.Hypot(ev.Eta(j), ev.Phi(j))
	default:
		return 0
	}
}
