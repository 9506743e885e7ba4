package cluster

import "fmt"

// ErrInvalidRadius indicates a non-positive clustering radius.
type ErrInvalidRadius struct {
	Radius float64
}

func (e *ErrInvalidRadius) Error() string {
	return fmt.Sprintf("invalid clustering radius: %v (must be > 0)", e.Radius)
}

// ErrDuplicateConstituent indicates that a particle slot was assigned to more
// than one jet. This is an internal-consistency violation: it is never
// silently deduplicated, since dropped or doubled rows would corrupt the
// reordered output undetected.
type ErrDuplicateConstituent struct {
	Index int
}

func (e *ErrDuplicateConstituent) Error() string {
	return fmt.Sprintf("internal error: particle slot %d assigned to more than one jet", e.Index)
}

// ErrConstituentOutOfRange indicates a jet constituent index outside the
// event's slot range.
type ErrConstituentOutOfRange struct {
	Index int
	Limit int
}

func (e *ErrConstituentOutOfRange) Error() string {
	return fmt.Sprintf("internal error: constituent index %d outside [0, %d)", e.Index, e.Limit)
}
