package jetflow

import (
	"errors"
	"fmt"
)

var (
	// ErrNilDataset is returned when a nil dataset is passed to Reorder.
	ErrNilDataset = errors.New("dataset must not be nil")
)

// ErrInvalidChunkSize indicates a non-positive chunk size.
type ErrInvalidChunkSize struct {
	ChunkSize int
}

func (e *ErrInvalidChunkSize) Error() string {
	return fmt.Sprintf("invalid chunk size: %d (must be > 0)", e.ChunkSize)
}

// ErrInvalidWorkers indicates a non-positive worker count.
type ErrInvalidWorkers struct {
	Workers int
}

func (e *ErrInvalidWorkers) Error() string {
	return fmt.Sprintf("invalid worker count: %d (must be > 0)", e.Workers)
}

// ErrInvalidParticles indicates a missing or non-positive particle count.
type ErrInvalidParticles struct {
	Particles int
}

func (e *ErrInvalidParticles) Error() string {
	return fmt.Sprintf("invalid particle count: %d (must be > 0)", e.Particles)
}
