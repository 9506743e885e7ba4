package jetflow

import "github.com/jetflow-ml/jetflow/rank"

// Defaults applied by the builder.
const (
	// DefaultRadius is the anti-kt clustering radius used when none is set.
	DefaultRadius = 0.4

	// DefaultChunkSize is the number of events processed per chunk.
	DefaultChunkSize = 1024

	// DefaultWorkers is the number of parallel workers per chunk. The
	// default of 1 gives strictly sequential reference behavior.
	DefaultWorkers = 1
)

type options struct {
	mode         rank.SortMode
	radius       float64
	chunkSize    int
	workers      int
	numParticles int
	logger       *Logger
	metrics      MetricsCollector
}

func defaultOptions(mode rank.SortMode) options {
	return options{
		mode:      mode,
		radius:    DefaultRadius,
		chunkSize: DefaultChunkSize,
		workers:   DefaultWorkers,
	}
}
