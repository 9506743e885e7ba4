// This file implements the fluent builder API for creating and configuring
// ordering engines. Builders are immutable - each method returns a new
// builder with the updated configuration.
package jetflow

import (
	"github.com/jetflow-ml/jetflow/cluster"
	"github.com/jetflow-ml/jetflow/rank"
)

// SortBy creates a builder for the given sort mode.
//
// The builder is immutable - each method returns a new builder with the
// updated configuration. This ensures thread-safety and prevents accidental
// state sharing.
//
// Example:
//
//	eng, err := jetflow.SortBy(rank.SortByPt).
//	    Particles(64).
//	    Build()
func SortBy(mode rank.SortMode) Builder {
	return Builder{opts: defaultOptions(mode)}
}

// Cluster creates a builder for anti-kt clustering with the given radius.
// Shorthand for SortBy(rank.SortByCluster).Radius(radius).
func Cluster(radius float64) Builder {
	return SortBy(rank.SortByCluster).Radius(radius)
}

// Builder is an immutable fluent builder for creating ordering engines.
// Each method returns a new builder with the updated configuration.
type Builder struct {
	opts options
}

// Radius sets the anti-kt clustering radius R. Only meaningful for
// SortByCluster. Default: 0.4.
func (b Builder) Radius(r float64) Builder {
	b.opts.radius = r
	return b
}

// ChunkSize sets the number of events processed per chunk. Chunking bounds
// peak scratch memory on large batches; it has no effect on results.
// Default: 1024.
func (b Builder) ChunkSize(n int) Builder {
	b.opts.chunkSize = n
	return b
}

// Workers sets the number of parallel workers per chunk. Events are
// independent, so workers never affect results. Default: 1 (sequential).
func (b Builder) Workers(n int) Builder {
	b.opts.workers = n
	return b
}

// Particles declares the number of particle slots per event. Reorder rejects
// datasets whose second dimension does not match. Required.
func (b Builder) Particles(n int) Builder {
	b.opts.numParticles = n
	return b
}

// Logger sets the structured logger for operation tracing.
func (b Builder) Logger(l *Logger) Builder {
	b.opts.logger = l
	return b
}

// Metrics sets the metrics collector for monitoring.
func (b Builder) Metrics(mc MetricsCollector) Builder {
	b.opts.metrics = mc
	return b
}

// Build validates the configuration and creates the engine. All
// configuration errors surface here, before any data is processed.
func (b Builder) Build() (*Engine, error) {
	opts := b.opts

	if !opts.mode.Valid() {
		return nil, &rank.ErrUnknownSortMode{Mode: opts.mode.String()}
	}
	if opts.numParticles <= 0 {
		return nil, &ErrInvalidParticles{Particles: opts.numParticles}
	}
	if opts.chunkSize <= 0 {
		return nil, &ErrInvalidChunkSize{ChunkSize: opts.chunkSize}
	}
	if opts.workers <= 0 {
		return nil, &ErrInvalidWorkers{Workers: opts.workers}
	}
	if opts.mode == rank.SortByCluster && opts.radius <= 0 {
		return nil, &cluster.ErrInvalidRadius{Radius: opts.radius}
	}

	if opts.logger == nil {
		opts.logger = NoopLogger()
	}
	if opts.metrics == nil {
		opts.metrics = NoopMetricsCollector{}
	}

	return newEngine(opts), nil
}
