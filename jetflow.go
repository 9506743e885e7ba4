package jetflow

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jetflow-ml/jetflow/cluster"
	"github.com/jetflow-ml/jetflow/event"
	"github.com/jetflow-ml/jetflow/rank"
)

// Engine reorders the particle sequences of event datasets. An Engine is
// immutable after Build and safe for concurrent use; per-event scratch
// storage lives in a pool so large batches do not allocate per event.
type Engine struct {
	opts    options
	logger  *Logger
	metrics MetricsCollector
	scratch sync.Pool
}

// eventScratch is the per-worker working state for one event at a time.
type eventScratch struct {
	ranker    *rank.Ranker
	clusterer *cluster.Clusterer
	assembler *cluster.Assembler
}

func newEngine(opts options) *Engine {
	e := &Engine{
		opts:    opts,
		logger:  opts.logger,
		metrics: opts.metrics,
	}
	e.scratch.New = func() any {
		s := &eventScratch{}
		if opts.mode == rank.SortByCluster {
			// Radius and particle count were validated at Build.
			s.clusterer, _ = cluster.NewClusterer(opts.radius, opts.numParticles)
			s.assembler = cluster.NewAssembler(opts.numParticles)
		} else {
			s.ranker = rank.NewRanker(opts.mode, opts.numParticles)
		}
		return s
	}
	return e
}

// Mode returns the engine's sort mode.
func (e *Engine) Mode() rank.SortMode { return e.opts.mode }

// Reorder returns a new dataset of identical shape with every event's
// particle rows permuted according to the engine's sort mode. ds is not
// modified. On error no output is returned; a chunk either completes in full
// or the run fails.
func (e *Engine) Reorder(ctx context.Context, ds *event.Dataset) (*event.Dataset, error) {
	if ds == nil {
		return nil, ErrNilDataset
	}
	out := event.NewLike(ds)
	if err := e.ReorderInto(ctx, ds, out); err != nil {
		return nil, err
	}
	return out, nil
}

// ReorderInto writes the reordered events into out, which must have the same
// shape as ds. ds and out must not share storage.
func (e *Engine) ReorderInto(ctx context.Context, ds, out *event.Dataset) error {
	start := time.Now()
	if err := e.validate(ds, out); err != nil {
		e.metrics.RecordReorder(0, time.Since(start), err)
		return err
	}

	numEvents := ds.NumEvents()
	e.logger.Info("reordering events",
		"mode", e.opts.mode.String(),
		"events", numEvents,
		"particles", e.opts.numParticles,
		"chunk_size", e.opts.chunkSize,
		"workers", e.opts.workers,
	)

	for lo := 0; lo < numEvents; lo += e.opts.chunkSize {
		hi := lo + e.opts.chunkSize
		if hi > numEvents {
			hi = numEvents
		}

		chunkStart := time.Now()
		if err := e.processChunk(ctx, ds, out, lo, hi); err != nil {
			e.metrics.RecordReorder(numEvents, time.Since(start), err)
			return err
		}
		e.metrics.RecordChunk(hi-lo, time.Since(chunkStart))
		e.logger.Debug("chunk complete", "start", lo, "end", hi)
	}

	e.metrics.RecordReorder(numEvents, time.Since(start), nil)
	return nil
}

func (e *Engine) validate(ds, out *event.Dataset) error {
	if ds == nil || out == nil {
		return ErrNilDataset
	}
	if ds.NumParticles() != e.opts.numParticles {
		return &event.ErrShapeMismatch{Dim: "particles", Expected: e.opts.numParticles, Actual: ds.NumParticles()}
	}
	if out.NumEvents() != ds.NumEvents() {
		return &event.ErrShapeMismatch{Dim: "output events", Expected: ds.NumEvents(), Actual: out.NumEvents()}
	}
	if out.NumParticles() != ds.NumParticles() {
		return &event.ErrShapeMismatch{Dim: "output particles", Expected: ds.NumParticles(), Actual: out.NumParticles()}
	}
	if out.FeatureDim() != ds.FeatureDim() {
		return &event.ErrShapeMismatch{Dim: "output features", Expected: ds.FeatureDim(), Actual: out.FeatureDim()}
	}
	return nil
}

// processChunk reorders events [lo, hi). Events are independent: each worker
// reads one input row and writes one output row, so parallelism cannot
// change results.
func (e *Engine) processChunk(ctx context.Context, ds, out *event.Dataset, lo, hi int) error {
	if e.opts.workers == 1 {
		for i := lo; i < hi; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := e.reorderEvent(ds.Event(i), out.Event(i)); err != nil {
				return fmt.Errorf("event %d: %w", i, err)
			}
		}
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.opts.workers)
	for i := lo; i < hi; i++ {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := e.reorderEvent(ds.Event(i), out.Event(i)); err != nil {
				return fmt.Errorf("event %d: %w", i, err)
			}
			return nil
		})
	}
	return g.Wait()
}

func (e *Engine) reorderEvent(src, dst event.Event) error {
	s := e.scratch.Get().(*eventScratch)
	defer e.scratch.Put(s)

	var perm []int
	var err error
	if e.opts.mode == rank.SortByCluster {
		var jets []cluster.Jet
		jets, err = s.clusterer.Cluster(src)
		if err != nil {
			return err
		}
		perm, err = s.assembler.Permutation(jets)
		if err != nil {
			return err
		}
		e.metrics.RecordClustering(len(jets))
	} else {
		perm, err = s.ranker.Rank(src)
		if err != nil {
			return err
		}
	}

	return event.Reorder(dst, src, perm)
}
