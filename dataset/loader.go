package dataset

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jetflow-ml/jetflow/blobstore"
	"github.com/jetflow-ml/jetflow/event"
	"github.com/jetflow-ml/jetflow/resource"
)

// XTrainName returns the conventional name of the training feature array for
// the given particle count.
func XTrainName(numParticles int) string {
	return fmt.Sprintf("x_train_robust_%dconst_ptetaphi.npy", numParticles)
}

// YTrainName returns the conventional name of the training label array for
// the given particle count.
func YTrainName(numParticles int) string {
	return fmt.Sprintf("y_train_robust_%dconst_ptetaphi.npy", numParticles)
}

// Loader reads and writes training arrays on a blob store.
type Loader struct {
	store  blobstore.BlobStore
	rc     *resource.Controller
	logger *slog.Logger
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithResourceController bounds the loader's concurrency and IO throughput.
func WithResourceController(rc *resource.Controller) LoaderOption {
	return func(l *Loader) { l.rc = rc }
}

// WithLogger sets the loader's structured logger.
func WithLogger(logger *slog.Logger) LoaderOption {
	return func(l *Loader) { l.logger = logger }
}

// NewLoader creates a loader over the given store.
func NewLoader(store blobstore.BlobStore, opts ...LoaderOption) *Loader {
	l := &Loader{
		store:  store,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// LoadArray reads the named NPY array. If name carries no compression
// extension, the plain name is tried first, then the ".zst" and ".lz4"
// variants.
func (l *Loader) LoadArray(ctx context.Context, name string) ([]float32, []int, error) {
	if err := l.rc.AcquireLoad(ctx); err != nil {
		return nil, nil, err
	}
	defer l.rc.ReleaseLoad()

	candidates := []string{name}
	if DetectCompression(name) == CompressionNone {
		candidates = append(candidates, name+CompressionZstd.Ext(), name+CompressionLZ4.Ext())
	}

	for _, cand := range candidates {
		data, shape, err := l.readOne(ctx, cand)
		if errors.Is(err, blobstore.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, nil, fmt.Errorf("load %s: %w", cand, err)
		}
		l.logger.Info("loaded array", "name", cand, "shape", shape)
		return data, shape, nil
	}
	return nil, nil, fmt.Errorf("%w: %s (tried %d variants)", blobstore.ErrNotFound, name, len(candidates))
}

func (l *Loader) readOne(ctx context.Context, name string) ([]float32, []int, error) {
	rd, err := l.store.Open(ctx, name)
	if err != nil {
		return nil, nil, err
	}
	defer rd.Close()

	plain, closeDec, err := DetectCompression(name).wrapReader(resource.NewRateLimitedReader(ctx, rd, l.rc))
	if err != nil {
		return nil, nil, err
	}
	defer closeDec()

	return ReadNPY(plain)
}

// LoadEvents reads the named array as an event dataset. The array must have
// three dimensions and its particle dimension must equal numParticles.
func (l *Loader) LoadEvents(ctx context.Context, name string, numParticles int) (*event.Dataset, error) {
	data, shape, err := l.LoadArray(ctx, name)
	if err != nil {
		return nil, err
	}
	if len(shape) != 3 {
		return nil, &event.ErrShapeMismatch{Dim: "array rank", Expected: 3, Actual: len(shape)}
	}
	if shape[1] != numParticles {
		return nil, &event.ErrShapeMismatch{Dim: "particles", Expected: numParticles, Actual: shape[1]}
	}
	return event.NewDataset(data, shape[0], shape[1], shape[2])
}

// LoadSplit reads the conventional x/y training pair for the given particle
// count. Labels may be a class vector (numEvents,) or a one-hot matrix
// (numEvents, numClasses); the label shape is returned with the data.
func (l *Loader) LoadSplit(ctx context.Context, numParticles int) (*event.Dataset, []float32, []int, error) {
	x, err := l.LoadEvents(ctx, XTrainName(numParticles), numParticles)
	if err != nil {
		return nil, nil, nil, err
	}

	y, yShape, err := l.LoadArray(ctx, YTrainName(numParticles))
	if err != nil {
		return nil, nil, nil, err
	}
	if len(yShape) != 1 && len(yShape) != 2 {
		return nil, nil, nil, &event.ErrShapeMismatch{Dim: "label rank", Expected: 2, Actual: len(yShape)}
	}
	if yShape[0] != x.NumEvents() {
		return nil, nil, nil, &event.ErrShapeMismatch{Dim: "labels", Expected: x.NumEvents(), Actual: yShape[0]}
	}
	return x, y, yShape, nil
}

// SaveArray writes data as an NPY array under name, compressed according to
// name's extension.
func (l *Loader) SaveArray(ctx context.Context, name string, data []float32, shape []int) error {
	if err := l.rc.AcquireLoad(ctx); err != nil {
		return err
	}
	defer l.rc.ReleaseLoad()

	var buf bytes.Buffer
	w, err := DetectCompression(name).wrapWriter(resource.NewRateLimitedWriter(ctx, &buf, l.rc))
	if err != nil {
		return err
	}
	if err := WriteNPY(w, data, shape); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}

	l.logger.Info("saving array", "name", name, "shape", shape, "bytes", buf.Len())
	return l.store.Put(ctx, name, buf.Bytes())
}

// SaveEvents writes a dataset under name with its three-dimensional shape.
func (l *Loader) SaveEvents(ctx context.Context, name string, ds *event.Dataset) error {
	return l.SaveArray(ctx, name, ds.Data(), []int{ds.NumEvents(), ds.NumParticles(), ds.FeatureDim()})
}
