package event

import "fmt"

// Feature slot layout of a particle row.
const (
	FeaturePt  = 0
	FeatureEta = 1
	FeaturePhi = 2

	// MinFeatureDim is the smallest usable feature width: a row must at
	// least carry (pt, eta, phi).
	MinFeatureDim = 3
)

// ErrShapeMismatch indicates that a declared dimension does not match the
// actual data.
type ErrShapeMismatch struct {
	Dim      string
	Expected int
	Actual   int
}

func (e *ErrShapeMismatch) Error() string {
	return fmt.Sprintf("shape mismatch: %s expected %d, got %d", e.Dim, e.Expected, e.Actual)
}

// ErrInvalidShape indicates a dataset shape that cannot hold events.
type ErrInvalidShape struct {
	NumEvents    int
	NumParticles int
	FeatureDim   int
}

func (e *ErrInvalidShape) Error() string {
	return fmt.Sprintf("invalid dataset shape (%d, %d, %d)", e.NumEvents, e.NumParticles, e.FeatureDim)
}

// Dataset is a fixed-shape batch of events backed by a single flat buffer in
// C order: data[(e*numParticles+p)*featureDim+f].
type Dataset struct {
	data         []float32
	numEvents    int
	numParticles int
	featureDim   int
}

// NewDataset wraps data as a dataset of the given shape. The buffer is not
// copied. The shape must multiply out to len(data) exactly and featureDim
// must be at least MinFeatureDim.
func NewDataset(data []float32, numEvents, numParticles, featureDim int) (*Dataset, error) {
	if numEvents < 0 || numParticles <= 0 || featureDim < MinFeatureDim {
		return nil, &ErrInvalidShape{NumEvents: numEvents, NumParticles: numParticles, FeatureDim: featureDim}
	}
	want := numEvents * numParticles * featureDim
	if len(data) != want {
		return nil, &ErrShapeMismatch{Dim: "buffer length", Expected: want, Actual: len(data)}
	}
	return &Dataset{
		data:         data,
		numEvents:    numEvents,
		numParticles: numParticles,
		featureDim:   featureDim,
	}, nil
}

// NewLike returns a zero-filled dataset with the same shape as d.
func NewLike(d *Dataset) *Dataset {
	return &Dataset{
		data:         make([]float32, len(d.data)),
		numEvents:    d.numEvents,
		numParticles: d.numParticles,
		featureDim:   d.featureDim,
	}
}

// Clone returns a deep copy of d.
func (d *Dataset) Clone() *Dataset {
	c := NewLike(d)
	copy(c.data, d.data)
	return c
}

// NumEvents returns the number of events in the dataset.
func (d *Dataset) NumEvents() int { return d.numEvents }

// NumParticles returns the number of particle slots per event.
func (d *Dataset) NumParticles() int { return d.numParticles }

// FeatureDim returns the number of features per particle.
func (d *Dataset) FeatureDim() int { return d.featureDim }

// Data returns the backing buffer. Mutating it mutates the dataset.
func (d *Dataset) Data() []float32 { return d.data }

// Event returns a view of event i. The view shares the dataset's buffer.
func (d *Dataset) Event(i int) Event {
	stride := d.numParticles * d.featureDim
	return Event{
		data:         d.data[i*stride : (i+1)*stride : (i+1)*stride],
		numParticles: d.numParticles,
		featureDim:   d.featureDim,
	}
}

// SameShape reports whether d and o have identical dimensions.
func (d *Dataset) SameShape(o *Dataset) bool {
	return d.numEvents == o.numEvents &&
		d.numParticles == o.numParticles &&
		d.featureDim == o.featureDim
}

// Event is a view of one event's particle rows.
type Event struct {
	data         []float32
	numParticles int
	featureDim   int
}

// Len returns the number of particle slots.
func (e Event) Len() int { return e.numParticles }

// FeatureDim returns the number of features per particle.
func (e Event) FeatureDim() int { return e.featureDim }

// Pt returns the transverse momentum of particle slot j.
func (e Event) Pt(j int) float64 {
	return float64(e.data[j*e.featureDim+FeaturePt])
}

// Eta returns the pseudorapidity of particle slot j.
func (e Event) Eta(j int) float64 {
	return float64(e.data[j*e.featureDim+FeatureEta])
}

// Phi returns the azimuthal angle of particle slot j.
func (e Event) Phi(j int) float64 {
	return float64(e.data[j*e.featureDim+FeaturePhi])
}

// Row returns the full feature row of particle slot j, including opaque
// payload slots. The slice aliases the dataset buffer.
func (e Event) Row(j int) []float32 {
	off := j * e.featureDim
	return e.data[off : off+e.featureDim : off+e.featureDim]
}

// Reorder copies src's particle rows into dst following perm: row k of dst
// becomes row perm[k] of src. dst and src must have the same shape and perm
// must have one entry per particle slot.
func Reorder(dst, src Event, perm []int) error {
	if dst.numParticles != src.numParticles || dst.featureDim != src.featureDim {
		return &ErrShapeMismatch{Dim: "event", Expected: src.numParticles * src.featureDim, Actual: dst.numParticles * dst.featureDim}
	}
	if len(perm) != src.numParticles {
		return &ErrShapeMismatch{Dim: "permutation length", Expected: src.numParticles, Actual: len(perm)}
	}
	for k, j := range perm {
		copy(dst.Row(k), src.Row(j))
	}
	return nil
}
