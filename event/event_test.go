package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDataset(t *testing.T) {
	tests := []struct {
		name                             string
		dataLen                          int
		numEvents, numParticles, featDim int
		wantErr                          bool
	}{
		{"Valid", 24, 2, 4, 3, false},
		{"Empty", 0, 0, 4, 3, false},
		{"BufferTooShort", 23, 2, 4, 3, true},
		{"BufferTooLong", 25, 2, 4, 3, true},
		{"FeatureDimTooSmall", 16, 2, 4, 2, true},
		{"ZeroParticles", 0, 2, 0, 3, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds, err := NewDataset(make([]float32, tt.dataLen), tt.numEvents, tt.numParticles, tt.featDim)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.numEvents, ds.NumEvents())
			assert.Equal(t, tt.numParticles, ds.NumParticles())
			assert.Equal(t, tt.featDim, ds.FeatureDim())
		})
	}
}

func TestEventAccessors(t *testing.T) {
	// One event, two particles, four features (pt, eta, phi, payload).
	data := []float32{
		10, 0.5, -1.0, 99,
		20, -0.25, 2.0, 42,
	}
	ds, err := NewDataset(data, 1, 2, 4)
	require.NoError(t, err)

	ev := ds.Event(0)
	assert.Equal(t, 2, ev.Len())
	assert.InDelta(t, 10, ev.Pt(0), 1e-6)
	assert.InDelta(t, 0.5, ev.Eta(0), 1e-6)
	assert.InDelta(t, -1.0, ev.Phi(0), 1e-6)
	assert.InDelta(t, 20, ev.Pt(1), 1e-6)
	assert.Equal(t, []float32{20, -0.25, 2.0, 42}, ev.Row(1))
}

func TestReorderCarriesPayload(t *testing.T) {
	data := []float32{
		1, 0, 0, 100,
		2, 0, 0, 200,
		3, 0, 0, 300,
	}
	src, err := NewDataset(data, 1, 3, 4)
	require.NoError(t, err)
	dst := NewLike(src)

	require.NoError(t, Reorder(dst.Event(0), src.Event(0), []int{2, 0, 1}))

	assert.Equal(t, []float32{
		3, 0, 0, 300,
		1, 0, 0, 100,
		2, 0, 0, 200,
	}, dst.Data())
}

func TestReorderLengthMismatch(t *testing.T) {
	ds, err := NewDataset(make([]float32, 9), 1, 3, 3)
	require.NoError(t, err)
	dst := NewLike(ds)

	err = Reorder(dst.Event(0), ds.Event(0), []int{0, 1})
	require.Error(t, err)

	var sm *ErrShapeMismatch
	require.ErrorAs(t, err, &sm)
	assert.Equal(t, 3, sm.Expected)
	assert.Equal(t, 2, sm.Actual)
}

func TestClone(t *testing.T) {
	ds, err := NewDataset([]float32{1, 2, 3, 4, 5, 6}, 1, 2, 3)
	require.NoError(t, err)

	c := ds.Clone()
	require.True(t, ds.SameShape(c))
	assert.Equal(t, ds.Data(), c.Data())

	c.Data()[0] = -1
	assert.NotEqual(t, ds.Data()[0], c.Data()[0])
}
