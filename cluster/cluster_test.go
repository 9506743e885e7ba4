package cluster

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jetflow-ml/jetflow/event"
)

func makeEvent(t *testing.T, rows ...[3]float32) event.Event {
	t.Helper()
	data := make([]float32, 0, len(rows)*3)
	for _, r := range rows {
		data = append(data, r[0], r[1], r[2])
	}
	ds, err := event.NewDataset(data, 1, len(rows), 3)
	require.NoError(t, err)
	return ds.Event(0)
}

func TestNewClustererInvalidRadius(t *testing.T) {
	for _, r := range []float64{0, -0.4} {
		_, err := NewClusterer(r, 8)
		var invalid *ErrInvalidRadius
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, r, invalid.Radius)
	}
}

func TestClusterNearbyPairMerges(t *testing.T) {
	// Two particles 0.3 apart in phi with R = 0.4: the pairwise distance
	// min(1/400, 1/100)·0.09/0.16 beats both beam distances, so they merge
	// into a single jet, harder particle's indices first-merged order
	// following the pair (i, j) handle order.
	c, err := NewClusterer(0.4, 2)
	require.NoError(t, err)

	jets, err := c.Cluster(makeEvent(t,
		[3]float32{10, 0, 0},
		[3]float32{20, 0, 0.3},
	))
	require.NoError(t, err)

	require.Len(t, jets, 1)
	assert.Equal(t, []int{0, 1}, jets[0].Constituents)
	assert.InDelta(t, 29.70, jets[0].Perp(), 0.01)
}

func TestClusterSeparatedParticlesStaySingle(t *testing.T) {
	// Well-separated particles never merge; each becomes its own jet via
	// its beam distance, hardest (smallest kt⁻²) first.
	c, err := NewClusterer(0.4, 3)
	require.NoError(t, err)

	jets, err := c.Cluster(makeEvent(t,
		[3]float32{10, 0, 0},
		[3]float32{20, 0, 3.0},
		[3]float32{5, 2.5, -1.5},
	))
	require.NoError(t, err)

	require.Len(t, jets, 3)
	assert.Equal(t, []int{1}, jets[0].Constituents)
	assert.Equal(t, []int{0}, jets[1].Constituents)
	assert.Equal(t, []int{2}, jets[2].Constituents)
}

func TestClusterTotality(t *testing.T) {
	c, err := NewClusterer(0.4, 6)
	require.NoError(t, err)

	jets, err := c.Cluster(makeEvent(t,
		[3]float32{31.4, 0.11, 0.25},
		[3]float32{12.8, 0.15, 0.30},
		[3]float32{8.9, -1.6, 2.9},
		[3]float32{4.4, -1.5, 3.1},
		[3]float32{2.2, 2.1, -2.0},
		[3]float32{0.7, 0.4, -0.9},
	))
	require.NoError(t, err)

	seen := make(map[int]int)
	for _, j := range jets {
		require.NotEmpty(t, j.Constituents)
		for _, idx := range j.Constituents {
			seen[idx]++
		}
	}
	require.Len(t, seen, 6)
	for idx, count := range seen {
		assert.Equal(t, 1, count, "slot %d", idx)
	}
}

func TestClusterPaddingNearOriginNeverMerges(t *testing.T) {
	// A zero-pt slot sits at the eta-phi origin. A physical particle within
	// R of the origin must still finalize via its beam distance rather than
	// pick up the padding slot through a finite pairwise distance.
	c, err := NewClusterer(0.4, 2)
	require.NoError(t, err)

	jets, err := c.Cluster(makeEvent(t,
		[3]float32{0, 0, 0},
		[3]float32{10, 0, 0.1},
	))
	require.NoError(t, err)

	require.Len(t, jets, 2)
	assert.Equal(t, []int{1}, jets[0].Constituents)
	assert.Equal(t, []int{0}, jets[1].Constituents)
	assert.InDelta(t, 10.0, jets[0].Perp(), 1e-9)
	assert.Zero(t, jets[1].Perp())
}

func TestClusterPaddingResolvedLast(t *testing.T) {
	// Zero-pt slots have infinite kt⁻² and infinite beam distance: they are
	// finalized only after every physical particle, each as its own jet,
	// lowest handle first.
	c, err := NewClusterer(0.4, 4)
	require.NoError(t, err)

	jets, err := c.Cluster(makeEvent(t,
		[3]float32{0, 0, 0},
		[3]float32{15, 0.2, 1.0},
		[3]float32{0, 0, 0},
		[3]float32{7, -1.8, -2.0},
	))
	require.NoError(t, err)

	require.Len(t, jets, 4)
	assert.Equal(t, []int{1}, jets[0].Constituents)
	assert.Equal(t, []int{3}, jets[1].Constituents)
	assert.Equal(t, []int{0}, jets[2].Constituents)
	assert.Equal(t, []int{2}, jets[3].Constituents)
	assert.Zero(t, jets[2].Perp())
	assert.Zero(t, jets[3].Perp())
}

func TestClusterAllPadding(t *testing.T) {
	// An event of only padding must still terminate and cover every slot.
	c, err := NewClusterer(0.4, 3)
	require.NoError(t, err)

	jets, err := c.Cluster(makeEvent(t,
		[3]float32{0, 0, 0},
		[3]float32{0, 0, 0},
		[3]float32{0, 0, 0},
	))
	require.NoError(t, err)

	require.Len(t, jets, 3)
	for i, j := range jets {
		assert.Equal(t, []int{i}, j.Constituents)
	}
}

func TestClusterDeterministicAcrossReuse(t *testing.T) {
	// The same clusterer, called twice on the same event, reuses its pool
	// but must produce identical jets.
	c, err := NewClusterer(0.8, 5)
	require.NoError(t, err)

	ev := makeEvent(t,
		[3]float32{22.1, 0.4, 0.1},
		[3]float32{18.0, 0.5, 0.4},
		[3]float32{3.3, -2.0, -2.8},
		[3]float32{1.1, -1.9, 3.0},
		[3]float32{0, 0, 0},
	)

	first, err := c.Cluster(ev)
	require.NoError(t, err)
	snapshot := make([][]int, len(first))
	perps := make([]float64, len(first))
	for i, j := range first {
		snapshot[i] = append([]int(nil), j.Constituents...)
		perps[i] = j.Perp()
	}

	second, err := c.Cluster(ev)
	require.NoError(t, err)
	require.Len(t, second, len(first))
	for i, j := range second {
		assert.Equal(t, snapshot[i], j.Constituents)
		assert.Equal(t, perps[i], j.Perp())
	}
}

func TestClusterShapeMismatch(t *testing.T) {
	c, err := NewClusterer(0.4, 5)
	require.NoError(t, err)

	_, err = c.Cluster(makeEvent(t, [3]float32{1, 0, 0}))
	var sm *event.ErrShapeMismatch
	require.ErrorAs(t, err, &sm)
	assert.Equal(t, 5, sm.Expected)
	assert.Equal(t, 1, sm.Actual)
}

func TestPairDistanceNeverNaN(t *testing.T) {
	// Coincident zero-momentum candidates would produce +Inf · 0 without
	// the guard in pairDistance.
	c, err := NewClusterer(0.4, 2)
	require.NoError(t, err)
	c.reset(makeEvent(t, [3]float32{0, 0, 0}, [3]float32{0, 0, 0}))

	d := c.pairDistance(0, 1)
	assert.True(t, math.IsInf(d, 1))
	assert.False(t, math.IsNaN(d))
}
