package jetflow

import (
	"context"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jetflow-ml/jetflow/event"
	"github.com/jetflow-ml/jetflow/rank"
)

// randomDataset builds a deterministic pseudo-random dataset where roughly a
// quarter of the slots are zero-pt padding.
func randomDataset(t *testing.T, numEvents, numParticles, featureDim int) *event.Dataset {
	t.Helper()
	rng := rand.New(rand.NewSource(42))
	data := make([]float32, numEvents*numParticles*featureDim)
	for i := 0; i < len(data); i += featureDim {
		if rng.Intn(4) == 0 {
			continue // padding slot
		}
		data[i+event.FeaturePt] = rng.Float32() * 100
		data[i+event.FeatureEta] = (rng.Float32() - 0.5) * 5
		data[i+event.FeaturePhi] = (rng.Float32() - 0.5) * 2 * math.Pi
		for f := event.MinFeatureDim; f < featureDim; f++ {
			data[i+f] = rng.Float32()
		}
	}
	ds, err := event.NewDataset(data, numEvents, numParticles, featureDim)
	require.NoError(t, err)
	return ds
}

func TestReorderByPt(t *testing.T) {
	ds, err := event.NewDataset([]float32{
		5, 0.1, 0.2,
		2, 0.3, 0.4,
		8, 0.5, 0.6,
	}, 1, 3, 3)
	require.NoError(t, err)

	eng, err := SortBy(rank.SortByPt).Particles(3).Build()
	require.NoError(t, err)

	out, err := eng.Reorder(context.Background(), ds)
	require.NoError(t, err)

	assert.Equal(t, []float32{
		8, 0.5, 0.6,
		5, 0.1, 0.2,
		2, 0.3, 0.4,
	}, out.Data())
	// Input is untouched.
	assert.InDelta(t, 5, ds.Event(0).Pt(0), 1e-6)
}

func TestReorderClusterMergesNearbyPair(t *testing.T) {
	ds, err := event.NewDataset([]float32{
		10, 0, 0, 1,
		20, 0, 0.3, 2,
	}, 1, 2, 4)
	require.NoError(t, err)

	eng, err := Cluster(0.4).Particles(2).Build()
	require.NoError(t, err)

	out, err := eng.Reorder(context.Background(), ds)
	require.NoError(t, err)

	// Both particles fall into one jet, join order preserved: the
	// permutation is the identity and payload rides along.
	assert.Equal(t, ds.Data(), out.Data())
}

func TestReorderClusterSeparatesAndRanksJets(t *testing.T) {
	// Two well-separated particles: each is its own jet, ordered by
	// descending jet pt.
	ds, err := event.NewDataset([]float32{
		10, 0, 0,
		20, 0, 3.0,
	}, 1, 2, 3)
	require.NoError(t, err)

	eng, err := Cluster(0.4).Particles(2).Build()
	require.NoError(t, err)

	out, err := eng.Reorder(context.Background(), ds)
	require.NoError(t, err)

	assert.Equal(t, []float32{
		20, 0, 3.0,
		10, 0, 0,
	}, out.Data())
}

func TestReorderChunkingInvariance(t *testing.T) {
	ds := randomDataset(t, 37, 16, 5)

	for _, mode := range []rank.SortMode{rank.SortByPt, rank.SortByCluster} {
		t.Run(mode.String(), func(t *testing.T) {
			whole, err := SortBy(mode).Particles(16).ChunkSize(37).Build()
			require.NoError(t, err)
			tiny, err := SortBy(mode).Particles(16).ChunkSize(1).Build()
			require.NoError(t, err)

			a, err := whole.Reorder(context.Background(), ds)
			require.NoError(t, err)
			b, err := tiny.Reorder(context.Background(), ds)
			require.NoError(t, err)

			assert.Equal(t, a.Data(), b.Data())
		})
	}
}

func TestReorderWorkerInvariance(t *testing.T) {
	ds := randomDataset(t, 64, 24, 4)

	seq, err := Cluster(0.6).Particles(24).Workers(1).Build()
	require.NoError(t, err)
	par, err := Cluster(0.6).Particles(24).Workers(8).ChunkSize(16).Build()
	require.NoError(t, err)

	a, err := seq.Reorder(context.Background(), ds)
	require.NoError(t, err)
	b, err := par.Reorder(context.Background(), ds)
	require.NoError(t, err)

	assert.Equal(t, a.Data(), b.Data())
}

func TestReorderDeterminism(t *testing.T) {
	ds := randomDataset(t, 20, 12, 3)

	eng, err := Cluster(0.4).Particles(12).Workers(4).Build()
	require.NoError(t, err)

	a, err := eng.Reorder(context.Background(), ds)
	require.NoError(t, err)
	b, err := eng.Reorder(context.Background(), ds)
	require.NoError(t, err)

	assert.Equal(t, a.Data(), b.Data())
}

func TestReorderIsBijectionPerEvent(t *testing.T) {
	ds := randomDataset(t, 10, 8, 3)

	for _, mode := range []rank.SortMode{
		rank.SortByPt, rank.SortByEta, rank.SortByPhi,
		rank.SortByDeltaR, rank.SortByKt, rank.SortByCluster,
	} {
		t.Run(mode.String(), func(t *testing.T) {
			eng, err := SortBy(mode).Particles(8).Build()
			require.NoError(t, err)

			out, err := eng.Reorder(context.Background(), ds)
			require.NoError(t, err)

			// Every input row must appear exactly once per output event.
			for i := 0; i < ds.NumEvents(); i++ {
				src, dst := ds.Event(i), out.Event(i)
				matched := make([]bool, src.Len())
				for k := 0; k < dst.Len(); k++ {
					found := false
					for j := 0; j < src.Len(); j++ {
						if matched[j] {
							continue
						}
						if assert.ObjectsAreEqual(src.Row(j), dst.Row(k)) {
							matched[j] = true
							found = true
							break
						}
					}
					assert.True(t, found, "event %d: output row %d has no unmatched source row", i, k)
				}
			}
		})
	}
}

func TestReorderShapeMismatch(t *testing.T) {
	ds := randomDataset(t, 4, 8, 3)

	eng, err := SortBy(rank.SortByPt).Particles(16).Build()
	require.NoError(t, err)

	_, err = eng.Reorder(context.Background(), ds)
	var sm *event.ErrShapeMismatch
	require.ErrorAs(t, err, &sm)
	assert.Equal(t, 16, sm.Expected)
	assert.Equal(t, 8, sm.Actual)
}

func TestReorderIntoOutputFeatureMismatch(t *testing.T) {
	ds := randomDataset(t, 4, 8, 3)
	out := randomDataset(t, 4, 8, 5)

	eng, err := SortBy(rank.SortByPt).Particles(8).Build()
	require.NoError(t, err)

	err = eng.ReorderInto(context.Background(), ds, out)
	var sm *event.ErrShapeMismatch
	require.ErrorAs(t, err, &sm)
	assert.Equal(t, "output features", sm.Dim)
	assert.Equal(t, 3, sm.Expected)
	assert.Equal(t, 5, sm.Actual)
}

func TestReorderNilDataset(t *testing.T) {
	eng, err := SortBy(rank.SortByPt).Particles(8).Build()
	require.NoError(t, err)

	_, err = eng.Reorder(context.Background(), nil)
	require.ErrorIs(t, err, ErrNilDataset)
}

func TestReorderCanceledContext(t *testing.T) {
	ds := randomDataset(t, 100, 16, 3)

	eng, err := Cluster(0.4).Particles(16).ChunkSize(10).Build()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = eng.Reorder(ctx, ds)
	require.ErrorIs(t, err, context.Canceled)
}

func TestReorderMetrics(t *testing.T) {
	ds := randomDataset(t, 10, 8, 3)

	mc := &BasicMetricsCollector{}
	eng, err := Cluster(0.4).Particles(8).ChunkSize(4).Metrics(mc).Build()
	require.NoError(t, err)

	_, err = eng.Reorder(context.Background(), ds)
	require.NoError(t, err)

	assert.EqualValues(t, 1, mc.ReorderCount.Load())
	assert.EqualValues(t, 10, mc.ReorderEvents.Load())
	assert.EqualValues(t, 3, mc.ChunkCount.Load())
	assert.EqualValues(t, 10, mc.ClusteredEvents.Load())
	assert.GreaterOrEqual(t, mc.JetsProduced.Load(), int64(10))
	assert.Zero(t, mc.ReorderErrors.Load())
}
