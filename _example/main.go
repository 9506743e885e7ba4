// Command example reorders a training split with anti-kt clustering and
// writes the result next to the input.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"

	"github.com/jetflow-ml/jetflow"
	"github.com/jetflow-ml/jetflow/blobstore"
	"github.com/jetflow-ml/jetflow/dataset"
	"github.com/jetflow-ml/jetflow/rank"
	"github.com/jetflow-ml/jetflow/resource"
)

func main() {
	var (
		dataDir   = flag.String("data_dir", ".", "directory containing x_train_*.npy and y_train_*.npy")
		particles = flag.Int("num_particles", 64, "number of particle slots per event")
		sortBy    = flag.String("sort_by", "cluster", "pt|eta|phi|delta_R|kt|cluster")
		radius    = flag.Float64("cluster_R", 0.4, "anti-kt clustering radius")
		chunkSize = flag.Int("cluster_batch_size", 1024, "events per processing chunk")
		workers   = flag.Int("workers", 4, "parallel workers per chunk")
	)
	flag.Parse()

	ctx := context.Background()
	logger := jetflow.NewTextLogger(slog.LevelInfo)

	mode, err := rank.ParseSortMode(*sortBy)
	if err != nil {
		log.Fatal(err)
	}

	eng, err := jetflow.SortBy(mode).
		Radius(*radius).
		Particles(*particles).
		ChunkSize(*chunkSize).
		Workers(*workers).
		Logger(logger).
		Build()
	if err != nil {
		log.Fatal(err)
	}

	rc := resource.NewController(resource.Config{MaxConcurrentLoads: 2})
	loader := dataset.NewLoader(
		blobstore.NewLocalStore(*dataDir),
		dataset.WithResourceController(rc),
		dataset.WithLogger(logger.Logger),
	)

	x, _, yShape, err := loader.LoadSplit(ctx, *particles)
	if err != nil {
		log.Fatal(err)
	}
	logger.Info("loaded split", "events", x.NumEvents(), "label_shape", yShape)

	sorted, err := eng.Reorder(ctx, x)
	if err != nil {
		log.Fatal(err)
	}

	out := fmt.Sprintf("x_train_robust_%dconst_ptetaphi_%s.npy.zst", *particles, mode)
	if err := loader.SaveEvents(ctx, out, sorted); err != nil {
		log.Fatal(err)
	}
	logger.Info("wrote reordered split", "name", out)
}
