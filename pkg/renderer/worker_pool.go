package renderer

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/df07/go-diffuse-raytracer/pkg/imaging"
	"github.com/df07/go-diffuse-raytracer/pkg/log"
)

// WorkerPool renders tiles in parallel. Tiles have non-overlapping bounds,
// so workers write to the shared image without locking.
type WorkerPool struct {
	renderer   *TileRenderer
	numWorkers int
	seed       int64
	logger     log.Logger
}

// NewWorkerPool creates a worker pool with the specified number of workers
func NewWorkerPool(renderer *TileRenderer, numWorkers int, seed int64, logger log.Logger) *WorkerPool {
	if numWorkers < 1 {
		numWorkers = 1
	}
	if logger == nil {
		logger = log.New("renderer")
	}
	return &WorkerPool{
		renderer:   renderer,
		numWorkers: numWorkers,
		seed:       seed,
		logger:     logger,
	}
}

// NumWorkers returns the number of workers in the pool
func (wp *WorkerPool) NumWorkers() int {
	return wp.numWorkers
}

// Run renders every tile into img and returns the merged statistics. It
// stops early and returns the context error if ctx is cancelled.
func (wp *WorkerPool) Run(ctx context.Context, tiles []*Tile, img *imaging.Image) (RenderStats, error) {
	g, ctx := errgroup.WithContext(ctx)

	tasks := make(chan *Tile)
	results := make(chan RenderStats, len(tiles))

	g.Go(func() error {
		defer close(tasks)
		for _, tile := range tiles {
			select {
			case tasks <- tile:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	for w := 0; w < wp.numWorkers; w++ {
		workerID := w
		g.Go(func() error {
			for tile := range tasks {
				if err := ctx.Err(); err != nil {
					return err
				}
				stats := wp.renderer.RenderTileBounds(tile.Bounds, img, tile.Sampler(wp.seed))
				wp.logger.Debugf("worker %d finished tile %d %v", workerID, tile.ID, tile.Bounds)
				results <- stats
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return RenderStats{}, err
	}
	close(results)

	var stats RenderStats
	for tileStats := range results {
		stats.Merge(tileStats)
	}
	return stats, nil
}
