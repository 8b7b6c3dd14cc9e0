package sim

import (
	"context"

	"github.com/san-kum/memespheres/internal/physics"
	"golang.org/x/sync/errgroup"
)

// Builder creates an independent driver for one seed.
type Builder func(seed int64) (*Driver, error)

// Ensemble runs the same configuration over several seeds concurrently.
// Each run owns its driver, so no state is shared between goroutines.
type Ensemble struct {
	build     Builder
	numRuns   int
	seedStart int64
}

func NewEnsemble(build Builder, numRuns int, seedStart int64) *Ensemble {
	return &Ensemble{build: build, numRuns: numRuns, seedStart: seedStart}
}

func (e *Ensemble) Run(ctx context.Context, cfg RunConfig) ([]*Result, error) {
	results := make([]*Result, e.numRuns)

	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < e.numRuns; i++ {
		g.Go(func() error {
			d, err := e.build(e.seedStart + int64(i))
			if err != nil {
				return err
			}
			results[i], err = d.Run(ctx, cfg)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

// Mean averages a metric across results, skipping nil entries.
func Mean(results []*Result, name string) float64 {
	sum, n := 0.0, 0
	for _, r := range results {
		if r == nil {
			continue
		}
		if v, ok := r.Metrics[name]; ok {
			sum += v
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// ParamsBuilder creates a driver over a fresh scene with the given physics
// constants.
type ParamsBuilder func(p physics.Params) (*Driver, error)
