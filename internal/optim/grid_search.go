package optim

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/memespheres/internal/physics"
	"github.com/san-kum/memespheres/internal/sim"
)

// GridSearch tries every combination of the given physics constants and
// keeps the one that minimises a metric.
type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// Linspace returns n evenly spaced values from lo to hi inclusive.
func Linspace(lo, hi float64, n int) []float64 {
	if n <= 1 {
		return []float64{lo}
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = lo + (hi-lo)*float64(i)/float64(n-1)
	}
	return out
}

// Search runs cfg for every grid point on top of base. Points that fail
// validation or go unstable are skipped. It returns the best parameters, the
// metric value there and the number of points evaluated.
func (g *GridSearch) Search(
	ctx context.Context,
	base physics.Params,
	build sim.ParamsBuilder,
	cfg sim.RunConfig,
	metricName string,
) (map[string]float64, float64, int, error) {
	if len(g.paramNames) != len(g.ranges) {
		return nil, 0, 0, fmt.Errorf("grid: %d names for %d ranges", len(g.paramNames), len(g.ranges))
	}
	for _, name := range g.paramNames {
		if _, ok := base.GetParams()[name]; !ok {
			return nil, 0, 0, fmt.Errorf("grid: unknown param: %s", name)
		}
	}
	if err := cfg.Check(); err != nil {
		return nil, 0, 0, fmt.Errorf("grid: %w", err)
	}

	best := math.Inf(1)
	var bestParams map[string]float64
	evaluated := 0

	err := g.searchRecursive(ctx, 0, base, make(map[string]float64), build, cfg, metricName, &best, &bestParams, &evaluated)
	if err != nil {
		return bestParams, best, evaluated, err
	}
	if bestParams == nil {
		return nil, best, evaluated, fmt.Errorf("grid: no stable point reported %s", metricName)
	}
	return bestParams, best, evaluated, nil
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	base physics.Params,
	current map[string]float64,
	build sim.ParamsBuilder,
	cfg sim.RunConfig,
	metricName string,
	best *float64,
	bestParams *map[string]float64,
	evaluated *int,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if depth == len(g.paramNames) {
		p := base
		for k, v := range current {
			if err := p.SetParam(k, v); err != nil {
				return err
			}
		}
		if p.Validate() != nil {
			return nil
		}

		d, err := build(p)
		if err != nil {
			return err
		}
		result, err := d.Run(ctx, cfg)
		*evaluated++
		if err != nil {
			return ctx.Err()
		}

		val, ok := result.Metrics[metricName]
		if ok && val < *best {
			*best = val
			*bestParams = make(map[string]float64)
			for k, v := range current {
				(*bestParams)[k] = v
			}
		}
		return nil
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		newParams := make(map[string]float64)
		for k, v := range current {
			newParams[k] = v
		}
		newParams[paramName] = val

		if err := g.searchRecursive(ctx, depth+1, base, newParams, build, cfg, metricName, best, bestParams, evaluated); err != nil {
			return err
		}
	}
	return nil
}
