package sim

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/orbitsim/internal/body"
	"github.com/san-kum/orbitsim/internal/compute"
	"github.com/san-kum/orbitsim/internal/engine"
)

// SceneFactory builds the initial scene for one ensemble member.
type SceneFactory func(seed int64) (body.Scene, error)

// Ensemble runs independent copies of a simulation with consecutive seeds.
type Ensemble struct {
	metrics   func() []Metric
	numRuns   int
	seedStart int64
}

// NewEnsemble takes a metrics constructor so that every run gets its own
// metric state.
func NewEnsemble(numRuns int, seedStart int64, metrics func() []Metric) *Ensemble {
	return &Ensemble{metrics: metrics, numRuns: numRuns, seedStart: seedStart}
}

// Run executes every member concurrently. Each member uses the serial
// backend so ensemble goroutines do not contend for the shared worker pool.
// The first failing member cancels the rest.
func (e *Ensemble) Run(ctx context.Context, build SceneFactory, cfg Config) ([]*Result, error) {
	results := make([]*Result, e.numRuns)

	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < e.numRuns; i++ {
		g.Go(func() error {
			seed := e.seedStart + int64(i)
			scene, err := build(seed)
			if err != nil {
				return err
			}

			cfgCopy := cfg
			cfgCopy.Seed = seed
			sim := New(engine.New(compute.Serial{}, seed))
			if e.metrics != nil {
				for _, m := range e.metrics() {
					sim.AddMetric(m)
				}
			}
			results[i], err = sim.Run(ctx, scene, cfgCopy)
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
