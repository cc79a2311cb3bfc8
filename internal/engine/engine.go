package engine

import (
	"errors"
	"math/rand"

	"github.com/san-kum/orbitsim/internal/body"
	"github.com/san-kum/orbitsim/internal/collision"
	"github.com/san-kum/orbitsim/internal/compute"
	"github.com/san-kum/orbitsim/internal/force"
	"github.com/san-kum/orbitsim/internal/integrate"
)

var ErrNilScene = errors.New("engine: nil scene")

// Report is the per-tick output. The embedded Outcome lists bodies the
// collision policy deleted, with indices from before the deletion.
type Report struct {
	collision.Outcome
	Pairs  int
	Active bool
	// Model names the force model that ran, empty when none did.
	Model string
}

type Engine struct {
	backend    compute.Backend
	grid       *collision.Grid
	rng        *rand.Rand
	integrator *integrate.Integrator
}

// New returns an engine dispatching parallel force passes on backend. A nil
// backend uses the process-wide one.
func New(backend compute.Backend, seed int64) *Engine {
	if backend == nil {
		backend = compute.GetBackend()
	}
	return &Engine{
		backend:    backend,
		grid:       collision.NewGrid(),
		rng:        rand.New(rand.NewSource(seed)),
		integrator: integrate.New(),
	}
}

func (e *Engine) Backend() compute.Backend { return e.backend }

// Grid exposes the grid built during the last tick.
func (e *Engine) Grid() *collision.Grid { return e.grid }

// Tick advances scene by one step and mutates it in place. Scenes with
// fewer than two bodies skip collision and force but still integrate, so a
// lone body keeps drifting.
func (e *Engine) Tick(scene body.Scene, p Params) (Report, error) {
	if scene == nil {
		return Report{}, ErrNilScene
	}

	var rep Report
	bodies := scene.Bodies()
	if len(bodies) < 2 {
		rep.Active = e.integrator.Step(bodies, p.integrate(p.Dragged))
		return rep, nil
	}

	resolver := collision.NewResolver(p.Collision, p.Restitution, e.rng)
	step := collision.Step{Mode: p.Interaction, TimeScale: p.TimeScale, Dragged: p.Dragged}
	if p.Collision != collision.PolicyNone {
		e.grid.Build(bodies, p.CellSize)
		step.Pairs = e.grid.Pairs(bodies)
	}
	rep.Pairs = len(step.Pairs)

	rep.Outcome = resolver.PreStep(scene, step)
	dragged := p.Dragged
	if len(rep.Deleted) > 0 {
		dragged = rep.Retarget(dragged)
		step.Dragged = dragged
		// pair indices no longer match the shrunk scene
		step.Pairs = nil
	}

	bodies = scene.Bodies()
	if len(bodies) > 1 {
		model := force.Select(len(bodies), p.ParallelThreshold, e.backend)
		model.Apply(bodies, p.force(), p.Interaction)
		rep.Model = model.Name()
	}

	resolver.PostStep(scene, step)

	rep.Active = e.integrator.Step(scene.Bodies(), p.integrate(dragged))
	return rep, nil
}
