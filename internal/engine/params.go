package engine

import (
	"github.com/san-kum/orbitsim/internal/body"
	"github.com/san-kum/orbitsim/internal/collision"
	"github.com/san-kum/orbitsim/internal/force"
	"github.com/san-kum/orbitsim/internal/integrate"
)

// DefaultCellSize matches a typical viewport width.
const DefaultCellSize = 1024

// Params is the per-tick input. Values are not validated.
type Params struct {
	TimeScale    float64
	G            float64
	Law          force.Law
	Coefficients force.Coefficients

	Collision   collision.Policy
	Interaction body.Interaction
	CellSize    float64
	Restitution float64

	Damping integrate.Damping
	// Dragged is exempt from physics this tick; integrate.NoBody disables it.
	Dragged int

	// ParallelThreshold is the population above which the parallel force
	// model runs. Zero or negative keeps the scalar model.
	ParallelThreshold int
}

func DefaultParams() Params {
	return Params{
		TimeScale:         1,
		G:                 1,
		Law:               force.InverseCube,
		Coefficients:      force.DefaultCoefficients,
		Collision:         collision.PolicyMerge,
		Interaction:       body.AllPairs,
		CellSize:          DefaultCellSize,
		Restitution:       1,
		Damping:           integrate.NoDamping,
		Dragged:           integrate.NoBody,
		ParallelThreshold: force.DefaultParallelThreshold,
	}
}

func (p Params) force() force.Params {
	return force.Params{
		Law:          p.Law,
		Coefficients: p.Coefficients,
		TimeScale:    p.TimeScale,
		G:            p.G,
		OverlapRepel: p.Collision == collision.PolicyNone,
	}
}

func (p Params) integrate(dragged int) integrate.Params {
	return integrate.Params{
		TimeScale: p.TimeScale,
		Damping:   p.Damping,
		Mode:      p.Interaction,
		Dragged:   dragged,
	}
}
