// Package integrate advances body positions from their accumulated
// velocities.
package integrate

import (
	"math"

	"github.com/san-kum/orbitsim/internal/body"
)

// NoBody marks the absence of a dragged body.
const NoBody = -1

// Damping returns the velocity multiplier applied for one tick of length dt.
type Damping func(dt float64) float64

// NoDamping keeps velocities unchanged.
func NoDamping(float64) float64 { return 1 }

// ResistanceDamping models a medium that removes fraction r of the velocity
// per unit of time.
func ResistanceDamping(r float64) Damping {
	if r == 0 {
		return NoDamping
	}
	return func(dt float64) float64 {
		return math.Pow(1-r, dt)
	}
}

type Params struct {
	TimeScale float64
	Damping   Damping
	Mode      body.Interaction
	// Dragged is owned by external input for this tick; NoBody disables it.
	Dragged int
}

type Integrator struct{}

func New() *Integrator {
	return &Integrator{}
}

// Step moves every free body and reports whether any body is still moving.
// In parent mode each body also inherits the velocity of every ancestor in
// its parent chain.
func (in *Integrator) Step(bodies []body.Body, p Params) bool {
	damp := p.Damping
	if damp == nil {
		damp = NoDamping
	}
	dt := p.TimeScale
	factor := damp(dt)
	n := len(bodies)

	active := false
	for i := range bodies {
		b := &bodies[i]
		switch {
		case i == p.Dragged:
			b.VX, b.VY = 0, 0
			continue
		case b.Locked:
			b.VX, b.VY = 0, 0
			continue
		}

		b.X += b.VX * dt
		b.Y += b.VY * dt
		b.VX *= factor
		b.VY *= factor

		if p.Mode == body.ParentOnly {
			inherit(bodies, i, n, dt)
		}
		if b.Moving() {
			active = true
		}
	}
	return active
}

func inherit(bodies []body.Body, i, n int, dt float64) {
	b := &bodies[i]
	// a chain longer than n must contain a cycle
	for hops, id := 0, b.Parent; hops < n; hops++ {
		if id < 0 || id >= n || id == i {
			return
		}
		a := &bodies[id]
		b.X += a.VX * dt
		b.Y += a.VY * dt
		id = a.Parent
	}
}
