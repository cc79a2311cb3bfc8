package force

import (
	"github.com/san-kum/orbitsim/internal/body"
	"github.com/san-kum/orbitsim/internal/compute"
)

// DefaultParallelThreshold is the population above which Select prefers the
// parallel model.
const DefaultParallelThreshold = 512

// Model accumulates one tick of force-induced velocity deltas into bodies.
type Model interface {
	Name() string
	Apply(bodies []body.Body, p Params, mode body.Interaction)
}

// Select returns the parallel model when n exceeds threshold. A non-positive
// threshold always selects the scalar model.
func Select(n, threshold int, backend compute.Backend) Model {
	if threshold > 0 && n > threshold {
		return NewParallel(backend)
	}
	return Scalar{}
}

// Scalar walks pairs on the calling goroutine and applies both halves of each
// interaction at once.
type Scalar struct{}

func (Scalar) Name() string { return "scalar" }

func (Scalar) Apply(bodies []body.Body, p Params, mode body.Interaction) {
	n := len(bodies)
	if mode == body.ParentOnly {
		for i := range bodies {
			a := &bodies[i]
			if !a.HasParent(n) || a.Parent == i {
				continue
			}
			interact(a, &bodies[a.Parent], p)
		}
		return
	}

	for i := n - 1; i >= 0; i-- {
		for j := i - 1; j >= 0; j-- {
			interact(&bodies[i], &bodies[j], p)
		}
	}
}

func interact(a, b *body.Body, p Params) {
	if a.Locked && b.Locked {
		return
	}
	ax, ay, bx, by := Pair(a, b, p)
	if !a.Locked {
		a.VX += ax
		a.VY += ay
	}
	if !b.Locked {
		b.VX -= bx
		b.VY -= by
	}
}

// Parallel computes each body's delta independently as a one-sided sum over
// every other body, one kernel invocation per body.
type Parallel struct {
	backend compute.Backend
}

// NewParallel falls back to the process-wide backend when b is nil.
func NewParallel(b compute.Backend) *Parallel {
	if b == nil {
		b = compute.GetBackend()
	}
	return &Parallel{backend: b}
}

func (m *Parallel) Name() string { return "parallel/" + m.backend.Name() }

// Apply delegates to Scalar in ParentOnly mode, where each body has at most
// one partner.
func (m *Parallel) Apply(bodies []body.Body, p Params, mode body.Interaction) {
	if mode == body.ParentOnly {
		Scalar{}.Apply(bodies, p, mode)
		return
	}

	n := len(bodies)
	dvx := make([]float64, n)
	dvy := make([]float64, n)

	m.backend.Dispatch(n, func(i int) {
		a := &bodies[i]
		if a.Locked {
			return
		}
		var sx, sy float64
		for j := 0; j < n; j++ {
			if j == i {
				continue
			}
			b := &bodies[j]
			vx, vy := pull(a, b, p)
			sx += vx * b.Mass
			sy += vy * b.Mass
		}
		dvx[i] = sx
		dvy[i] = sy
	})

	for i := range bodies {
		bodies[i].VX += dvx[i]
		bodies[i].VY += dvy[i]
	}
}
