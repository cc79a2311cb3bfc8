package sim

import (
	"fmt"
	"math"

	"github.com/san-kum/orbitsim/internal/body"
	"github.com/san-kum/orbitsim/internal/engine"
)

// Metric accumulates a scalar over a run. Observe is called after every
// tick with the post-tick bodies.
type Metric interface {
	Name() string
	Observe(bodies []body.Body, rep engine.Report, tick int)
	Value() float64
	Reset()
}

type Observer interface {
	OnTick(bodies []body.Body, rep engine.Report, tick int)
}

type Config struct {
	Ticks  int
	Params engine.Params
	// SampleEvery records a Sample every n ticks; 0 records every tick.
	SampleEvery int
	// Focus is a body index followed through merges; body.NoParent for none.
	Focus int
	// ValidateState stops the run on the first non-finite body.
	ValidateState bool
	Seed          int64
}

// Sample is the aggregate scene state after one tick.
type Sample struct {
	Tick          int     `json:"tick"`
	Bodies        int     `json:"bodies"`
	Mass          float64 `json:"mass"`
	MomentumX     float64 `json:"momentum_x"`
	MomentumY     float64 `json:"momentum_y"`
	KineticEnergy float64 `json:"kinetic_energy"`
	Pairs         int     `json:"pairs"`
	Deleted       int     `json:"deleted"`
	Active        bool    `json:"active"`
}

func NewSample(tick int, bodies []body.Body, rep engine.Report) Sample {
	px, py := body.Momentum(bodies)
	return Sample{
		Tick:          tick,
		Bodies:        len(bodies),
		Mass:          body.TotalMass(bodies),
		MomentumX:     px,
		MomentumY:     py,
		KineticEnergy: body.KineticEnergy(bodies),
		Pairs:         rep.Pairs,
		Deleted:       len(rep.Deleted),
		Active:        rep.Active,
	}
}

type Result struct {
	Samples    []Sample
	Metrics    map[string]float64
	Final      []body.Body
	TicksTaken int
	Removed    int
	Focus      int
	Model      string
	Errors     []error
}

type SimError struct {
	Tick    int
	Body    int
	Message string
}

func (e SimError) Error() string {
	return fmt.Sprintf("sim: tick %d body %d: %s", e.Tick, e.Body, e.Message)
}

func finite(bodies []body.Body) int {
	for i := range bodies {
		b := &bodies[i]
		for _, v := range [...]float64{b.X, b.Y, b.VX, b.VY} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return i
			}
		}
	}
	return -1
}
