// Package metrics implements sim.Metric over scene aggregates. Every metric
// treats its tick-0 observation as the reference state.
package metrics

import (
	"math"

	"github.com/san-kum/orbitsim/internal/body"
	"github.com/san-kum/orbitsim/internal/engine"
	"github.com/san-kum/orbitsim/internal/sim"
)

// Standard returns a fresh instance of every metric.
func Standard(speedLimit float64) []sim.Metric {
	return []sim.Metric{
		NewBodyCount(),
		NewCollisions(),
		NewMerges(),
		NewKineticEnergy(),
		NewMassDrift(),
		NewMomentumDrift(),
		NewStability(speedLimit),
	}
}

// BodyCount reports the population after the last observed tick.
type BodyCount struct {
	count int
}

func NewBodyCount() *BodyCount { return &BodyCount{} }

func (m *BodyCount) Name() string { return "bodies" }
func (m *BodyCount) Observe(bodies []body.Body, _ engine.Report, _ int) {
	m.count = len(bodies)
}
func (m *BodyCount) Value() float64 { return float64(m.count) }
func (m *BodyCount) Reset()         { m.count = 0 }

// Collisions counts detected overlapping pairs over the run.
type Collisions struct {
	pairs int
}

func NewCollisions() *Collisions { return &Collisions{} }

func (m *Collisions) Name() string { return "collisions" }
func (m *Collisions) Observe(_ []body.Body, rep engine.Report, _ int) {
	m.pairs += rep.Pairs
}
func (m *Collisions) Value() float64 { return float64(m.pairs) }
func (m *Collisions) Reset()         { m.pairs = 0 }

// Merges counts bodies deleted by the collision policy.
type Merges struct {
	deleted int
}

func NewMerges() *Merges { return &Merges{} }

func (m *Merges) Name() string { return "merges" }
func (m *Merges) Observe(_ []body.Body, rep engine.Report, _ int) {
	m.deleted += len(rep.Deleted)
}
func (m *Merges) Value() float64 { return float64(m.deleted) }
func (m *Merges) Reset()         { m.deleted = 0 }

// KineticEnergy is the mean kinetic energy across observations.
type KineticEnergy struct {
	total   float64
	samples int
}

func NewKineticEnergy() *KineticEnergy { return &KineticEnergy{} }

func (m *KineticEnergy) Name() string { return "kinetic_energy" }

func (m *KineticEnergy) Observe(bodies []body.Body, _ engine.Report, _ int) {
	m.total += body.KineticEnergy(bodies)
	m.samples++
}

func (m *KineticEnergy) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.total / float64(m.samples)
}

func (m *KineticEnergy) Reset() {
	m.total = 0
	m.samples = 0
}

// MassDrift is the largest relative change of total mass from the reference.
// Annihilating merges show up here.
type MassDrift struct {
	initial  float64
	maxDrift float64
	samples  int
}

func NewMassDrift() *MassDrift { return &MassDrift{} }

func (m *MassDrift) Name() string { return "mass_drift" }

func (m *MassDrift) Observe(bodies []body.Body, _ engine.Report, _ int) {
	mass := body.TotalMass(bodies)
	if m.samples == 0 {
		m.initial = mass
	}
	m.samples++
	if m.initial != 0 {
		m.maxDrift = math.Max(m.maxDrift, math.Abs(mass-m.initial)/math.Abs(m.initial))
	}
}

func (m *MassDrift) Value() float64 { return m.maxDrift }

func (m *MassDrift) Reset() {
	m.initial = 0
	m.maxDrift = 0
	m.samples = 0
}

// MomentumDrift is the largest magnitude of change in total momentum from the
// reference. Locked bodies pull without being pulled back, so scenes with
// locked bodies drift by construction.
type MomentumDrift struct {
	px, py   float64
	maxDrift float64
	samples  int
}

func NewMomentumDrift() *MomentumDrift { return &MomentumDrift{} }

func (m *MomentumDrift) Name() string { return "momentum_drift" }

func (m *MomentumDrift) Observe(bodies []body.Body, _ engine.Report, _ int) {
	px, py := body.Momentum(bodies)
	if m.samples == 0 {
		m.px, m.py = px, py
	}
	m.samples++
	m.maxDrift = math.Max(m.maxDrift, math.Hypot(px-m.px, py-m.py))
}

func (m *MomentumDrift) Value() float64 { return m.maxDrift }

func (m *MomentumDrift) Reset() {
	m.px, m.py = 0, 0
	m.maxDrift = 0
	m.samples = 0
}

// Stability is the fraction of observations in which no body exceeded the
// speed limit or left the finite range.
type Stability struct {
	threshold  float64
	violations int
	samples    int
}

func NewStability(threshold float64) *Stability {
	return &Stability{threshold: threshold}
}

func (m *Stability) Name() string { return "stability" }

func (m *Stability) Observe(bodies []body.Body, _ engine.Report, _ int) {
	m.samples++
	for i := range bodies {
		s := bodies[i].Speed()
		if math.IsNaN(s) || math.IsInf(s, 0) || s > m.threshold {
			m.violations++
			return
		}
	}
}

func (m *Stability) Value() float64 {
	if m.samples == 0 {
		return 1
	}
	return 1 - float64(m.violations)/float64(m.samples)
}

func (m *Stability) Reset() {
	m.violations = 0
	m.samples = 0
}
