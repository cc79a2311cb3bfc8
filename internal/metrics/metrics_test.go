package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/orbitsim/internal/body"
	"github.com/san-kum/orbitsim/internal/engine"
)

func TestBodyCountAndMerges(t *testing.T) {
	count, merges, coll := NewBodyCount(), NewMerges(), NewCollisions()
	bodies := []body.Body{body.New(0, 0, 0, 0, 1), body.New(1, 0, 0, 0, 1)}

	rep := engine.Report{Pairs: 2}
	rep.Deleted = []int{3, 4}
	for _, m := range []interface {
		Observe([]body.Body, engine.Report, int)
	}{count, merges, coll} {
		m.Observe(bodies, engine.Report{}, 0)
		m.Observe(bodies[:1], rep, 1)
	}

	if count.Value() != 1 {
		t.Errorf("expected 1 body, got %g", count.Value())
	}
	if merges.Value() != 2 {
		t.Errorf("expected 2 merges, got %g", merges.Value())
	}
	if coll.Value() != 2 {
		t.Errorf("expected 2 collisions, got %g", coll.Value())
	}

	merges.Reset()
	if merges.Value() != 0 {
		t.Error("expected zero merges after reset")
	}
}

func TestKineticEnergy(t *testing.T) {
	m := NewKineticEnergy()
	if m.Value() != 0 {
		t.Error("expected zero before observations")
	}

	m.Observe([]body.Body{body.New(0, 0, 2, 0, 1)}, engine.Report{}, 0)
	m.Observe([]body.Body{body.New(0, 0, 0, 0, 1)}, engine.Report{}, 1)

	if math.Abs(m.Value()-1) > 1e-12 {
		t.Errorf("expected mean energy 1, got %g", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero energy after reset")
	}
}

func TestMassDrift(t *testing.T) {
	m := NewMassDrift()
	m.Observe([]body.Body{body.New(0, 0, 0, 0, 4), body.New(0, 0, 0, 0, 4)}, engine.Report{}, 0)
	m.Observe([]body.Body{body.New(0, 0, 0, 0, 8)}, engine.Report{}, 1)
	if m.Value() != 0 {
		t.Errorf("merge should conserve mass, drift %g", m.Value())
	}

	m.Observe([]body.Body{body.New(0, 0, 0, 0, 6)}, engine.Report{}, 2)
	if math.Abs(m.Value()-0.25) > 1e-12 {
		t.Errorf("expected drift 0.25, got %g", m.Value())
	}
}

func TestMomentumDrift(t *testing.T) {
	m := NewMomentumDrift()
	m.Observe([]body.Body{body.New(0, 0, 1, 0, 2)}, engine.Report{}, 0)
	m.Observe([]body.Body{body.New(0, 0, 1, 0, 2)}, engine.Report{}, 1)
	if m.Value() != 0 {
		t.Errorf("expected no drift, got %g", m.Value())
	}

	m.Observe([]body.Body{body.New(0, 0, 1, 2, 2)}, engine.Report{}, 2)
	if math.Abs(m.Value()-4) > 1e-12 {
		t.Errorf("expected drift 4, got %g", m.Value())
	}
}

func TestStability(t *testing.T) {
	m := NewStability(10)
	if m.Value() != 1 {
		t.Error("expected full stability before observations")
	}

	m.Observe([]body.Body{body.New(0, 0, 1, 0, 1)}, engine.Report{}, 0)
	m.Observe([]body.Body{body.New(0, 0, 20, 0, 1)}, engine.Report{}, 1)
	m.Observe([]body.Body{body.New(0, 0, math.NaN(), 0, 1)}, engine.Report{}, 2)
	m.Observe([]body.Body{body.New(0, 0, 3, 4, 1)}, engine.Report{}, 3)

	if m.Value() != 0.5 {
		t.Errorf("expected stability 0.5, got %g", m.Value())
	}
}

func TestStandardNames(t *testing.T) {
	seen := map[string]bool{}
	for _, m := range Standard(100) {
		if seen[m.Name()] {
			t.Errorf("duplicate metric %s", m.Name())
		}
		seen[m.Name()] = true
	}
	if len(seen) != 7 {
		t.Errorf("expected 7 metrics, got %d", len(seen))
	}
}
