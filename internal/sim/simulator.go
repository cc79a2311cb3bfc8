package sim

import (
	"context"
	"errors"
	"fmt"

	"github.com/san-kum/orbitsim/internal/body"
	"github.com/san-kum/orbitsim/internal/engine"
)

var ErrNoTicks = errors.New("sim: tick count must be positive")

type Simulator struct {
	engine    *engine.Engine
	metrics   []Metric
	observers []Observer
}

func New(e *engine.Engine) *Simulator {
	return &Simulator{
		engine:    e,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (s *Simulator) Engine() *engine.Engine { return s.engine }

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Run ticks scene cfg.Ticks times. Cancellation is checked between ticks; the
// partial result is returned with ctx.Err().
func (s *Simulator) Run(ctx context.Context, scene body.Scene, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	if scene == nil {
		return nil, engine.ErrNilScene
	}

	every := cfg.SampleEvery
	if every <= 0 {
		every = 1
	}
	result := &Result{
		Samples: make([]Sample, 0, cfg.Ticks/every+1),
		Metrics: make(map[string]float64),
		Focus:   cfg.Focus,
	}

	initial := engine.Report{Active: true}
	for _, m := range s.metrics {
		m.Reset()
		m.Observe(scene.Bodies(), initial, 0)
	}
	result.Samples = append(result.Samples, NewSample(0, scene.Bodies(), initial))

	defer func() {
		result.Final = append([]body.Body(nil), scene.Bodies()...)
		for _, m := range s.metrics {
			result.Metrics[m.Name()] = m.Value()
		}
	}()

	for i := 1; i <= cfg.Ticks; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		rep, err := s.engine.Tick(scene, cfg.Params)
		if err != nil {
			return result, fmt.Errorf("sim: tick %d: %w", i, err)
		}
		result.TicksTaken++
		result.Model = rep.Model
		result.Removed += len(rep.Deleted)
		if len(rep.Deleted) > 0 {
			result.Focus = rep.Retarget(result.Focus)
		}

		bodies := scene.Bodies()
		for _, m := range s.metrics {
			m.Observe(bodies, rep, i)
		}
		for _, obs := range s.observers {
			obs.OnTick(bodies, rep, i)
		}
		if i%every == 0 || i == cfg.Ticks {
			result.Samples = append(result.Samples, NewSample(i, bodies, rep))
		}

		if cfg.ValidateState {
			if bad := finite(bodies); bad >= 0 {
				result.Errors = append(result.Errors, SimError{Tick: i, Body: bad, Message: "non-finite state"})
				break
			}
		}
	}

	return result, nil
}

func validateConfig(cfg Config) error {
	if cfg.Ticks <= 0 {
		return fmt.Errorf("%w, got %d", ErrNoTicks, cfg.Ticks)
	}
	return nil
}

// RunWithCallback ticks until callback returns false, ctx is cancelled or
// cfg.Ticks ticks have run. A non-positive cfg.Ticks runs without limit.
func (s *Simulator) RunWithCallback(ctx context.Context, scene body.Scene, cfg Config, callback func([]body.Body, engine.Report, int) bool) error {
	if scene == nil {
		return engine.ErrNilScene
	}
	for i := 1; cfg.Ticks <= 0 || i <= cfg.Ticks; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		rep, err := s.engine.Tick(scene, cfg.Params)
		if err != nil {
			return err
		}
		if !callback(scene.Bodies(), rep, i) {
			return nil
		}
		if cfg.ValidateState {
			if bad := finite(scene.Bodies()); bad >= 0 {
				return SimError{Tick: i, Body: bad, Message: "non-finite state"}
			}
		}
	}
	return nil
}
