package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/orbitsim/internal/body"
	"github.com/san-kum/orbitsim/internal/collision"
	"github.com/san-kum/orbitsim/internal/engine"
	"github.com/san-kum/orbitsim/internal/force"
	"github.com/san-kum/orbitsim/internal/integrate"
	"github.com/san-kum/orbitsim/internal/scenario"
)

const (
	DefaultScenario = "ring"
	DefaultBodies   = 32
	DefaultTicks    = 2000
	DefaultSpread   = 400.0
	DefaultCentral  = 400.0
	DefaultMass     = 4.0
	DefaultWidth    = 80
	DefaultHeight   = 24
	DefaultFPS      = 30
)

var ErrCoefficients = errors.New("config: coefficients must list one value per law")

type Config struct {
	Scenario    string        `yaml:"scenario"`
	Bodies      int           `yaml:"bodies"`
	Seed        int64         `yaml:"seed"`
	Ticks       int           `yaml:"ticks"`
	Spread      float64       `yaml:"spread"`
	CentralMass float64       `yaml:"central_mass"`
	BodyMass    float64       `yaml:"body_mass"`
	Physics     PhysicsConfig `yaml:"physics"`
	View        ViewConfig    `yaml:"view"`
}

type PhysicsConfig struct {
	TimeScale         float64   `yaml:"time_scale" json:"time_scale"`
	G                 float64   `yaml:"g" json:"g"`
	Law               string    `yaml:"law" json:"law"`
	Coefficients      []float64 `yaml:"coefficients,omitempty" json:"coefficients,omitempty"`
	Collision         string    `yaml:"collision" json:"collision"`
	Interaction       string    `yaml:"interaction" json:"interaction"`
	CellSize          float64   `yaml:"cell_size" json:"cell_size"`
	Restitution       float64   `yaml:"restitution" json:"restitution"`
	Resistance        float64   `yaml:"resistance" json:"resistance"`
	ParallelThreshold int       `yaml:"parallel_threshold" json:"parallel_threshold"`
}

type ViewConfig struct {
	Width  int     `yaml:"width"`
	Height int     `yaml:"height"`
	FPS    int     `yaml:"fps"`
	Zoom   float64 `yaml:"zoom"`
	Theme  string  `yaml:"theme"`
}

func DefaultPhysics() PhysicsConfig {
	return PhysicsConfig{
		TimeScale:         1,
		G:                 1,
		Law:               force.InverseCube.String(),
		Collision:         collision.PolicyMerge.String(),
		Interaction:       body.AllPairs.String(),
		CellSize:          engine.DefaultCellSize,
		Restitution:       1,
		ParallelThreshold: force.DefaultParallelThreshold,
	}
}

func DefaultConfig() *Config {
	return &Config{
		Scenario:    DefaultScenario,
		Bodies:      DefaultBodies,
		Seed:        1,
		Ticks:       DefaultTicks,
		Spread:      DefaultSpread,
		CentralMass: DefaultCentral,
		BodyMass:    DefaultMass,
		Physics:     DefaultPhysics(),
		View: ViewConfig{
			Width:  DefaultWidth,
			Height: DefaultHeight,
			FPS:    DefaultFPS,
			Zoom:   1,
			Theme:  "cyberpunk",
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// EngineParams resolves the named selectors into engine parameters.
func (p PhysicsConfig) EngineParams() (engine.Params, error) {
	params := engine.DefaultParams()
	params.TimeScale = p.TimeScale
	params.G = p.G
	params.CellSize = p.CellSize
	params.Restitution = p.Restitution
	params.ParallelThreshold = p.ParallelThreshold
	params.Damping = integrate.ResistanceDamping(p.Resistance)

	var err error
	if params.Law, err = force.ParseLaw(p.Law); err != nil {
		return params, fmt.Errorf("config: %w", err)
	}
	if params.Collision, err = collision.ParsePolicy(p.Collision); err != nil {
		return params, fmt.Errorf("config: %w", err)
	}
	if params.Interaction, err = body.ParseInteraction(p.Interaction); err != nil {
		return params, fmt.Errorf("config: %w", err)
	}

	switch len(p.Coefficients) {
	case 0:
	case len(params.Coefficients):
		copy(params.Coefficients[:], p.Coefficients)
	default:
		return params, fmt.Errorf("%w: got %d", ErrCoefficients, len(p.Coefficients))
	}
	return params, nil
}

// ScenarioOptions builds generator options consistent with the physics
// section so orbital speeds match the configured law.
func (c *Config) ScenarioOptions() (scenario.Options, error) {
	params, err := c.Physics.EngineParams()
	if err != nil {
		return scenario.Options{}, err
	}
	return scenario.Options{
		Bodies:      c.Bodies,
		Seed:        c.Seed,
		Spread:      c.Spread,
		CentralMass: c.CentralMass,
		BodyMass:    c.BodyMass,
		Force: force.Params{
			Law:          params.Law,
			Coefficients: params.Coefficients,
			TimeScale:    params.TimeScale,
			G:            params.G,
		},
	}, nil
}

// World generates the configured initial scene.
func (c *Config) World() (*body.World, error) {
	opts, err := c.ScenarioOptions()
	if err != nil {
		return nil, err
	}
	return scenario.Generate(c.Scenario, opts)
}
