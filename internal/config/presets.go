package config

import "sort"

func preset(name string, bodies int, mutate func(*Config)) *Config {
	cfg := DefaultConfig()
	cfg.Scenario = name
	cfg.Bodies = bodies
	if mutate != nil {
		mutate(cfg)
	}
	return cfg
}

var Presets = map[string]map[string]*Config{
	"ring": {
		"calm": preset("ring", 24, nil),
		"crowded": preset("ring", 200, func(c *Config) {
			c.Spread = 300
			c.BodyMass = 9
		}),
		"square": preset("ring", 48, func(c *Config) {
			c.Physics.Law = "inverse_square"
		}),
	},
	"binary": {
		"stable": preset("binary", 16, nil),
		"bouncy": preset("binary", 64, func(c *Config) {
			c.Physics.Collision = "bounce"
			c.Physics.Restitution = 0.8
		}),
	},
	"disk": {
		"accretion": preset("disk", 400, func(c *Config) {
			c.Physics.Collision = "merge"
		}),
		"large": preset("disk", 2000, func(c *Config) {
			c.Spread = 1200
			c.CentralMass = 2000
			c.Physics.CellSize = 256
		}),
	},
	"hierarchy": {
		"system": preset("hierarchy", 13, func(c *Config) {
			c.Physics.Interaction = "parent"
			c.Physics.Collision = "none"
		}),
		"moons": preset("hierarchy", 40, func(c *Config) {
			c.Physics.Interaction = "parent"
			c.Physics.Collision = "none"
			c.Physics.Law = "inverse_square"
		}),
	},
	"cloud": {
		"collapse": preset("cloud", 300, func(c *Config) {
			c.Physics.Law = "inverse_distance"
		}),
		"gas": preset("cloud", 500, func(c *Config) {
			c.Physics.Collision = "bounce"
			c.Physics.G = 0
			c.Physics.Restitution = 1
		}),
		"viscous": preset("cloud", 300, func(c *Config) {
			c.Physics.Collision = "bounce"
			c.Physics.Restitution = 0.3
			c.Physics.Resistance = 0.01
		}),
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(scenario, name string) *Config {
	scenarioPresets, ok := Presets[scenario]
	if !ok {
		return nil
	}
	cfg, ok := scenarioPresets[name]
	if !ok {
		return nil
	}
	c := *cfg
	c.Physics.Coefficients = append([]float64(nil), cfg.Physics.Coefficients...)
	return &c
}

func ListPresets(scenario string) []string {
	scenarioPresets, ok := Presets[scenario]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(scenarioPresets))
	for name := range scenarioPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
