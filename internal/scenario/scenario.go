// Package scenario builds initial scenes for the simulator.
package scenario

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/orbitsim/internal/body"
	"github.com/san-kum/orbitsim/internal/force"
)

var ErrUnknownScenario = errors.New("scenario: unknown scenario")

type Options struct {
	Bodies      int
	Seed        int64
	Spread      float64
	CentralMass float64
	BodyMass    float64
	// Force is used to derive circular orbit speeds.
	Force force.Params
}

func DefaultOptions() Options {
	return Options{
		Bodies:      32,
		Seed:        1,
		Spread:      400,
		CentralMass: 400,
		BodyMass:    4,
		Force:       force.DefaultParams(),
	}
}

type Generator func(o Options, rng *rand.Rand) []body.Body

var generators = map[string]Generator{
	"ring":      Ring,
	"binary":    Binary,
	"disk":      Disk,
	"hierarchy": Hierarchy,
	"cloud":     Cloud,
}

func Names() []string {
	names := make([]string, 0, len(generators))
	for name := range generators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func Generate(name string, o Options) (*body.World, error) {
	gen, ok := generators[name]
	if !ok {
		return nil, fmt.Errorf("%w %q (available: %v)", ErrUnknownScenario, name, Names())
	}
	if o.Bodies < 0 {
		o.Bodies = 0
	}
	rng := rand.New(rand.NewSource(o.Seed))
	bodies := gen(o, rng)
	// generators may add fixed bodies; parents always point lower so
	// truncation keeps them valid
	return body.NewWorld(bodies[:min(len(bodies), o.Bodies)]...), nil
}

// OrbitalSpeed is the speed of a circular orbit at distance r around mass m
// under the configured law: the per-tick pull times r, square-rooted.
func OrbitalSpeed(m, r float64, p force.Params) float64 {
	if r <= 0 {
		return 0
	}
	a := pullAt(m, r, p)
	if a <= 0 {
		return 0
	}
	return math.Sqrt(a * r)
}

// OrbitalVelocities gives every body at rest a circular velocity around
// bodies[central], counter-clockwise. The central body keeps its velocity.
func OrbitalVelocities(bodies []body.Body, central int, p force.Params) {
	if central < 0 || central >= len(bodies) {
		return
	}
	c := bodies[central]
	for i := range bodies {
		b := &bodies[i]
		if i == central || b.Moving() || b.Locked {
			continue
		}
		dx, dy := b.X-c.X, b.Y-c.Y
		r := math.Hypot(dx, dy)
		v := OrbitalSpeed(c.Mass, r, p)
		if v == 0 {
			continue
		}
		b.VX = c.VX - dy/r*v
		b.VY = c.VY + dx/r*v
	}
}

func palette(i, n int) colorful.Color {
	if n <= 0 {
		n = 1
	}
	return colorful.Hsv(360*float64(i)/float64(n), 0.55, 0.95)
}

func sun(mass float64) body.Body {
	s := body.New(0, 0, 0, 0, mass)
	s.Locked = true
	s.Color = colorful.Color{R: 1, G: 0.85, B: 0.4}
	return s
}

// Ring places bodies evenly on a circle around a locked sun.
func Ring(o Options, _ *rand.Rand) []body.Body {
	bodies := []body.Body{sun(o.CentralMass)}
	n := o.Bodies - 1
	for i := 0; i < n; i++ {
		angle := 2 * math.Pi * float64(i) / float64(n)
		b := body.New(o.Spread*math.Cos(angle), o.Spread*math.Sin(angle), 0, 0, o.BodyMass)
		b.Color = palette(i, n)
		bodies = append(bodies, b)
	}
	OrbitalVelocities(bodies, 0, o.Force)
	return bodies
}

// Binary is a pair of equal stars orbiting their barycentre with the
// remaining bodies on a wide ring around both.
func Binary(o Options, _ *rand.Rand) []body.Body {
	half := o.CentralMass / 2
	sep := o.Spread / 4
	// each star circles the barycentre at sep/2 under the pull of the other at sep
	v := math.Sqrt(pullAt(half, sep, o.Force) * sep / 2)

	a := body.New(-sep/2, 0, 0, -v, half)
	b := body.New(sep/2, 0, 0, v, half)
	a.Color = colorful.Color{R: 1, G: 0.7, B: 0.4}
	b.Color = colorful.Color{R: 0.6, G: 0.75, B: 1}
	bodies := []body.Body{a, b}

	n := o.Bodies - 2
	for i := 0; i < n; i++ {
		angle := 2 * math.Pi * float64(i) / float64(n)
		s := body.New(o.Spread*math.Cos(angle), o.Spread*math.Sin(angle), 0, 0, o.BodyMass)
		s.Color = palette(i, n)
		bodies = append(bodies, s)
	}

	anchor := body.New(0, 0, 0, 0, o.CentralMass)
	for i := 2; i < len(bodies); i++ {
		pair := []body.Body{anchor, bodies[i]}
		OrbitalVelocities(pair, 0, o.Force)
		bodies[i] = pair[1]
	}
	return bodies
}

func pullAt(m, r float64, p force.Params) float64 {
	pull, _ := force.Kernel(1, 0, r, p.Law, p.TimeScale*p.G, p.Coefficients)
	return pull * m
}

// Disk scatters bodies of random mass through an annulus around a heavy
// free-moving centre.
func Disk(o Options, rng *rand.Rand) []body.Body {
	centre := body.New(0, 0, 0, 0, o.CentralMass)
	centre.Color = colorful.Color{R: 1, G: 0.85, B: 0.4}
	bodies := []body.Body{centre}

	inner := o.Spread * 0.2
	n := o.Bodies - 1
	for i := 0; i < n; i++ {
		r := inner + (o.Spread-inner)*math.Sqrt(rng.Float64())
		angle := 2 * math.Pi * rng.Float64()
		m := o.BodyMass * (0.5 + rng.Float64())
		b := body.New(r*math.Cos(angle), r*math.Sin(angle), 0, 0, m)
		b.Color = palette(i, n)
		bodies = append(bodies, b)
	}
	OrbitalVelocities(bodies, 0, o.Force)
	return bodies
}

// Hierarchy is a locked sun with planets and moons linked by Parent. Each
// velocity is relative to its parent, for use with body.ParentOnly.
func Hierarchy(o Options, _ *rand.Rand) []body.Body {
	bodies := []body.Body{sun(o.CentralMass)}
	planets := max(1, (o.Bodies-1)/3)
	moons := o.Bodies - 1 - planets
	planetMass := o.BodyMass * 4

	for i := 0; i < planets; i++ {
		r := o.Spread * float64(i+1) / float64(planets)
		angle := 2 * math.Pi * float64(i) / float64(planets)
		p := body.New(r*math.Cos(angle), r*math.Sin(angle), 0, 0, planetMass)
		p.Parent = 0
		p.Color = palette(i, planets)
		v := OrbitalSpeed(o.CentralMass, r, o.Force)
		p.VX, p.VY = -math.Sin(angle)*v, math.Cos(angle)*v
		bodies = append(bodies, p)
	}

	moonOrbit := o.Spread / float64(planets) / 4
	for i := 0; i < moons; i++ {
		parent := 1 + i%planets
		host := bodies[parent]
		angle := 2*math.Pi*float64(i/planets)/float64(max(1, moons/planets)) + 0.3
		r := moonOrbit * (1 + 0.5*float64(i/planets))
		m := body.New(host.X+r*math.Cos(angle), host.Y+r*math.Sin(angle), 0, 0, o.BodyMass)
		m.Parent = parent
		m.Color = host.Color
		v := OrbitalSpeed(host.Mass, r, o.Force)
		m.VX, m.VY = -math.Sin(angle)*v, math.Cos(angle)*v
		bodies = append(bodies, m)
	}
	return bodies
}

// Cloud scatters bodies uniformly in a square with small random drift.
func Cloud(o Options, rng *rand.Rand) []body.Body {
	bodies := make([]body.Body, 0, o.Bodies)
	for i := 0; i < o.Bodies; i++ {
		x := (rng.Float64()*2 - 1) * o.Spread
		y := (rng.Float64()*2 - 1) * o.Spread
		vx := (rng.Float64()*2 - 1) * 0.1
		vy := (rng.Float64()*2 - 1) * 0.1
		b := body.New(x, y, vx, vy, o.BodyMass*(0.5+rng.Float64()))
		b.Color = palette(i, o.Bodies)
		bodies = append(bodies, b)
	}
	return bodies
}
