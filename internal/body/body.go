package body

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// NoParent marks a body that has no parent in hierarchical mode.
const NoParent = -1

// DefaultColor is used when a body is created without an explicit tag.
var DefaultColor = colorful.Color{R: 0.78, G: 0.78, B: 1}

type Body struct {
	X, Y   float64
	VX, VY float64
	Mass   float64
	Radius float64
	Locked bool
	// Parent is an index into the owning scene; it may point at a slot that
	// no longer exists.
	Parent int
	Color  colorful.Color
}

// New returns an unlocked, parentless body with its radius derived from mass.
func New(x, y, vx, vy, mass float64) Body {
	return Body{
		X:      x,
		Y:      y,
		VX:     vx,
		VY:     vy,
		Mass:   mass,
		Radius: RadiusFor(mass),
		Parent: NoParent,
		Color:  DefaultColor,
	}
}

// RadiusFor is the radius law: monotonic in |mass|.
func RadiusFor(mass float64) float64 {
	return math.Sqrt(math.Abs(mass))
}

// SetMass updates the mass and re-derives the radius.
func (b *Body) SetMass(m float64) {
	b.Mass = m
	b.Radius = RadiusFor(m)
}

func (b *Body) Distance(o *Body) float64 {
	return math.Hypot(o.X-b.X, o.Y-b.Y)
}

// Intersects reports whether the two circles touch or overlap.
func (b *Body) Intersects(o *Body) bool {
	return b.Distance(o) <= b.Radius+o.Radius
}

func (b *Body) Moving() bool {
	return b.VX != 0 || b.VY != 0
}

func (b *Body) Speed() float64 {
	return math.Hypot(b.VX, b.VY)
}

// HasParent reports whether Parent names a live slot in a scene of size n.
func (b *Body) HasParent(n int) bool {
	return b.Parent >= 0 && b.Parent < n
}
