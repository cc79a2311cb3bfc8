package body

// Frame is the position and velocity of a group's centre of mass.
type Frame struct {
	X, Y   float64
	VX, VY float64
	Mass   float64
}

// CenterOfMass returns the mass-weighted centre of the given bodies. When the
// masses sum to zero the plain average is used instead.
func CenterOfMass(bodies ...*Body) Frame {
	var f Frame
	if len(bodies) == 0 {
		return f
	}
	for _, b := range bodies {
		f.Mass += b.Mass
	}
	if f.Mass == 0 {
		n := float64(len(bodies))
		for _, b := range bodies {
			f.X += b.X / n
			f.Y += b.Y / n
			f.VX += b.VX / n
			f.VY += b.VY / n
		}
		return f
	}
	for _, b := range bodies {
		w := b.Mass / f.Mass
		f.X += b.X * w
		f.Y += b.Y * w
		f.VX += b.VX * w
		f.VY += b.VY * w
	}
	return f
}

func TotalMass(bodies []Body) float64 {
	m := 0.0
	for i := range bodies {
		m += bodies[i].Mass
	}
	return m
}

func Momentum(bodies []Body) (px, py float64) {
	for i := range bodies {
		px += bodies[i].Mass * bodies[i].VX
		py += bodies[i].Mass * bodies[i].VY
	}
	return
}

func KineticEnergy(bodies []Body) float64 {
	ke := 0.0
	for i := range bodies {
		b := &bodies[i]
		ke += 0.5 * b.Mass * (b.VX*b.VX + b.VY*b.VY)
	}
	return ke
}
