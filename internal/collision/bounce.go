package collision

import (
	"math"
	"math/rand"

	"github.com/san-kum/orbitsim/internal/body"
)

// Bounce separates overlapping bodies and exchanges momentum elastically,
// then pulls each body's velocity toward the pair's centre-of-mass velocity.
// Restitution 1 keeps the elastic result, 0 leaves both at the common
// velocity.
type Bounce struct {
	Restitution float64
	// Rand picks a direction for coincident bodies; nil uses math/rand.
	Rand *rand.Rand
}

func (b *Bounce) Policy() Policy { return PolicyBounce }

// PreStep pushes every still-overlapping pair apart along the line of
// centres. It runs once per tick and only in all-pairs mode.
func (b *Bounce) PreStep(scene body.Scene, s Step) Outcome {
	if s.Mode != body.AllPairs {
		return Outcome{}
	}
	bodies := scene.Bodies()
	for _, p := range s.Pairs {
		b.separate(&bodies[p.A], &bodies[p.B], s.held(bodies, p.A), s.held(bodies, p.B))
	}
	return Outcome{}
}

// PostStep resolves velocities for every pair, then advances each colliding
// body by its resolved velocity.
func (b *Bounce) PostStep(scene body.Scene, s Step) {
	bodies := scene.Bodies()
	for _, p := range s.Pairs {
		if p.A == p.B {
			continue
		}
		b.exchange(&bodies[p.A], &bodies[p.B], s.held(bodies, p.A), s.held(bodies, p.B))
	}

	for _, p := range s.Pairs {
		if p.A == p.B {
			continue
		}
		x, y := &bodies[p.A], &bodies[p.B]
		hx, hy := s.held(bodies, p.A), s.held(bodies, p.B)
		com := body.CenterOfMass(x, y)
		displace(x, hx, hy, com, s.TimeScale)
		displace(y, hy, hx, com, s.TimeScale)
	}
}

func (b *Bounce) direction(x, y *body.Body, d float64) (cos, sin float64) {
	if d > 0 {
		return (y.X - x.X) / d, (y.Y - x.Y) / d
	}
	var angle float64
	if b.Rand != nil {
		angle = b.Rand.Float64() * 2 * math.Pi
	} else {
		angle = rand.Float64() * 2 * math.Pi
	}
	sin, cos = math.Sincos(angle)
	return cos, sin
}

// separate pushes x and y out of contact. hx and hy mark bodies that must
// stay put; their partner takes the whole push.
func (b *Bounce) separate(x, y *body.Body, hx, hy bool) {
	if hx && hy {
		return
	}
	d := x.Distance(y)
	reach := x.Radius + y.Radius
	if d > reach {
		return
	}
	cos, sin := b.direction(x, y, d)
	depth := reach - d

	var moveX float64
	switch {
	case hx:
		moveX = 0
	case hy:
		moveX = depth
	case x.Mass+y.Mass == 0:
		moveX = depth / 2
	default:
		moveX = depth * y.Mass / (x.Mass + y.Mass)
	}
	moveY := 0.0
	if !hy {
		moveY = depth - moveX
	}

	x.X -= moveX * cos
	x.Y -= moveX * sin
	y.X += moveY * cos
	y.Y += moveY * sin
}

// toContact splits a velocity given as speed and heading into its normal and
// tangential components relative to the contact angle fi.
func toContact(speed, heading, fi float64) (n, t float64) {
	s, c := math.Sincos(heading - fi)
	return speed * c, speed * s
}

// fromContact rotates normal/tangential components back to world axes.
func fromContact(n, t, fi float64) (vx, vy float64) {
	s, c := math.Sincos(fi)
	return n*c - t*s, n*s + t*c
}

// exchange applies the 1-D elastic collision along the contact normal. A
// held partner counts as an immovable wall: the mover's own mass drops out
// of the formula and it reflects off the partner's velocity.
func (b *Bounce) exchange(x, y *body.Body, hx, hy bool) {
	if hx && hy {
		return
	}
	cos, sin := b.direction(x, y, x.Distance(y))
	fi := math.Atan2(sin, cos)

	n1, t1 := toContact(x.Speed(), math.Atan2(x.VY, x.VX), fi)
	n2, t2 := toContact(y.Speed(), math.Atan2(y.VY, y.VX), fi)

	if !hx {
		m1, m2 := x.Mass, y.Mass
		if hy {
			m1 = 0
		}
		if m1+m2 != 0 {
			n := (n1*(m1-m2) + 2*m2*n2) / (m1 + m2)
			x.VX, x.VY = fromContact(n, t1, fi)
		}
	}
	if !hy {
		m1, m2 := x.Mass, y.Mass
		if hx {
			m2 = 0
		}
		if m1+m2 != 0 {
			n := (n2*(m2-m1) + 2*m1*n1) / (m1 + m2)
			y.VX, y.VY = fromContact(n, t2, fi)
		}
	}

	com := body.CenterOfMass(x, y)
	e := b.Restitution
	held := [2]bool{hx, hy}
	for i, o := range [2]*body.Body{x, y} {
		if held[i] {
			continue
		}
		o.VX = (o.VX-com.VX)*e + com.VX
		o.VY = (o.VY-com.VY)*e + com.VY
	}
}

// displace moves o by its resolved velocity. When the partner is free the
// pair's common drift is removed first so the pair stays anchored.
func displace(o *body.Body, held, partnerHeld bool, com body.Frame, dt float64) {
	if held {
		return
	}
	if !partnerHeld {
		o.X -= com.VX * dt
		o.Y -= com.VY * dt
	}
	o.X += o.VX * dt
	o.Y += o.VY * dt
}
