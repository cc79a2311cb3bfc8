package force

import (
	"math"

	"github.com/san-kum/orbitsim/internal/body"
)

func (p Params) lawFor(d, radiusSum float64) Law {
	if p.OverlapRepel && d <= radiusSum {
		return Proportional
	}
	return p.Law
}

// pull returns the unscaled velocity delta pointing from a toward b.
func pull(a, b *body.Body, p Params) (vx, vy float64) {
	dx, dy := b.X-a.X, b.Y-a.Y
	d := math.Hypot(dx, dy)
	law := p.lawFor(d, a.Radius+b.Radius)
	return Kernel(dx/d, dy/d, d, law, p.TimeScale*p.G, p.Coefficients)
}

// Pair evaluates both halves of one interaction. (ax, ay) is added to a's
// velocity and is scaled by b's mass; (bx, by) is subtracted from b's velocity
// and is scaled by a's mass.
func Pair(a, b *body.Body, p Params) (ax, ay, bx, by float64) {
	vx, vy := pull(a, b, p)
	return vx * b.Mass, vy * b.Mass, vx * a.Mass, vy * a.Mass
}
