package force

import (
	"errors"
	"fmt"
)

var ErrUnknownLaw = errors.New("force: unknown law")

// Law selects the attraction/repulsion law between two bodies.
type Law int

const (
	InverseCube Law = iota
	InverseSquare
	InverseDistance
	Constant
	Proportional
)

var lawNames = [...]string{
	InverseCube:     "inverse_cube",
	InverseSquare:   "inverse_square",
	InverseDistance: "inverse_distance",
	Constant:        "constant",
	Proportional:    "proportional",
}

func (l Law) String() string {
	if l >= 0 && int(l) < len(lawNames) {
		return lawNames[l]
	}
	return fmt.Sprintf("law(%d)", int(l))
}

func ParseLaw(s string) (Law, error) {
	for i, name := range lawNames {
		if name == s {
			return Law(i), nil
		}
	}
	return InverseCube, fmt.Errorf("%w: %q", ErrUnknownLaw, s)
}

// Laws lists every law in selector order.
func Laws() []Law {
	return []Law{InverseCube, InverseSquare, InverseDistance, Constant, Proportional}
}

// Coefficients holds the per-law scale constant, indexed by Law.
type Coefficients [5]float64

var DefaultCoefficients = Coefficients{500, 5, 0.05, 5e-5, 5e-7}

type Params struct {
	Law          Law
	Coefficients Coefficients
	TimeScale    float64
	G            float64
	// OverlapRepel evaluates overlapping pairs with the Proportional law
	// regardless of Law. Set when no collision policy is active.
	OverlapRepel bool
}

func DefaultParams() Params {
	return Params{
		Law:          InverseCube,
		Coefficients: DefaultCoefficients,
		TimeScale:    1,
		G:            1,
	}
}

// Kernel evaluates a law for the unit direction (cos, sin) and separation d.
// ks is the time-scale × gravitational-constant product. The result is not
// yet scaled by mass. d == 0 yields non-finite values.
func Kernel(cos, sin, d float64, law Law, ks float64, c Coefficients) (vx, vy float64) {
	var k float64
	switch law {
	case InverseCube:
		k = ks * c[InverseCube] / (d * d * d)
	case InverseSquare:
		k = ks * c[InverseSquare] / (d * d)
	case InverseDistance:
		k = ks * c[InverseDistance] / d
	case Constant:
		k = ks * c[Constant]
	case Proportional:
		k = ks * c[Proportional] * d
	default:
		return 0, 0
	}
	return k * cos, k * sin
}
