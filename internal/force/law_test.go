package force

import (
	"errors"
	"math"
	"testing"
)

func TestKernelTable(t *testing.T) {
	c := Coefficients{2, 3, 5, 7, 11}
	cos, sin := 0.6, 0.8
	d := 2.0
	ks := 0.5

	tests := []struct {
		law Law
		k   float64
	}{
		{InverseCube, ks * 2 / (d * d * d)},
		{InverseSquare, ks * 3 / (d * d)},
		{InverseDistance, ks * 5 / d},
		{Constant, ks * 7},
		{Proportional, ks * 11 * d},
	}

	for _, tt := range tests {
		t.Run(tt.law.String(), func(t *testing.T) {
			vx, vy := Kernel(cos, sin, d, tt.law, ks, c)
			if math.Abs(vx-tt.k*cos) > 1e-12 || math.Abs(vy-tt.k*sin) > 1e-12 {
				t.Errorf("expected (%g, %g), got (%g, %g)", tt.k*cos, tt.k*sin, vx, vy)
			}
		})
	}
}

func TestKernelUnknownLaw(t *testing.T) {
	vx, vy := Kernel(1, 0, 1, Law(42), 1, DefaultCoefficients)
	if vx != 0 || vy != 0 {
		t.Errorf("expected zero delta for unknown law, got (%g, %g)", vx, vy)
	}
}

func TestKernelZeroDistance(t *testing.T) {
	vx, _ := Kernel(math.NaN(), math.NaN(), 0, InverseCube, 1, DefaultCoefficients)
	if !math.IsNaN(vx) && !math.IsInf(vx, 0) {
		t.Errorf("expected non-finite delta for coincident bodies, got %g", vx)
	}
}

func TestParseLaw(t *testing.T) {
	for _, l := range Laws() {
		got, err := ParseLaw(l.String())
		if err != nil {
			t.Fatalf("ParseLaw(%q): %v", l.String(), err)
		}
		if got != l {
			t.Errorf("ParseLaw(%q) = %v, want %v", l.String(), got, l)
		}
	}

	if _, err := ParseLaw("cubic"); !errors.Is(err, ErrUnknownLaw) {
		t.Errorf("expected ErrUnknownLaw, got %v", err)
	}
}

func TestDefaultParams(t *testing.T) {
	p := DefaultParams()
	if p.Law != InverseCube {
		t.Errorf("expected inverse_cube default, got %s", p.Law)
	}
	if p.Coefficients[InverseCube] != 500 {
		t.Errorf("expected c0 = 500, got %g", p.Coefficients[InverseCube])
	}
}
