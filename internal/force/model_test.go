package force

import (
	"math"
	"math/rand"
	"testing"

	"github.com/san-kum/orbitsim/internal/body"
	"github.com/san-kum/orbitsim/internal/compute"
)

func squareParams() Params {
	p := DefaultParams()
	p.Law = InverseSquare
	return p
}

func TestPairNewtonThirdLaw(t *testing.T) {
	a := body.New(0, 0, 0, 0, 2)
	b := body.New(3, 4, 0, 0, 5)

	ax, ay, bx, by := Pair(&a, &b, squareParams())

	// a is pulled toward b
	if ax <= 0 || ay <= 0 {
		t.Errorf("expected a pulled toward b, got (%g, %g)", ax, ay)
	}
	// momentum exchanged is equal and opposite
	if math.Abs(a.Mass*ax-b.Mass*bx) > 1e-12 || math.Abs(a.Mass*ay-b.Mass*by) > 1e-12 {
		t.Errorf("momentum not balanced: a=(%g,%g) b=(%g,%g)", a.Mass*ax, a.Mass*ay, b.Mass*bx, b.Mass*by)
	}

	want := 5.0 / 25.0 * 5
	if math.Abs(math.Hypot(ax, ay)-want) > 1e-12 {
		t.Errorf("expected |da| = %g, got %g", want, math.Hypot(ax, ay))
	}
}

func TestPairOverlapRepel(t *testing.T) {
	a := body.New(0, 0, 0, 0, 4)
	b := body.New(1, 0, 0, 0, 4)
	p := DefaultParams()
	p.OverlapRepel = true

	ax, _, _, _ := Pair(&a, &b, p)
	want := p.Coefficients[Proportional] * 1 * b.Mass
	if math.Abs(ax-want) > 1e-15 {
		t.Errorf("expected proportional law inside overlap (%g), got %g", want, ax)
	}

	p.OverlapRepel = false
	ax, _, _, _ = Pair(&a, &b, p)
	want = p.Coefficients[InverseCube] * b.Mass
	if math.Abs(ax-want) > 1e-9 {
		t.Errorf("expected configured law without override (%g), got %g", want, ax)
	}
}

func TestScalarLockedBodies(t *testing.T) {
	bodies := []body.Body{
		body.New(0, 0, 0, 0, 10),
		body.New(10, 0, 0, 0, 1),
	}
	bodies[0].Locked = true

	Scalar{}.Apply(bodies, squareParams(), body.AllPairs)

	if bodies[0].VX != 0 || bodies[0].VY != 0 {
		t.Errorf("locked body accumulated velocity (%g, %g)", bodies[0].VX, bodies[0].VY)
	}
	if bodies[1].VX >= 0 {
		t.Errorf("locked source should still pull, got vx %g", bodies[1].VX)
	}
}

func TestScalarBothLockedSkipped(t *testing.T) {
	bodies := []body.Body{
		body.New(0, 0, 0, 0, 1),
		body.New(1, 0, 0, 0, 1),
	}
	bodies[0].Locked = true
	bodies[1].Locked = true

	Scalar{}.Apply(bodies, DefaultParams(), body.AllPairs)

	for i, b := range bodies {
		if b.VX != 0 || b.VY != 0 {
			t.Errorf("body %d moved: (%g, %g)", i, b.VX, b.VY)
		}
	}
}

func TestScalarParentMode(t *testing.T) {
	bodies := []body.Body{
		body.New(0, 0, 0, 0, 100),
		body.New(10, 0, 0, 0, 1),
		body.New(-10, 0, 0, 0, 1),
	}
	bodies[1].Parent = 0
	bodies[2].Parent = 7 // missing parent

	Scalar{}.Apply(bodies, squareParams(), body.ParentOnly)

	if bodies[1].VX >= 0 {
		t.Errorf("child should be pulled toward parent, got vx %g", bodies[1].VX)
	}
	if bodies[0].VX <= 0 {
		t.Errorf("parent should be pulled toward child, got vx %g", bodies[0].VX)
	}
	if bodies[2].VX != 0 || bodies[2].VY != 0 {
		t.Errorf("orphan should not interact, got (%g, %g)", bodies[2].VX, bodies[2].VY)
	}
}

func randomBodies(n int, seed int64) []body.Body {
	rng := rand.New(rand.NewSource(seed))
	bodies := make([]body.Body, n)
	for i := range bodies {
		bodies[i] = body.New(rng.Float64()*1000, rng.Float64()*1000, 0, 0, 1+rng.Float64()*10)
	}
	bodies[0].Locked = true
	return bodies
}

func TestParallelMatchesScalar(t *testing.T) {
	for _, law := range Laws() {
		t.Run(law.String(), func(t *testing.T) {
			p := DefaultParams()
			p.Law = law
			p.OverlapRepel = true

			scalar := randomBodies(200, 7)
			parallel := randomBodies(200, 7)

			Scalar{}.Apply(scalar, p, body.AllPairs)
			NewParallel(compute.NewCPUBackendWorkers(4)).Apply(parallel, p, body.AllPairs)

			for i := range scalar {
				dx := math.Abs(scalar[i].VX - parallel[i].VX)
				dy := math.Abs(scalar[i].VY - parallel[i].VY)
				scale := math.Max(1, math.Hypot(scalar[i].VX, scalar[i].VY))
				if dx/scale > 1e-9 || dy/scale > 1e-9 {
					t.Fatalf("body %d: scalar (%g, %g) vs parallel (%g, %g)",
						i, scalar[i].VX, scalar[i].VY, parallel[i].VX, parallel[i].VY)
				}
			}
			if parallel[0].VX != 0 || parallel[0].VY != 0 {
				t.Error("parallel path moved a locked body")
			}
		})
	}
}

func TestParallelParentModeDelegates(t *testing.T) {
	a := []body.Body{body.New(0, 0, 0, 0, 10), body.New(5, 0, 0, 0, 1)}
	b := []body.Body{body.New(0, 0, 0, 0, 10), body.New(5, 0, 0, 0, 1)}
	a[1].Parent, b[1].Parent = 0, 0

	Scalar{}.Apply(a, squareParams(), body.ParentOnly)
	NewParallel(compute.Serial{}).Apply(b, squareParams(), body.ParentOnly)

	if a[0].VX != b[0].VX || a[1].VX != b[1].VX {
		t.Errorf("parent mode results differ: %v vs %v", a, b)
	}
}

func TestSelect(t *testing.T) {
	tests := []struct {
		n, threshold int
		want         string
	}{
		{10, 512, "scalar"},
		{512, 512, "scalar"},
		{513, 512, "parallel/serial"},
		{10000, 0, "scalar"},
	}

	for _, tt := range tests {
		m := Select(tt.n, tt.threshold, compute.Serial{})
		if m.Name() != tt.want {
			t.Errorf("Select(%d, %d) = %s, want %s", tt.n, tt.threshold, m.Name(), tt.want)
		}
	}
}
