package viz

import (
	"math"
	"testing"

	"github.com/san-kum/orbitsim/internal/body"
)

func TestCameraProject(t *testing.T) {
	cv := NewCanvas(10, 5)
	cam := Camera{X: 100, Y: -50, Zoom: 2}

	x, y := cam.Project(100, -50, cv)
	if x != 10 || y != 10 {
		t.Errorf("expected centre (10,10), got (%d,%d)", x, y)
	}
	x, y = cam.Project(103, -49, cv)
	if x != 16 || y != 12 {
		t.Errorf("expected (16,12), got (%d,%d)", x, y)
	}
}

func TestCameraFit(t *testing.T) {
	cv := NewCanvas(20, 10)
	bodies := []body.Body{
		body.New(-100, 0, 0, 0, 1),
		body.New(100, 0, 0, 0, 1),
		{X: math.NaN(), Y: 0, Mass: 1},
	}
	var cam Camera
	cam.Fit(bodies, cv)
	if math.Abs(cam.X) > 1e-9 || math.Abs(cam.Y) > 1e-9 {
		t.Errorf("expected centre at origin, got (%g,%g)", cam.X, cam.Y)
	}
	for i := 0; i < 2; i++ {
		x, y := cam.Project(bodies[i].X, bodies[i].Y, cv)
		if !onCanvas(x, y, cv) {
			t.Errorf("body %d projected off canvas at (%d,%d)", i, x, y)
		}
	}

	cam.Fit(nil, cv)
	if cam != (Camera{Zoom: 1}) {
		t.Errorf("expected reset camera, got %+v", cam)
	}
}

func TestCameraPanAndFollow(t *testing.T) {
	cv := NewCanvas(10, 5)
	cam := Camera{Zoom: 2}
	cam.Pan(0.5, -0.5, cv)
	if cam.X != 5 || cam.Y != -5 {
		t.Errorf("expected (5,-5), got (%g,%g)", cam.X, cam.Y)
	}

	cam.ZoomBy(2)
	if cam.Zoom != 4 {
		t.Errorf("expected zoom 4, got %g", cam.Zoom)
	}

	b := body.New(7, 8, 0, 0, 1)
	cam.Follow(&b)
	if cam.X != 7 || cam.Y != 8 {
		t.Errorf("expected (7,8), got (%g,%g)", cam.X, cam.Y)
	}
}
