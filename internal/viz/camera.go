package viz

import (
	"math"

	"github.com/san-kum/orbitsim/internal/body"
)

// Camera maps world coordinates to canvas dots. Zoom is dots per world unit.
type Camera struct {
	X, Y float64
	Zoom float64
}

func (c Camera) Project(x, y float64, cv *Canvas) (int, int) {
	sx := float64(cv.SubWidth())/2 + (x-c.X)*c.Zoom
	sy := float64(cv.SubHeight())/2 + (y-c.Y)*c.Zoom
	return int(math.Floor(sx)), int(math.Floor(sy))
}

// Fit centres the camera on the bodies and zooms so all of them are visible.
func (c *Camera) Fit(bodies []body.Body, cv *Canvas) {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for i := range bodies {
		b := &bodies[i]
		if math.IsNaN(b.X) || math.IsNaN(b.Y) || math.IsInf(b.X, 0) || math.IsInf(b.Y, 0) {
			continue
		}
		minX, maxX = math.Min(minX, b.X-b.Radius), math.Max(maxX, b.X+b.Radius)
		minY, maxY = math.Min(minY, b.Y-b.Radius), math.Max(maxY, b.Y+b.Radius)
	}
	if minX > maxX {
		c.X, c.Y, c.Zoom = 0, 0, 1
		return
	}
	c.X, c.Y = (minX+maxX)/2, (minY+maxY)/2
	span := math.Max(math.Max(maxX-minX, maxY-minY), 1)
	c.Zoom = 0.9 * float64(min(cv.SubWidth(), cv.SubHeight())) / span
}

func (c *Camera) ZoomBy(f float64) {
	c.Zoom *= f
}

// Pan moves the camera by a fraction of the visible width/height.
func (c *Camera) Pan(fx, fy float64, cv *Canvas) {
	if c.Zoom == 0 {
		return
	}
	c.X += fx * float64(cv.SubWidth()) / c.Zoom
	c.Y += fy * float64(cv.SubHeight()) / c.Zoom
}

func (c *Camera) Follow(b *body.Body) {
	c.X, c.Y = b.X, b.Y
}
