// Package export renders scenes and run series as standalone SVG documents.
package export

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/orbitsim/internal/body"
)

const background = "#0a0a0a"

type bounds struct {
	minX, minY, maxX, maxY float64
}

func sceneBounds(bodies []body.Body) bounds {
	b := bounds{math.Inf(1), math.Inf(1), math.Inf(-1), math.Inf(-1)}
	for i := range bodies {
		o := &bodies[i]
		if math.IsNaN(o.X) || math.IsNaN(o.Y) || math.IsInf(o.X, 0) || math.IsInf(o.Y, 0) {
			continue
		}
		b.minX = math.Min(b.minX, o.X-o.Radius)
		b.maxX = math.Max(b.maxX, o.X+o.Radius)
		b.minY = math.Min(b.minY, o.Y-o.Radius)
		b.maxY = math.Max(b.maxY, o.Y+o.Radius)
	}
	return b
}

// SceneSVG draws every body as a disc in its own colour, scaled uniformly to
// fit width x height with a 5% margin. Locked bodies get an outline.
func SceneSVG(bodies []body.Body, width, height int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background)

	b := sceneBounds(bodies)
	if b.minX > b.maxX {
		sb.WriteString("</svg>")
		return sb.String()
	}

	rangeX := math.Max(b.maxX-b.minX, 1)
	rangeY := math.Max(b.maxY-b.minY, 1)
	scale := 0.9 * math.Min(float64(width)/rangeX, float64(height)/rangeY)
	cx, cy := (b.minX+b.maxX)/2, (b.minY+b.maxY)/2

	for i := range bodies {
		o := &bodies[i]
		if math.IsNaN(o.X) || math.IsNaN(o.Y) || math.IsInf(o.X, 0) || math.IsInf(o.Y, 0) {
			continue
		}
		x := float64(width)/2 + (o.X-cx)*scale
		y := float64(height)/2 + (o.Y-cy)*scale
		r := math.Max(o.Radius*scale, 0.5)
		fill := o.Color.Clamped().Hex()
		if o.Locked {
			fmt.Fprintf(&sb, `<circle cx="%.2f" cy="%.2f" r="%.2f" fill="%s" stroke="#ffffff" stroke-width="1"/>
`, x, y, r, fill)
			continue
		}
		fmt.Fprintf(&sb, `<circle cx="%.2f" cy="%.2f" r="%.2f" fill="%s"/>
`, x, y, r, fill)
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// SeriesSVG plots values left to right as a single polyline.
func SeriesSVG(values []float64, width, height int, stroke colorful.Color) string {
	if len(values) < 2 {
		return ""
	}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}
	lo -= span * 0.1
	hi += span * 0.1
	span = hi - lo

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, background, stroke.Hex())

	last := float64(len(values) - 1)
	for i, v := range values {
		x := float64(i) / last * float64(width)
		y := float64(height) - (v-lo)/span*float64(height)
		if i > 0 {
			sb.WriteString(" L")
		}
		fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}

func WriteFile(path, svg string) error {
	return os.WriteFile(path, []byte(svg), 0644)
}
