package export

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/orbitsim/internal/body"
)

func TestSceneSVG(t *testing.T) {
	sun := body.New(0, 0, 0, 0, 100)
	sun.Locked = true
	moon := body.New(50, 0, 0, 0, 4)
	moon.Color = colorful.Color{R: 1, G: 0, B: 0}

	svg := SceneSVG([]body.Body{sun, moon}, 200, 100)

	if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>") {
		t.Error("not a complete SVG document")
	}
	if n := strings.Count(svg, "<circle"); n != 2 {
		t.Errorf("expected 2 circles, got %d", n)
	}
	if !strings.Contains(svg, `fill="#ff0000"`) {
		t.Error("body colour missing")
	}
	if strings.Count(svg, "stroke=") != 1 {
		t.Error("expected exactly one outlined locked body")
	}
}

func TestSceneSVGEmptyAndDegenerate(t *testing.T) {
	if svg := SceneSVG(nil, 10, 10); strings.Contains(svg, "<circle") || !strings.HasSuffix(svg, "</svg>") {
		t.Errorf("unexpected empty scene output %q", svg)
	}

	bad := body.New(0, 0, 0, 0, 1)
	bad.X = math.NaN()
	svg := SceneSVG([]body.Body{bad, body.New(1, 1, 0, 0, 1)}, 10, 10)
	if strings.Count(svg, "<circle") != 1 || strings.Contains(svg, "NaN") {
		t.Errorf("non-finite body should be skipped: %q", svg)
	}
}

func TestSeriesSVG(t *testing.T) {
	if SeriesSVG([]float64{1}, 100, 50, colorful.Color{}) != "" {
		t.Error("expected empty output for a single point")
	}

	svg := SeriesSVG([]float64{1, 3, 2, 2}, 100, 50, colorful.Color{R: 0, G: 1, B: 0})
	if !strings.Contains(svg, `stroke="#00ff00"`) {
		t.Error("stroke colour missing")
	}
	if n := strings.Count(svg, " L"); n != 3 {
		t.Errorf("expected 3 line segments, got %d", n)
	}
	if !strings.Contains(svg, "d=\"M0.0,") {
		t.Error("path should start at x=0")
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.svg")
	if err := WriteFile(path, SceneSVG([]body.Body{body.New(0, 0, 0, 0, 1)}, 10, 10)); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil || !strings.Contains(string(data), "<circle") {
		t.Errorf("unexpected file contents: %v", err)
	}
}
