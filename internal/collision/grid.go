package collision

import (
	"maps"
	"math"
	"slices"

	"github.com/san-kum/orbitsim/internal/body"
)

// Pair holds two scene indices that overlap. It is valid for one tick only.
type Pair struct {
	A, B int
}

// stencil lists the neighbour offsets scanned from every occupied cell.
var stencil = [4][2]int32{
	{1, 0},  // right
	{0, 1},  // bottom
	{1, 1},  // bottom-right
	{-1, 1}, // bottom-left
}

func cellKey(cx, cy int32) int64 {
	return int64(uint64(uint32(cx))<<32 | uint64(uint32(cy)))
}

func splitKey(k int64) (cx, cy int32) {
	return int32(uint64(k) >> 32), int32(uint32(k))
}

// EffectiveCellSize widens the requested size to at least one body diameter
// so that any two overlapping bodies fall in the same or adjacent cells.
func EffectiveCellSize(requested, maxRadius float64) float64 {
	size := requested
	if !(size > 0) || math.IsInf(size, 1) {
		size = 0
	}
	if d := 2 * maxRadius; d > size {
		size = d
	}
	if size <= 0 {
		size = 1
	}
	return size
}

// Grid is a spatial hash rebuilt from scratch on every Build.
type Grid struct {
	cellSize float64
	cells    map[int64][]int
	keys     []int64
}

func NewGrid() *Grid {
	return &Grid{cells: make(map[int64][]int)}
}

func (g *Grid) CellSize() float64 { return g.cellSize }

// Len returns the number of occupied cells.
func (g *Grid) Len() int { return len(g.cells) }

func (g *Grid) Build(bodies []body.Body, cellSize float64) {
	clear(g.cells)

	maxR := 0.0
	for i := range bodies {
		if r := math.Abs(bodies[i].Radius); r > maxR {
			maxR = r
		}
	}
	g.cellSize = EffectiveCellSize(cellSize, maxR)

	for i := range bodies {
		k := cellKey(g.cellOf(bodies[i].X), g.cellOf(bodies[i].Y))
		g.cells[k] = append(g.cells[k], i)
	}
	g.keys = slices.Sorted(maps.Keys(g.cells))
}

func (g *Grid) cellOf(v float64) int32 {
	c := math.Floor(v / g.cellSize)
	if c < math.MinInt32 {
		return math.MinInt32
	}
	if c > math.MaxInt32 {
		return math.MaxInt32
	}
	return int32(c)
}

// Pairs returns every intersecting pair among the bodies the grid was built
// from. Cells are visited in key order so the output is reproducible.
func (g *Grid) Pairs(bodies []body.Body) []Pair {
	var pairs []Pair
	var near []int

	for _, key := range g.keys {
		cx, cy := splitKey(key)
		here := g.cells[key]

		near = near[:0]
		for _, off := range stencil {
			near = append(near, g.cells[cellKey(cx+off[0], cy+off[1])]...)
		}

		for i := len(here) - 1; i >= 0; i-- {
			a := here[i]
			for _, b := range near {
				if bodies[a].Intersects(&bodies[b]) {
					pairs = append(pairs, Pair{A: a, B: b})
				}
			}
			for j := i - 1; j >= 0; j-- {
				b := here[j]
				if bodies[a].Intersects(&bodies[b]) {
					pairs = append(pairs, Pair{A: a, B: b})
				}
			}
		}
	}

	return pairs
}

// Detect builds a fresh grid and returns the intersecting pairs.
func Detect(bodies []body.Body, cellSize float64) []Pair {
	g := NewGrid()
	g.Build(bodies, cellSize)
	return g.Pairs(bodies)
}
