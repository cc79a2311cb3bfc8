package body

import "github.com/lucasb-eyer/go-colorful"

// BlendColor mixes two tags weighted by mass. Zero total mass blends evenly.
func BlendColor(a colorful.Color, ma float64, b colorful.Color, mb float64) colorful.Color {
	t := 0.5
	if total := ma + mb; total != 0 {
		t = mb / total
	}
	return a.BlendRgb(b, t).Clamped()
}

// ParseColor accepts "#rrggbb" and falls back to DefaultColor.
func ParseColor(hex string) colorful.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		return DefaultColor
	}
	return c
}
