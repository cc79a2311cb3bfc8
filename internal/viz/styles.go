package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// GradientText colours text from start to end, interpolating in Lab space.
func GradientText(text string, start, end lipgloss.Color) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}
	a, err := colorful.Hex(string(start))
	if err != nil {
		return text
	}
	b, err := colorful.Hex(string(end))
	if err != nil {
		return text
	}

	var result strings.Builder
	for i, c := range runes {
		t := 0.0
		if len(runes) > 1 {
			t = float64(i) / float64(len(runes)-1)
		}
		col := a.BlendLab(b, t).Clamped().Hex()
		result.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(col)).Render(string(c)))
	}
	return result.String()
}

// SparklineChart renders the last width values as block characters.
func SparklineChart(values []float64, width int, style lipgloss.Style) string {
	if len(values) == 0 || width <= 0 {
		return strings.Repeat("─", max(width, 0))
	}

	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}
	if len(values) > width {
		values = values[len(values)-width:]
	}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo, hi = min(lo, v), max(hi, v)
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}

	var result strings.Builder
	for _, v := range values {
		idx := int((v - lo) / span * float64(len(chars)-1))
		idx = min(max(idx, 0), len(chars)-1)
		result.WriteRune(chars[idx])
	}
	return style.Render(result.String())
}

func Separator(width int, style lipgloss.Style) string {
	mid := width / 2
	left := strings.Repeat("─", max(mid-3, 0))
	right := strings.Repeat("─", max(width-mid-3, 0))
	return style.Render(left + " ◆ " + right)
}
