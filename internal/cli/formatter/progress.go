package formatter

import (
	"math"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderBar renders a horizontal bar of width cells filled to frac (0..1)
// in the given style.
func RenderBar(frac float64, width int, style func(...string) string) string {
	if frac < 0 || math.IsNaN(frac) {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	if width < 1 {
		width = 1
	}
	filled := int(frac*float64(width) + 0.5)
	return style(strings.Repeat(filledBlock, filled)) + StyleDim.Render(strings.Repeat(emptyBlock, width-filled))
}
