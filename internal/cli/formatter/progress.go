package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderProgress renders a bar like [████░░░░] 45%, green above two thirds,
// yellow above one third and red below.
func RenderProgress(pct float64, width int) string {
	return fmt.Sprintf("[%s] %3.0f%%", RenderCompactBar(pct, width, false), clampPct(pct)*100)
}

// RenderCompactBar renders only the blocks. A dimmed bar skips coloring.
func RenderCompactBar(pct float64, width int, dim bool) string {
	pct = clampPct(pct)
	width = max(width, 2)
	filled := min(int(pct*float64(width)), width)
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)
	if dim {
		return bar
	}

	style := StyleGreen
	switch {
	case pct < 0.33:
		style = StyleRed
	case pct < 0.66:
		style = StyleYellow
	}
	return style.Render(bar)
}

func clampPct(pct float64) float64 {
	return min(max(pct, 0), 1)
}

// Ratio returns done/total, zero when total is zero.
func Ratio(done, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(done) / float64(total)
}
