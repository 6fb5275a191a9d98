package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderProgress renders a progress bar like [████░░░░]  45%.
// Green above two thirds, yellow in the middle band, red below one third.
func RenderProgress(pct float64, width int) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 1 {
		pct = 1
	}
	if width < 2 {
		width = 2
	}

	filled := int(pct * float64(width))
	if filled > width {
		filled = width
	}
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleGreen
	if pct < 0.33 {
		style = StyleRed
	} else if pct < 0.66 {
		style = StyleYellow
	}

	return fmt.Sprintf("[%s] %3.0f%%", style.Render(bar), pct*100)
}

// RenderPacePair renders "actual vs ideal" progress as two percentages, the
// actual one colored by whether it keeps up with the ideal.
func RenderPacePair(actual, ideal float64) string {
	actualStr := fmt.Sprintf("%.0f%%", actual*100)
	idealStr := fmt.Sprintf("%.0f%%", ideal*100)
	style := StyleGreen
	if actual+0.10 < ideal {
		style = StyleRed
	} else if actual < ideal {
		style = StyleYellow
	}
	return style.Render(actualStr) + Dim(" / "+idealStr)
}
