package formatter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderProgress(t *testing.T) {
	tests := []struct {
		name  string
		pct   float64
		width int
	}{
		{"empty", 0.0, 10},
		{"half", 0.5, 10},
		{"full", 1.0, 10},
		{"over 100% clamps", 1.5, 10},
		{"negative clamps", -0.5, 10},
		{"tiny width clamps to 2", 0.5, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RenderProgress(tt.pct, tt.width)
			assert.Contains(t, got, "[")
			assert.Contains(t, got, "%")
		})
	}

	assert.Contains(t, RenderProgress(0, 4), emptyBlock)
	assert.Contains(t, RenderProgress(1, 4), filledBlock)
	assert.Contains(t, RenderProgress(1, 4), "100%")
}

func TestRenderTable_Alignment(t *testing.T) {
	out := RenderTable(
		[]string{"A", "LONG HEADER"},
		[][]string{{"x", "y"}, {"wide cell", "z"}},
	)
	assert.Contains(t, out, "LONG HEADER")
	assert.Contains(t, out, "wide cell")
	assert.Contains(t, out, "─")
}

func TestRenderTable_Empty(t *testing.T) {
	assert.Empty(t, RenderTable(nil, nil))
}
