package formatter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderCompactBar(t *testing.T) {
	tests := []struct {
		name  string
		pct   float64
		width int
		want  string
	}{
		{"empty", 0, 4, "░░░░"},
		{"half", 0.5, 4, "██░░"},
		{"full", 1, 4, "████"},
		{"over 100% clamps", 1.5, 4, "████"},
		{"negative clamps", -0.5, 4, "░░░░"},
		{"tiny width clamps to 2", 0.5, 1, "█░"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RenderCompactBar(tt.pct, tt.width, true))
		})
	}
}

func TestRenderProgress(t *testing.T) {
	assert.Equal(t, "[█████░░░░░]  50%", stripANSI(RenderProgress(0.5, 10)))
	assert.Equal(t, "[░░]   0%", stripANSI(RenderProgress(Ratio(1, 0), 2)))
}
