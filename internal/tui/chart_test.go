package tui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TempMon/internal/model"
)

func ramp(n int) []model.Sample {
	out := make([]model.Sample, n)
	for i := range out {
		out[i] = model.Sample{
			ElapsedMS:   int64(i * 1000),
			Temperature: 20 + float64(i)*0.1,
		}
	}
	return out
}

func TestRenderChartDimensions(t *testing.T) {
	got := renderChart(ramp(50), 40, 8)
	lines := strings.Split(got, "\n")
	require.Len(t, lines, 8)
	for _, line := range lines {
		assert.Equal(t, 40, len([]rune(line)))
		for _, r := range line {
			assert.True(t, r >= 0x2800 && r <= 0x28FF, "non-braille rune %q", r)
		}
	}
}

func TestRenderChartNeedsTwoSamples(t *testing.T) {
	assert.Empty(t, renderChart(nil, 40, 8))
	assert.Empty(t, renderChart(ramp(1), 40, 8))
	assert.Empty(t, renderChart(ramp(50), 1, 8))
}

func TestRenderChartDrawsSomething(t *testing.T) {
	got := renderChart(ramp(50), 40, 8)
	blank := strings.Repeat(string(rune(0x2800)), 40)
	drawn := 0
	for _, line := range strings.Split(got, "\n") {
		if line != blank {
			drawn++
		}
	}
	assert.Greater(t, drawn, 0, "a ramp must produce visible dots")
}

func TestChartBoundsPadsFlatSignal(t *testing.T) {
	flat := []model.Sample{
		{Temperature: 21.0}, {Temperature: 21.0}, {Temperature: 21.0},
	}
	minT, maxT := chartBounds(flat)
	assert.InDelta(t, 20.75, minT, 1e-9)
	assert.InDelta(t, 21.25, maxT, 1e-9)

	minT, maxT = chartBounds(ramp(20))
	assert.Equal(t, 20.0, minT)
	assert.InDelta(t, 21.9, maxT, 1e-9)
}
