package tui

import (
	"math"
	"strings"

	"TempMon/internal/model"
)

// brailleBits maps a (dot column, dot row) inside one braille cell to its
// bit in the braille pattern block (U+2800..U+28FF).
var brailleBits = [2][4]rune{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

// renderChart plots the sample window as a braille line chart of
// width x height terminal cells. Returns empty string when there is not
// enough data to draw a line.
func renderChart(samples []model.Sample, width, height int) string {
	if width < 2 || height < 1 || len(samples) < 2 {
		return ""
	}

	minT, maxT := samples[0].Temperature, samples[0].Temperature
	for _, s := range samples[1:] {
		minT = math.Min(minT, s.Temperature)
		maxT = math.Max(maxT, s.Temperature)
	}
	// Flat signals still get a visible line in the middle of the chart.
	if maxT-minT < 0.5 {
		mid := (maxT + minT) / 2
		minT, maxT = mid-0.25, mid+0.25
	}

	pw, ph := width*2, height*4
	dots := make([][]bool, ph)
	for y := range dots {
		dots[y] = make([]bool, pw)
	}

	plot := func(x, y int) {
		if x >= 0 && x < pw && y >= 0 && y < ph {
			dots[y][x] = true
		}
	}

	// One dot column per horizontal step, linearly interpolated between
	// samples, with vertical fill so steep slopes stay connected.
	prevY := -1
	for x := 0; x < pw; x++ {
		pos := float64(x) / float64(pw-1) * float64(len(samples)-1)
		i := int(pos)
		frac := pos - float64(i)
		t := samples[i].Temperature
		if i+1 < len(samples) {
			t += frac * (samples[i+1].Temperature - samples[i].Temperature)
		}
		y := int(math.Round((maxT - t) / (maxT - minT) * float64(ph-1)))
		plot(x, y)
		if prevY >= 0 && abs(y-prevY) > 1 {
			lo, hi := min(y, prevY)+1, max(y, prevY)
			for fy := lo; fy < hi; fy++ {
				plot(x, fy)
			}
		}
		prevY = y
	}

	var b strings.Builder
	for cy := 0; cy < height; cy++ {
		for cx := 0; cx < width; cx++ {
			var bits rune
			for dx := 0; dx < 2; dx++ {
				for dy := 0; dy < 4; dy++ {
					if dots[cy*4+dy][cx*2+dx] {
						bits |= brailleBits[dx][dy]
					}
				}
			}
			b.WriteRune(0x2800 + bits)
		}
		if cy < height-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// chartBounds returns the plotted temperature range for axis labels,
// applying the same flat-signal padding as renderChart.
func chartBounds(samples []model.Sample) (float64, float64) {
	if len(samples) == 0 {
		return 0, 0
	}
	minT, maxT := samples[0].Temperature, samples[0].Temperature
	for _, s := range samples[1:] {
		minT = math.Min(minT, s.Temperature)
		maxT = math.Max(maxT, s.Temperature)
	}
	if maxT-minT < 0.5 {
		mid := (maxT + minT) / 2
		minT, maxT = mid-0.25, mid+0.25
	}
	return minT, maxT
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
