package monitor

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Braille cells hold a 2x4 dot matrix, giving two samples per column and
// four vertical levels per row. U+2800 is the empty cell; each dot is one
// bit of the code point offset.
const brailleBase = '⠀'

// brailleBits[row][col] is the bit for the dot at that position, row 0 on top.
var brailleBits = [4][2]uint8{
	{0, 3},
	{1, 4},
	{2, 5},
	{6, 7},
}

var sparkBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// ColorFunc picks a color for a plotted value.
type ColorFunc func(v float64) lipgloss.Color

// FixedColor returns a ColorFunc that always yields c.
func FixedColor(c lipgloss.Color) ColorFunc {
	return func(float64) lipgloss.Color { return c }
}

// BrailleGraph plots data on a width x height cell grid scaled to
// [0, maxVal]. Newer samples are on the right; short data is right-aligned.
// Each column is colored by the largest value plotted in it.
func BrailleGraph(data []float64, width, height int, maxVal float64, color ColorFunc) string {
	if len(data) == 0 || width <= 0 || height <= 0 {
		return ""
	}
	if maxVal <= 0 {
		maxVal = 1
	}
	if color == nil {
		color = FixedColor(ColorGraph)
	}

	points := width * 2
	if len(data) > points {
		data = resample(data, points)
	}
	offset := points - len(data)
	levels := height * 4

	grid := make([][]rune, height)
	for r := range grid {
		grid[r] = []rune(strings.Repeat(string(brailleBase), width))
	}
	peak := make([]float64, width)

	for i, v := range data {
		x := i + offset
		col, sub := x/2, x%2
		if v > peak[col] {
			peak[col] = v
		}

		dots := int(v / maxVal * float64(levels))
		if dots > levels {
			dots = levels
		}
		// A non-zero sample always shows at least one dot.
		if dots == 0 && v > 0 {
			dots = 1
		}
		for d := 0; d < dots; d++ {
			row := height - 1 - d/4
			grid[row][col] |= rune(1) << brailleBits[3-d%4][sub]
		}
	}

	lines := make([]string, height)
	for r, row := range grid {
		var b strings.Builder
		for c, ch := range row {
			b.WriteString(lipgloss.NewStyle().Foreground(color(peak[c])).Render(string(ch)))
		}
		lines[r] = b.String()
	}
	return strings.Join(lines, "\n")
}

// Sparkline renders data as one row of block characters scaled to
// [0, maxVal], resampled to width.
func Sparkline(data []float64, width int, maxVal float64, color lipgloss.Color) string {
	if len(data) == 0 || width <= 0 {
		return ""
	}
	if maxVal <= 0 {
		maxVal = 1
	}

	var b strings.Builder
	top := len(sparkBlocks) - 1
	for _, v := range resample(data, width) {
		idx := int(v / maxVal * float64(top))
		switch {
		case idx < 0:
			idx = 0
		case idx > top:
			idx = top
		}
		b.WriteRune(sparkBlocks[idx])
	}
	return lipgloss.NewStyle().Foreground(color).Render(b.String())
}

// GraphCeiling returns a y-axis bound for non-percentage data: the largest
// value with 10% headroom, never below floor.
func GraphCeiling(data []float64, floor float64) float64 {
	peak := 0.0
	for _, v := range data {
		if v > peak {
			peak = v
		}
	}
	peak *= 1.1
	if peak < floor {
		return floor
	}
	return peak
}

// resample stretches or compresses data to n points. Compression keeps the
// maximum of each bucket so spikes survive; stretching interpolates.
func resample(data []float64, n int) []float64 {
	if len(data) == 0 || n <= 0 {
		return nil
	}
	if len(data) == n {
		return data
	}

	out := make([]float64, n)
	if len(data) == 1 {
		for i := range out {
			out[i] = data[0]
		}
		return out
	}

	if len(data) > n {
		bucket := float64(len(data)) / float64(n)
		for i := range out {
			lo := int(float64(i) * bucket)
			hi := int(float64(i+1) * bucket)
			if hi > len(data) {
				hi = len(data)
			}
			if lo >= hi {
				lo = hi - 1
			}
			m := data[lo]
			for _, v := range data[lo+1 : hi] {
				if v > m {
					m = v
				}
			}
			out[i] = m
		}
		return out
	}

	step := float64(len(data)-1) / float64(n-1)
	for i := range out {
		pos := float64(i) * step
		idx := int(pos)
		if idx >= len(data)-1 {
			out[i] = data[len(data)-1]
			continue
		}
		frac := pos - float64(idx)
		out[i] = data[idx]*(1-frac) + data[idx+1]*frac
	}
	return out
}
