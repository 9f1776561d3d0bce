package monitor

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricColor(t *testing.T) {
	th := Threshold{Warning: 70, Critical: 90}

	tests := []struct {
		percent  float64
		expected lipgloss.Color
	}{
		{0, ColorHealthy},
		{69.9, ColorHealthy},
		{70, ColorWarning},
		{89.9, ColorWarning},
		{90, ColorCritical},
		{100, ColorCritical},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, MetricColor(tt.percent, th), "percent %.1f", tt.percent)
	}
}

func TestDefaultThresholds(t *testing.T) {
	th := DefaultThresholds()
	assert.Equal(t, Threshold{Warning: 70, Critical: 90}, th.CPU)
	assert.Equal(t, Threshold{Warning: 70, Critical: 90}, th.Memory)
	assert.Equal(t, Threshold{Warning: 80, Critical: 95}, th.Disk)
}

func TestGauge(t *testing.T) {
	th := DefaultThresholds().CPU

	tests := []struct {
		name    string
		width   int
		percent float64
		filled  int
	}{
		{"empty", 10, 0, 0},
		{"half", 10, 50, 5},
		{"full", 10, 100, 10},
		{"over 100 clamps", 10, 150, 10},
		{"negative clamps", 10, -5, 0},
		{"zero width uses one cell", 0, 100, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Gauge(tt.width, tt.percent, th)
			assert.Equal(t, tt.filled, strings.Count(out, "▰"))
			w := tt.width
			if w < 1 {
				w = 1
			}
			assert.Equal(t, w, lipgloss.Width(out))
		})
	}
}

func TestSection(t *testing.T) {
	out := Section("CPU", "42%", []string{"line one", "line two"}, 30)
	lines := strings.Split(out, "\n")

	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "CPU")
	assert.Contains(t, lines[0], "42%")
	assert.Contains(t, lines[1], "line one")
	assert.Contains(t, lines[2], "line two")
	for _, l := range lines {
		assert.Equal(t, 30, lipgloss.Width(l))
	}
}

func TestSection_MinimumWidth(t *testing.T) {
	out := Section("T", "", nil, 2)
	for _, l := range strings.Split(out, "\n") {
		assert.Equal(t, 12, lipgloss.Width(l))
	}
}
