package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Bar block characters.
const (
	BarFilled = '█'
	BarEmpty  = '░'
)

// ClampPercent clamps a percentage to the 0-100 range.
func ClampPercent(percent float64) float64 {
	if percent != percent || percent < 0 {
		return 0
	}
	if percent > 100 {
		return 100
	}
	return percent
}

// RenderBar renders "[████░░░░]  42%" colored by the warning/critical bands.
func RenderBar(percent float64, width, warning, critical int) string {
	if width <= 0 {
		return ""
	}
	percent = ClampPercent(percent)
	filled := int(percent / 100 * float64(width))

	bar := "[" + strings.Repeat(string(BarFilled), filled) + strings.Repeat(string(BarEmpty), width-filled) + "]"
	style := lipgloss.NewStyle().Foreground(ThresholdColor(percent, warning, critical))
	return style.Render(bar) + fmt.Sprintf(" %3.0f%%", percent)
}
