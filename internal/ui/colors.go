package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Semantic colors for status indication, as ANSI codes so they follow the
// user's terminal theme.
const (
	ColorSuccess lipgloss.Color = "2" // Green
	ColorError   lipgloss.Color = "1" // Red
	ColorWarning lipgloss.Color = "3" // Yellow
	ColorInfo    lipgloss.Color = "6" // Cyan
)

// Text colors for content hierarchy
const (
	ColorPrimary   lipgloss.Color = "7" // White/default
	ColorSecondary lipgloss.Color = "4" // Blue
	ColorMuted     lipgloss.Color = "8" // Gray (bright black)
)

var (
	SuccessStyle = lipgloss.NewStyle().Foreground(ColorSuccess)
	ErrorStyle   = lipgloss.NewStyle().Foreground(ColorError)
	WarningStyle = lipgloss.NewStyle().Foreground(ColorWarning)
	InfoStyle    = lipgloss.NewStyle().Foreground(ColorInfo)
	MutedStyle   = lipgloss.NewStyle().Foreground(ColorMuted)
	HeadingStyle = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
)

// ColorMode selects how colors are emitted.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// ApplyColorMode sets the global lipgloss color profile. Auto leaves
// terminal detection alone.
func ApplyColorMode(mode ColorMode) {
	switch mode {
	case ColorNever:
		DisableColors()
	case ColorAlways:
		lipgloss.SetColorProfile(termenv.TrueColor)
	}
}

// DisableColors switches all lipgloss output to plain text.
func DisableColors() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

// ThresholdColor maps a usage percentage to green, yellow or red.
func ThresholdColor(percent float64, warning, critical int) lipgloss.Color {
	switch {
	case percent >= float64(critical):
		return ColorError
	case percent >= float64(warning):
		return ColorWarning
	default:
		return ColorSuccess
	}
}
