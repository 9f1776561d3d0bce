package monitor

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Dashboard color palette
const (
	ColorSurfaceBg = lipgloss.Color("#12121A")
	ColorBorder    = lipgloss.Color("#2A2A4A")

	ColorHealthy  = lipgloss.Color("#39FF14")
	ColorWarning  = lipgloss.Color("#FFAA00")
	ColorCritical = lipgloss.Color("#FF0055")

	ColorTextPrimary   = lipgloss.Color("#FFFFFF")
	ColorTextSecondary = lipgloss.Color("#B4B4D0")
	ColorTextMuted     = lipgloss.Color("#6B6B8D")

	ColorAccent    = lipgloss.Color("#FF2E97")
	ColorAccentDim = lipgloss.Color("#BF40FF")

	ColorGraph   = lipgloss.Color("#00FFFF")
	ColorNetDown = lipgloss.Color("#00FFFF")
	ColorNetUp   = lipgloss.Color("#BF40FF")
)

// Threshold holds the warning and critical percentages for one metric.
type Threshold struct {
	Warning  int
	Critical int
}

// Thresholds configures metric coloring per resource.
type Thresholds struct {
	CPU    Threshold
	Memory Threshold
	Disk   Threshold
}

// DefaultThresholds returns the built-in color bands.
func DefaultThresholds() Thresholds {
	return Thresholds{
		CPU:    Threshold{Warning: 70, Critical: 90},
		Memory: Threshold{Warning: 70, Critical: 90},
		Disk:   Threshold{Warning: 80, Critical: 95},
	}
}

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true).
			Padding(0, 1)

	TabStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Padding(0, 1)

	ActiveTabStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary).
			Background(ColorAccentDim).
			Bold(true).
			Padding(0, 1)

	TabBarStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder)

	StatusLineStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Padding(0, 1)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorTextSecondary)

	ValueStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary).
			Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	ErrorTitleStyle = lipgloss.NewStyle().
			Foreground(ColorCritical).
			Bold(true)

	ErrorPanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorCritical).
			Padding(0, 1)
)

// MetricColor returns green, amber or red for percent against t.
func MetricColor(percent float64, t Threshold) lipgloss.Color {
	switch {
	case percent >= float64(t.Critical):
		return ColorCritical
	case percent >= float64(t.Warning):
		return ColorWarning
	default:
		return ColorHealthy
	}
}

// MetricStyle is MetricColor as a foreground style.
func MetricStyle(percent float64, t Threshold) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(MetricColor(percent, t))
}

// Gauge renders a horizontal bar of width cells, filled to percent and
// colored by the threshold band.
func Gauge(width int, percent float64, t Threshold) string {
	if width < 1 {
		width = 1
	}
	percent = clampPercent(percent)

	filled := int(percent / 100 * float64(width))
	if filled > width {
		filled = width
	}

	bar := strings.Repeat("▰", filled) + strings.Repeat("▱", width-filled)
	return MetricStyle(percent, t).Render(bar)
}

func clampPercent(p float64) float64 {
	if p != p || p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// Section draws a rounded box of the given outer width with title on the
// top-left edge and value on the top-right edge.
//
//	╭─ Title ───────────────── Value ╮
//	│ line                           │
//	╰────────────────────────────────╯
func Section(title, value string, lines []string, width int) string {
	if width < 12 {
		width = 12
	}
	border := lipgloss.NewStyle().Foreground(ColorBorder)
	titleStyle := lipgloss.NewStyle().Foreground(ColorAccent).Bold(true)
	valueStyle := lipgloss.NewStyle().Foreground(ColorGraph).Bold(true)

	fill := width - (3 + lipgloss.Width(title) + 1) - (1 + lipgloss.Width(value) + 2)
	if fill < 1 {
		fill = 1
	}

	var b strings.Builder
	b.WriteString(border.Render("╭─ "))
	b.WriteString(titleStyle.Render(title))
	b.WriteString(border.Render(" " + strings.Repeat("─", fill) + " "))
	b.WriteString(valueStyle.Render(value))
	b.WriteString(border.Render(" ╮"))
	b.WriteString("\n")

	inner := width - 4
	for _, line := range lines {
		pad := inner - lipgloss.Width(line)
		if pad < 0 {
			pad = 0
		}
		b.WriteString(border.Render("│"))
		b.WriteString(" " + line + strings.Repeat(" ", pad) + " ")
		b.WriteString(border.Render("│"))
		b.WriteString("\n")
	}

	b.WriteString(border.Render("╰" + strings.Repeat("─", width-2) + "╯"))
	return b.String()
}
