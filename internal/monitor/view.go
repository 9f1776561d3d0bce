package monitor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

// AppTitle heads the tab bar.
const AppTitle = "System Monitor"

// StatusText is the fixed hint shown under every view.
const StatusText = "Press 'q' to quit, arrow keys to navigate"

// renderDashboard stacks the tab bar, the current view and the status line.
func (m Model) renderDashboard() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderTabs(),
		m.renderBody(),
		m.renderStatusLine(),
	)
}

// renderTabs draws the title and every view name, highlighting the current one.
func (m Model) renderTabs() string {
	parts := []string{TitleStyle.Render(AppTitle)}
	for _, v := range AllViews() {
		if v == m.nav.View {
			parts = append(parts, ActiveTabStyle.Render(v.String()))
		} else {
			parts = append(parts, TabStyle.Render(v.String()))
		}
	}
	return TabBarStyle.Width(m.contentWidth()).Render(lipgloss.JoinHorizontal(lipgloss.Top, parts...))
}

func (m Model) renderStatusLine() string {
	return StatusLineStyle.Render(StatusText)
}

// renderBody picks the body for the current view. A failed read shows the
// same error panel whatever the view.
func (m Model) renderBody() string {
	if m.readErr != nil {
		return m.renderError()
	}
	if !m.reading.HasData() {
		return MutedStyle.Padding(1, 1).Render("Waiting for first sample...")
	}

	switch m.nav.View {
	case ViewCPU:
		return m.renderCPU()
	case ViewMemory:
		return m.renderMemory()
	case ViewDisk:
		return m.renderDisk()
	case ViewNetwork:
		return m.renderNetwork()
	case ViewProcesses:
		return m.renderProcesses()
	default:
		return m.renderOverview()
	}
}

// renderError is the visible indicator for an unreadable state.
func (m Model) renderError() string {
	msg := firstLine(m.readErr.Error())
	body := ErrorTitleStyle.Render("✗ Telemetry unavailable") + "\n\n" +
		LabelStyle.Render(msg) + "\n" +
		MutedStyle.Render("Data shown here will not update. Press 'q' to quit.")
	return ErrorPanelStyle.Width(m.contentWidth() - 2).Render(body)
}

// firstLine strips the structured error's leading mark and keeps one line.
func firstLine(s string) string {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "✗"))
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

// formatBytes renders a byte count with binary units, e.g. "1.5 GiB".
func formatBytes(b uint64) string {
	return humanize.IBytes(b)
}

// FormatRate renders a bytes-per-second rate, e.g. "12 KiB/s".
func FormatRate(bytesPerSecond float64) string {
	if bytesPerSecond < 0 {
		bytesPerSecond = 0
	}
	return humanize.IBytes(uint64(bytesPerSecond)) + "/s"
}

// formatPercent renders a percentage with one decimal.
func formatPercent(p float64) string {
	return fmt.Sprintf("%.1f%%", p)
}

// gib and mib convert bytes for the fixed-unit memory and swap labels.
func gib(b uint64) float64 { return float64(b) / (1 << 30) }
func mib(b uint64) float64 { return float64(b) / (1 << 20) }

// truncate cuts s to width display cells, marking the cut with an ellipsis.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && lipgloss.Width(string(r))+1 > width {
		r = r[:len(r)-1]
	}
	return string(r) + "…"
}
