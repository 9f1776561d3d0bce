package monitor

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rileyhilliard/sysdash/internal/telemetry"
	"github.com/rileyhilliard/sysdash/internal/ui"
)

// Rows taken by the tab bar, status line and panel chrome around tables.
const chromeRows = 9

func (m Model) renderOverview() string {
	snap := m.reading.Snapshot
	th := m.opts.Thresholds
	rate := m.reading.NetworkRate()
	diskTotal, diskUsed := snap.DiskTotals()
	diskPct := telemetry.Percent(diskUsed, diskTotal)

	width := m.contentWidth()
	half := width / 2
	if m.compact() {
		half = width
	}
	gaugeWidth := half - 6

	cpu := Section("CPU", formatPercent(snap.CPUPercent), []string{
		Gauge(gaugeWidth, snap.CPUPercent, th.CPU),
		kv("Usage", MetricStyle(snap.CPUPercent, th.CPU).Render(formatPercent(snap.CPUPercent))),
		kv("Cores", strconv.Itoa(snap.Cores)),
	}, half)

	mem := Section("Memory", formatPercent(snap.MemPercent()), []string{
		Gauge(gaugeWidth, snap.MemPercent(), th.Memory),
		kv("Used", formatBytes(snap.MemUsed)),
		kv("Total", formatBytes(snap.MemTotal)),
	}, half)

	disk := Section("Disk", formatPercent(diskPct), []string{
		Gauge(gaugeWidth, diskPct, th.Disk),
		kv("Used", formatBytes(diskUsed)),
		kv("Total", formatBytes(diskTotal)),
	}, half)

	network := Section("Network", "", []string{
		kv("↓ Down", lipgloss.NewStyle().Foreground(ColorNetDown).Render(FormatRate(rate.RxPerSec))),
		kv("↑ Up", lipgloss.NewStyle().Foreground(ColorNetUp).Render(FormatRate(rate.TxPerSec))),
		kv("Interfaces", strconv.Itoa(len(snap.Interfaces))),
	}, half)

	if m.compact() {
		return lipgloss.JoinVertical(lipgloss.Left, cpu, mem, disk, network)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, cpu, mem),
		lipgloss.JoinHorizontal(lipgloss.Top, disk, network),
	)
}

func (m Model) renderCPU() string {
	snap := m.reading.Snapshot
	th := m.opts.Thresholds.CPU
	width := m.contentWidth()
	inner := width - 4

	data := m.reading.CPUHistory()
	color := func(v float64) lipgloss.Color { return MetricColor(v, th) }

	lines := []string{
		Gauge(inner, snap.CPUPercent, th),
		kv("Cores", strconv.Itoa(snap.Cores)),
		"",
		LabelStyle.Render(fmt.Sprintf("History (last %d samples, 0-100%%)", len(data))),
	}
	graph := BrailleGraph(data, inner, m.graphHeight(8), 100, color)
	lines = append(lines, splitLines(graph)...)

	return Section("CPU Usage", formatPercent(snap.CPUPercent), lines, width)
}

func (m Model) renderMemory() string {
	snap := m.reading.Snapshot
	th := m.opts.Thresholds.Memory
	width := m.contentWidth()
	inner := width - 4

	ram := Section("RAM", fmt.Sprintf("%.2f/%.2f GiB (%.1f%%)", gib(snap.MemUsed), gib(snap.MemTotal), snap.MemPercent()),
		[]string{Gauge(inner, snap.MemPercent(), th)}, width)

	var swapLines []string
	swapValue := ""
	if snap.SwapTotal == 0 {
		swapLines = []string{MutedStyle.Render("No swap configured")}
	} else {
		swapValue = fmt.Sprintf("%.0f/%.0f MiB (%.1f%%)", mib(snap.SwapUsed), mib(snap.SwapTotal), snap.SwapPercent())
		swapLines = []string{Gauge(inner, snap.SwapPercent(), th)}
	}
	swap := Section("Swap", swapValue, swapLines, width)

	hist := m.reading.MemoryHistory()
	newest := 0.0
	if len(hist) > 0 {
		newest = hist[len(hist)-1]
	}
	trend := Section("History", fmt.Sprintf("%d samples", len(hist)), []string{
		Sparkline(hist, inner, 100, MetricColor(newest, th)),
	}, width)

	return lipgloss.JoinVertical(lipgloss.Left, ram, swap, trend)
}

func (m Model) renderDisk() string {
	snap := m.reading.Snapshot
	th := m.opts.Thresholds.Disk
	width := m.contentWidth()

	total, used := snap.DiskTotals()
	pct := telemetry.Percent(used, total)
	summary := Section("Disk Usage", fmt.Sprintf("%s / %s (%.1f%%)", formatBytes(used), formatBytes(total), pct),
		[]string{Gauge(width-4, pct, th)}, width)

	if len(snap.Disks) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, summary, MutedStyle.Render(" No disks found"))
	}

	mountWidth := width - 4 - 12*3 - 9
	if mountWidth < 10 {
		mountWidth = 10
	}
	cols := []ui.TableColumn{
		{Title: "Mount", Width: mountWidth},
		{Title: "Total", Width: 12},
		{Title: "Used", Width: 12},
		{Title: "Available", Width: 12},
		{Title: "Usage %", Width: 9},
	}

	rows := make([][]string, 0, len(snap.Disks))
	for _, d := range m.clip(snap.Disks, 4) {
		rows = append(rows, []string{
			truncate(d.Mount, mountWidth),
			formatBytes(d.Total),
			formatBytes(d.Used()),
			formatBytes(d.Available),
			formatPercent(telemetry.Percent(d.Used(), d.Total)),
		})
	}

	return lipgloss.JoinVertical(lipgloss.Left, summary, ui.RenderSimpleTable(cols, rows))
}

func (m Model) renderNetwork() string {
	snap := m.reading.Snapshot
	width := m.contentWidth()
	inner := width - 4

	rate := m.reading.NetworkRate()
	rates := m.reading.NetworkRateHistory()
	down := make([]float64, len(rates))
	up := make([]float64, len(rates))
	for i, r := range rates {
		down[i] = r.RxPerSec / 1024
		up[i] = r.TxPerSec / 1024
	}
	// Both graphs share one bound so their heights compare.
	ceiling := GraphCeiling(append(append([]float64{}, down...), up...), 1)
	graphHeight := m.graphHeight(3)

	lines := []string{
		kv("↓ Download", lipgloss.NewStyle().Foreground(ColorNetDown).Render(FormatRate(rate.RxPerSec))) +
			"   " + kv("↑ Upload", lipgloss.NewStyle().Foreground(ColorNetUp).Render(FormatRate(rate.TxPerSec))),
		LabelStyle.Render(fmt.Sprintf("Download history (KiB/s, peak scale %.1f)", ceiling)),
	}
	lines = append(lines, splitLines(BrailleGraph(down, inner, graphHeight, ceiling, FixedColor(ColorNetDown)))...)
	lines = append(lines, LabelStyle.Render("Upload history (KiB/s)"))
	lines = append(lines, splitLines(BrailleGraph(up, inner, graphHeight, ceiling, FixedColor(ColorNetUp)))...)

	traffic := Section("Network Traffic", fmt.Sprintf("%d intervals", len(rates)), lines, width)

	if len(snap.Interfaces) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, traffic, MutedStyle.Render(" No network interfaces found"))
	}

	nameWidth := width - 4 - 18*2
	if nameWidth < 10 {
		nameWidth = 10
	}
	cols := []ui.TableColumn{
		{Title: "Interface", Width: nameWidth},
		{Title: "Total Received", Width: 18},
		{Title: "Total Transmitted", Width: 18},
	}
	rows := make([][]string, 0, len(snap.Interfaces))
	for _, iface := range m.clipInterfaces(snap.Interfaces, 2*graphHeight+6) {
		rows = append(rows, []string{
			truncate(iface.Name, nameWidth),
			formatBytes(iface.Received),
			formatBytes(iface.Transmitted),
		})
	}

	return lipgloss.JoinVertical(lipgloss.Left, traffic, ui.RenderSimpleTable(cols, rows))
}

func (m Model) renderProcesses() string {
	snap := m.reading.Snapshot
	width := m.contentWidth()

	limit := m.opts.ProcessLimit
	if m.height > 0 {
		if fit := m.height - chromeRows; fit < limit {
			limit = fit
		}
	}
	if limit < 1 {
		limit = 1
	}
	procs := snap.SortedProcesses(m.opts.ProcessSort, limit)

	header := LabelStyle.Render(fmt.Sprintf(" %d processes, top %d by %s", len(snap.Processes), len(procs), m.opts.ProcessSort))
	if len(procs) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, header, MutedStyle.Render(" No processes found"))
	}

	nameWidth := width - 4 - 8 - 8 - 12 - 10
	if nameWidth < 12 {
		nameWidth = 12
	}
	cols := []ui.TableColumn{
		{Title: "PID", Width: 8},
		{Title: "Name", Width: nameWidth},
		{Title: "CPU%", Width: 8},
		{Title: "Memory", Width: 12},
		{Title: "Status", Width: 10},
	}
	rows := make([][]string, 0, len(procs))
	for _, p := range procs {
		rows = append(rows, []string{
			strconv.Itoa(int(p.PID)),
			truncate(p.Name, nameWidth),
			fmt.Sprintf("%.1f", p.CPUPercent),
			formatBytes(p.Memory),
			p.Status,
		})
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, ui.RenderSimpleTable(cols, rows))
}

// kv renders "Label: value".
func kv(label, value string) string {
	return LabelStyle.Render(label+": ") + ValueStyle.Render(value)
}

// graphHeight shrinks graphs on short terminals.
func (m Model) graphHeight(preferred int) int {
	if m.height > 0 && m.height < 30 {
		if preferred > 2 {
			return preferred / 2
		}
	}
	return preferred
}

// clip limits table rows to what fits below reserved lines.
func (m Model) clip(disks []telemetry.Disk, reserved int) []telemetry.Disk {
	n := m.tableRows(len(disks), reserved)
	return disks[:n]
}

func (m Model) clipInterfaces(ifaces []telemetry.Interface, reserved int) []telemetry.Interface {
	n := m.tableRows(len(ifaces), reserved)
	return ifaces[:n]
}

func (m Model) tableRows(n, reserved int) int {
	if m.height <= 0 {
		return n
	}
	fit := m.height - chromeRows - reserved
	if fit < 1 {
		fit = 1
	}
	if n > fit {
		return fit
	}
	return n
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
