package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"

	"github.com/rileyhilliard/sysdash/internal/collector"
	"github.com/rileyhilliard/sysdash/internal/config"
	"github.com/rileyhilliard/sysdash/internal/errors"
	"github.com/rileyhilliard/sysdash/internal/logger"
	"github.com/rileyhilliard/sysdash/internal/monitor"
	"github.com/rileyhilliard/sysdash/internal/sampler"
	"github.com/rileyhilliard/sysdash/internal/state"
	"github.com/rileyhilliard/sysdash/internal/telemetry"
	"github.com/rileyhilliard/sysdash/internal/ui"
)

// Snapshot output formats.
const (
	FormatText = "text"
	FormatYAML = "yaml"
	FormatJSON = "json"
)

const snapshotBarWidth = 20

// SnapshotReport is the serialized form of one sampled reading.
type SnapshotReport struct {
	CPU         CPUReport       `json:"cpu" yaml:"cpu"`
	Memory      MemoryReport    `json:"memory" yaml:"memory"`
	Disk        DiskSummary     `json:"disk" yaml:"disk"`
	Disks       []DiskReport    `json:"disks" yaml:"disks"`
	Network     NetworkReport   `json:"network" yaml:"network"`
	ProcessSort string          `json:"process_sort" yaml:"process_sort"`
	Processes   []ProcessReport `json:"processes" yaml:"processes"`
}

type CPUReport struct {
	Percent float64 `json:"percent" yaml:"percent"`
	Cores   int     `json:"cores" yaml:"cores"`
}

type MemoryReport struct {
	UsedBytes      uint64  `json:"used_bytes" yaml:"used_bytes"`
	TotalBytes     uint64  `json:"total_bytes" yaml:"total_bytes"`
	Percent        float64 `json:"percent" yaml:"percent"`
	SwapUsedBytes  uint64  `json:"swap_used_bytes" yaml:"swap_used_bytes"`
	SwapTotalBytes uint64  `json:"swap_total_bytes" yaml:"swap_total_bytes"`
	SwapPercent    float64 `json:"swap_percent" yaml:"swap_percent"`
}

type DiskSummary struct {
	TotalBytes uint64  `json:"total_bytes" yaml:"total_bytes"`
	UsedBytes  uint64  `json:"used_bytes" yaml:"used_bytes"`
	Percent    float64 `json:"percent" yaml:"percent"`
}

type DiskReport struct {
	Mount          string  `json:"mount" yaml:"mount"`
	FSType         string  `json:"fs_type,omitempty" yaml:"fs_type,omitempty"`
	TotalBytes     uint64  `json:"total_bytes" yaml:"total_bytes"`
	UsedBytes      uint64  `json:"used_bytes" yaml:"used_bytes"`
	AvailableBytes uint64  `json:"available_bytes" yaml:"available_bytes"`
	Percent        float64 `json:"percent" yaml:"percent"`
}

type NetworkReport struct {
	RxBytesPerSec float64           `json:"rx_bytes_per_sec" yaml:"rx_bytes_per_sec"`
	TxBytesPerSec float64           `json:"tx_bytes_per_sec" yaml:"tx_bytes_per_sec"`
	Interfaces    []InterfaceReport `json:"interfaces" yaml:"interfaces"`
}

type InterfaceReport struct {
	Name             string `json:"name" yaml:"name"`
	ReceivedBytes    uint64 `json:"received_bytes" yaml:"received_bytes"`
	TransmittedBytes uint64 `json:"transmitted_bytes" yaml:"transmitted_bytes"`
}

type ProcessReport struct {
	PID         int32   `json:"pid" yaml:"pid"`
	Name        string  `json:"name" yaml:"name"`
	CPUPercent  float64 `json:"cpu_percent" yaml:"cpu_percent"`
	MemoryBytes uint64  `json:"memory_bytes" yaml:"memory_bytes"`
	Status      string  `json:"status" yaml:"status"`
}

// snapshotCommand samples the host twice, one interval apart, so rates and
// CPU usage have something to compare against, then prints the result.
func snapshotCommand(ctx context.Context, w io.Writer, format string) error {
	format = strings.ToLower(strings.TrimSpace(format))
	switch format {
	case FormatText, FormatYAML, FormatJSON:
	default:
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("'%s' isn't a snapshot format - use 'text', 'yaml', or 'json'", format),
			"Pass --format text, --format yaml, or --format json.")
	}

	report, cfg, err := collectSnapshot(ctx)
	if err != nil {
		if format == FormatJSON {
			_ = WriteJSONFromError(w, err)
		}
		return err
	}

	return writeSnapshot(w, format, report, cfg)
}

func collectSnapshot(ctx context.Context) (SnapshotReport, *config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return SnapshotReport{}, nil, err
	}

	provider := collector.New(ctx, logger.New("collector"))
	reading, err := takeSnapshot(ctx, provider, sampler.Interval)
	if err != nil {
		return SnapshotReport{}, nil, err
	}

	return buildReport(reading, cfg.Processes.Limit, telemetry.SortKey(cfg.Processes.Sort)), cfg, nil
}

// takeSnapshot stores two samples taken interval apart and returns the
// resulting reading.
func takeSnapshot(ctx context.Context, provider telemetry.Provider, interval time.Duration) (state.Reading, error) {
	st := state.New(2, interval)
	smp := sampler.New(provider, st, logger.Default())

	if err := smp.Step(ctx); err != nil {
		return state.Reading{}, err
	}

	timer := time.NewTimer(interval)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return state.Reading{}, errors.WrapWithCode(ctx.Err(), errors.ErrProvider,
			"Snapshot interrupted",
			"Let the snapshot run for at least one second.")
	case <-timer.C:
	}

	if err := smp.Step(ctx); err != nil {
		return state.Reading{}, err
	}
	return st.Read()
}

func buildReport(r state.Reading, limit int, sortKey telemetry.SortKey) SnapshotReport {
	snap := r.Snapshot
	if snap == nil {
		snap = &telemetry.Snapshot{}
	}

	rep := SnapshotReport{
		CPU: CPUReport{Percent: snap.CPUPercent, Cores: snap.Cores},
		Memory: MemoryReport{
			UsedBytes:      snap.MemUsed,
			TotalBytes:     snap.MemTotal,
			Percent:        snap.MemPercent(),
			SwapUsedBytes:  snap.SwapUsed,
			SwapTotalBytes: snap.SwapTotal,
			SwapPercent:    snap.SwapPercent(),
		},
		Disks:       make([]DiskReport, 0, len(snap.Disks)),
		ProcessSort: string(sortKey),
	}

	total, used := snap.DiskTotals()
	rep.Disk = DiskSummary{TotalBytes: total, UsedBytes: used, Percent: telemetry.Percent(used, total)}

	for _, d := range snap.Disks {
		rep.Disks = append(rep.Disks, DiskReport{
			Mount:          d.Mount,
			FSType:         d.FSType,
			TotalBytes:     d.Total,
			UsedBytes:      d.Used(),
			AvailableBytes: d.Available,
			Percent:        telemetry.Percent(d.Used(), d.Total),
		})
	}

	rate := r.NetworkRate()
	rep.Network = NetworkReport{
		RxBytesPerSec: rate.RxPerSec,
		TxBytesPerSec: rate.TxPerSec,
		Interfaces:    make([]InterfaceReport, 0, len(snap.Interfaces)),
	}
	for _, iface := range snap.Interfaces {
		rep.Network.Interfaces = append(rep.Network.Interfaces, InterfaceReport{
			Name:             iface.Name,
			ReceivedBytes:    iface.Received,
			TransmittedBytes: iface.Transmitted,
		})
	}

	rows := snap.SortedProcesses(sortKey, limit)
	rep.Processes = make([]ProcessReport, 0, len(rows))
	for _, p := range rows {
		rep.Processes = append(rep.Processes, ProcessReport{
			PID:         p.PID,
			Name:        p.Name,
			CPUPercent:  p.CPUPercent,
			MemoryBytes: p.Memory,
			Status:      p.Status,
		})
	}

	return rep
}

func writeSnapshot(w io.Writer, format string, rep SnapshotReport, cfg *config.Config) error {
	switch format {
	case FormatJSON:
		return WriteJSONSuccess(w, rep)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(rep); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to encode snapshot",
				"This is unexpected - please report it.")
		}
		return enc.Close()
	default:
		_, err := io.WriteString(w, renderSnapshotText(rep, cfg.Thresholds))
		return err
	}
}

func renderSnapshotText(rep SnapshotReport, t config.ThresholdsConfig) string {
	var b strings.Builder

	b.WriteString(ui.HeadingStyle.Render("System snapshot"))
	b.WriteString("\n\n")

	line := func(label, value string) {
		fmt.Fprintf(&b, "  %-9s %s\n", label, value)
	}

	line("CPU", fmt.Sprintf("%s  %d cores",
		ui.RenderBar(rep.CPU.Percent, snapshotBarWidth, t.CPU.Warning, t.CPU.Critical), rep.CPU.Cores))
	line("Memory", fmt.Sprintf("%s  %s / %s",
		ui.RenderBar(rep.Memory.Percent, snapshotBarWidth, t.Memory.Warning, t.Memory.Critical),
		humanize.IBytes(rep.Memory.UsedBytes), humanize.IBytes(rep.Memory.TotalBytes)))
	if rep.Memory.SwapTotalBytes == 0 {
		line("Swap", ui.MutedStyle.Render("No swap configured"))
	} else {
		line("Swap", fmt.Sprintf("%s  %s / %s",
			ui.RenderBar(rep.Memory.SwapPercent, snapshotBarWidth, t.Memory.Warning, t.Memory.Critical),
			humanize.IBytes(rep.Memory.SwapUsedBytes), humanize.IBytes(rep.Memory.SwapTotalBytes)))
	}
	line("Disk", fmt.Sprintf("%s  %s / %s",
		ui.RenderBar(rep.Disk.Percent, snapshotBarWidth, t.Disk.Warning, t.Disk.Critical),
		humanize.IBytes(rep.Disk.UsedBytes), humanize.IBytes(rep.Disk.TotalBytes)))
	line("Network", fmt.Sprintf("↓ %s  ↑ %s",
		monitor.FormatRate(rep.Network.RxBytesPerSec), monitor.FormatRate(rep.Network.TxBytesPerSec)))

	section := func(title, body, empty string) {
		b.WriteString("\n")
		b.WriteString(ui.HeadingStyle.Render(title))
		b.WriteString("\n")
		if body == "" {
			b.WriteString("  " + ui.MutedStyle.Render(empty) + "\n")
			return
		}
		b.WriteString(body)
		b.WriteString("\n")
	}

	diskRows := make([][]string, len(rep.Disks))
	for i, d := range rep.Disks {
		diskRows[i] = []string{
			d.Mount,
			humanize.IBytes(d.TotalBytes),
			humanize.IBytes(d.UsedBytes),
			humanize.IBytes(d.AvailableBytes),
			fmt.Sprintf("%.1f%%", d.Percent),
		}
	}
	section("Disks", ui.RenderSimpleTable([]ui.TableColumn{
		{Title: "Mount", Width: 24},
		{Title: "Total", Width: 10},
		{Title: "Used", Width: 10},
		{Title: "Available", Width: 10},
		{Title: "Usage %", Width: 8},
	}, diskRows), "No disks found")

	ifaceRows := make([][]string, len(rep.Network.Interfaces))
	for i, iface := range rep.Network.Interfaces {
		ifaceRows[i] = []string{
			iface.Name,
			humanize.IBytes(iface.ReceivedBytes),
			humanize.IBytes(iface.TransmittedBytes),
		}
	}
	section("Interfaces", ui.RenderSimpleTable([]ui.TableColumn{
		{Title: "Interface", Width: 16},
		{Title: "Total Received", Width: 16},
		{Title: "Total Transmitted", Width: 18},
	}, ifaceRows), "No interfaces found")

	procRows := make([][]string, len(rep.Processes))
	for i, p := range rep.Processes {
		procRows[i] = []string{
			strconv.Itoa(int(p.PID)),
			p.Name,
			fmt.Sprintf("%.1f", p.CPUPercent),
			humanize.IBytes(p.MemoryBytes),
			p.Status,
		}
	}
	section(fmt.Sprintf("Processes (top %d by %s)", len(rep.Processes), rep.ProcessSort),
		ui.RenderSimpleTable([]ui.TableColumn{
			{Title: "PID", Width: 8},
			{Title: "Name", Width: 24},
			{Title: "CPU%", Width: 6},
			{Title: "Memory", Width: 10},
			{Title: "Status", Width: 8},
		}, procRows), "No processes found")

	return b.String()
}
