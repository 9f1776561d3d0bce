// Package telemetry defines the host snapshot exchanged between the metrics
// provider, the sampler, and the dashboard.
package telemetry

import (
	"context"
	"sort"
	"strings"
)

// Snapshot is one sampling cycle's view of the host. It is built by a
// Provider and never modified afterwards; consumers share the pointer.
type Snapshot struct {
	CPUPercent float64
	Cores      int

	MemUsed   uint64
	MemTotal  uint64
	SwapUsed  uint64
	SwapTotal uint64

	Disks      []Disk
	Interfaces []Interface
	Processes  map[int32]Process
}

// Disk is the space usage of one mounted filesystem.
type Disk struct {
	Mount     string
	FSType    string
	Total     uint64
	Available uint64
}

// Used returns the bytes in use. Never underflows.
func (d Disk) Used() uint64 {
	if d.Available > d.Total {
		return 0
	}
	return d.Total - d.Available
}

// Interface holds cumulative byte counters for a network interface.
type Interface struct {
	Name        string
	Received    uint64
	Transmitted uint64
}

// IsLoopback reports whether the interface is the local loopback device.
func (i Interface) IsLoopback() bool {
	return i.Name == "lo" || i.Name == "lo0" || strings.HasPrefix(i.Name, "Loopback")
}

// Process is a single row of the process table.
type Process struct {
	Name       string
	CPUPercent float64
	Memory     uint64 // resident bytes
	Status     string
}

// Provider produces fresh snapshots. Implementations refresh their own
// counters on every call and must be cheap enough to call once per second.
type Provider interface {
	Sample(ctx context.Context) (*Snapshot, error)
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func(ctx context.Context) (*Snapshot, error)

// Sample calls f(ctx).
func (f ProviderFunc) Sample(ctx context.Context) (*Snapshot, error) {
	return f(ctx)
}

// MemPercent returns used memory as a percentage of total.
func (s *Snapshot) MemPercent() float64 {
	return Percent(s.MemUsed, s.MemTotal)
}

// SwapPercent returns used swap as a percentage of total.
func (s *Snapshot) SwapPercent() float64 {
	return Percent(s.SwapUsed, s.SwapTotal)
}

// DiskTotals sums total and used space over every disk.
func (s *Snapshot) DiskTotals() (total, used uint64) {
	for _, d := range s.Disks {
		total += d.Total
		used += d.Used()
	}
	return total, used
}

// NetworkTotals sums cumulative counters over all non-loopback interfaces.
func (s *Snapshot) NetworkTotals() (rx, tx uint64) {
	for _, iface := range s.Interfaces {
		if iface.IsLoopback() {
			continue
		}
		rx += iface.Received
		tx += iface.Transmitted
	}
	return rx, tx
}

// ProcessRow is a process with its pid, used for ordered listings.
type ProcessRow struct {
	PID int32
	Process
}

// SortKey selects the process ordering.
type SortKey string

const (
	SortByCPU    SortKey = "cpu"
	SortByMemory SortKey = "memory"
	SortByPID    SortKey = "pid"
	SortByName   SortKey = "name"
)

// SortedProcesses returns up to limit processes ordered by key. A limit of
// zero or less returns every process. Ties fall back to pid order so the
// table doesn't jitter between frames.
func (s *Snapshot) SortedProcesses(key SortKey, limit int) []ProcessRow {
	rows := make([]ProcessRow, 0, len(s.Processes))
	for pid, p := range s.Processes {
		rows = append(rows, ProcessRow{PID: pid, Process: p})
	}

	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		switch key {
		case SortByMemory:
			if a.Memory != b.Memory {
				return a.Memory > b.Memory
			}
		case SortByName:
			if an, bn := strings.ToLower(a.Name), strings.ToLower(b.Name); an != bn {
				return an < bn
			}
		case SortByPID:
			// pid order below
		default:
			if a.CPUPercent != b.CPUPercent {
				return a.CPUPercent > b.CPUPercent
			}
		}
		return a.PID < b.PID
	})

	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows
}

// Percent returns used/total as a percentage, or 0 when total is 0.
func Percent(used, total uint64) float64 {
	if total == 0 {
		return 0
	}
	return float64(used) / float64(total) * 100
}
