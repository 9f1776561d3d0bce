// Package collector implements telemetry.Provider on top of gopsutil.
package collector

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/net"
	"github.com/shirou/gopsutil/v4/process"

	"github.com/rileyhilliard/sysdash/internal/errors"
	"github.com/rileyhilliard/sysdash/internal/logger"
	"github.com/rileyhilliard/sysdash/internal/telemetry"
)

// pseudoFilesystems never represent real storage and are hidden from the
// disk view.
var pseudoFilesystems = map[string]bool{
	"autofs": true, "binfmt_misc": true, "bpf": true, "cgroup": true,
	"cgroup2": true, "configfs": true, "debugfs": true, "devfs": true,
	"devpts": true, "devtmpfs": true, "efivarfs": true, "fusectl": true,
	"hugetlbfs": true, "mqueue": true, "nsfs": true, "proc": true,
	"pstore": true, "ramfs": true, "rpc_pipefs": true, "securityfs": true,
	"squashfs": true, "sysfs": true, "tmpfs": true, "tracefs": true,
	"nullfs": true, "overlay": true,
}

// Collector samples the local host. CPU and per-process CPU percentages
// are deltas since the previous Sample, so the first call reports zero.
type Collector struct {
	log logger.Logger

	mu    sync.Mutex
	procs map[int32]*process.Process
}

// New creates a collector and primes the CPU counters.
func New(ctx context.Context, log logger.Logger) *Collector {
	if log == nil {
		log = logger.Noop()
	}
	c := &Collector{
		log:   log,
		procs: make(map[int32]*process.Process),
	}
	// Prime so the next call measures a real interval.
	if _, err := cpu.PercentWithContext(ctx, 0, false); err != nil {
		c.log.Debug("priming cpu counters: %v", err)
	}
	return c
}

// Sample implements telemetry.Provider. Only a CPU or memory failure fails
// the sample; disk, network and process errors leave those sections partial.
func (c *Collector) Sample(ctx context.Context) (*telemetry.Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := &telemetry.Snapshot{}

	percents, err := cpu.PercentWithContext(ctx, 0, false)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrProvider,
			"Failed to read CPU usage", "Check that /proc (or the platform equivalent) is readable")
	}
	if len(percents) > 0 {
		snap.CPUPercent = clamp(percents[0], 0, 100)
	}
	if cores, err := cpu.CountsWithContext(ctx, true); err == nil {
		snap.Cores = cores
	} else {
		c.log.Debug("cpu count: %v", err)
	}

	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrProvider,
			"Failed to read memory usage", "Check that /proc/meminfo (or the platform equivalent) is readable")
	}
	snap.MemUsed = vm.Used
	snap.MemTotal = vm.Total

	if sw, err := mem.SwapMemoryWithContext(ctx); err == nil {
		snap.SwapUsed = sw.Used
		snap.SwapTotal = sw.Total
	} else {
		c.log.Debug("swap: %v", err)
	}

	snap.Disks = c.disks(ctx)
	snap.Interfaces = c.interfaces(ctx)
	snap.Processes = c.processes(ctx)

	return snap, nil
}

func (c *Collector) disks(ctx context.Context) []telemetry.Disk {
	parts, err := disk.PartitionsWithContext(ctx, false)
	if err != nil {
		c.log.Debug("disk partitions: %v", err)
		// Partitions may return a partial list alongside an error.
	}

	var out []telemetry.Disk
	for _, p := range filterPartitions(parts) {
		usage, err := disk.UsageWithContext(ctx, p.Mountpoint)
		if err != nil {
			c.log.Debug("disk usage %s: %v", p.Mountpoint, err)
			continue
		}
		if usage.Total == 0 {
			continue
		}
		out = append(out, telemetry.Disk{
			Mount:     p.Mountpoint,
			FSType:    p.Fstype,
			Total:     usage.Total,
			Available: usage.Free,
		})
	}
	return out
}

// filterPartitions drops pseudo filesystems and repeated mounts of the same
// device, keeping the shortest mount path, then orders by mount point.
func filterPartitions(parts []disk.PartitionStat) []disk.PartitionStat {
	byDevice := make(map[string]disk.PartitionStat)
	var order []string
	for _, p := range parts {
		if pseudoFilesystems[strings.ToLower(p.Fstype)] {
			continue
		}
		key := p.Device
		if key == "" || key == "none" {
			key = p.Mountpoint
		}
		prev, seen := byDevice[key]
		if !seen {
			order = append(order, key)
			byDevice[key] = p
			continue
		}
		if len(p.Mountpoint) < len(prev.Mountpoint) {
			byDevice[key] = p
		}
	}

	out := make([]disk.PartitionStat, 0, len(order))
	for _, k := range order {
		out = append(out, byDevice[k])
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Mountpoint < out[j].Mountpoint })
	return out
}

func (c *Collector) interfaces(ctx context.Context) []telemetry.Interface {
	counters, err := net.IOCountersWithContext(ctx, true)
	if err != nil {
		c.log.Debug("network counters: %v", err)
		return nil
	}

	out := make([]telemetry.Interface, 0, len(counters))
	for _, ctr := range counters {
		out = append(out, telemetry.Interface{
			Name:        ctr.Name,
			Received:    ctr.BytesRecv,
			Transmitted: ctr.BytesSent,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (c *Collector) processes(ctx context.Context) map[int32]telemetry.Process {
	pids, err := process.PidsWithContext(ctx)
	if err != nil {
		c.log.Debug("process list: %v", err)
		return nil
	}

	out := make(map[int32]telemetry.Process, len(pids))
	live := make(map[int32]bool, len(pids))
	for _, pid := range pids {
		live[pid] = true

		proc, ok := c.procs[pid]
		if !ok {
			proc, err = process.NewProcessWithContext(ctx, pid)
			if err != nil {
				// Exited between listing and opening.
				continue
			}
			c.procs[pid] = proc
		}

		name, err := proc.NameWithContext(ctx)
		if err != nil {
			delete(c.procs, pid)
			continue
		}

		row := telemetry.Process{Name: name}
		// Interval 0 compares against the previous call on the same handle.
		if pct, err := proc.PercentWithContext(ctx, 0); err == nil {
			row.CPUPercent = pct
		}
		if mi, err := proc.MemoryInfoWithContext(ctx); err == nil && mi != nil {
			row.Memory = mi.RSS
		}
		if st, err := proc.StatusWithContext(ctx); err == nil {
			row.Status = statusLabel(st)
		}
		out[pid] = row
	}

	pruneExited(c.procs, live)
	return out
}

// pruneExited removes cached handles whose pid is no longer running.
func pruneExited(cache map[int32]*process.Process, live map[int32]bool) {
	for pid := range cache {
		if !live[pid] {
			delete(cache, pid)
		}
	}
}

// statusLabel turns gopsutil's status list into a single display word.
func statusLabel(status []string) string {
	if len(status) == 0 {
		return "Unknown"
	}
	switch strings.ToLower(status[0]) {
	case "running", "r":
		return "Run"
	case "sleep", "s":
		return "Sleep"
	case "idle", "i":
		return "Idle"
	case "stop", "t":
		return "Stop"
	case "zombie", "z":
		return "Zombie"
	case "wait", "w":
		return "Wait"
	case "lock", "l":
		return "Lock"
	case "blocked", "d":
		return "Blocked"
	case "":
		return "Unknown"
	default:
		s := status[0]
		return strings.ToUpper(s[:1]) + s[1:]
	}
}

func clamp(v, lo, hi float64) float64 {
	if v != v || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
