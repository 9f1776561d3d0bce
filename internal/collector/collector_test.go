package collector

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/process"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/sysdash/internal/telemetry"
)

func TestFilterPartitions(t *testing.T) {
	parts := []disk.PartitionStat{
		{Device: "/dev/sda1", Mountpoint: "/", Fstype: "ext4"},
		{Device: "proc", Mountpoint: "/proc", Fstype: "proc"},
		{Device: "tmpfs", Mountpoint: "/run", Fstype: "tmpfs"},
		{Device: "/dev/sda2", Mountpoint: "/home", Fstype: "ext4"},
		{Device: "/dev/sda1", Mountpoint: "/var/lib/docker/overlay2", Fstype: "ext4"},
		{Device: "/dev/nvme0n1p1", Mountpoint: "/boot/efi", Fstype: "vfat"},
		{Device: "overlay", Mountpoint: "/merged", Fstype: "overlay"},
	}

	got := filterPartitions(parts)

	mounts := make([]string, len(got))
	for i, p := range got {
		mounts[i] = p.Mountpoint
	}
	assert.Equal(t, []string{"/", "/boot/efi", "/home"}, mounts)
}

func TestFilterPartitions_KeepsShortestMountPerDevice(t *testing.T) {
	parts := []disk.PartitionStat{
		{Device: "/dev/sdb1", Mountpoint: "/mnt/data/bind", Fstype: "xfs"},
		{Device: "/dev/sdb1", Mountpoint: "/mnt/data", Fstype: "xfs"},
	}

	got := filterPartitions(parts)
	require.Len(t, got, 1)
	assert.Equal(t, "/mnt/data", got[0].Mountpoint)
}

func TestFilterPartitions_Empty(t *testing.T) {
	assert.Empty(t, filterPartitions(nil))
}

func TestStatusLabel(t *testing.T) {
	tests := []struct {
		input    []string
		expected string
	}{
		{nil, "Unknown"},
		{[]string{""}, "Unknown"},
		{[]string{"running"}, "Run"},
		{[]string{"R"}, "Run"},
		{[]string{"sleep"}, "Sleep"},
		{[]string{"idle"}, "Idle"},
		{[]string{"stop"}, "Stop"},
		{[]string{"zombie"}, "Zombie"},
		{[]string{"wait"}, "Wait"},
		{[]string{"lock"}, "Lock"},
		{[]string{"blocked"}, "Blocked"},
		{[]string{"daemon"}, "Daemon"},
		{[]string{"sleep", "running"}, "Sleep"},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%q", tt.input), func(t *testing.T) {
			assert.Equal(t, tt.expected, statusLabel(tt.input))
		})
	}
}

func TestPruneExited(t *testing.T) {
	cache := map[int32]*process.Process{
		1: {Pid: 1},
		2: {Pid: 2},
		3: {Pid: 3},
	}

	pruneExited(cache, map[int32]bool{1: true, 3: true})

	assert.Len(t, cache, 2)
	assert.Contains(t, cache, int32(1))
	assert.Contains(t, cache, int32(3))
	assert.NotContains(t, cache, int32(2))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.0, clamp(-5, 0, 100))
	assert.Equal(t, 100.0, clamp(250, 0, 100))
	assert.Equal(t, 42.5, clamp(42.5, 0, 100))
}

func TestCollector_ImplementsProvider(t *testing.T) {
	var _ telemetry.Provider = (*Collector)(nil)
}

// Exercises gopsutil against the machine running the tests. Skipped when the
// sandbox hides host counters.
func TestCollector_SampleLocalHost(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	c := New(ctx, nil)
	snap, err := c.Sample(ctx)
	if err != nil {
		t.Skipf("host metrics unavailable: %v", err)
	}
	require.NotNil(t, snap)

	assert.GreaterOrEqual(t, snap.CPUPercent, 0.0)
	assert.LessOrEqual(t, snap.CPUPercent, 100.0)
	assert.Positive(t, snap.MemTotal)
	assert.LessOrEqual(t, snap.MemUsed, snap.MemTotal)
	for _, d := range snap.Disks {
		assert.NotEmpty(t, d.Mount)
		assert.LessOrEqual(t, d.Available, d.Total)
	}

	// Second sample measures CPU against the first.
	_, err = c.Sample(ctx)
	require.NoError(t, err)
}
