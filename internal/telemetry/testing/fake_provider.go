// Package testing provides test doubles for the telemetry package.
package testing

import (
	"context"
	"errors"
	"sync"

	"github.com/rileyhilliard/sysdash/internal/telemetry"
)

// ErrExhausted is returned once a FakeProvider has no scripted results left
// and no Generate func.
var ErrExhausted = errors.New("fake provider: no more snapshots")

// Result is one scripted response from a FakeProvider.
type Result struct {
	Snapshot *telemetry.Snapshot
	Err      error
}

// FakeProvider replays scripted results in order. After the script runs out
// it calls Generate if set, otherwise it returns ErrExhausted.
type FakeProvider struct {
	mu       sync.Mutex
	script   []Result
	calls    int
	Generate func(call int) (*telemetry.Snapshot, error)
}

// NewFakeProvider creates a provider that returns the given snapshots in order.
func NewFakeProvider(snaps ...*telemetry.Snapshot) *FakeProvider {
	f := &FakeProvider{}
	for _, s := range snaps {
		f.script = append(f.script, Result{Snapshot: s})
	}
	return f
}

// Push appends a scripted result.
func (f *FakeProvider) Push(r Result) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.script = append(f.script, r)
}

// Sample implements telemetry.Provider.
func (f *FakeProvider) Sample(ctx context.Context) (*telemetry.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f.mu.Lock()
	call := f.calls
	f.calls++
	if len(f.script) > 0 {
		r := f.script[0]
		f.script = f.script[1:]
		f.mu.Unlock()
		return r.Snapshot, r.Err
	}
	gen := f.Generate
	f.mu.Unlock()

	if gen != nil {
		return gen(call)
	}
	return nil, ErrExhausted
}

// Calls returns how many times Sample has been called.
func (f *FakeProvider) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// CycleSnapshot builds a snapshot whose every numeric field is derived from
// n, so a reader can tell whether all fields came from the same cycle.
func CycleSnapshot(n int) *telemetry.Snapshot {
	v := uint64(n)
	return &telemetry.Snapshot{
		CPUPercent: float64(n),
		Cores:      n,
		MemUsed:    v,
		MemTotal:   v * 2,
		SwapUsed:   v,
		SwapTotal:  v * 2,
		Disks: []telemetry.Disk{
			{Mount: "/", Total: v * 4, Available: v},
		},
		Interfaces: []telemetry.Interface{
			{Name: "eth0", Received: v * 1000, Transmitted: v * 500},
		},
		Processes: map[int32]telemetry.Process{
			int32(n): {Name: "proc", CPUPercent: float64(n), Memory: v},
		},
	}
}

// ConsistentCycle reports whether s looks like CycleSnapshot(n) for a single
// n, returning that n.
func ConsistentCycle(s *telemetry.Snapshot) (int, bool) {
	if s == nil {
		return 0, false
	}
	n := s.Cores
	v := uint64(n)
	ok := s.CPUPercent == float64(n) &&
		s.MemUsed == v && s.MemTotal == v*2 &&
		s.SwapUsed == v && s.SwapTotal == v*2 &&
		len(s.Disks) == 1 && s.Disks[0].Total == v*4 && s.Disks[0].Available == v &&
		len(s.Interfaces) == 1 && s.Interfaces[0].Received == v*1000 && s.Interfaces[0].Transmitted == v*500
	if !ok {
		return n, false
	}
	p, found := s.Processes[int32(n)]
	return n, found && p.Memory == v
}
