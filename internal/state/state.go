// Package state holds the telemetry shared between the sampler goroutine and
// the dashboard. A single RWMutex guards the current snapshot and every
// history series so a reader always sees one whole sampling cycle.
package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/rileyhilliard/sysdash/internal/errors"
	"github.com/rileyhilliard/sysdash/internal/history"
	"github.com/rileyhilliard/sysdash/internal/telemetry"
)

// ErrPoisoned is returned by every Read and Update once a panic has occurred
// while the lock was held. It never clears.
var ErrPoisoned = errors.New(errors.ErrState,
	"Telemetry state is unavailable",
	"An internal error interrupted an update. Restart sysdash; run with SYSDASH_DEBUG=1 to capture a log.")

// State is the shared telemetry store. The zero value is not usable; call New.
type State struct {
	mu       sync.RWMutex
	poisoned bool
	cause    string

	snapshot *telemetry.Snapshot
	cycle    uint64
	cpu      *history.Series[float64]
	memory   *history.Series[history.MemoryPoint]
	network  *history.Series[history.Counter]
	interval time.Duration

	// Hooks run inside the lock; tests use them to inject panics.
	beforeCommit func(*telemetry.Snapshot)
	beforeRead   func()
}

// New creates an empty state whose series hold capacity samples taken
// interval apart. The interval is only used to turn counter deltas into rates.
func New(capacity int, interval time.Duration) *State {
	return &State{
		cpu:      history.New[float64](capacity),
		memory:   history.New[history.MemoryPoint](capacity),
		network:  history.New[history.Counter](capacity),
		interval: interval,
	}
}

// Update installs snap as the current snapshot and appends its CPU, memory
// and summed network counters to the history, all in one critical section.
func (s *State) Update(snap *telemetry.Snapshot) (err error) {
	if snap == nil {
		return errors.New(errors.ErrState, "Refusing to store an empty snapshot", "")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	defer func() {
		if p := recover(); p != nil {
			err = s.poisonLocked(p)
		}
	}()

	if s.poisoned {
		return ErrPoisoned
	}

	if s.beforeCommit != nil {
		s.beforeCommit(snap)
	}

	rx, tx := snap.NetworkTotals()
	s.snapshot = snap
	s.cpu.Push(snap.CPUPercent)
	s.memory.Push(history.MemoryPoint{Used: snap.MemUsed, Total: snap.MemTotal})
	s.network.Push(history.Counter{Rx: rx, Tx: tx})
	s.cycle++
	return nil
}

// Read returns a consistent copy of the current telemetry. The lock is held
// only while the series are copied.
func (s *State) Read() (r Reading, err error) {
	// Registered before the read lock so it runs after RUnlock and can take
	// the write lock.
	defer func() {
		if p := recover(); p != nil {
			s.mu.Lock()
			defer s.mu.Unlock()
			r, err = Reading{}, s.poisonLocked(p)
		}
	}()

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.beforeRead != nil {
		s.beforeRead()
	}

	if s.poisoned {
		return Reading{}, ErrPoisoned
	}

	return Reading{
		Snapshot: s.snapshot,
		Cycle:    s.cycle,
		CPU:      s.cpu.Clone(),
		Memory:   s.memory.Clone(),
		Network:  s.network.Clone(),
		Interval: s.interval,
	}, nil
}

// Poison marks the state unusable. Every later Read and Update fails.
func (s *State) Poison(reason string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.poisoned = true
	s.cause = reason
}

// Poisoned reports whether the state has been poisoned, and why.
func (s *State) Poisoned() (bool, string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.poisoned, s.cause
}

// poisonLocked records a recovered panic. Caller holds the write lock.
func (s *State) poisonLocked(p any) error {
	s.poisoned = true
	s.cause = fmt.Sprint(p)
	return errors.WrapWithCode(fmt.Errorf("panic: %v", p), ErrPoisoned.Code, ErrPoisoned.Message, ErrPoisoned.Suggestion)
}

// Reading is an immutable view of the state at one point in time.
type Reading struct {
	Snapshot *telemetry.Snapshot
	Cycle    uint64
	CPU      *history.Series[float64]
	Memory   *history.Series[history.MemoryPoint]
	Network  *history.Series[history.Counter]
	Interval time.Duration
}

// HasData reports whether at least one sample has been stored.
func (r Reading) HasData() bool {
	return r.Snapshot != nil
}

// NetworkDelta returns the bytes moved during the last sampling interval.
func (r Reading) NetworkDelta() history.Counter {
	if r.Network == nil {
		return history.Counter{}
	}
	return history.CounterRate(r.Network)
}

// NetworkRate returns the current network throughput in bytes per second.
func (r Reading) NetworkRate() history.Throughput {
	return history.PerSecond(r.NetworkDelta(), r.Interval)
}

// NetworkRateHistory returns per-interval throughput for every adjacent pair
// of samples, oldest first.
func (r Reading) NetworkRateHistory() []history.Throughput {
	if r.Network == nil {
		return nil
	}
	deltas := history.CounterDeltas(r.Network)
	out := make([]history.Throughput, len(deltas))
	for i, d := range deltas {
		out[i] = history.PerSecond(d, r.Interval)
	}
	return out
}

// CPUHistory returns the CPU percentages, oldest first.
func (r Reading) CPUHistory() []float64 {
	if r.CPU == nil {
		return nil
	}
	return r.CPU.Values()
}

// MemoryHistory returns memory usage percentages, oldest first.
func (r Reading) MemoryHistory() []float64 {
	if r.Memory == nil {
		return nil
	}
	points := r.Memory.Values()
	out := make([]float64, len(points))
	for i, p := range points {
		out[i] = p.Percent()
	}
	return out
}
