package state

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/sysdash/internal/errors"
	"github.com/rileyhilliard/sysdash/internal/history"
	"github.com/rileyhilliard/sysdash/internal/telemetry"
	telemetrytest "github.com/rileyhilliard/sysdash/internal/telemetry/testing"
)

func TestState_ReadEmpty(t *testing.T) {
	s := New(history.DefaultCapacity, time.Second)

	r, err := s.Read()
	require.NoError(t, err)
	assert.False(t, r.HasData())
	assert.Equal(t, uint64(0), r.Cycle)
	assert.Empty(t, r.CPUHistory())
	assert.Empty(t, r.MemoryHistory())
	assert.Equal(t, history.Throughput{}, r.NetworkRate())
	assert.Empty(t, r.NetworkRateHistory())
}

func TestState_UpdateRejectsNil(t *testing.T) {
	s := New(history.DefaultCapacity, time.Second)

	err := s.Update(nil)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrState))

	r, err := s.Read()
	require.NoError(t, err)
	assert.False(t, r.HasData())
}

func TestState_UpdateAppendsEverySeries(t *testing.T) {
	s := New(history.DefaultCapacity, time.Second)

	snap := &telemetry.Snapshot{
		CPUPercent: 42,
		MemUsed:    1 << 30,
		MemTotal:   4 << 30,
		Interfaces: []telemetry.Interface{
			{Name: "lo", Received: 999, Transmitted: 999},
			{Name: "eth0", Received: 100, Transmitted: 50},
		},
	}
	require.NoError(t, s.Update(snap))

	r, err := s.Read()
	require.NoError(t, err)
	assert.True(t, r.HasData())
	assert.Same(t, snap, r.Snapshot)
	assert.Equal(t, uint64(1), r.Cycle)
	assert.Equal(t, []float64{42}, r.CPUHistory())
	assert.Equal(t, []float64{25}, r.MemoryHistory())
	assert.Equal(t, []history.Counter{{Rx: 100, Tx: 50}}, r.Network.Values(), "loopback excluded")
}

func TestState_NetworkRate(t *testing.T) {
	s := New(history.DefaultCapacity, time.Second)

	push := func(rx, tx uint64) {
		require.NoError(t, s.Update(&telemetry.Snapshot{
			Interfaces: []telemetry.Interface{{Name: "eth0", Received: rx, Transmitted: tx}},
		}))
	}

	push(0, 0)
	r, err := s.Read()
	require.NoError(t, err)
	assert.Equal(t, history.Throughput{}, r.NetworkRate(), "a single sample has no rate")

	push(1000, 500)
	r, err = s.Read()
	require.NoError(t, err)
	assert.Equal(t, history.Throughput{RxPerSec: 1000, TxPerSec: 500}, r.NetworkRate())

	push(2500, 500)
	r, err = s.Read()
	require.NoError(t, err)
	assert.Equal(t, history.Throughput{RxPerSec: 1500, TxPerSec: 0}, r.NetworkRate())
	assert.Equal(t, []history.Throughput{
		{RxPerSec: 1000, TxPerSec: 500},
		{RxPerSec: 1500, TxPerSec: 0},
	}, r.NetworkRateHistory())

	// Interface disappeared: counters drop, rate clamps to zero.
	push(10, 10)
	r, err = s.Read()
	require.NoError(t, err)
	assert.Equal(t, history.Throughput{}, r.NetworkRate())
}

func TestState_HistoryBounded(t *testing.T) {
	s := New(history.DefaultCapacity, time.Second)

	for i := 0; i < 65; i++ {
		require.NoError(t, s.Update(&telemetry.Snapshot{CPUPercent: float64(i)}))
	}

	r, err := s.Read()
	require.NoError(t, err)
	cpu := r.CPUHistory()
	require.Len(t, cpu, 60)
	assert.Equal(t, 5.0, cpu[0])
	assert.Equal(t, 64.0, cpu[59])
	assert.Equal(t, 60, r.Memory.Len())
	assert.Equal(t, 60, r.Network.Len())
	assert.Equal(t, uint64(65), r.Cycle)
}

func TestState_ReadingIsDetached(t *testing.T) {
	s := New(history.DefaultCapacity, time.Second)
	require.NoError(t, s.Update(&telemetry.Snapshot{CPUPercent: 1}))

	r, err := s.Read()
	require.NoError(t, err)

	require.NoError(t, s.Update(&telemetry.Snapshot{CPUPercent: 2}))

	assert.Equal(t, []float64{1}, r.CPUHistory())
	assert.Equal(t, 1.0, r.Snapshot.CPUPercent)
}

// Concurrent writers and readers must never observe a snapshot or a series
// that mixes two cycles.
func TestState_ConcurrentReadsAreConsistent(t *testing.T) {
	s := New(history.DefaultCapacity, time.Second)

	const cycles = 500
	var wg sync.WaitGroup
	done := make(chan struct{})

	wg.Add(1)
	go func() {
		defer wg.Done()
		defer close(done)
		for i := 1; i <= cycles; i++ {
			if err := s.Update(telemetrytest.CycleSnapshot(i)); err != nil {
				t.Errorf("update %d: %v", i, err)
				return
			}
		}
	}()

	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-done:
					return
				default:
				}

				r, err := s.Read()
				if err != nil {
					t.Errorf("read: %v", err)
					return
				}
				if !r.HasData() {
					continue
				}

				n, ok := telemetrytest.ConsistentCycle(r.Snapshot)
				if !ok {
					t.Errorf("mixed snapshot for cycle %d", n)
					return
				}
				if uint64(n) != r.Cycle {
					t.Errorf("snapshot cycle %d read with counter %d", n, r.Cycle)
					return
				}
				newest, ok := r.CPU.Newest()
				if !ok || newest != float64(n) {
					t.Errorf("cpu series newest %v does not match cycle %d", newest, n)
					return
				}
				net, _ := r.Network.Newest()
				if net.Rx != uint64(n)*1000 || net.Tx != uint64(n)*500 {
					t.Errorf("network series newest %+v does not match cycle %d", net, n)
					return
				}
			}
		}()
	}

	wg.Wait()

	r, err := s.Read()
	require.NoError(t, err)
	assert.Equal(t, uint64(cycles), r.Cycle)
}

func TestState_Poison(t *testing.T) {
	s := New(history.DefaultCapacity, time.Second)
	require.NoError(t, s.Update(&telemetry.Snapshot{CPUPercent: 1}))

	s.Poison("test")

	_, err := s.Read()
	assert.ErrorIs(t, err, ErrPoisoned)
	assert.True(t, errors.IsCode(err, errors.ErrState))

	err = s.Update(&telemetry.Snapshot{CPUPercent: 2})
	assert.ErrorIs(t, err, ErrPoisoned)

	poisoned, reason := s.Poisoned()
	assert.True(t, poisoned)
	assert.Equal(t, "test", reason)
}

func TestState_PanicDuringUpdatePoisons(t *testing.T) {
	s := New(history.DefaultCapacity, time.Second)
	s.beforeCommit = func(*telemetry.Snapshot) { panic("boom") }

	err := s.Update(&telemetry.Snapshot{CPUPercent: 1})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPoisoned)
	assert.Contains(t, err.Error(), "panic: boom")

	// Sticky: later calls fail even without the panic.
	s.beforeCommit = nil
	assert.ErrorIs(t, s.Update(&telemetry.Snapshot{CPUPercent: 2}), ErrPoisoned)

	_, err = s.Read()
	assert.ErrorIs(t, err, ErrPoisoned)

	poisoned, reason := s.Poisoned()
	assert.True(t, poisoned)
	assert.Equal(t, "boom", reason)
}

func TestState_PanicDuringReadPoisons(t *testing.T) {
	s := New(history.DefaultCapacity, time.Second)
	require.NoError(t, s.Update(&telemetry.Snapshot{CPUPercent: 1}))

	s.beforeRead = func() { panic("read failed") }
	r, err := s.Read()
	assert.ErrorIs(t, err, ErrPoisoned)
	assert.False(t, r.HasData())

	s.beforeRead = nil
	_, err = s.Read()
	assert.ErrorIs(t, err, ErrPoisoned)

	// The lock was released; a writer does not deadlock.
	assert.ErrorIs(t, s.Update(&telemetry.Snapshot{}), ErrPoisoned)
}
