package history

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRate(t *testing.T) {
	tests := []struct {
		name     string
		values   []uint64
		expected uint64
	}{
		{"empty", nil, 0},
		{"single sample", []uint64{100}, 0},
		{"increasing", []uint64{100, 250}, 150},
		{"only newest two count", []uint64{0, 1000, 1200}, 200},
		{"flat", []uint64{500, 500}, 0},
		{"counter reset clamps to zero", []uint64{5000, 10}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New[uint64](DefaultCapacity)
			for _, v := range tt.values {
				s.Push(v)
			}
			assert.Equal(t, tt.expected, Rate(s))
		})
	}
}

func TestRate_Float(t *testing.T) {
	s := New[float64](4)
	s.Push(10.5)
	s.Push(8)
	assert.Equal(t, 0.0, Rate(s))

	s.Push(9.25)
	assert.InDelta(t, 1.25, Rate(s), 1e-9)
}

func TestCounterRate_Sequence(t *testing.T) {
	s := New[Counter](DefaultCapacity)

	s.Push(Counter{0, 0})
	assert.Equal(t, Counter{}, CounterRate(s))

	s.Push(Counter{1000, 500})
	assert.Equal(t, Counter{Rx: 1000, Tx: 500}, CounterRate(s))

	s.Push(Counter{2500, 500})
	assert.Equal(t, Counter{Rx: 1500, Tx: 0}, CounterRate(s))
}

func TestCounterRate_ComponentsClampIndependently(t *testing.T) {
	s := New[Counter](DefaultCapacity)
	s.Push(Counter{Rx: 1000, Tx: 100})
	s.Push(Counter{Rx: 200, Tx: 400})

	assert.Equal(t, Counter{Rx: 0, Tx: 300}, CounterRate(s))
}

func TestCounterDeltas(t *testing.T) {
	s := New[Counter](4)
	assert.Nil(t, CounterDeltas(s))

	s.Push(Counter{0, 0})
	assert.Nil(t, CounterDeltas(s))

	s.Push(Counter{1000, 500})
	s.Push(Counter{2500, 500})
	s.Push(Counter{100, 900})
	s.Push(Counter{300, 1000})

	deltas := CounterDeltas(s)
	require.Len(t, deltas, 3)
	assert.Equal(t, []Counter{
		{Rx: 1500, Tx: 0},
		{Rx: 0, Tx: 400},
		{Rx: 200, Tx: 100},
	}, deltas)
}

func TestCounterDeltas_FullSeries(t *testing.T) {
	s := New[Counter](DefaultCapacity)
	for i := 0; i < 100; i++ {
		s.Push(Counter{Rx: uint64(i) * 10})
	}
	assert.Len(t, CounterDeltas(s), DefaultCapacity-1)
}

func TestPerSecond(t *testing.T) {
	tests := []struct {
		name     string
		counter  Counter
		interval time.Duration
		expected Throughput
	}{
		{"one second", Counter{1024, 512}, time.Second, Throughput{1024, 512}},
		{"two seconds", Counter{1024, 512}, 2 * time.Second, Throughput{512, 256}},
		{"zero interval", Counter{1024, 512}, 0, Throughput{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, PerSecond(tt.counter, tt.interval))
		})
	}
}

func TestMemoryPoint_Percent(t *testing.T) {
	assert.Equal(t, 0.0, MemoryPoint{Used: 10}.Percent())
	assert.InDelta(t, 25.0, MemoryPoint{Used: 2, Total: 8}.Percent(), 1e-9)
}
