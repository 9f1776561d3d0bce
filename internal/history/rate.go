package history

import "time"

// Number is the set of element types a rate can be computed over.
type Number interface {
	~int | ~int32 | ~int64 | ~uint | ~uint32 | ~uint64 | ~float32 | ~float64
}

// Counter is a pair of cumulative network byte counters.
type Counter struct {
	Rx uint64
	Tx uint64
}

// MemoryPoint is one memory sample.
type MemoryPoint struct {
	Used  uint64
	Total uint64
}

// Percent returns Used as a percentage of Total, or 0 with no total.
func (m MemoryPoint) Percent() float64 {
	if m.Total == 0 {
		return 0
	}
	return float64(m.Used) / float64(m.Total) * 100
}

// Throughput is a network rate in bytes per second.
type Throughput struct {
	RxPerSec float64
	TxPerSec float64
}

// Delta returns newer - older, or 0 when the counter went backwards
// (wraparound, interface removal, provider reset).
func Delta[T Number](older, newer T) T {
	if newer < older {
		return 0
	}
	return newer - older
}

// Rate returns the difference between the two newest values of a cumulative
// series, clamped at zero. Fewer than two values give 0.
func Rate[T Number](s *Series[T]) T {
	last := s.Last(2)
	if len(last) < 2 {
		var zero T
		return zero
	}
	return Delta(last[0], last[1])
}

// CounterRate applies Rate to each side of a counter series.
func CounterRate(s *Series[Counter]) Counter {
	last := s.Last(2)
	if len(last) < 2 {
		return Counter{}
	}
	return CounterDelta(last[0], last[1])
}

// CounterDelta is the component-wise clamped difference of two counters.
func CounterDelta(older, newer Counter) Counter {
	return Counter{
		Rx: Delta(older.Rx, newer.Rx),
		Tx: Delta(older.Tx, newer.Tx),
	}
}

// CounterDeltas returns the clamped per-interval delta between each adjacent
// pair of samples, oldest first. A full series yields Cap-1 deltas.
func CounterDeltas(s *Series[Counter]) []Counter {
	vals := s.Values()
	if len(vals) < 2 {
		return nil
	}
	out := make([]Counter, len(vals)-1)
	for i := 1; i < len(vals); i++ {
		out[i-1] = CounterDelta(vals[i-1], vals[i])
	}
	return out
}

// PerSecond converts a per-interval counter delta into bytes per second.
func PerSecond(c Counter, interval time.Duration) Throughput {
	secs := interval.Seconds()
	if secs <= 0 {
		return Throughput{}
	}
	return Throughput{
		RxPerSec: float64(c.Rx) / secs,
		TxPerSec: float64(c.Tx) / secs,
	}
}
