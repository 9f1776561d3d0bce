// Package history keeps fixed-size time series of host metrics and derives
// rates from cumulative counters.
package history

// DefaultCapacity is the number of samples retained per series. At one
// sample per second this is the last minute.
const DefaultCapacity = 60

// Series is a fixed-size circular buffer. Once full, each Push evicts the
// oldest value. Series is not safe for concurrent use; the state package
// guards it.
type Series[T any] struct {
	data  []T
	head  int
	count int
}

// New creates a series holding up to capacity values.
func New[T any](capacity int) *Series[T] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Series[T]{data: make([]T, capacity)}
}

// Push appends v, dropping the oldest value when the series is full.
func (s *Series[T]) Push(v T) {
	s.data[s.head] = v
	s.head = (s.head + 1) % len(s.data)
	if s.count < len(s.data) {
		s.count++
	}
}

// Len returns the number of values stored.
func (s *Series[T]) Len() int {
	return s.count
}

// Cap returns the maximum number of values the series retains.
func (s *Series[T]) Cap() int {
	return len(s.data)
}

// Values returns a copy of every stored value, oldest first.
func (s *Series[T]) Values() []T {
	return s.Last(s.count)
}

// Last returns the n most recent values in chronological order (oldest
// first). Returns fewer when not enough history is available.
func (s *Series[T]) Last(n int) []T {
	if n <= 0 || s.count == 0 {
		return nil
	}
	if n > s.count {
		n = s.count
	}

	size := len(s.data)
	out := make([]T, n)
	// head is the next write slot, so the newest value sits at head-1.
	start := (s.head - n + size) % size
	for i := 0; i < n; i++ {
		out[i] = s.data[(start+i)%size]
	}
	return out
}

// Newest returns the most recent value and whether one exists.
func (s *Series[T]) Newest() (T, bool) {
	var zero T
	if s.count == 0 {
		return zero, false
	}
	return s.data[(s.head-1+len(s.data))%len(s.data)], true
}

// Clone returns an independent copy of the series.
func (s *Series[T]) Clone() *Series[T] {
	c := &Series[T]{
		data:  make([]T, len(s.data)),
		head:  s.head,
		count: s.count,
	}
	copy(c.data, s.data)
	return c
}
