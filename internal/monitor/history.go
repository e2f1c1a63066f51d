package monitor

// DefaultHistorySize is the default number of data points to retain per metric.
const DefaultHistorySize = 50

// History is a fixed-capacity FIFO of float64 samples backed by a ring
// buffer. Appending at capacity evicts the oldest sample.
//
// History is not synchronized; it is owned by the render loop.
type History struct {
	data  []float64
	head  int // next write position
	count int
}

// NewHistory creates an empty history with the given capacity.
// Non-positive capacities fall back to DefaultHistorySize.
func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = DefaultHistorySize
	}
	return &History{data: make([]float64, capacity)}
}

// Append adds value at the tail, evicting the head when full.
func (h *History) Append(value float64) {
	h.data[h.head] = value
	h.head = (h.head + 1) % len(h.data)
	if h.count < len(h.data) {
		h.count++
	}
}

// Snapshot returns a copy of the samples, oldest first.
func (h *History) Snapshot() []float64 {
	size := len(h.data)
	result := make([]float64, h.count)

	// head points to the next write position, so the oldest held value is
	// count slots behind it.
	start := (h.head - h.count + size) % size
	for i := range result {
		result[i] = h.data[(start+i)%size]
	}
	return result
}
