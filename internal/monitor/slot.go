package monitor

import "sync"

// Rate is network throughput in kilobytes per second.
type Rate struct {
	Up   float64 // sent
	Down float64 // received
}

// RateSlot holds the most recent Rate. Writes overwrite; nothing is queued.
// It is the only state shared between the sampler and the render loop.
type RateSlot struct {
	mu   sync.Mutex
	rate Rate
	set  bool
}

// Store replaces the held value.
func (s *RateSlot) Store(r Rate) {
	s.mu.Lock()
	s.rate = r
	s.set = true
	s.mu.Unlock()
}

// Load returns the held value, or a zero Rate before the first Store.
func (s *RateSlot) Load() Rate {
	r, _ := s.LoadOK()
	return r
}

// LoadOK is Load plus whether a value has ever been stored.
func (s *RateSlot) LoadOK() (Rate, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rate, s.set
}
