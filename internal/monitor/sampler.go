package monitor

import (
	"context"
	"sync"
	"time"

	"github.com/rileyhilliard/hostdash/internal/config"
	"github.com/rileyhilliard/hostdash/internal/errors"
	"github.com/rileyhilliard/hostdash/internal/logger"
	"github.com/rileyhilliard/hostdash/internal/metrics"
)

// SampleInterval is the measurement window for network throughput.
const SampleInterval = 10 * time.Second

// SamplerOption configures a Sampler.
type SamplerOption func(*Sampler)

// WithSampleInterval overrides SampleInterval. Used by tests.
func WithSampleInterval(d time.Duration) SamplerOption {
	return func(s *Sampler) {
		if d > 0 {
			s.interval = d
		}
	}
}

// Sampler measures throughput on one interface and publishes it to a
// RateSlot once per interval. The end reading of a cycle is the start
// reading of the next.
type Sampler struct {
	provider metrics.Provider
	iface    string
	slot     *RateSlot
	log      logger.Logger
	interval time.Duration

	mu     sync.Mutex
	err    error
	cancel context.CancelFunc
	done   chan struct{}
}

// NewSampler creates a sampler for iface writing into slot.
func NewSampler(provider metrics.Provider, iface string, slot *RateSlot, log logger.Logger, opts ...SamplerOption) *Sampler {
	if log == nil {
		log = logger.Noop()
	}
	s := &Sampler{
		provider: provider,
		iface:    iface,
		slot:     slot,
		log:      log,
		interval: SampleInterval,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run samples until ctx is cancelled. It returns an ErrConfig error right
// away when the interface isn't on this host; that error is also kept for Err.
// An interface that disappears later zeroes the slot and sets Err until it
// comes back. Other read failures skip the cycle and the next cycle re-baselines.
func (s *Sampler) Run(ctx context.Context) error {
	// If the table can't be listed, skip the check; NetCounters reports a
	// missing interface on its own.
	ifaces, err := s.provider.Interfaces(ctx)
	if err != nil {
		s.log.Warn("listing network interfaces: %s", errors.Summary(err))
	} else if err := config.CheckInterface(s.iface, ifaces); err != nil {
		return s.fail(err)
	}

	prev, havePrev := s.read(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		cur, ok := s.read(ctx)
		if !ok {
			havePrev = false
			continue
		}
		if havePrev {
			s.slot.Store(ComputeRate(prev, cur))
		}
		prev, havePrev = cur, true
	}
}

func (s *Sampler) read(ctx context.Context) (metrics.Counters, bool) {
	c, err := s.provider.NetCounters(ctx, s.iface)
	if err != nil {
		if ctx.Err() != nil {
			return metrics.Counters{}, false
		}
		if errors.IsCode(err, errors.ErrConfig) {
			s.lost(err)
		} else {
			s.log.Warn("network counters for %s: %s", s.iface, errors.Summary(err))
		}
		return metrics.Counters{}, false
	}
	s.setErr(nil)
	return c, true
}

// lost marks the interface as gone. The last rate no longer describes it.
func (s *Sampler) lost(err error) {
	if s.Err() == nil {
		s.log.Error("network interface %s went away: %s", s.iface, errors.Summary(err))
	}
	s.setErr(err)
	s.slot.Store(Rate{})
}

func (s *Sampler) fail(err error) error {
	s.setErr(err)
	s.log.Error("throughput sampler stopped: %s", errors.Summary(err))
	return err
}

func (s *Sampler) setErr(err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
}

// Err returns the configuration error for the interface, if any: the one
// that stopped Run, or the one from an interface that is currently gone.
func (s *Sampler) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Start runs the sampler in a goroutine. Calling Start twice is a no-op.
func (s *Sampler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done != nil {
		return
	}

	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})
	done := s.done

	go func() {
		defer close(done)
		_ = s.Run(ctx)
	}()
}

// Stop cancels the sampler and waits up to timeout for it to exit.
// It reports whether the goroutine finished in time.
func (s *Sampler) Stop(timeout time.Duration) bool {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.mu.Unlock()

	if done == nil {
		return true
	}
	cancel()

	select {
	case <-done:
		return true
	case <-time.After(timeout):
		s.log.Warn("throughput sampler did not exit within %s", timeout)
		return false
	}
}

// ComputeRate converts two counter readings into kB/s per direction.
// A counter that went backwards (reset or wrap) yields zero for that
// direction, as does a non-positive elapsed time.
func ComputeRate(prev, cur metrics.Counters) Rate {
	secs := cur.At.Sub(prev.At).Seconds()
	if secs <= 0 {
		return Rate{}
	}
	return Rate{
		Up:   float64(counterDelta(prev.BytesSent, cur.BytesSent)) / secs / 1000,
		Down: float64(counterDelta(prev.BytesRecv, cur.BytesRecv)) / secs / 1000,
	}
}

func counterDelta(prev, cur uint64) uint64 {
	if cur < prev {
		return 0
	}
	return cur - prev
}
