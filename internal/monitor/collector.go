package monitor

import (
	"context"
	"sync"
	"time"

	"github.com/rileyhilliard/hostdash/internal/errors"
	"github.com/rileyhilliard/hostdash/internal/logger"
	"github.com/rileyhilliard/hostdash/internal/metrics"
)

// CPUWindow is how long each CPU utilization reading blocks. It also paces
// the render loop.
const CPUWindow = time.Second

// cached remembers the last good value of one metric category.
type cached[T any] struct {
	value T
	have  bool
}

// resolve turns a provider result into a Metric, updating the cache.
// Transient errors fall back to the cached value marked stale.
func (c *cached[T]) resolve(v T, err error) Metric[T] {
	if err == nil {
		c.value, c.have = v, true
		return Metric[T]{Value: v, Status: StatusOK}
	}
	switch {
	case errors.IsCode(err, errors.ErrConfig):
		return Metric[T]{Status: StatusMisconfigured, Err: err}
	case errors.IsCode(err, errors.ErrUnavailable):
		return Metric[T]{Status: StatusUnavailable, Err: err}
	case c.have:
		return Metric[T]{Value: c.value, Status: StatusStale, Err: err}
	default:
		return Metric[T]{Status: StatusUnavailable, Err: err}
	}
}

// Collector reads a Snapshot from a metrics.Provider. A failure in one
// category never affects another.
//
// Collector is owned by the render loop; only HostFacts is safe to call
// from other goroutines.
type Collector struct {
	provider  metrics.Provider
	volume    string
	log       logger.Logger
	cpuWindow time.Duration

	cpu     cached[float64]
	info    cached[metrics.CPUInfo]
	disk    cached[metrics.DiskUsage]
	memory  cached[float64]
	battery cached[metrics.Battery]
	boot    cached[time.Time]
	load    cached[metrics.LoadAverage]

	// volumeErr is set once if the configured volume doesn't exist.
	volumeChecked bool
	volumeErr     error

	factsOnce sync.Once
	facts     Metric[metrics.HostFacts]
}

// NewCollector creates a collector reading disk usage for volume.
func NewCollector(provider metrics.Provider, volume string, log logger.Logger) *Collector {
	if log == nil {
		log = logger.Noop()
	}
	return &Collector{
		provider:  provider,
		volume:    volume,
		log:       log,
		cpuWindow: CPUWindow,
	}
}

// SetCPUWindow overrides CPUWindow. Used by tests.
func (c *Collector) SetCPUWindow(d time.Duration) {
	c.cpuWindow = d
}

// Collect blocks for the CPU window, then reads every other category.
func (c *Collector) Collect(ctx context.Context) Snapshot {
	var snap Snapshot

	pct, err := c.provider.CPUPercent(ctx, c.cpuWindow)
	snap.CPUPercent = note(c, "CPU utilization", c.cpu.resolve(pct, err))

	info, err := c.provider.CPUInfo(ctx)
	snap.CPUInfo = note(c, "CPU info", c.info.resolve(info, err))

	snap.Disk = note(c, "disk usage", c.collectDisk(ctx))

	mem, err := c.provider.MemoryPercent(ctx)
	snap.Memory = note(c, "memory", c.memory.resolve(mem, err))

	bat, err := c.provider.Battery(ctx)
	snap.Battery = note(c, "battery", c.battery.resolve(bat, err))

	boot, err := c.provider.BootTime(ctx)
	snap.BootTime = note(c, "boot time", c.boot.resolve(boot, err))

	load, err := c.provider.LoadAverage(ctx)
	snap.Load = note(c, "load average", c.load.resolve(load, err))

	snap.At = time.Now()
	return snap
}

// collectDisk checks the volume on first use. A missing volume stays
// misconfigured for the life of the collector without querying again.
func (c *Collector) collectDisk(ctx context.Context) Metric[metrics.DiskUsage] {
	if c.volumeErr != nil {
		return Metric[metrics.DiskUsage]{Status: StatusMisconfigured, Err: c.volumeErr}
	}

	usage, err := c.provider.DiskUsage(ctx, c.volume)
	if !c.volumeChecked {
		switch {
		case err == nil:
			c.volumeChecked = true
		case errors.IsCode(err, errors.ErrConfig):
			c.volumeChecked = true
			c.volumeErr = err
			c.log.Error("disk panel disabled: %s", errors.Summary(err))
		}
	}

	return c.disk.resolve(usage, err)
}

// note logs a failed read and passes m through.
func note[T any](c *Collector, what string, m Metric[T]) Metric[T] {
	if m.Err == nil || m.Status == StatusMisconfigured {
		return m
	}
	if errors.IsCode(m.Err, errors.ErrUnavailable) {
		c.log.Debug("%s unavailable: %s", what, errors.Summary(m.Err))
		return m
	}
	c.log.Warn("reading %s: %s", what, errors.Summary(m.Err))
	return m
}

// HostFacts returns the static host facts, read once and cached.
func (c *Collector) HostFacts(ctx context.Context) Metric[metrics.HostFacts] {
	c.factsOnce.Do(func() {
		facts, err := c.provider.HostFacts(ctx)
		if err != nil {
			// Partial facts (runtime values) are still worth showing.
			c.facts = Metric[metrics.HostFacts]{Value: facts, Status: StatusStale, Err: err}
			c.log.Warn("host facts: %s", errors.Summary(err))
			return
		}
		c.facts = Metric[metrics.HostFacts]{Value: facts, Status: StatusOK}
	})
	return c.facts
}
