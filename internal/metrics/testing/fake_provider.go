// Package testing provides test doubles for the metrics package.
package testing

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rileyhilliard/hostdash/internal/errors"
	"github.com/rileyhilliard/hostdash/internal/metrics"
)

// FakeProvider is an in-memory metrics.Provider.
// Values and errors are configured with the Set* methods; every query
// returns whatever is configured at call time.
type FakeProvider struct {
	mu sync.Mutex

	cpuPercent float64
	cpuDelay   time.Duration
	cpuInfo    metrics.CPUInfo
	disks      map[string]metrics.DiskUsage
	memPercent float64
	battery    *metrics.Battery
	bootTime   time.Time
	load       *metrics.LoadAverage
	facts      metrics.HostFacts

	// Per-interface counters advance by step on every NetCounters call.
	counters map[string]metrics.Counters
	steps    map[string][2]uint64

	errs map[string]error

	// Calls counts invocations per method name for assertions.
	Calls map[string]int
}

// NewFakeProvider returns a provider for a healthy host with one interface
// ("eth0") and one volume ("/"), no battery, and fixed values elsewhere.
func NewFakeProvider() *FakeProvider {
	return &FakeProvider{
		cpuPercent: 25,
		cpuInfo:    metrics.CPUInfo{Logical: 8, Physical: 4, CurrentMHz: 2400, UserSeconds: 7200},
		disks: map[string]metrics.DiskUsage{
			"/": {Volume: "/", TotalBytes: 100 << 30, UsedBytes: 40 << 30, FreeBytes: 60 << 30},
		},
		memPercent: 50,
		bootTime:   time.Date(2026, 10, 15, 8, 0, 0, 0, time.Local),
		load:       &metrics.LoadAverage{Load1: 0.5, Load5: 0.75, Load15: 1.25},
		facts: metrics.HostFacts{
			OS: "linux", Platform: "ubuntu", PlatformVersion: "24.04",
			Hostname: "testbox", KernelArch: "x86_64", GoVersion: "go1.24",
		},
		counters: map[string]metrics.Counters{"eth0": {}},
		steps:    map[string][2]uint64{},
		errs:     map[string]error{},
		Calls:    map[string]int{},
	}
}

func (f *FakeProvider) call(name string) error {
	f.Calls[name]++
	return f.errs[name]
}

// SetError makes the named method (e.g. "MemoryPercent") return err.
// A nil err clears it.
func (f *FakeProvider) SetError(method string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err == nil {
		delete(f.errs, method)
		return
	}
	f.errs[method] = err
}

// SetCPUPercent sets the CPU utilization and how long CPUPercent blocks.
func (f *FakeProvider) SetCPUPercent(pct float64, delay time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cpuPercent = pct
	f.cpuDelay = delay
}

// SetMemoryPercent sets the memory utilization.
func (f *FakeProvider) SetMemoryPercent(pct float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.memPercent = pct
}

// SetDisk registers a volume.
func (f *FakeProvider) SetDisk(usage metrics.DiskUsage) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.disks[usage.Volume] = usage
}

// SetBattery installs a battery; nil removes it.
func (f *FakeProvider) SetBattery(b *metrics.Battery) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.battery = b
}

// SetLoadAverage sets load averages; nil makes them unavailable.
func (f *FakeProvider) SetLoadAverage(l *metrics.LoadAverage) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.load = l
}

// SetInterface registers iface with starting counters. Each NetCounters
// call afterwards advances sent/recv by the given step.
func (f *FakeProvider) SetInterface(iface string, start metrics.Counters, sentStep, recvStep uint64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.counters[iface] = start
	f.steps[iface] = [2]uint64{sentStep, recvStep}
}

// RemoveInterface drops iface from the interface table.
func (f *FakeProvider) RemoveInterface(iface string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.counters, iface)
	delete(f.steps, iface)
}

// CallCount returns how many times method was invoked.
func (f *FakeProvider) CallCount(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Calls[method]
}

func (f *FakeProvider) CPUPercent(ctx context.Context, _ time.Duration) (float64, error) {
	f.mu.Lock()
	err := f.call("CPUPercent")
	pct, delay := f.cpuPercent, f.cpuDelay
	f.mu.Unlock()

	if delay > 0 {
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case <-time.After(delay):
		}
	}
	return pct, err
}

func (f *FakeProvider) CPUInfo(context.Context) (metrics.CPUInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.call("CPUInfo"); err != nil {
		return metrics.CPUInfo{}, err
	}
	return f.cpuInfo, nil
}

func (f *FakeProvider) DiskUsage(_ context.Context, volume string) (metrics.DiskUsage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.call("DiskUsage"); err != nil {
		return metrics.DiskUsage{}, err
	}
	usage, ok := f.disks[volume]
	if !ok {
		return metrics.DiskUsage{}, errors.New(errors.ErrConfig,
			fmt.Sprintf("Disk volume '%s' not found", volume), "")
	}
	return usage, nil
}

func (f *FakeProvider) MemoryPercent(context.Context) (float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.call("MemoryPercent"); err != nil {
		return 0, err
	}
	return f.memPercent, nil
}

func (f *FakeProvider) Battery(context.Context) (metrics.Battery, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.call("Battery"); err != nil {
		return metrics.Battery{}, err
	}
	if f.battery == nil {
		return metrics.Battery{}, errors.Unavailable("Battery")
	}
	return *f.battery, nil
}

func (f *FakeProvider) BootTime(context.Context) (time.Time, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.call("BootTime"); err != nil {
		return time.Time{}, err
	}
	return f.bootTime, nil
}

func (f *FakeProvider) LoadAverage(context.Context) (metrics.LoadAverage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.call("LoadAverage"); err != nil {
		return metrics.LoadAverage{}, err
	}
	if f.load == nil {
		return metrics.LoadAverage{}, errors.Unavailable("Load average")
	}
	return *f.load, nil
}

func (f *FakeProvider) NetCounters(_ context.Context, iface string) (metrics.Counters, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.call("NetCounters"); err != nil {
		return metrics.Counters{}, err
	}
	c, ok := f.counters[iface]
	if !ok {
		return metrics.Counters{}, errors.New(errors.ErrConfig,
			fmt.Sprintf("Network interface '%s' not found", iface), "")
	}
	out := c
	out.At = time.Now()

	step := f.steps[iface]
	c.BytesSent += step[0]
	c.BytesRecv += step[1]
	f.counters[iface] = c
	return out, nil
}

func (f *FakeProvider) Interfaces(context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.call("Interfaces"); err != nil {
		return nil, err
	}
	names := make([]string, 0, len(f.counters))
	for name := range f.counters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (f *FakeProvider) Volumes(context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.call("Volumes"); err != nil {
		return nil, err
	}
	volumes := make([]string, 0, len(f.disks))
	for v := range f.disks {
		volumes = append(volumes, v)
	}
	sort.Strings(volumes)
	return volumes, nil
}

func (f *FakeProvider) HostFacts(context.Context) (metrics.HostFacts, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.call("HostFacts"); err != nil {
		return metrics.HostFacts{}, err
	}
	return f.facts, nil
}

var _ metrics.Provider = (*FakeProvider)(nil)
