// Package metrics reads point-in-time host metrics from the local OS.
//
// Every query is read-only. Errors follow the codes in internal/errors:
// ErrConfig when a named interface or volume does not exist, ErrUnavailable
// when the host doesn't report a metric at all (no battery), and
// ErrTransient for anything else.
package metrics

import (
	"context"
	"time"
)

// Provider is the set of host queries the dashboard depends on.
type Provider interface {
	// CPUPercent blocks for window and returns overall CPU utilization.
	CPUPercent(ctx context.Context, window time.Duration) (float64, error)
	CPUInfo(ctx context.Context) (CPUInfo, error)
	DiskUsage(ctx context.Context, volume string) (DiskUsage, error)
	MemoryPercent(ctx context.Context) (float64, error)
	Battery(ctx context.Context) (Battery, error)
	BootTime(ctx context.Context) (time.Time, error)
	LoadAverage(ctx context.Context) (LoadAverage, error)
	// NetCounters returns the cumulative byte counters for one interface.
	NetCounters(ctx context.Context, iface string) (Counters, error)
	Interfaces(ctx context.Context) ([]string, error)
	Volumes(ctx context.Context) ([]string, error)
	HostFacts(ctx context.Context) (HostFacts, error)
}
