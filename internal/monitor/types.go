package monitor

import (
	"time"

	"github.com/rileyhilliard/hostdash/internal/metrics"
)

// Status describes how trustworthy a Metric's value is.
type Status int

const (
	StatusOK            Status = iota
	StatusStale                // previous value, latest read failed
	StatusUnavailable          // host doesn't report it, or never read successfully
	StatusMisconfigured        // configured resource doesn't exist
)

// String returns a human-readable status string.
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusStale:
		return "stale"
	case StatusUnavailable:
		return "unavailable"
	case StatusMisconfigured:
		return "misconfigured"
	default:
		return "unknown"
	}
}

// Metric is one reading plus its status. Value is meaningful only when
// Status is StatusOK or StatusStale.
type Metric[T any] struct {
	Value  T
	Status Status
	Err    error
}

// HasValue reports whether Value can be displayed.
func (m Metric[T]) HasValue() bool {
	return m.Status == StatusOK || m.Status == StatusStale
}

// Snapshot holds the instantaneous metrics for one tick.
type Snapshot struct {
	At         time.Time
	CPUPercent Metric[float64]
	CPUInfo    Metric[metrics.CPUInfo]
	Disk       Metric[metrics.DiskUsage]
	Memory     Metric[float64]
	Battery    Metric[metrics.Battery]
	BootTime   Metric[time.Time]
	Load       Metric[metrics.LoadAverage]
}
