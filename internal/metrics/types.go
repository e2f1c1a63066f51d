package metrics

import "time"

// CPUInfo contains the slow-moving CPU facts shown next to the usage bar.
type CPUInfo struct {
	Logical     int
	Physical    int
	CurrentMHz  float64
	UserSeconds float64 // cumulative user CPU time since boot
}

// DiskUsage contains usage for a single volume.
type DiskUsage struct {
	Volume     string
	TotalBytes uint64
	UsedBytes  uint64
	FreeBytes  uint64
}

// Battery contains the state of the first battery reported by the host.
type Battery struct {
	Percent  float64
	Charging bool
}

// LoadAverage contains the 1, 5 and 15 minute load averages.
type LoadAverage struct {
	Load1  float64
	Load5  float64
	Load15 float64
}

// Counters is a point-in-time read of an interface's cumulative byte counters.
type Counters struct {
	BytesSent uint64
	BytesRecv uint64
	At        time.Time
}

// HostFacts are single-shot OS facts that never change while running.
type HostFacts struct {
	OS              string
	Platform        string
	PlatformVersion string
	Hostname        string
	KernelArch      string
	GoVersion       string
}
