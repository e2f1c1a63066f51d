package metrics

import (
	"context"
	stderrors "errors"
	"fmt"
	"io/fs"
	"runtime"
	"sort"
	"time"

	"github.com/distatus/battery"
	"github.com/rileyhilliard/hostdash/internal/errors"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/load"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/net"
)

// System reads metrics from the local machine using gopsutil.
type System struct{}

// NewSystem returns a Provider backed by the local OS.
func NewSystem() *System {
	return &System{}
}

// CPUPercent blocks for window and returns overall utilization across all cores.
func (s *System) CPUPercent(ctx context.Context, window time.Duration) (float64, error) {
	pcts, err := cpu.PercentWithContext(ctx, window, false)
	if err != nil {
		return 0, errors.Wrap(err, "Reading CPU utilization failed")
	}
	if len(pcts) == 0 {
		return 0, errors.New(errors.ErrTransient, "CPU utilization returned no samples", "")
	}
	return pcts[0], nil
}

// CPUInfo returns core counts, current frequency and cumulative user time.
// Counts and times are required; a missing frequency leaves CurrentMHz at 0.
func (s *System) CPUInfo(ctx context.Context) (CPUInfo, error) {
	var info CPUInfo

	logical, err := cpu.CountsWithContext(ctx, true)
	if err != nil {
		return info, errors.Wrap(err, "Reading logical CPU count failed")
	}
	info.Logical = logical

	physical, err := cpu.CountsWithContext(ctx, false)
	if err != nil {
		return info, errors.Wrap(err, "Reading physical CPU count failed")
	}
	info.Physical = physical

	times, err := cpu.TimesWithContext(ctx, false)
	if err != nil {
		return info, errors.Wrap(err, "Reading CPU times failed")
	}
	if len(times) > 0 {
		info.UserSeconds = times[0].User
	}

	// Frequency is best-effort; many VMs don't expose it.
	if stats, err := cpu.InfoWithContext(ctx); err == nil && len(stats) > 0 {
		info.CurrentMHz = stats[0].Mhz
	}

	return info, nil
}

// DiskUsage returns usage for the volume (a mount point or drive letter).
func (s *System) DiskUsage(ctx context.Context, volume string) (DiskUsage, error) {
	usage, err := disk.UsageWithContext(ctx, volume)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return DiskUsage{}, errors.WrapWithCode(err, errors.ErrConfig,
				fmt.Sprintf("Disk volume '%s' not found", volume),
				"Run 'hostdash check' to list available volumes")
		}
		return DiskUsage{}, errors.Wrap(err, fmt.Sprintf("Reading disk usage for '%s' failed", volume))
	}
	return DiskUsage{
		Volume:     volume,
		TotalBytes: usage.Total,
		UsedBytes:  usage.Used,
		FreeBytes:  usage.Free,
	}, nil
}

// MemoryPercent returns the percentage of virtual memory in use.
func (s *System) MemoryPercent(ctx context.Context) (float64, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "Reading memory usage failed")
	}
	return vm.UsedPercent, nil
}

// Battery returns the state of the first battery with a known capacity.
// Hosts without a battery (desktops, VMs) get an ErrUnavailable error; a
// battery that is present but unreadable gets an ErrTransient one.
func (s *System) Battery(_ context.Context) (Battery, error) {
	return batteryFrom(battery.GetAll())
}

func batteryFrom(bats []*battery.Battery, err error) (Battery, error) {
	for _, b := range bats {
		if b == nil || b.Full <= 0 {
			continue
		}
		return Battery{
			Percent:  b.Current / b.Full * 100,
			Charging: b.State == battery.Charging || b.State == battery.Full,
		}, nil
	}

	if err == nil || (len(bats) == 0 && noBatteryDir(err)) {
		unavailable := errors.Unavailable("Battery")
		unavailable.Cause = err
		return Battery{}, unavailable
	}
	return Battery{}, errors.Wrap(err, "Reading battery failed")
}

// noBatteryDir reports whether err only says the power supply source is absent.
func noBatteryDir(err error) bool {
	var fatal battery.ErrFatal
	if stderrors.As(err, &fatal) {
		err = fatal.Err
	}
	return stderrors.Is(err, fs.ErrNotExist)
}

// BootTime returns when the host last booted.
func (s *System) BootTime(ctx context.Context) (time.Time, error) {
	secs, err := host.BootTimeWithContext(ctx)
	if err != nil {
		return time.Time{}, errors.Wrap(err, "Reading boot time failed")
	}
	return time.Unix(int64(secs), 0), nil
}

// LoadAverage returns the 1/5/15 minute load averages.
func (s *System) LoadAverage(ctx context.Context) (LoadAverage, error) {
	avg, err := load.AvgWithContext(ctx)
	if err != nil {
		if runtime.GOOS == "windows" {
			unavailable := errors.Unavailable("Load average")
			unavailable.Cause = err
			return LoadAverage{}, unavailable
		}
		return LoadAverage{}, errors.Wrap(err, "Reading load average failed")
	}
	return LoadAverage{Load1: avg.Load1, Load5: avg.Load5, Load15: avg.Load15}, nil
}

// NetCounters returns the cumulative byte counters for iface.
func (s *System) NetCounters(ctx context.Context, iface string) (Counters, error) {
	stats, err := net.IOCountersWithContext(ctx, true)
	if err != nil {
		return Counters{}, errors.Wrap(err, "Reading network counters failed")
	}
	now := time.Now()
	for _, st := range stats {
		if st.Name == iface {
			return Counters{BytesSent: st.BytesSent, BytesRecv: st.BytesRecv, At: now}, nil
		}
	}
	return Counters{}, errors.New(errors.ErrConfig,
		fmt.Sprintf("Network interface '%s' not found", iface),
		"Run 'hostdash check' to list available interfaces")
}

// Interfaces lists the names of all interfaces with byte counters, sorted.
func (s *System) Interfaces(ctx context.Context) ([]string, error) {
	stats, err := net.IOCountersWithContext(ctx, true)
	if err != nil {
		return nil, errors.Wrap(err, "Listing network interfaces failed")
	}
	names := make([]string, 0, len(stats))
	for _, st := range stats {
		names = append(names, st.Name)
	}
	sort.Strings(names)
	return names, nil
}

// Volumes lists mount points of physical partitions, sorted.
func (s *System) Volumes(ctx context.Context) ([]string, error) {
	parts, err := disk.PartitionsWithContext(ctx, false)
	if err != nil {
		return nil, errors.Wrap(err, "Listing disk volumes failed")
	}
	seen := make(map[string]bool, len(parts))
	volumes := make([]string, 0, len(parts))
	for _, p := range parts {
		if p.Mountpoint == "" || seen[p.Mountpoint] {
			continue
		}
		seen[p.Mountpoint] = true
		volumes = append(volumes, p.Mountpoint)
	}
	sort.Strings(volumes)
	return volumes, nil
}

// HostFacts returns platform, hostname and architecture.
func (s *System) HostFacts(ctx context.Context) (HostFacts, error) {
	facts := HostFacts{
		OS:         runtime.GOOS,
		KernelArch: runtime.GOARCH,
		GoVersion:  runtime.Version(),
	}
	info, err := host.InfoWithContext(ctx)
	if err != nil {
		return facts, errors.Wrap(err, "Reading host information failed")
	}
	facts.Hostname = info.Hostname
	facts.Platform = info.Platform
	facts.PlatformVersion = info.PlatformVersion
	if info.KernelArch != "" {
		facts.KernelArch = info.KernelArch
	}
	return facts, nil
}

var _ Provider = (*System)(nil)
