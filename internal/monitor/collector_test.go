package monitor

import (
	"context"
	"testing"
	"time"

	"github.com/rileyhilliard/hostdash/internal/errors"
	"github.com/rileyhilliard/hostdash/internal/logger"
	"github.com/rileyhilliard/hostdash/internal/metrics"
	metricstesting "github.com/rileyhilliard/hostdash/internal/metrics/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCollector(p metrics.Provider, volume string) (*Collector, *logger.BufferLogger) {
	log := logger.NewBufferLogger()
	c := NewCollector(p, volume, log)
	c.SetCPUWindow(time.Millisecond)
	return c, log
}

func TestStatus_String(t *testing.T) {
	tests := []struct {
		status Status
		expect string
	}{
		{StatusOK, "ok"},
		{StatusStale, "stale"},
		{StatusUnavailable, "unavailable"},
		{StatusMisconfigured, "misconfigured"},
		{Status(42), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expect, func(t *testing.T) {
			assert.Equal(t, tt.expect, tt.status.String())
		})
	}
}

func TestCollector_HealthyHost(t *testing.T) {
	p := metricstesting.NewFakeProvider()
	c, _ := newTestCollector(p, "/")

	snap := c.Collect(context.Background())

	assert.Equal(t, StatusOK, snap.CPUPercent.Status)
	assert.Equal(t, 25.0, snap.CPUPercent.Value)
	assert.Equal(t, 8, snap.CPUInfo.Value.Logical)
	assert.Equal(t, StatusOK, snap.Disk.Status)
	assert.Equal(t, uint64(40<<30), snap.Disk.Value.UsedBytes)
	assert.Equal(t, 50.0, snap.Memory.Value)
	assert.Equal(t, StatusUnavailable, snap.Battery.Status, "fake host has no battery")
	assert.True(t, errors.IsCode(snap.Battery.Err, errors.ErrUnavailable))
	assert.Equal(t, StatusOK, snap.BootTime.Status)
	assert.Equal(t, 1.25, snap.Load.Value.Load15)
	assert.False(t, snap.At.IsZero())
}

func TestCollector_MissingVolumeCheckedOnce(t *testing.T) {
	p := metricstesting.NewFakeProvider()
	c, log := newTestCollector(p, "/mnt/missing")

	for i := 0; i < 3; i++ {
		snap := c.Collect(context.Background())
		assert.Equal(t, StatusMisconfigured, snap.Disk.Status)
		assert.True(t, errors.IsCode(snap.Disk.Err, errors.ErrConfig))
		// Other categories are unaffected.
		assert.Equal(t, StatusOK, snap.Memory.Status)
	}

	assert.Equal(t, 1, p.CallCount("DiskUsage"))
	assert.True(t, log.HasLevel("error"))
}

func TestCollector_TransientErrorReturnsStaleValue(t *testing.T) {
	p := metricstesting.NewFakeProvider()
	c, log := newTestCollector(p, "/")

	p.SetMemoryPercent(61)
	first := c.Collect(context.Background())
	require.Equal(t, StatusOK, first.Memory.Status)

	p.SetError("MemoryPercent", errors.New(errors.ErrTransient, "meminfo busy", ""))
	second := c.Collect(context.Background())

	assert.Equal(t, StatusStale, second.Memory.Status)
	assert.Equal(t, 61.0, second.Memory.Value)
	assert.True(t, second.Memory.HasValue())
	assert.Equal(t, StatusOK, second.CPUPercent.Status)
	assert.True(t, log.HasLevel("warn"))

	p.SetError("MemoryPercent", nil)
	third := c.Collect(context.Background())
	assert.Equal(t, StatusOK, third.Memory.Status)
}

func TestCollector_TransientErrorWithoutHistory(t *testing.T) {
	p := metricstesting.NewFakeProvider()
	p.SetError("BootTime", errors.New(errors.ErrTransient, "sysctl failed", ""))
	c, _ := newTestCollector(p, "/")

	snap := c.Collect(context.Background())

	assert.Equal(t, StatusUnavailable, snap.BootTime.Status)
	assert.False(t, snap.BootTime.HasValue())
	assert.Error(t, snap.BootTime.Err)
}

func TestCollector_BatteryAndLoad(t *testing.T) {
	p := metricstesting.NewFakeProvider()
	p.SetBattery(&metrics.Battery{Percent: 87.5, Charging: true})
	p.SetLoadAverage(nil)
	c, _ := newTestCollector(p, "/")

	snap := c.Collect(context.Background())

	assert.Equal(t, StatusOK, snap.Battery.Status)
	assert.True(t, snap.Battery.Value.Charging)
	assert.Equal(t, StatusUnavailable, snap.Load.Status)
}

func TestCollector_HostFactsCached(t *testing.T) {
	p := metricstesting.NewFakeProvider()
	c, _ := newTestCollector(p, "/")

	first := c.HostFacts(context.Background())
	second := c.HostFacts(context.Background())

	assert.Equal(t, StatusOK, first.Status)
	assert.Equal(t, "testbox", second.Value.Hostname)
	assert.Equal(t, 1, p.CallCount("HostFacts"))
}
