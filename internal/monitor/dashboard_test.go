package monitor

import (
	"context"
	"io"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rileyhilliard/hostdash/internal/config"
	"github.com/rileyhilliard/hostdash/internal/logger"
	"github.com/rileyhilliard/hostdash/internal/metrics"
	metricstesting "github.com/rileyhilliard/hostdash/internal/metrics/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(iface, volume string) *config.Config {
	cfg := config.DefaultConfig()
	cfg.Network.Interface = iface
	cfg.Disk.Volume = volume
	return cfg
}

var fastEngine = EngineOptions{
	SampleInterval: 20 * time.Millisecond,
	CPUWindow:      time.Millisecond,
	TickDelay:      time.Millisecond,
}

func TestEngine_PublishesAndSamples(t *testing.T) {
	provider := metricstesting.NewFakeProvider()
	provider.SetInterface("eth0", metrics.Counters{}, 10_000, 40_000)
	surface := NewMemorySurface()

	e := NewEngine(testConfig("eth0", "/"), provider, surface, nil, logger.Noop(), fastEngine)
	e.Start(context.Background())

	require.Eventually(t, func() bool {
		return provider.CallCount("NetCounters") >= 3
	}, 2*time.Second, 5*time.Millisecond)

	// A few more ticks so the stored rate reaches the history.
	ticks := surface.Count(RegionMiddleLeft)
	require.Eventually(t, func() bool {
		return surface.Count(RegionMiddleLeft) >= ticks+3
	}, 2*time.Second, 5*time.Millisecond)

	require.True(t, e.Stop(time.Second))

	for _, r := range Regions {
		assert.Positive(t, surface.Count(r), r)
	}
	assert.Positive(t, maxOf(e.loop.sent.Snapshot()))
	assert.Positive(t, maxOf(e.loop.recv.Snapshot()))

	p, ok := surface.Panel(RegionMiddleLeft)
	require.True(t, ok)
	assert.False(t, p.Degraded)
}

func TestEngine_UnknownInterfaceDegradesNetworkPanel(t *testing.T) {
	provider := metricstesting.NewFakeProvider()
	surface := NewMemorySurface()
	log := logger.NewBufferLogger()

	e := NewEngine(testConfig("wlan9", "/"), provider, surface, nil, log, fastEngine)
	e.Start(context.Background())

	require.Eventually(t, func() bool {
		p, ok := surface.Panel(RegionMiddleLeft)
		return ok && p.Degraded
	}, 2*time.Second, 5*time.Millisecond)
	require.True(t, e.Stop(time.Second))

	p, _ := surface.Panel(RegionMiddleLeft)
	assert.Contains(t, p.Body, "wlan9")
	assert.True(t, log.HasLevel("error"))

	// The rest of the dashboard keeps going.
	cpu, ok := surface.Panel(RegionUpperLeft)
	require.True(t, ok)
	assert.False(t, cpu.Degraded)
}

func TestEngine_StopWithoutStart(t *testing.T) {
	e := NewEngine(testConfig("eth0", "/"), metricstesting.NewFakeProvider(), NewMemorySurface(), nil, nil, fastEngine)
	assert.True(t, e.Stop(10*time.Millisecond))
}

func TestEngine_StopInterruptsCPUWindow(t *testing.T) {
	provider := metricstesting.NewFakeProvider()
	provider.SetCPUPercent(40, time.Minute)

	e := NewEngine(testConfig("eth0", "/"), provider, NewMemorySurface(), nil, nil, fastEngine)
	e.Start(context.Background())

	require.Eventually(t, func() bool {
		return provider.CallCount("CPUPercent") >= 1
	}, time.Second, 5*time.Millisecond)

	start := time.Now()
	assert.True(t, e.Stop(time.Second))
	assert.Less(t, time.Since(start), time.Second)
}

func TestRun_ReturnsNilWhenContextCancelled(t *testing.T) {
	provider := metricstesting.NewFakeProvider()
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, testConfig("eth0", "/"), provider, logger.Noop(),
			tea.WithInput(nil), tea.WithOutput(io.Discard))
	}()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after the context was cancelled")
	}
}

func maxOf(values []float64) float64 {
	var m float64
	for _, v := range values {
		if v > m {
			m = v
		}
	}
	return m
}
