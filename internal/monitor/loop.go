package monitor

import (
	"context"
	"time"

	"github.com/rileyhilliard/hostdash/internal/logger"
)

// TickDelay is the pause after each publish. Most of a tick is spent in
// the CPU window, so a tick takes about CPUWindow + TickDelay.
const TickDelay = 100 * time.Millisecond

// Loop drives the dashboard: collect, record history, format, publish.
type Loop struct {
	collector *Collector
	slot      *RateSlot
	surface   Surface
	size      *TermSize
	netErr    func() error
	log       logger.Logger
	delay     time.Duration

	iface  string
	volume string

	sent     *History
	recv     *History
	cpuTrend *History
}

// LoopConfig wires a Loop to its collaborators.
type LoopConfig struct {
	Collector *Collector
	Slot      *RateSlot
	Surface   Surface
	// Size is read every tick to size bars and plots. Nil uses the default size.
	Size *TermSize
	// NetErr reports why throughput isn't being sampled, if it isn't.
	NetErr    func() error
	Logger    logger.Logger
	Interface string
	Volume    string
	// Delay overrides TickDelay when positive.
	Delay time.Duration
	// HistorySize overrides DefaultHistorySize when positive.
	HistorySize int
}

// NewLoop creates a loop with empty histories.
func NewLoop(cfg LoopConfig) *Loop {
	l := &Loop{
		collector: cfg.Collector,
		slot:      cfg.Slot,
		surface:   cfg.Surface,
		size:      cfg.Size,
		netErr:    cfg.NetErr,
		log:       cfg.Logger,
		delay:     TickDelay,
		iface:     cfg.Interface,
		volume:    cfg.Volume,
		sent:      NewHistory(cfg.HistorySize),
		recv:      NewHistory(cfg.HistorySize),
		cpuTrend:  NewHistory(cfg.HistorySize),
	}
	if cfg.Delay > 0 {
		l.delay = cfg.Delay
	}
	if l.size == nil {
		l.size = NewTermSize()
	}
	if l.netErr == nil {
		l.netErr = func() error { return nil }
	}
	if l.log == nil {
		l.log = logger.Noop()
	}
	return l
}

// Run ticks until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) {
	l.log.Debug("render loop started")
	defer l.log.Debug("render loop stopped")

	for ctx.Err() == nil {
		l.Tick(ctx)

		select {
		case <-ctx.Done():
		case <-time.After(l.delay):
		}
	}
}

// Tick runs one collect/format/publish cycle. Nothing is published if ctx
// is cancelled during collection.
func (l *Loop) Tick(ctx context.Context) {
	snap := l.collector.Collect(ctx)
	if ctx.Err() != nil {
		return
	}

	rate := l.slot.Load()
	l.sent.Append(rate.Up)
	l.recv.Append(rate.Down)
	if snap.CPUPercent.Status == StatusOK {
		l.cpuTrend.Append(snap.CPUPercent.Value)
	}

	panels := FormatPanels(PanelData{
		Snapshot:  snap,
		Facts:     l.collector.HostFacts(ctx),
		Sent:      l.sent.Snapshot(),
		Recv:      l.recv.Snapshot(),
		CPUTrend:  l.cpuTrend.Snapshot(),
		Rate:      rate,
		NetErr:    l.netErr(),
		Interface: l.iface,
		Volume:    l.volume,
	}, l.size.Layout())

	for _, region := range Regions {
		l.surface.Publish(region, panels[region])
	}
}
