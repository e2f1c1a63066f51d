package monitor

import (
	"context"
	stderrors "errors"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rileyhilliard/hostdash/internal/config"
	"github.com/rileyhilliard/hostdash/internal/errors"
	"github.com/rileyhilliard/hostdash/internal/logger"
	"github.com/rileyhilliard/hostdash/internal/metrics"
)

const (
	// ShutdownTimeout bounds how long quitting waits for background work.
	ShutdownTimeout = 2 * time.Second

	// logThrottle limits how often a repeating warning reaches the log.
	logThrottle = 30 * time.Second
)

// Engine is the background half of the dashboard: the throughput sampler
// and the render loop, publishing to a Surface.
type Engine struct {
	sampler *Sampler
	loop    *Loop
	log     logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// EngineOptions tunes an Engine. Zero values use the package defaults.
type EngineOptions struct {
	SampleInterval time.Duration
	CPUWindow      time.Duration
	TickDelay      time.Duration
}

// NewEngine wires a sampler, collector and loop for cfg.
func NewEngine(cfg *config.Config, provider metrics.Provider, surface Surface, size *TermSize, log logger.Logger, opts EngineOptions) *Engine {
	if log == nil {
		log = logger.Noop()
	}
	log = logger.Throttled(log, logThrottle)

	slot := &RateSlot{}
	sampler := NewSampler(provider, cfg.Network.Interface, slot, log, WithSampleInterval(opts.SampleInterval))

	collector := NewCollector(provider, cfg.Disk.Volume, log)
	if opts.CPUWindow > 0 {
		collector.SetCPUWindow(opts.CPUWindow)
	}

	loop := NewLoop(LoopConfig{
		Collector: collector,
		Slot:      slot,
		Surface:   surface,
		Size:      size,
		NetErr:    sampler.Err,
		Logger:    log,
		Interface: cfg.Network.Interface,
		Volume:    cfg.Disk.Volume,
		Delay:     opts.TickDelay,
	})

	return &Engine{sampler: sampler, loop: loop, log: log}
}

// Start launches the sampler and the render loop. Calling Start twice is a no-op.
func (e *Engine) Start(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.done != nil {
		return
	}

	ctx, e.cancel = context.WithCancel(ctx)
	e.done = make(chan struct{})
	done := e.done

	e.sampler.Start(ctx)
	go func() {
		defer close(done)
		e.loop.Run(ctx)
	}()
}

// Stop cancels background work and waits up to timeout for the loop and
// sampler to exit. It reports whether both finished in time.
func (e *Engine) Stop(timeout time.Duration) bool {
	e.mu.Lock()
	cancel, done := e.cancel, e.done
	e.mu.Unlock()

	if done == nil {
		return true
	}
	cancel()

	deadline := time.Now().Add(timeout)
	loopDone := true
	select {
	case <-done:
	case <-time.After(timeout):
		e.log.Warn("render loop did not exit within %s", timeout)
		loopDone = false
	}

	remaining := time.Until(deadline)
	if remaining < 0 {
		remaining = 0
	}
	return e.sampler.Stop(remaining) && loopDone
}

// Run shows the dashboard until the user quits or ctx is cancelled.
// The Bubble Tea program owns the terminal; the engine runs alongside it.
func Run(ctx context.Context, cfg *config.Config, provider metrics.Provider, log logger.Logger, opts ...tea.ProgramOption) error {
	if log == nil {
		log = logger.Noop()
	}

	size := NewTermSize()
	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	program := tea.NewProgram(NewModel(size), opts...)

	engine := NewEngine(cfg, provider, NewProgramSurface(program), size, log, EngineOptions{})
	engine.Start(ctx)

	_, err := program.Run()

	if !engine.Stop(ShutdownTimeout) {
		log.Warn("dashboard background work still running at exit")
	}

	if err != nil {
		if stderrors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return errors.WrapWithCode(err, errors.ErrExec,
			"Dashboard exited with an error",
			"Make sure hostdash is running in an interactive terminal")
	}
	return nil
}
