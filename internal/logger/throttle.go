package logger

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// throttledLogger forwards at most one message per format string per interval.
// The render loop ticks about once a second, so a metric that keeps failing
// would otherwise log on every tick.
type throttledLogger struct {
	next     Logger
	interval time.Duration

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// Throttled wraps next so that repeated messages (same level and format
// string) are emitted at most once per interval. Debug messages pass through
// unthrottled.
func Throttled(next Logger, interval time.Duration) Logger {
	if interval <= 0 {
		return next
	}
	return &throttledLogger{
		next:     next,
		interval: interval,
		limiters: make(map[string]*rate.Limiter),
	}
}

func (l *throttledLogger) allow(level, format string) bool {
	key := level + "\x00" + format

	l.mu.Lock()
	defer l.mu.Unlock()

	lim, ok := l.limiters[key]
	if !ok {
		lim = rate.NewLimiter(rate.Every(l.interval), 1)
		l.limiters[key] = lim
	}
	return lim.Allow()
}

func (l *throttledLogger) Debug(format string, args ...interface{}) {
	l.next.Debug(format, args...)
}

func (l *throttledLogger) Info(format string, args ...interface{}) {
	if l.allow("info", format) {
		l.next.Info(format, args...)
	}
}

func (l *throttledLogger) Warn(format string, args ...interface{}) {
	if l.allow("warn", format) {
		l.next.Warn(format, args...)
	}
}

func (l *throttledLogger) Error(format string, args ...interface{}) {
	if l.allow("error", format) {
		l.next.Error(format, args...)
	}
}
