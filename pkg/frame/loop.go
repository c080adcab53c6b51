package frame

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// DefaultFrameRate is used when a Loop is created with a non-positive rate.
const DefaultFrameRate = 60

// Loop fires frames from a ticker. Frame callbacks and posted tasks all run
// on the goroutine that calls Run, one at a time.
type Loop struct {
	interval time.Duration
	logger   *slog.Logger

	mu sync.Mutex
	q  queue

	after func()

	tasks   chan func()
	done    chan struct{}
	started chan struct{}
	once    sync.Once
}

var _ Source = (*Loop)(nil)

// NewLoop creates a loop firing at most frameRate frames per second.
func NewLoop(frameRate int, logger *slog.Logger) *Loop {
	if frameRate <= 0 {
		frameRate = DefaultFrameRate
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Loop{
		interval: time.Second / time.Duration(frameRate),
		logger:   logger,
		tasks:    make(chan func(), 64),
		done:     make(chan struct{}),
		started:  make(chan struct{}),
	}
}

// Interval returns the time between frames.
func (l *Loop) Interval() time.Duration {
	return l.interval
}

// RequestFrame queues fn for the next frame. Safe for concurrent use.
func (l *Loop) RequestFrame(fn func()) ID {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.q.add(fn)
}

// CancelFrame drops a queued callback. Safe for concurrent use.
func (l *Loop) CancelFrame(id ID) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.q.cancel(id)
}

// AfterFrame sets fn to run after every frame that had callbacks, once
// they have all returned. It must be called before Run.
func (l *Loop) AfterFrame(fn func()) {
	l.after = fn
}

// Post runs fn on the loop goroutine. It reports false if the loop has
// stopped and fn will never run.
func (l *Loop) Post(fn func()) bool {
	select {
	case <-l.done:
		return false
	default:
	}
	select {
	case l.tasks <- fn:
		return true
	case <-l.done:
		return false
	}
}

// Started is closed once Run has begun processing.
func (l *Loop) Started() <-chan struct{} {
	return l.started
}

// Run processes tasks and frames until ctx is done. It must be called once.
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()
	defer l.once.Do(func() { close(l.done) })

	l.logger.Debug("frame loop started", slog.Duration("interval", l.interval))
	close(l.started)

	for {
		select {
		case <-ctx.Done():
			l.logger.Debug("frame loop stopped")
			return nil
		case fn := <-l.tasks:
			fn()
		case <-ticker.C:
			l.fire()
		}
	}
}

func (l *Loop) fire() {
	l.mu.Lock()
	reqs := l.q.take()
	l.mu.Unlock()
	if len(reqs) == 0 {
		return
	}
	for _, r := range reqs {
		r.fn()
	}
	if l.after != nil {
		l.after()
	}
}
