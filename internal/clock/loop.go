package clock

import (
	"context"
	"sync/atomic"
	"time"
)

// Loop is a Clock whose callbacks are delivered to one consumer goroutine.
// Timers fire on runtime goroutines and only enqueue the callback; the
// consumer runs it via Run, or by receiving from Calls and invoking the
// function itself (the TUI does the latter from its Update loop).
type Loop struct {
	calls chan func()
	done  chan struct{}
	once  atomic.Bool
}

// NewLoop creates a Loop with the given callback queue size.
func NewLoop(buffer int) *Loop {
	if buffer <= 0 {
		buffer = 64
	}
	return &Loop{
		calls: make(chan func(), buffer),
		done:  make(chan struct{}),
	}
}

// Now returns the wall clock time with its monotonic reading.
func (l *Loop) Now() time.Time {
	return time.Now()
}

// AfterFunc schedules f to be queued on the loop after d.
func (l *Loop) AfterFunc(d time.Duration, f func()) Timer {
	lt := &loopTimer{}
	lt.t = time.AfterFunc(d, func() {
		l.enqueue(func() {
			if lt.stopped.Load() {
				return
			}
			f()
		})
	})
	return lt
}

// Post queues f to run on the loop goroutine.
func (l *Loop) Post(f func()) {
	l.enqueue(f)
}

// Calls exposes the callback queue for hosts that run their own event loop.
func (l *Loop) Calls() <-chan func() {
	return l.calls
}

// Run executes queued callbacks until ctx is done or Close is called.
func (l *Loop) Run(ctx context.Context) error {
	return l.Serve(ctx, nil)
}

// Serve is Run with a hook invoked on the loop goroutine after every
// callback, letting the host flush state the callback produced.
func (l *Loop) Serve(ctx context.Context, after func()) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.done:
			return nil
		case f := <-l.calls:
			f()
			if after != nil {
				after()
			}
		}
	}
}

// Close stops Run and drops callbacks that arrive afterwards.
func (l *Loop) Close() {
	if l.once.CompareAndSwap(false, true) {
		close(l.done)
	}
}

func (l *Loop) enqueue(f func()) {
	select {
	case l.calls <- f:
	case <-l.done:
	}
}

type loopTimer struct {
	t       *time.Timer
	stopped atomic.Bool
}

// Stop marks the timer cancelled before stopping the runtime timer, so a
// callback that already reached the queue is skipped when dequeued.
func (lt *loopTimer) Stop() bool {
	lt.stopped.Store(true)
	return lt.t.Stop()
}
