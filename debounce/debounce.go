package debounce

import (
	"sync"
	"time"

	"github.com/MrEthical07/goUX/internal/clock"
)

type options struct {
	clock       clock.Clock
	onSupersede func()
}

// Option customizes a Debouncer.
type Option func(*options)

// WithClock replaces the runtime clock. Used by tests.
func WithClock(c clock.Clock) Option {
	return func(o *options) {
		if c != nil {
			o.clock = c
		}
	}
}

// WithSupersedeHook registers fn to run each time a call replaces a pending
// invocation. fn runs synchronously inside Call.
func WithSupersedeHook(fn func()) Option {
	return func(o *options) {
		o.onSupersede = fn
	}
}

// Debouncer delays action until calls have paused for the configured delay.
type Debouncer[T any] struct {
	mu      sync.Mutex
	clock   clock.Clock
	delay   time.Duration
	action  func(T)
	hook    func()
	timer   clock.Timer
	gen     uint64
	last    T
	pending bool
	stopped bool
}

// New wraps action so that it runs delay after the last Call. A non-positive
// delay still defers the action to the timer goroutine.
func New[T any](delay time.Duration, action func(T), opts ...Option) *Debouncer[T] {
	o := options{clock: clock.Real()}
	for _, opt := range opts {
		opt(&o)
	}
	if delay < 0 {
		delay = 0
	}
	return &Debouncer[T]{
		clock:  o.clock,
		delay:  delay,
		action: action,
		hook:   o.onSupersede,
	}
}

// Delay returns the idle window length.
func (d *Debouncer[T]) Delay() time.Duration {
	return d.delay
}

// Call records arg as the latest argument and restarts the idle window.
func (d *Debouncer[T]) Call(arg T) {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}

	superseded := d.pending
	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.last = arg
	d.pending = true
	d.timer = d.clock.AfterFunc(d.delay, func() { d.fire(gen) })
	hook := d.hook
	d.mu.Unlock()

	if superseded && hook != nil {
		hook()
	}
}

// Pending reports whether an invocation is scheduled.
func (d *Debouncer[T]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending
}

// Cancel drops the pending invocation. It reports whether one was pending.
func (d *Debouncer[T]) Cancel() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cancelLocked()
}

// Flush runs the pending invocation immediately on the caller's goroutine. It
// reports whether an invocation was pending.
func (d *Debouncer[T]) Flush() bool {
	d.mu.Lock()
	if !d.pending {
		d.mu.Unlock()
		return false
	}
	arg := d.last
	d.cancelLocked()
	d.mu.Unlock()

	d.action(arg)
	return true
}

// Stop cancels the pending invocation and ignores every later Call.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cancelLocked()
	d.stopped = true
}

func (d *Debouncer[T]) cancelLocked() bool {
	if !d.pending {
		return false
	}
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.gen++
	d.pending = false
	var zero T
	d.last = zero
	return true
}

func (d *Debouncer[T]) fire(gen uint64) {
	d.mu.Lock()
	// A newer Call or Cancel raced with this timer.
	if gen != d.gen || !d.pending {
		d.mu.Unlock()
		return
	}
	arg := d.last
	d.pending = false
	d.timer = nil
	var zero T
	d.last = zero
	d.mu.Unlock()

	d.action(arg)
}
