package guard

import (
	"sync"
	"time"

	"github.com/MrEthical07/goUX/internal/clock"
)

// DefaultCooldown is the suppression window after an allowed submit.
const DefaultCooldown = 3000 * time.Millisecond

// State is the submission state of a form.
type State uint8

const (
	// Idle accepts the next submit.
	Idle State = iota
	// Submitting suppresses submits until the cooldown elapses or Reset is called.
	Submitting
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Submitting:
		return "submitting"
	default:
		return "unknown"
	}
}

// Decision is the outcome of a submit attempt.
type Decision uint8

const (
	// Allowed means the submit proceeds.
	Allowed Decision = iota + 1
	// Suppressed means the submit must be cancelled by the caller.
	Suppressed
)

func (d Decision) String() string {
	switch d {
	case Allowed:
		return "allowed"
	case Suppressed:
		return "suppressed"
	default:
		return "unknown"
	}
}

// Control is the submit button (or equivalent) of a form.
type Control interface {
	SetSubmitEnabled(enabled bool)
}

// ControlFunc adapts a function to Control.
type ControlFunc func(enabled bool)

// SetSubmitEnabled calls f(enabled).
func (f ControlFunc) SetSubmitEnabled(enabled bool) { f(enabled) }

type options struct {
	clock      clock.Clock
	cooldown   time.Duration
	transition func(from, to State)
}

// Option customizes a Guard.
type Option func(*options)

// WithCooldown overrides DefaultCooldown. Non-positive values are ignored.
func WithCooldown(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.cooldown = d
		}
	}
}

// WithClock replaces the runtime clock. Used by tests.
func WithClock(c clock.Clock) Option {
	return func(o *options) {
		if c != nil {
			o.clock = c
		}
	}
}

// WithTransitionHook registers fn to observe every state change. fn runs
// outside the guard's lock.
func WithTransitionHook(fn func(from, to State)) Option {
	return func(o *options) {
		o.transition = fn
	}
}

func buildOptions(opts []Option) options {
	o := options{
		clock:    clock.Real(),
		cooldown: DefaultCooldown,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Guard is the per-form submission state machine.
type Guard struct {
	mu         sync.Mutex
	clock      clock.Clock
	cooldown   time.Duration
	transition func(from, to State)

	state   State
	control Control
	timer   clock.Timer
	gen     uint64
}

// New returns an Idle guard.
func New(opts ...Option) *Guard {
	return newWithOptions(buildOptions(opts))
}

func newWithOptions(o options) *Guard {
	return &Guard{
		clock:      o.clock,
		cooldown:   o.cooldown,
		transition: o.transition,
		state:      Idle,
	}
}

// Cooldown returns the suppression window.
func (g *Guard) Cooldown() time.Duration {
	return g.cooldown
}

// Attach sets the control toggled on state changes. A nil control detaches.
func (g *Guard) Attach(c Control) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.control = c
}

// State returns the current state.
func (g *Guard) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Submit handles a submit event.
func (g *Guard) Submit() Decision {
	g.mu.Lock()
	if g.state == Submitting {
		g.mu.Unlock()
		return Suppressed
	}

	g.state = Submitting
	g.gen++
	gen := g.gen
	g.timer = g.clock.AfterFunc(g.cooldown, func() { g.expire(gen) })
	control := g.control
	hook := g.transition
	g.mu.Unlock()

	if control != nil {
		control.SetSubmitEnabled(false)
	}
	if hook != nil {
		hook(Idle, Submitting)
	}
	return Allowed
}

// Reset returns the guard to Idle before the cooldown elapses. It reports
// whether a transition happened.
func (g *Guard) Reset() bool {
	g.mu.Lock()
	if g.state != Submitting {
		g.mu.Unlock()
		return false
	}
	if g.timer != nil {
		g.timer.Stop()
	}
	control, hook := g.toIdleLocked()
	g.mu.Unlock()

	g.notifyIdle(control, hook)
	return true
}

func (g *Guard) expire(gen uint64) {
	g.mu.Lock()
	if gen != g.gen || g.state != Submitting {
		g.mu.Unlock()
		return
	}
	control, hook := g.toIdleLocked()
	g.mu.Unlock()

	g.notifyIdle(control, hook)
}

func (g *Guard) toIdleLocked() (Control, func(from, to State)) {
	g.state = Idle
	g.timer = nil
	g.gen++
	return g.control, g.transition
}

func (g *Guard) notifyIdle(control Control, hook func(from, to State)) {
	if control != nil {
		control.SetSubmitEnabled(true)
	}
	if hook != nil {
		hook(Submitting, Idle)
	}
}
