// Package notify implements the transient error slot: one message with a
// bounded visible lifetime that restarts whenever a new message arrives.
package notify

import (
	"sync"
	"time"
)

// DefaultLifetime is how long a message stays visible.
const DefaultLifetime = 3 * time.Second

// Timer is a scheduled callback that can be cancelled.
type Timer interface {
	Stop() bool
}

// Scheduler runs f once after d.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realScheduler struct{}

func (realScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Notifier holds at most one message. States are Empty and Active; Set
// moves to Active (restarting the lifetime), Clear or expiry moves to Empty.
type Notifier struct {
	mu        sync.Mutex
	lifetime  time.Duration
	scheduler Scheduler
	msg       string
	active    bool
	timer     Timer
	gen       uint64
	onChange  func(msg string, active bool)
}

type Option func(*Notifier)

func WithScheduler(s Scheduler) Option {
	return func(n *Notifier) { n.scheduler = s }
}

// WithOnChange registers f to run after every state change. f runs outside
// the notifier's lock.
func WithOnChange(f func(msg string, active bool)) Option {
	return func(n *Notifier) { n.onChange = f }
}

// New returns an empty notifier. A non-positive lifetime means DefaultLifetime.
func New(lifetime time.Duration, opts ...Option) *Notifier {
	if lifetime <= 0 {
		lifetime = DefaultLifetime
	}
	n := &Notifier{lifetime: lifetime, scheduler: realScheduler{}}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Set shows msg and (re)starts its lifetime. A previously scheduled expiry
// is cancelled; should it fire anyway, its stale generation keeps it from
// clearing msg.
func (n *Notifier) Set(msg string) {
	n.mu.Lock()
	n.stopLocked()
	n.msg = msg
	n.active = true
	gen := n.gen
	n.timer = n.scheduler.AfterFunc(n.lifetime, func() { n.expire(gen) })
	n.mu.Unlock()

	n.changed(msg, true)
}

// Clear empties the slot immediately.
func (n *Notifier) Clear() {
	n.mu.Lock()
	wasActive := n.active
	n.stopLocked()
	n.msg = ""
	n.active = false
	n.mu.Unlock()

	if wasActive {
		n.changed("", false)
	}
}

// Current returns the visible message, if any.
func (n *Notifier) Current() (string, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.msg, n.active
}

func (n *Notifier) Lifetime() time.Duration {
	return n.lifetime
}

// stopLocked cancels the pending expiry and invalidates it.
func (n *Notifier) stopLocked() {
	if n.timer != nil {
		n.timer.Stop()
		n.timer = nil
	}
	n.gen++
}

func (n *Notifier) expire(gen uint64) {
	n.mu.Lock()
	if gen != n.gen || !n.active {
		n.mu.Unlock()
		return
	}
	n.msg = ""
	n.active = false
	n.timer = nil
	n.mu.Unlock()

	n.changed("", false)
}

func (n *Notifier) changed(msg string, active bool) {
	if n.onChange != nil {
		n.onChange(msg, active)
	}
}
