package playback

import (
	"sync"
	"time"
)

// Timer is a pending callback that can be stopped.
type Timer interface {
	// Stop prevents the callback from running. It reports false if the
	// callback already ran or was stopped.
	Stop() bool
}

// Clock schedules callbacks. Callbacks may run on any goroutine.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// RealClock schedules on the wall clock.
type RealClock struct{}

// AfterFunc wraps time.AfterFunc.
func (RealClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// ManualClock is a virtual clock. Callbacks run synchronously inside Advance,
// on the caller's goroutine, ordered by due time then by scheduling order.
type ManualClock struct {
	mu      sync.Mutex
	now     time.Duration
	seq     uint64
	pending []*manualTimer
}

type manualTimer struct {
	c   *ManualClock
	due time.Duration
	seq uint64
	f   func()
}

// NewManualClock returns a clock at virtual time zero.
func NewManualClock() *ManualClock {
	return &ManualClock{}
}

// AfterFunc schedules f at Now()+d. Negative d counts as zero.
func (c *ManualClock) AfterFunc(d time.Duration, f func()) Timer {
	if d < 0 {
		d = 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &manualTimer{c: c, due: c.now + d, seq: c.seq, f: f}
	c.seq++
	c.pending = append(c.pending, t)
	return t
}

// Stop removes t from the pending set.
func (t *manualTimer) Stop() bool {
	t.c.mu.Lock()
	defer t.c.mu.Unlock()
	return t.c.remove(t)
}

// remove deletes t from pending. Caller holds mu.
func (c *ManualClock) remove(t *manualTimer) bool {
	for i, p := range c.pending {
		if p == t {
			c.pending = append(c.pending[:i], c.pending[i+1:]...)
			return true
		}
	}
	return false
}

// Now returns the virtual time elapsed since construction.
func (c *ManualClock) Now() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Pending returns the number of scheduled callbacks.
func (c *ManualClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}

// Advance moves time forward by d, running every callback that falls due,
// including ones scheduled by callbacks during the advance.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now + d
	c.mu.Unlock()

	for {
		c.mu.Lock()
		next := c.next()
		if next == nil || next.due > target {
			c.now = target
			c.mu.Unlock()
			return
		}
		c.remove(next)
		c.now = next.due
		c.mu.Unlock()

		next.f()
	}
}

// Drain runs callbacks until none remain and returns the virtual time spent.
// A callback chain that reschedules forever makes Drain loop forever.
func (c *ManualClock) Drain() time.Duration {
	c.mu.Lock()
	start := c.now
	c.mu.Unlock()

	for {
		c.mu.Lock()
		next := c.next()
		if next == nil {
			elapsed := c.now - start
			c.mu.Unlock()
			return elapsed
		}
		c.remove(next)
		c.now = next.due
		c.mu.Unlock()

		next.f()
	}
}

// next returns the earliest pending timer. Caller holds mu.
func (c *ManualClock) next() *manualTimer {
	var best *manualTimer
	for _, t := range c.pending {
		if best == nil || t.due < best.due || (t.due == best.due && t.seq < best.seq) {
			best = t
		}
	}
	return best
}
