package service

import (
	"sync"
	"time"
)

// Countdown drives the per-question timer. Only one countdown is live at
// a time: Start cancels any previous run before beginning a new one, and
// the session additionally follows a cancel-then-start discipline.
type Countdown struct {
	mu       sync.Mutex
	interval time.Duration
	stop     chan struct{}
}

// NewCountdown creates a countdown ticking once per second.
func NewCountdown() *Countdown {
	return &Countdown{interval: time.Second}
}

// Start begins a countdown from seconds. onTick fires immediately with
// the full value so newly joined clients learn the total duration, then
// once per interval with the decremented remainder. onExpire fires
// exactly once when the remainder reaches zero.
func (c *Countdown) Start(seconds int, onTick func(remaining int), onExpire func()) {
	c.mu.Lock()
	c.stopLocked()
	stop := make(chan struct{})
	c.stop = stop
	c.mu.Unlock()

	go c.run(seconds, stop, onTick, onExpire)
}

// Cancel stops the countdown immediately. Safe to call when no
// countdown is running.
func (c *Countdown) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
}

func (c *Countdown) stopLocked() {
	if c.stop != nil {
		close(c.stop)
		c.stop = nil
	}
}

func (c *Countdown) run(seconds int, stop chan struct{}, onTick func(int), onExpire func()) {
	if c.stopped(stop) {
		return
	}
	onTick(seconds)
	if seconds <= 0 {
		if c.stopped(stop) {
			return
		}
		onExpire()
		return
	}

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	remaining := seconds
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			// A cancel may have raced the tick.
			if c.stopped(stop) {
				return
			}
			remaining--
			onTick(remaining)
			if remaining <= 0 {
				// A cancel may have landed while the final tick
				// callback ran; never fire a stale expiry.
				if c.stopped(stop) {
					return
				}
				onExpire()
				return
			}
		}
	}
}

// stopped reports whether this run has been cancelled or replaced.
func (c *Countdown) stopped(stop chan struct{}) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stop != stop
}
