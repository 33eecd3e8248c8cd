package game

import (
	"sync"
	"time"
)

// Clock is the cancellable countdown driving phase timeouts. A room holds
// exactly one Clock; starting a new countdown implicitly cancels the previous
// one, and a cancelled countdown's callback never fires.
type Clock struct {
	mu       sync.Mutex
	gen      uint64
	timer    *time.Timer
	deadline time.Time
}

func NewClock() *Clock { return &Clock{} }

// Start schedules onExpire after d, cancelling any countdown already running.
func (c *Clock) Start(d time.Duration, onExpire func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.gen++
	gen := c.gen
	if c.timer != nil {
		c.timer.Stop()
	}
	c.deadline = time.Now().Add(d)
	c.timer = time.AfterFunc(d, func() {
		c.mu.Lock()
		live := c.gen == gen
		if live {
			c.deadline = time.Time{}
		}
		c.mu.Unlock()
		if live {
			onExpire()
		}
	})
}

// Cancel stops the countdown. Cancelling an already-fired or already-cancelled
// clock is a no-op.
func (c *Clock) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.gen++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.deadline = time.Time{}
}

// TimeLeft recomputes the remaining whole seconds from the deadline rather
// than decrementing a counter, so it stays correct no matter when it is read.
func (c *Clock) TimeLeft() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.deadline.IsZero() {
		return 0
	}
	left := time.Until(c.deadline)
	if left <= 0 {
		return 0
	}
	// Round up so a countdown started at 10s reports 10, not 9.
	return int((left + time.Second - 1) / time.Second)
}
