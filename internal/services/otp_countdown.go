package services

import (
	"context"
	"sync"
	"time"
)

// Cooldown windows in seconds: the first OTP waits two minutes before a
// resend is offered, every resend after that waits five.
const (
	InitialCooldownSeconds = 120
	ResendCooldownSeconds  = 300
)

// Countdown is the client-side resend cooldown: a monotonic once-per-second
// decrease clamped at zero. It is advisory only; the server independently
// enforces code expiry.
type Countdown struct {
	mu        sync.Mutex
	remaining int
}

// NewCountdown starts a countdown at the initial window.
func NewCountdown() *Countdown {
	return &Countdown{remaining: InitialCooldownSeconds}
}

// Remaining returns the seconds left until a resend is permitted.
func (c *Countdown) Remaining() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remaining
}

// Expired reports whether a resend is currently permitted.
func (c *Countdown) Expired() bool {
	return c.Remaining() == 0
}

// Tick consumes one elapsed second and returns the remaining count. Ticking
// an expired countdown stays at zero.
func (c *Countdown) Tick() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.remaining > 0 {
		c.remaining--
	}
	return c.remaining
}

// Reset restarts the countdown at the given window.
func (c *Countdown) Reset(seconds int) {
	c.mu.Lock()
	c.remaining = seconds
	c.mu.Unlock()
}

// Run ticks once per second until the countdown expires or ctx is cancelled,
// reporting each new value on the returned channel. The channel closes when
// the run ends; cancelling ctx is how an owning view tears the timer down.
func (c *Countdown) Run(ctx context.Context) <-chan int {
	updates := make(chan int)
	go func() {
		defer close(updates)
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				remaining := c.Tick()
				select {
				case updates <- remaining:
				case <-ctx.Done():
					return
				}
				if remaining == 0 {
					return
				}
			}
		}
	}()
	return updates
}
