package mocks

import (
	"sync"
	"time"
)

// Clock is a settable ports.Clock
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

// NewClock creates a clock pinned at now
func NewClock(now time.Time) *Clock {
	return &Clock{now: now}
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Set moves the clock to now
func (c *Clock) Set(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}
