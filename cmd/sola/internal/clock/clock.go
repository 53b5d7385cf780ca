// Package clock derives the active logical day from wall-clock time.
// The canonical form is a UTC YYYY-MM-DD string, matching the service's
// date keys.
package clock

import (
	"context"
	"sync"
	"time"
)

// DateLayout is the canonical day format.
const DateLayout = "2006-01-02"

// DefaultInterval is how often the day is recomputed.
const DefaultInterval = 60 * time.Second

// DayClock polls wall-clock time and emits the new day string exactly
// when the computed value differs from the previously emitted one. A
// process suspended across one or more day boundaries produces a single
// change event on the next tick.
type DayClock struct {
	interval time.Duration
	now      func() time.Time

	mu       sync.Mutex
	last     string
	changes  chan string
	stop     chan struct{}
	stopOnce sync.Once
}

// New creates a DayClock. interval <= 0 selects DefaultInterval.
func New(interval time.Duration) *DayClock {
	if interval <= 0 {
		interval = DefaultInterval
	}
	c := &DayClock{
		interval: interval,
		now:      time.Now,
		changes:  make(chan string, 1),
		stop:     make(chan struct{}),
	}
	c.last = c.Today()
	return c
}

// Today computes the current day fresh from wall-clock time.
func (c *DayClock) Today() string {
	return c.now().UTC().Format(DateLayout)
}

// Changes delivers day-change events. The channel is never closed;
// consumers select against their own shutdown signal.
func (c *DayClock) Changes() <-chan string {
	return c.changes
}

// Run polls until ctx is cancelled or Stop is called. It owns the
// ticker and releases it on exit.
func (c *DayClock) Run(ctx context.Context) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.tick(ctx)
		case <-c.stop:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (c *DayClock) tick(ctx context.Context) {
	day := c.Today()

	c.mu.Lock()
	changed := day != c.last
	if changed {
		c.last = day
	}
	c.mu.Unlock()

	if !changed {
		return
	}

	select {
	case c.changes <- day:
	case <-c.stop:
	case <-ctx.Done():
	}
}

// Stop terminates Run. Safe to call more than once.
func (c *DayClock) Stop() {
	c.stopOnce.Do(func() { close(c.stop) })
}
