package clock

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeNow is a swappable time source.
type fakeNow struct {
	mu sync.Mutex
	t  time.Time
}

func (f *fakeNow) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.t
}

func (f *fakeNow) Set(t time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.t = t
}

func TestTodayUsesUTC(t *testing.T) {
	c := New(time.Hour)
	// 23:30 in UTC-5 on May 1 is already May 2 in UTC.
	loc := time.FixedZone("UTC-5", -5*60*60)
	c.now = func() time.Time {
		return time.Date(2024, 5, 1, 23, 30, 0, 0, loc)
	}

	assert.Equal(t, "2024-05-02", c.Today())
}

func TestEmitsOnceOnDayChange(t *testing.T) {
	now := &fakeNow{t: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}

	c := New(5 * time.Millisecond)
	c.now = now.Now
	c.last = c.Today()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go c.Run(ctx)
	defer c.Stop()

	// Several ticks with an unchanged day produce no events.
	time.Sleep(30 * time.Millisecond)
	select {
	case day := <-c.Changes():
		t.Fatalf("unexpected change event %q before day rollover", day)
	default:
	}

	// Jump three days forward: still exactly one event.
	now.Set(time.Date(2024, 5, 4, 0, 0, 1, 0, time.UTC))

	select {
	case day := <-c.Changes():
		assert.Equal(t, "2024-05-04", day)
	case <-time.After(time.Second):
		t.Fatal("no change event after day rollover")
	}

	time.Sleep(30 * time.Millisecond)
	select {
	case day := <-c.Changes():
		t.Fatalf("second change event %q for a single rollover", day)
	default:
	}
}

func TestStopTerminatesRun(t *testing.T) {
	c := New(time.Millisecond)

	done := make(chan struct{})
	go func() {
		c.Run(context.Background())
		close(done)
	}()

	c.Stop()
	c.Stop() // idempotent

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after Stop")
	}
}

func TestDefaultInterval(t *testing.T) {
	c := New(0)
	require.Equal(t, DefaultInterval, c.interval)
}
