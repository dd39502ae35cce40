package jobs

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// manualClock hands out tickers that only fire when the test says so.
type manualClock struct {
	mu      sync.Mutex
	tickers []*manualTicker
}

type manualTicker struct {
	ch      chan time.Time
	stopped atomic.Bool
}

func (t *manualTicker) C() <-chan time.Time { return t.ch }
func (t *manualTicker) Stop()               { t.stopped.Store(true) }

func (c *manualClock) NewTicker(time.Duration) Ticker {
	t := &manualTicker{ch: make(chan time.Time)}
	c.mu.Lock()
	c.tickers = append(c.tickers, t)
	c.mu.Unlock()
	return t
}

func (c *manualClock) live() []*manualTicker {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []*manualTicker
	for _, t := range c.tickers {
		if !t.stopped.Load() {
			out = append(out, t)
		}
	}
	return out
}

func (c *manualClock) created() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.tickers)
}

// Advance delivers one tick to every live ticker, waiting until each loop
// has taken it.
func (c *manualClock) Advance(t *testing.T) {
	t.Helper()
	live := c.live()
	if len(live) == 0 {
		t.Fatal("no live ticker to advance")
	}
	for _, tk := range live {
		select {
		case tk.ch <- time.Now():
		case <-time.After(2 * time.Second):
			t.Fatal("ticker was not consumed")
		}
	}
}

// TryAdvance offers one tick to every ticker ever created, stopped ones
// included, and reports how many were consumed.
func (c *manualClock) TryAdvance(wait time.Duration) int {
	c.mu.Lock()
	all := append([]*manualTicker(nil), c.tickers...)
	c.mu.Unlock()

	consumed := 0
	for _, tk := range all {
		select {
		case tk.ch <- time.Now():
			consumed++
		case <-time.After(wait):
		}
	}
	return consumed
}
