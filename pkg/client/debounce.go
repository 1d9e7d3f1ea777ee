package client

import (
	"context"
	"strings"
	"sync"
	"time"
)

// DefaultSettleWindow is how long the username input must stay quiet before
// a uniqueness query fires.
const DefaultSettleWindow = 400 * time.Millisecond

// Oracle answers case-insensitive username uniqueness queries.
type Oracle interface {
	IsUsernameUnique(ctx context.Context, value string) (bool, error)
}

// UniqueChecker coalesces username keystrokes into at most one uniqueness
// query per settle window. Results of superseded queries are discarded, so
// the verdict always reflects the latest input: a slow query for an earlier
// draft can never overwrite the result of a later one. Errors count as
// not-unique so a colliding username is never submitted on a failed check.
type UniqueChecker struct {
	oracle Oracle
	window time.Duration

	mu      sync.Mutex
	timer   *time.Timer
	issued  uint64
	applied uint64
	unique  bool
	closed  bool
}

// NewUniqueChecker creates a checker over the given oracle. A non-positive
// window falls back to DefaultSettleWindow.
func NewUniqueChecker(oracle Oracle, window time.Duration) *UniqueChecker {
	if window <= 0 {
		window = DefaultSettleWindow
	}
	return &UniqueChecker{
		oracle: oracle,
		window: window,
		unique: true,
	}
}

// Input registers the current username draft. Every call restarts the settle
// timer; only the final value of a burst is ever queried. An empty draft
// settles to not-unique immediately without touching the oracle.
func (c *UniqueChecker) Input(value string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}

	c.issued++
	seq := c.issued

	if c.timer != nil {
		c.timer.Stop()
	}

	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		c.applied = seq
		c.unique = false
		return
	}

	c.timer = time.AfterFunc(c.window, func() {
		c.check(seq, trimmed)
	})
}

// check runs the oracle query for one settled input.
func (c *UniqueChecker) check(seq uint64, value string) {
	c.mu.Lock()
	if c.closed || seq != c.issued {
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()

	unique, err := c.oracle.IsUsernameUnique(context.Background(), value)
	if err != nil {
		// Fail closed: treat errors as a collision.
		unique = false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Discard stale results: a newer input was issued while we were waiting.
	if c.closed || seq != c.issued {
		return
	}

	c.applied = seq
	c.unique = unique
}

// Unique reports the last applied verdict for the current input.
func (c *UniqueChecker) Unique() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.unique
}

// Settled reports whether the verdict corresponds to the latest input.
func (c *UniqueChecker) Settled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.applied == c.issued
}

// Close stops the pending timer; later inputs and results are ignored.
func (c *UniqueChecker) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}
