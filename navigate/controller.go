package navigate

import (
	"log/slog"
	"sync"
	"time"

	"go.proclama.app/proclama/internal/types"
)

// DefaultAdvanceInterval is the auto-advance period.
const DefaultAdvanceInterval = 5 * time.Second

// ApplyFunc receives the unit a navigation step landed on. In practice
// this is the projection store's SetProjection.
type ApplyFunc func(types.ContentUnit)

// Controller binds the transport controls (prev, next, play, pause) to
// the active cursor and drives the auto-advance timer. It holds no
// positional state of its own beyond the cursor it was last given.
type Controller struct {
	mu       sync.Mutex
	apply    ApplyFunc
	onChange func(types.TransportState)
	interval time.Duration

	cursor      *Cursor
	autoPlaying bool
	ticker      *time.Ticker
	stop        chan struct{}
}

// NewController creates a controller applying navigation results through
// apply. interval <= 0 selects DefaultAdvanceInterval.
func NewController(apply ApplyFunc, interval time.Duration) *Controller {
	if interval <= 0 {
		interval = DefaultAdvanceInterval
	}
	return &Controller{apply: apply, interval: interval}
}

// OnChange registers a callback fired after every transport state
// change, for the control surface to enable/disable its buttons.
func (c *Controller) OnChange(fn func(types.TransportState)) {
	c.mu.Lock()
	c.onChange = fn
	c.mu.Unlock()
}

// SetCursor replaces the active cursor wholesale. A nil cursor disables
// both transport directions. Auto-advance turns itself off if the new
// cursor has no successor.
func (c *Controller) SetCursor(cursor *Cursor) {
	c.mu.Lock()
	c.cursor = cursor
	if c.autoPlaying && !cursor.HasNext() {
		c.stopAutoLocked()
	}
	state := c.stateLocked()
	onChange := c.onChange
	c.mu.Unlock()

	c.notify(onChange, state)
}

// Clear drops the active cursor and stops auto-advance.
func (c *Controller) Clear() {
	c.SetCursor(nil)
}

// Next advances to the successor unit, if any. Returns false as a no-op
// when the cursor is exhausted; auto-advance disables itself in that
// case rather than ever firing into nothing.
func (c *Controller) Next() bool {
	c.mu.Lock()
	unit, ok := c.cursor.Next()
	if !ok {
		if c.autoPlaying {
			c.stopAutoLocked()
		}
		state := c.stateLocked()
		onChange := c.onChange
		c.mu.Unlock()
		c.notify(onChange, state)
		return false
	}
	if c.autoPlaying && !c.cursor.HasNext() {
		// Landed on the last unit; the next tick would have nothing
		// to do, so stop the timer now.
		c.stopAutoLocked()
	}
	apply := c.apply
	state := c.stateLocked()
	onChange := c.onChange
	c.mu.Unlock()

	if apply != nil {
		apply(unit)
	}
	c.notify(onChange, state)
	return true
}

// Prev moves to the predecessor unit, if any. Going back never affects
// auto-advance.
func (c *Controller) Prev() bool {
	c.mu.Lock()
	unit, ok := c.cursor.Prev()
	apply := c.apply
	state := c.stateLocked()
	onChange := c.onChange
	c.mu.Unlock()

	if !ok {
		return false
	}
	if apply != nil {
		apply(unit)
	}
	c.notify(onChange, state)
	return true
}

// Play starts auto-advance. Refused (returns false) when no successor
// exists, so the timer can never fire against an exhausted cursor.
func (c *Controller) Play() bool {
	c.mu.Lock()
	if c.autoPlaying {
		c.mu.Unlock()
		return true
	}
	if !c.cursor.HasNext() {
		c.mu.Unlock()
		return false
	}
	c.autoPlaying = true
	c.ticker = time.NewTicker(c.interval)
	c.stop = make(chan struct{})
	go c.run(c.ticker, c.stop)
	state := c.stateLocked()
	onChange := c.onChange
	c.mu.Unlock()

	slog.Info("auto-advance started", "interval", c.interval)
	c.notify(onChange, state)
	return true
}

// Pause stops auto-advance unconditionally.
func (c *Controller) Pause() {
	c.mu.Lock()
	wasPlaying := c.autoPlaying
	c.stopAutoLocked()
	state := c.stateLocked()
	onChange := c.onChange
	c.mu.Unlock()

	if wasPlaying {
		slog.Info("auto-advance paused")
	}
	c.notify(onChange, state)
}

// State returns the current transport capabilities.
func (c *Controller) State() types.TransportState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stateLocked()
}

// Close cancels the auto-advance timer. Required before discarding the
// controller so a stale tick cannot mutate state afterwards.
func (c *Controller) Close() {
	c.Pause()
}

func (c *Controller) run(ticker *time.Ticker, stop chan struct{}) {
	for {
		select {
		case <-ticker.C:
			c.Next()
		case <-stop:
			return
		}
	}
}

// stopAutoLocked cancels the running timer. Caller holds c.mu.
func (c *Controller) stopAutoLocked() {
	c.autoPlaying = false
	if c.ticker != nil {
		c.ticker.Stop()
		c.ticker = nil
	}
	if c.stop != nil {
		close(c.stop)
		c.stop = nil
	}
}

func (c *Controller) stateLocked() types.TransportState {
	return types.TransportState{
		HasNext:       c.cursor.HasNext(),
		HasPrev:       c.cursor.HasPrev(),
		IsAutoPlaying: c.autoPlaying,
	}
}

func (c *Controller) notify(fn func(types.TransportState), state types.TransportState) {
	if fn != nil {
		fn(state)
	}
}
