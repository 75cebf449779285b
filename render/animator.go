package render

import (
	"sync"
	"time"

	"go.proclama.app/proclama/internal/types"
)

// TransitionDuration is the fade-out window before new content commits.
const TransitionDuration = 150 * time.Millisecond

// Animator stages content switches so a surface never tears between two
// units. It keeps two buffers: displayed (what is painted) and incoming
// (the latest offer). A differing offer starts the transition window;
// when it expires, displayed becomes the latest incoming value. Offers
// arriving mid-window reset the timer instead of queueing, so rapid
// selections collapse into a single transition to the final unit.
type Animator struct {
	mu        sync.Mutex
	duration  time.Duration
	displayed types.ContentUnit
	incoming  types.ContentUnit
	animating bool
	timer     *time.Timer
	onCommit  func(types.ContentUnit)
}

// NewAnimator creates an animator committing through onCommit.
// duration <= 0 selects TransitionDuration.
func NewAnimator(duration time.Duration, onCommit func(types.ContentUnit)) *Animator {
	if duration <= 0 {
		duration = TransitionDuration
	}
	return &Animator{
		duration:  duration,
		displayed: types.IdleContent(),
		incoming:  types.IdleContent(),
		onCommit:  onCommit,
	}
}

// Offer presents the latest content unit. Equal content (same kind,
// body, and caption as displayed) cancels any pending transition.
func (a *Animator) Offer(unit types.ContentUnit) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.incoming = unit
	if unit == a.displayed {
		a.cancelLocked()
		return
	}

	if a.timer != nil {
		// Mid-transition: retarget the latest value, restart the clock.
		a.timer.Stop()
	}
	a.animating = true
	a.timer = time.AfterFunc(a.duration, a.commit)
}

func (a *Animator) commit() {
	a.mu.Lock()
	a.displayed = a.incoming
	a.animating = false
	a.timer = nil
	committed := a.displayed
	onCommit := a.onCommit
	a.mu.Unlock()

	if onCommit != nil {
		onCommit(committed)
	}
}

// Displayed returns the currently painted unit.
func (a *Animator) Displayed() types.ContentUnit {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.displayed
}

// Animating reports whether a transition window is open.
func (a *Animator) Animating() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.animating
}

// Close cancels any pending transition timer. Must be called before the
// owning surface goes away so a stale commit cannot fire afterwards.
func (a *Animator) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.cancelLocked()
}

// cancelLocked stops the timer. Caller holds a.mu.
func (a *Animator) cancelLocked() {
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	a.animating = false
}
