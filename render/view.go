package render

import (
	"sync"
	"time"

	"go.proclama.app/proclama/internal/types"
)

// View is one rendering surface: it consumes snapshots (directly from
// the store for the preview, via the broadcast mirror for the
// projector), stages content switches through its own animator, and
// emits a frame whenever the paintable state changes. Preview and
// projector are separate View instances with identical rules.
type View struct {
	mu      sync.Mutex
	anim    *Animator
	snap    types.ProjectionSnapshot
	synced  bool
	onFrame func(Frame)
}

// NewView creates a view emitting frames through onFrame. transition <= 0
// selects the default transition duration.
func NewView(transition time.Duration, onFrame func(Frame)) *View {
	v := &View{onFrame: onFrame}
	v.anim = NewAnimator(transition, func(types.ContentUnit) {
		v.emit()
	})
	return v
}

// Apply atomically replaces the view's rendering input with a snapshot.
// Settings and blackout take effect immediately; a content change opens
// the transition window first.
func (v *View) Apply(snap types.ProjectionSnapshot) {
	v.mu.Lock()
	v.snap = snap
	v.synced = true
	v.mu.Unlock()

	v.anim.Offer(snap.Content)
	v.emit()
}

// Frame returns the frame for the current state. The zero value before
// the first Apply lays out as Idle; callers that need the
// "waiting for connection" surface distinguish it via Synced.
func (v *View) Frame() Frame {
	v.mu.Lock()
	snap := v.snap
	v.mu.Unlock()

	snap.Content = v.anim.Displayed()
	return Layout(snap, Options{Hidden: v.anim.Animating()})
}

// Synced reports whether the view has received any snapshot yet.
func (v *View) Synced() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.synced
}

// Close cancels the view's transition timer.
func (v *View) Close() {
	v.anim.Close()
}

func (v *View) emit() {
	v.mu.Lock()
	onFrame := v.onFrame
	v.mu.Unlock()
	if onFrame != nil {
		onFrame(v.Frame())
	}
}
