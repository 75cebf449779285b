package render

import (
	"sync"
	"testing"
	"time"

	"go.proclama.app/proclama/internal/types"
)

func unit(body string) types.ContentUnit {
	return types.ContentUnit{Kind: types.KindText, Body: body}
}

// commitLog collects committed units; the commit fires on a timer
// goroutine, so access is guarded.
type commitLog struct {
	mu    sync.Mutex
	units []types.ContentUnit
	ch    chan struct{}
}

func newCommitLog() *commitLog {
	return &commitLog{ch: make(chan struct{}, 16)}
}

func (l *commitLog) record(u types.ContentUnit) {
	l.mu.Lock()
	l.units = append(l.units, u)
	l.mu.Unlock()
	l.ch <- struct{}{}
}

func (l *commitLog) wait(t *testing.T) {
	t.Helper()
	select {
	case <-l.ch:
	case <-time.After(2 * time.Second):
		t.Fatal("no commit within deadline")
	}
}

func (l *commitLog) snapshot() []types.ContentUnit {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]types.ContentUnit(nil), l.units...)
}

func TestAnimator_CommitsAfterWindow(t *testing.T) {
	log := newCommitLog()
	a := NewAnimator(5*time.Millisecond, log.record)
	defer a.Close()

	a.Offer(unit("a"))

	if !a.Animating() {
		t.Error("not animating after a differing offer")
	}
	if a.Displayed() != types.IdleContent() {
		t.Error("displayed changed before the window expired")
	}

	log.wait(t)

	if a.Animating() {
		t.Error("still animating after commit")
	}
	if got := a.Displayed(); got.Body != "a" {
		t.Errorf("Displayed() = %+v", got)
	}
}

func TestAnimator_CoalescesRapidOffers(t *testing.T) {
	log := newCommitLog()
	a := NewAnimator(40*time.Millisecond, log.record)
	defer a.Close()

	// Three offers inside one window: only the last may ever paint.
	a.Offer(unit("a"))
	a.Offer(unit("b"))
	a.Offer(unit("c"))

	log.wait(t)

	got := log.snapshot()
	if len(got) != 1 {
		t.Fatalf("committed %d units, want 1 (%v)", len(got), got)
	}
	if got[0].Body != "c" {
		t.Errorf("committed %q, want the final offer %q", got[0].Body, "c")
	}
	if a.Displayed().Body != "c" {
		t.Errorf("Displayed() = %+v", a.Displayed())
	}
}

func TestAnimator_EqualOfferCancels(t *testing.T) {
	log := newCommitLog()
	a := NewAnimator(30*time.Millisecond, log.record)
	defer a.Close()

	a.Offer(unit("a"))
	log.wait(t)

	// Offering what is already displayed must be a no-op, including
	// mid-window: start a transition away and then return.
	a.Offer(unit("b"))
	a.Offer(unit("a"))

	if a.Animating() {
		t.Error("animating after returning to displayed content")
	}

	time.Sleep(60 * time.Millisecond)
	if got := log.snapshot(); len(got) != 1 {
		t.Errorf("cancelled transition still committed: %v", got)
	}
	if a.Displayed().Body != "a" {
		t.Errorf("Displayed() = %+v", a.Displayed())
	}
}

func TestAnimator_CloseStopsPendingCommit(t *testing.T) {
	log := newCommitLog()
	a := NewAnimator(20*time.Millisecond, log.record)

	a.Offer(unit("a"))
	a.Close()

	time.Sleep(50 * time.Millisecond)
	if got := log.snapshot(); len(got) != 0 {
		t.Errorf("commit fired after Close: %v", got)
	}
}
