package broadcast

import (
	"sync"

	"go.proclama.app/proclama/internal/types"
)

// Mirror is the projector-side consumer of the channel. It never mutates
// shared state: it requests a sync on attach, applies every SYNC_STATE it
// receives, and exposes whether it has heard from the control context at
// all. Until the first snapshot arrives the projector shows a
// "waiting" surface, which is distinct from the Idle content state.
type Mirror struct {
	mu      sync.Mutex
	bus     Bus
	applied bool
	last    types.ProjectionSnapshot
	onApply func(types.ProjectionSnapshot)
	cancel  func()
}

// NewMirror attaches a mirror to bus and immediately requests a full
// sync. onApply fires for every accepted snapshot.
func NewMirror(bus Bus, onApply func(types.ProjectionSnapshot)) *Mirror {
	m := &Mirror{bus: bus, onApply: onApply}
	m.cancel = bus.Subscribe(m.handle)
	m.Resync()
	return m
}

// Resync asks the control context for a fresh snapshot. Safe to call at
// any time, e.g. after the projector window reloads.
func (m *Mirror) Resync() {
	m.bus.Publish(Message{Type: TypeRequestSync})
}

func (m *Mirror) handle(msg Message) {
	// Unknown and REQUEST_SYNC messages are not ours to act on.
	if msg.Type != TypeSyncState || msg.Payload == nil {
		return
	}

	snap := *msg.Payload

	m.mu.Lock()
	if m.applied && snap.Seq < m.last.Seq {
		// A later mutation's snapshot already landed; applying this
		// one would visibly regress the projector.
		m.mu.Unlock()
		return
	}
	m.applied = true
	m.last = snap
	onApply := m.onApply
	m.mu.Unlock()

	if onApply != nil {
		onApply(snap)
	}
}

// Connected reports whether at least one snapshot has been applied.
func (m *Mirror) Connected() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.applied
}

// Last returns the most recently applied snapshot, if any.
func (m *Mirror) Last() (types.ProjectionSnapshot, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.last, m.applied
}

// Close detaches the mirror from the bus. The projector then freezes on
// its last-known state; there is no heartbeat at this layer.
func (m *Mirror) Close() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
}
