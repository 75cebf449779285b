package broadcast

import "go.proclama.app/proclama/internal/types"

// SnapshotFunc returns the control context's current snapshot.
type SnapshotFunc func() types.ProjectionSnapshot

// Responder answers every REQUEST_SYNC on the bus with a fresh
// SYNC_STATE. The control context owns exactly one Responder; it is the
// only producer of SYNC_STATE on the channel.
type Responder struct {
	bus      Bus
	snapshot SnapshotFunc
	cancel   func()
}

// NewResponder subscribes a responder to bus. The snapshot function is
// consulted at reply time, so a late-joining projector always receives
// the state current at the moment of the request, never an earlier one.
func NewResponder(bus Bus, snapshot SnapshotFunc) *Responder {
	r := &Responder{bus: bus, snapshot: snapshot}
	r.cancel = bus.Subscribe(r.handle)
	return r
}

func (r *Responder) handle(msg Message) {
	if msg.Type != TypeRequestSync {
		return
	}
	snap := r.snapshot()
	r.bus.Publish(Message{Type: TypeSyncState, Payload: &snap})
}

// Close removes the responder from the bus.
func (r *Responder) Close() {
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
}
