package broadcast

import (
	"testing"

	"go.proclama.app/proclama/internal/types"
)

func TestMemoryBus_FanOut(t *testing.T) {
	bus := NewMemoryBus()

	var a, b int
	bus.Subscribe(func(Message) { a++ })
	bus.Subscribe(func(Message) { b++ })

	bus.Publish(Message{Type: TypeRequestSync})
	bus.Publish(Message{Type: TypeRequestSync})

	if a != 2 || b != 2 {
		t.Errorf("deliveries = (%d, %d), want (2, 2)", a, b)
	}
}

func TestMemoryBus_Cancel(t *testing.T) {
	bus := NewMemoryBus()

	var n int
	cancel := bus.Subscribe(func(Message) { n++ })
	bus.Publish(Message{Type: TypeRequestSync})
	cancel()
	bus.Publish(Message{Type: TypeRequestSync})

	if n != 1 {
		t.Errorf("deliveries after cancel = %d, want 1", n)
	}

	// Double cancel must be harmless.
	cancel()
}

func TestMemoryBus_PublishFromHandler(t *testing.T) {
	bus := NewMemoryBus()

	var seen []MessageType
	bus.Subscribe(func(msg Message) {
		seen = append(seen, msg.Type)
		if msg.Type == TypeRequestSync {
			// A responder replies while the publish that triggered it is
			// still unwinding. This must not deadlock.
			bus.Publish(Message{Type: TypeSyncState, Payload: &types.ProjectionSnapshot{}})
		}
	})

	bus.Publish(Message{Type: TypeRequestSync})

	if len(seen) != 2 || seen[0] != TypeRequestSync || seen[1] != TypeSyncState {
		t.Errorf("seen = %v", seen)
	}
}

func TestResponder_AnswersRequestSync(t *testing.T) {
	bus := NewMemoryBus()

	want := types.ProjectionSnapshot{
		Content:  types.ContentUnit{Kind: types.KindText, Body: "luz", Caption: "Gênesis 1:3"},
		Settings: types.DefaultSettings(),
		Seq:      7,
	}
	r := NewResponder(bus, func() types.ProjectionSnapshot { return want })
	defer r.Close()

	var got *types.ProjectionSnapshot
	bus.Subscribe(func(msg Message) {
		if msg.Type == TypeSyncState {
			got = msg.Payload
		}
	})

	bus.Publish(Message{Type: TypeRequestSync})

	if got == nil {
		t.Fatal("no SYNC_STATE reply")
	}
	if *got != want {
		t.Errorf("reply = %+v, want %+v", *got, want)
	}
}

func TestResponder_IgnoresSyncState(t *testing.T) {
	bus := NewMemoryBus()

	calls := 0
	r := NewResponder(bus, func() types.ProjectionSnapshot {
		calls++
		return types.ProjectionSnapshot{}
	})
	defer r.Close()

	// A responder replying to its own replies would loop forever.
	bus.Publish(Message{Type: TypeSyncState, Payload: &types.ProjectionSnapshot{}})

	if calls != 0 {
		t.Errorf("snapshot func called %d times on SYNC_STATE, want 0", calls)
	}
}

func TestMirror_RequestsSyncOnAttach(t *testing.T) {
	bus := NewMemoryBus()

	requested := false
	bus.Subscribe(func(msg Message) {
		if msg.Type == TypeRequestSync {
			requested = true
		}
	})

	m := NewMirror(bus, nil)
	defer m.Close()

	if !requested {
		t.Error("mirror did not request a sync on attach")
	}
	if m.Connected() {
		t.Error("mirror reports connected before any snapshot arrived")
	}
}

func TestMirror_AppliesSnapshots(t *testing.T) {
	bus := NewMemoryBus()

	var applied []types.ProjectionSnapshot
	m := NewMirror(bus, func(s types.ProjectionSnapshot) { applied = append(applied, s) })
	defer m.Close()

	snap := types.ProjectionSnapshot{Blackout: true, Seq: 1}
	bus.Publish(Message{Type: TypeSyncState, Payload: &snap})

	if len(applied) != 1 || !applied[0].Blackout {
		t.Fatalf("applied = %+v", applied)
	}
	if !m.Connected() {
		t.Error("mirror not connected after snapshot")
	}
	if last, ok := m.Last(); !ok || last.Seq != 1 {
		t.Errorf("Last() = %+v, %v", last, ok)
	}
}

func TestMirror_DropsStaleSnapshots(t *testing.T) {
	bus := NewMemoryBus()

	var applied []uint64
	m := NewMirror(bus, func(s types.ProjectionSnapshot) { applied = append(applied, s.Seq) })
	defer m.Close()

	publish := func(seq uint64) {
		bus.Publish(Message{Type: TypeSyncState, Payload: &types.ProjectionSnapshot{Seq: seq}})
	}
	publish(5)
	publish(3) // late delivery of an older mutation
	publish(6)

	want := []uint64{5, 6}
	if len(applied) != len(want) {
		t.Fatalf("applied = %v, want %v", applied, want)
	}
	for i := range want {
		if applied[i] != want[i] {
			t.Errorf("applied[%d] = %d, want %d", i, applied[i], want[i])
		}
	}
}

func TestMirror_IgnoresForeignMessages(t *testing.T) {
	bus := NewMemoryBus()

	calls := 0
	m := NewMirror(bus, func(types.ProjectionSnapshot) { calls++ })
	defer m.Close()

	bus.Publish(Message{Type: TypeRequestSync})
	bus.Publish(Message{Type: "FUTURE_THING"})
	bus.Publish(Message{Type: TypeSyncState}) // nil payload

	if calls != 0 {
		t.Errorf("onApply called %d times, want 0", calls)
	}
	if m.Connected() {
		t.Error("foreign messages must not mark the mirror connected")
	}
}
