// Package broadcast implements the publish/subscribe channel that keeps
// every projection surface in sync with the control context.
//
// The channel carries two message kinds: REQUEST_SYNC, sent by a newly
// attached projector, and SYNC_STATE, sent by the control side both in
// reply and proactively after every store mutation. Messages are full
// snapshots, so applying one is idempotent and there is no retry or
// acknowledgment machinery.
package broadcast

import (
	"sync"

	"go.proclama.app/proclama/internal/types"
)

// ChannelName identifies this application's sync channel. Windows attach
// to events derived from this name.
const ChannelName = "proclama.projection"

// MessageType tags a channel message.
type MessageType string

const (
	TypeRequestSync MessageType = "REQUEST_SYNC"
	TypeSyncState   MessageType = "SYNC_STATE"
)

// Message is the tagged union travelling on the channel. Payload is only
// set for SYNC_STATE. Receivers must ignore unknown types so future
// message kinds do not break older windows.
type Message struct {
	Type    MessageType               `json:"type"`
	Payload *types.ProjectionSnapshot `json:"payload,omitempty"`
}

// Bus is a fire-and-forget publish/subscribe channel. Publish delivers
// to every subscriber, including the publisher's own subscription.
type Bus interface {
	Publish(Message)
	// Subscribe registers fn and returns a cancel function that
	// removes the subscription. Cancel is safe to call twice.
	Subscribe(fn func(Message)) (cancel func())
}

// MemoryBus is the in-process Bus used by the control context and by
// tests. Delivery is synchronous and in subscription order; per-sender
// FIFO is all the protocol relies on.
type MemoryBus struct {
	mu   sync.Mutex
	subs map[int]func(Message)
	next int
}

// NewMemoryBus creates an empty in-process bus.
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{subs: make(map[int]func(Message))}
}

// Publish delivers msg to every current subscriber.
func (b *MemoryBus) Publish(msg Message) {
	b.mu.Lock()
	fns := make([]func(Message), 0, len(b.subs))
	ids := make([]int, 0, len(b.subs))
	for id := range b.subs {
		ids = append(ids, id)
	}
	// Map order is random; deliver in subscription order.
	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			if ids[j] < ids[i] {
				ids[i], ids[j] = ids[j], ids[i]
			}
		}
	}
	for _, id := range ids {
		fns = append(fns, b.subs[id])
	}
	b.mu.Unlock()

	// Invoke outside the lock so a subscriber may publish or cancel.
	for _, fn := range fns {
		fn(msg)
	}
}

// Subscribe registers fn for every subsequent publish.
func (b *MemoryBus) Subscribe(fn func(Message)) func() {
	b.mu.Lock()
	id := b.next
	b.next++
	b.subs[id] = fn
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		delete(b.subs, id)
		b.mu.Unlock()
	}
}
