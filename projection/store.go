// Package projection holds the authoritative projection state for the
// control context.
//
// The Store is the single point of mutation: content modules push fresh
// content units into it, the settings surface merges partial updates,
// and every mutation publishes a complete snapshot on the broadcast
// channel. Projector windows only ever mirror this state; they never
// write back, so no conflict resolution is needed anywhere.
package projection

import (
	"log/slog"
	"sync"

	"go.proclama.app/proclama/broadcast"
	"go.proclama.app/proclama/internal/types"
)

// Store owns the current projection snapshot. All operations are
// synchronous and serialize on one mutex; every mutation produces a
// consistent snapshot before the next mutation can observe anything.
type Store struct {
	mu       sync.Mutex
	bus      broadcast.Bus
	content  types.ContentUnit
	settings types.DisplaySettings
	blackout bool
	seq      uint64
}

// NewStore creates a store publishing on bus. A nil bus degrades
// gracefully: the control context keeps working standalone and only the
// projector mirroring is lost. Zero-valued settings fall back to
// defaults.
func NewStore(bus broadcast.Bus, settings types.DisplaySettings) *Store {
	if settings.FontSizePx == 0 {
		settings = types.DefaultSettings()
	}
	settings.FontSizePx = types.ClampFontSize(settings.FontSizePx)
	return &Store{
		bus:      bus,
		content:  types.IdleContent(),
		settings: settings,
	}
}

// SetProjection replaces the current content unit. Selecting real
// content while blacked out wakes the display; selecting Idle does not.
func (s *Store) SetProjection(unit types.ContentUnit) {
	unit.Kind = unit.Kind.Normalize()
	if unit.Kind == types.KindIdle {
		unit = types.IdleContent()
	}

	s.mu.Lock()
	s.content = unit
	if s.blackout && !unit.IsIdle() {
		s.blackout = false
	}
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.publish(snap)
}

// ClearProjection resets the content to Idle and lifts blackout.
// Calling it twice is indistinguishable from calling it once.
func (s *Store) ClearProjection() {
	s.mu.Lock()
	s.content = types.IdleContent()
	s.blackout = false
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.publish(snap)
}

// UpdateSettings shallow-merges a partial update into the current
// settings and republishes with unchanged content and blackout.
func (s *Store) UpdateSettings(patch types.SettingsPatch) {
	s.mu.Lock()
	s.settings = patch.Apply(s.settings)
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.publish(snap)
}

// ToggleBlackout flips the blackout flag, or sets it to *explicit when
// provided. Content and settings are untouched.
func (s *Store) ToggleBlackout(explicit *bool) {
	s.mu.Lock()
	if explicit != nil {
		s.blackout = *explicit
	} else {
		s.blackout = !s.blackout
	}
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.publish(snap)
}

// Snapshot returns the current state. Used by the responder to answer
// REQUEST_SYNC and by the preview surface colocated with the store.
func (s *Store) Snapshot() types.ProjectionSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return types.ProjectionSnapshot{
		Content:  s.content,
		Settings: s.settings,
		Blackout: s.blackout,
		Seq:      s.seq,
	}
}

// snapshotLocked bumps the sequence and builds the snapshot for the
// mutation in progress. Caller holds s.mu.
func (s *Store) snapshotLocked() types.ProjectionSnapshot {
	s.seq++
	return types.ProjectionSnapshot{
		Content:  s.content,
		Settings: s.settings,
		Blackout: s.blackout,
		Seq:      s.seq,
	}
}

func (s *Store) publish(snap types.ProjectionSnapshot) {
	if s.bus == nil {
		return
	}
	s.bus.Publish(broadcast.Message{Type: broadcast.TypeSyncState, Payload: &snap})
	slog.Debug("published snapshot", "seq", snap.Seq, "kind", snap.Content.Kind, "blackout", snap.Blackout)
}
