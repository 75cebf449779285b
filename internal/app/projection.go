package app

import (
	"context"
	"fmt"

	"github.com/fogleman/gg"

	"go.proclama.app/proclama/content/bible"
	"go.proclama.app/proclama/content/hymnal"
	"go.proclama.app/proclama/internal/types"
	"go.proclama.app/proclama/navigate"
	"go.proclama.app/proclama/render"
)

// ─────────────────────────────────────────────────────────────────────────────
// Projection selection
// ─────────────────────────────────────────────────────────────────────────────

// ProjectVerse projects one verse and installs a cursor over the whole
// chapter so the transport can walk verse by verse. Indices are
// 1-based, matching how scripture is addressed.
func (s *Service) ProjectVerse(version string, bookIndex, chapter, verse int) error {
	books, err := s.bible.Load(context.Background(), version)
	if err != nil {
		return err
	}
	if bookIndex < 1 || bookIndex > len(books) {
		return fmt.Errorf("book index out of range: %d", bookIndex)
	}

	units, err := bible.ChapterUnits(books[bookIndex-1], chapter)
	if err != nil {
		return err
	}
	if verse < 1 || verse > len(units) {
		return fmt.Errorf("verse out of range: %d", verse)
	}

	s.project(units, verse-1)
	return nil
}

// ProjectStanza projects one stanza of a hymn with a cursor over all of
// its stanzas. stanzaIndex is 0-based (it indexes a derived split, not
// an addressable scripture position).
func (s *Service) ProjectStanza(number, stanzaIndex int) error {
	h, err := s.hymnByNumber(number)
	if err != nil {
		return err
	}

	units := hymnal.StanzaUnits(h)
	if stanzaIndex < 0 || stanzaIndex >= len(units) {
		return fmt.Errorf("stanza out of range: %d", stanzaIndex)
	}

	s.project(units, stanzaIndex)
	return nil
}

// ProjectSlide projects one slide of a pasted deck.
func (s *Service) ProjectSlide(deckID string, index int) error {
	s.deckMu.Lock()
	deck, ok := s.decks[deckID]
	s.deckMu.Unlock()
	if !ok {
		return fmt.Errorf("unknown deck: %s", deckID)
	}

	units := deck.Units()
	if index < 0 || index >= len(units) {
		return fmt.Errorf("slide out of range: %d", index)
	}

	s.project(units, index)
	return nil
}

// project applies a selection: content first, then the replacement
// cursor, wholesale. The store publishes; the controller only informs
// the local control surface.
func (s *Service) project(units []types.ContentUnit, pos int) {
	cursor := navigate.NewCursor(units, pos)
	s.store.SetProjection(cursor.Current())
	s.controller.SetCursor(cursor)
}

// ClearProjection resets the output to Idle and drops navigation.
func (s *Service) ClearProjection() {
	s.store.ClearProjection()
	s.controller.Clear()
}

// ToggleBlackout flips blackout. Content and navigation are untouched.
func (s *Service) ToggleBlackout() {
	s.store.ToggleBlackout(nil)
}

// SetBlackout forces blackout on or off.
func (s *Service) SetBlackout(on bool) {
	s.store.ToggleBlackout(&on)
}

// UpdateSettings merges a partial display settings update and persists
// the result for the next session.
func (s *Service) UpdateSettings(patch types.SettingsPatch) {
	s.store.UpdateSettings(patch)
	if s.cfg != nil {
		s.cfg.Display = s.store.Snapshot().Settings
		// Best effort; the in-memory settings already took effect.
		_ = s.cfg.Save()
	}
}

// GetSnapshot returns the store's current state, e.g. for a control
// window rebuilding its form state after reload.
func (s *Service) GetSnapshot() types.ProjectionSnapshot {
	return s.store.Snapshot()
}

// ─────────────────────────────────────────────────────────────────────────────
// Transport
// ─────────────────────────────────────────────────────────────────────────────

// Next advances to the next unit in the active sequence.
func (s *Service) Next() bool {
	return s.controller.Next()
}

// Prev returns to the previous unit in the active sequence.
func (s *Service) Prev() bool {
	return s.controller.Prev()
}

// Play starts auto-advance; refused when the sequence has no successor.
func (s *Service) Play() bool {
	return s.controller.Play()
}

// Pause stops auto-advance.
func (s *Service) Pause() {
	s.controller.Pause()
}

// GetTransport returns the current transport capabilities.
func (s *Service) GetTransport() types.TransportState {
	return s.controller.State()
}

// ─────────────────────────────────────────────────────────────────────────────
// Export
// ─────────────────────────────────────────────────────────────────────────────

// ExportFrame rasterizes the preview's current frame to a PNG file, so
// the operator can verify or share exactly what the audience sees.
func (s *Service) ExportFrame(path string) error {
	img, err := render.Rasterize(s.preview.Frame())
	if err != nil {
		return fmt.Errorf("rasterize frame: %w", err)
	}
	if err := gg.SavePNG(path, img); err != nil {
		return fmt.Errorf("save frame: %w", err)
	}
	return nil
}
