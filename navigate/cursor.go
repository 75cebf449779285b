// Package navigate provides sequence navigation and auto-advance for
// the operator's transport controls.
package navigate

import "go.proclama.app/proclama/internal/types"

// Cursor addresses one position inside an ordered sequence of content
// units (the verses of a chapter, the stanzas of a hymn, the slides of a
// pasted deck). Whether a neighbor exists is a bounds check, not the
// presence of an injected callback; content modules build a fresh cursor
// on every selection and hand it to the controller wholesale.
type Cursor struct {
	units []types.ContentUnit
	pos   int
}

// NewCursor creates a cursor over units positioned at pos. Positions
// outside the sequence are clamped; an empty sequence yields a nil
// cursor, which every caller treats as "no navigation available".
func NewCursor(units []types.ContentUnit, pos int) *Cursor {
	if len(units) == 0 {
		return nil
	}
	if pos < 0 {
		pos = 0
	}
	if pos >= len(units) {
		pos = len(units) - 1
	}
	return &Cursor{units: units, pos: pos}
}

// Current returns the unit at the cursor position.
func (c *Cursor) Current() types.ContentUnit {
	return c.units[c.pos]
}

// HasNext reports whether a successor exists.
func (c *Cursor) HasNext() bool {
	return c != nil && c.pos < len(c.units)-1
}

// HasPrev reports whether a predecessor exists.
func (c *Cursor) HasPrev() bool {
	return c != nil && c.pos > 0
}

// Next advances and returns the new current unit. Returns false without
// moving when no successor exists.
func (c *Cursor) Next() (types.ContentUnit, bool) {
	if !c.HasNext() {
		return types.ContentUnit{}, false
	}
	c.pos++
	return c.units[c.pos], true
}

// Prev moves back and returns the new current unit. Returns false
// without moving when no predecessor exists.
func (c *Cursor) Prev() (types.ContentUnit, bool) {
	if !c.HasPrev() {
		return types.ContentUnit{}, false
	}
	c.pos--
	return c.units[c.pos], true
}

// Pos returns the zero-based position.
func (c *Cursor) Pos() int {
	if c == nil {
		return 0
	}
	return c.pos
}

// Len returns the sequence length.
func (c *Cursor) Len() int {
	if c == nil {
		return 0
	}
	return len(c.units)
}
