package navigate

import (
	"testing"

	"go.proclama.app/proclama/internal/types"
)

func units(bodies ...string) []types.ContentUnit {
	out := make([]types.ContentUnit, len(bodies))
	for i, b := range bodies {
		out[i] = types.ContentUnit{Kind: types.KindText, Body: b}
	}
	return out
}

func TestNewCursor(t *testing.T) {
	tests := []struct {
		name    string
		units   []types.ContentUnit
		pos     int
		wantNil bool
		wantPos int
	}{
		{"empty sequence", nil, 0, true, 0},
		{"in bounds", units("a", "b", "c"), 1, false, 1},
		{"negative clamps to start", units("a", "b"), -3, false, 0},
		{"past end clamps to last", units("a", "b"), 9, false, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCursor(tt.units, tt.pos)
			if (c == nil) != tt.wantNil {
				t.Fatalf("NewCursor = %v, wantNil = %v", c, tt.wantNil)
			}
			if c != nil && c.Pos() != tt.wantPos {
				t.Errorf("Pos() = %d, want %d", c.Pos(), tt.wantPos)
			}
		})
	}
}

func TestCursor_Walk(t *testing.T) {
	c := NewCursor(units("a", "b", "c"), 0)

	if c.HasPrev() {
		t.Error("HasPrev at start")
	}
	if !c.HasNext() {
		t.Error("!HasNext at start")
	}

	u, ok := c.Next()
	if !ok || u.Body != "b" {
		t.Fatalf("Next() = %+v, %v", u, ok)
	}
	u, ok = c.Next()
	if !ok || u.Body != "c" {
		t.Fatalf("Next() = %+v, %v", u, ok)
	}

	// Exhausted: further Next must not move.
	if _, ok = c.Next(); ok {
		t.Error("Next succeeded past the end")
	}
	if c.Current().Body != "c" {
		t.Errorf("position moved on refused Next: %q", c.Current().Body)
	}

	u, ok = c.Prev()
	if !ok || u.Body != "b" {
		t.Fatalf("Prev() = %+v, %v", u, ok)
	}
	c.Prev()
	if _, ok = c.Prev(); ok {
		t.Error("Prev succeeded past the start")
	}
}

func TestCursor_NilSafe(t *testing.T) {
	var c *Cursor

	if c.HasNext() || c.HasPrev() {
		t.Error("nil cursor claims neighbors")
	}
	if _, ok := c.Next(); ok {
		t.Error("nil cursor Next succeeded")
	}
	if _, ok := c.Prev(); ok {
		t.Error("nil cursor Prev succeeded")
	}
	if c.Pos() != 0 || c.Len() != 0 {
		t.Error("nil cursor reports nonzero pos/len")
	}
}

func TestCursor_SingleUnit(t *testing.T) {
	c := NewCursor(units("only"), 0)

	if c.HasNext() || c.HasPrev() {
		t.Error("single-unit cursor claims neighbors")
	}
	if c.Current().Body != "only" {
		t.Errorf("Current() = %q", c.Current().Body)
	}
}
