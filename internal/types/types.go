// Package types provides shared type definitions for the application.
package types

// Kind identifies what a content unit holds.
type Kind string

const (
	KindIdle  Kind = "IDLE"
	KindText  Kind = "TEXT"  // scripture
	KindLyric Kind = "LYRIC" // hymn / pasted stanza
	KindImage Kind = "IMAGE" // reserved
)

// Normalize maps unknown kinds to Idle so a malformed or future
// snapshot never breaks a receiver.
func (k Kind) Normalize() Kind {
	switch k {
	case KindText, KindLyric, KindImage:
		return k
	default:
		return KindIdle
	}
}

// ContentUnit is one addressable, displayable item: a verse, a stanza,
// or a pasted slide. Treated as immutable; a new selection constructs a
// fresh value rather than mutating the current one.
type ContentUnit struct {
	Kind    Kind   `json:"kind"`
	Body    string `json:"content"`
	Caption string `json:"reference,omitempty"`
}

// IdleContent returns the default no-content unit.
func IdleContent() ContentUnit {
	return ContentUnit{Kind: KindIdle}
}

// IsIdle reports whether the unit carries no projectable content.
func (c ContentUnit) IsIdle() bool {
	return c.Kind.Normalize() == KindIdle
}

// Font size bounds for the primary text, in virtual pixels.
const (
	MinFontSizePx     = 24
	MaxFontSizePx     = 96
	DefaultFontSizePx = 48

	// CaptionScale is the caption size relative to the body font size.
	CaptionScale = 0.45
)

// DisplaySettings govern how every subsequent projection renders. They
// persist across content changes and travel inside every snapshot.
type DisplaySettings struct {
	Theme              string `json:"theme"`
	FontSizePx         int    `json:"fontSize"`
	BackgroundImageURL string `json:"bgImage,omitempty"`
}

// DefaultSettings returns the settings a fresh session starts with.
func DefaultSettings() DisplaySettings {
	return DisplaySettings{
		Theme:      "dark",
		FontSizePx: DefaultFontSizePx,
	}
}

// ClampFontSize forces a font size into the valid range.
func ClampFontSize(px int) int {
	if px < MinFontSizePx {
		return MinFontSizePx
	}
	if px > MaxFontSizePx {
		return MaxFontSizePx
	}
	return px
}

// SettingsPatch is a partial settings update. Nil fields are left
// untouched so sequential partial updates never lose earlier fields.
type SettingsPatch struct {
	Theme              *string `json:"theme,omitempty"`
	FontSizePx         *int    `json:"fontSize,omitempty"`
	BackgroundImageURL *string `json:"bgImage,omitempty"`
}

// Apply merges the patch into s and returns the result.
func (p SettingsPatch) Apply(s DisplaySettings) DisplaySettings {
	if p.Theme != nil {
		s.Theme = *p.Theme
	}
	if p.FontSizePx != nil {
		s.FontSizePx = ClampFontSize(*p.FontSizePx)
	}
	if p.BackgroundImageURL != nil {
		s.BackgroundImageURL = *p.BackgroundImageURL
	}
	return s
}

// ProjectionSnapshot is the complete, self-sufficient state needed to
// render a projection at a point in time. Receivers apply it atomically;
// partial application is forbidden.
type ProjectionSnapshot struct {
	Content  ContentUnit     `json:"projection"`
	Settings DisplaySettings `json:"settings"`
	Blackout bool            `json:"isBlackout"`

	// Seq increases with every store mutation. A receiver drops
	// snapshots whose Seq is lower than the last one it applied, so a
	// reordered delivery can never regress the projector.
	Seq uint64 `json:"seq"`
}

// TransportState describes what the operator's transport controls may
// do right now. It never crosses the window boundary; only the control
// surface cares whether "next" exists.
type TransportState struct {
	HasNext       bool `json:"hasNext"`
	HasPrev       bool `json:"hasPrev"`
	IsAutoPlaying bool `json:"isAutoPlaying"`
}
