// Package render turns projection snapshots into paintable frames.
//
// Layout is a pure function of the snapshot, so the operator's live
// preview and the audience-facing projector produce bit-identical
// frames from identical input. The webview surfaces only paint what
// they are handed; none of the rendering rules live in frontend code.
package render

import "go.proclama.app/proclama/internal/types"

// Virtual canvas, in logical pixels. Every surface scales this canvas
// uniformly to fit its real container, preserving 16:9.
const (
	CanvasWidth  = 1920
	CanvasHeight = 1080
)

// Colors shared by both surfaces. The caption accent is deliberately
// distinct from the body color.
const (
	ColorBody      = "#ffffff"
	ColorCaption   = "#facc15"
	ColorCanvas    = "#000000"
	OverlayOpacity = 0.4 // dark overlay over a background image
)

// BodyMaxWidthFrac caps the wrapped body text at 90% of the canvas.
const BodyMaxWidthFrac = 0.9

// TextBlock is one piece of positioned text on the canvas.
type TextBlock struct {
	Text         string  `json:"text"`
	FontSizePx   float64 `json:"fontSizePx"`
	Color        string  `json:"color"`
	MaxWidthFrac float64 `json:"maxWidthFrac"`
}

// Background is the layer behind the content. It stays visible during
// blackout; only the content layer is suppressed.
type Background struct {
	ImageURL string `json:"imageUrl,omitempty"` // empty means solid black
	Overlay  bool   `json:"overlay"`            // darkening overlay, present iff an image is set
}

// Content is the suppressible foreground layer.
type Content struct {
	Kind    types.Kind `json:"kind"`
	Opacity float64    `json:"opacity"` // 0 while blacked out or mid-transition
	Scale   float64    `json:"scale"`   // slight shrink accompanies the fade
	Body    *TextBlock `json:"body,omitempty"`
	Caption *TextBlock `json:"caption,omitempty"`
}

// Frame is everything a surface needs to paint one moment of output.
type Frame struct {
	Background Background `json:"background"`
	Content    Content    `json:"content"`
}

// Options modulate how a snapshot is laid out. The animator drives
// Hidden during the transition window.
type Options struct {
	// Hidden suppresses the content layer (fade+shrink) the same way
	// blackout does, but time-bounded.
	Hidden bool
}

// Layout produces the frame for a snapshot. Unknown content kinds lay
// out as Idle; a missing caption simply omits the caption block.
func Layout(snap types.ProjectionSnapshot, opts Options) Frame {
	frame := Frame{
		Background: Background{
			ImageURL: snap.Settings.BackgroundImageURL,
			Overlay:  snap.Settings.BackgroundImageURL != "",
		},
	}

	hidden := opts.Hidden || snap.Blackout
	content := Content{
		Kind:    snap.Content.Kind.Normalize(),
		Opacity: 1,
		Scale:   1,
	}
	if hidden {
		content.Opacity = 0
		content.Scale = 0.95
	}

	switch content.Kind {
	case types.KindText, types.KindLyric:
		size := float64(types.ClampFontSize(snap.Settings.FontSizePx))
		content.Body = &TextBlock{
			Text:         snap.Content.Body,
			FontSizePx:   size,
			Color:        ColorBody,
			MaxWidthFrac: BodyMaxWidthFrac,
		}
		if snap.Content.Caption != "" {
			content.Caption = &TextBlock{
				Text:       snap.Content.Caption,
				FontSizePx: size * types.CaptionScale,
				Color:      ColorCaption,
			}
		}
	default:
		// Idle (and the reserved Image kind) paint the logo
		// placeholder; no dynamic text blocks.
	}

	frame.Content = content
	return frame
}

// FitScale returns the uniform scale that fits the virtual canvas inside
// a container while preserving aspect ratio ("contain"). Used by the
// projector window.
func FitScale(containerW, containerH float64) float64 {
	if containerW <= 0 || containerH <= 0 {
		return 0
	}
	sx := containerW / CanvasWidth
	sy := containerH / CanvasHeight
	if sx < sy {
		return sx
	}
	return sy
}

// FitWidth returns the scale filling a container's width. The preview
// pane fixes its own 16:9 height, so width alone decides.
func FitWidth(containerW float64) float64 {
	if containerW <= 0 {
		return 0
	}
	return containerW / CanvasWidth
}
