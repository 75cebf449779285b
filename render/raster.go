package render

import (
	"fmt"
	"image"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// Rasterize draws a frame onto an RGBA image at full canvas resolution.
// It backs the operator's "export output" action and lets tests assert
// on real pixel output instead of eyeballing two webviews.
//
// Background images are referenced by URL inside frames and painted by
// the webview; the rasterizer renders the solid canvas, the overlay, and
// the text layers only.
func Rasterize(frame Frame) (image.Image, error) {
	dc := gg.NewContext(CanvasWidth, CanvasHeight)

	dc.SetHexColor(ColorCanvas)
	dc.Clear()

	if frame.Background.Overlay {
		dc.SetRGBA(0, 0, 0, OverlayOpacity)
		dc.DrawRectangle(0, 0, CanvasWidth, CanvasHeight)
		dc.Fill()
	}

	if frame.Content.Opacity <= 0 {
		return dc.Image(), nil
	}

	switch {
	case frame.Content.Body != nil:
		if err := drawBody(dc, frame.Content); err != nil {
			return nil, err
		}
	default:
		if err := drawIdle(dc); err != nil {
			return nil, err
		}
	}

	return dc.Image(), nil
}

// drawBody paints the centered body text and, when present, the caption
// near the bottom edge.
func drawBody(dc *gg.Context, content Content) error {
	body := content.Body

	face, err := fontFace(gobold.TTF, body.FontSizePx)
	if err != nil {
		return fmt.Errorf("body font: %w", err)
	}
	dc.SetFontFace(face)
	dc.SetHexColor(body.Color)

	maxWidth := float64(CanvasWidth) * body.MaxWidthFrac
	dc.DrawStringWrapped(body.Text, CanvasWidth/2, CanvasHeight/2-60, 0.5, 0.5, maxWidth, 1.2, gg.AlignCenter)

	if content.Caption != nil {
		face, err := fontFace(goregular.TTF, content.Caption.FontSizePx)
		if err != nil {
			return fmt.Errorf("caption font: %w", err)
		}
		dc.SetFontFace(face)
		dc.SetHexColor(content.Caption.Color)
		dc.DrawStringAnchored(content.Caption.Text, CanvasWidth/2, CanvasHeight-100, 0.5, 1)
	}
	return nil
}

// drawIdle paints the logo placeholder: a ring and the welcome label.
func drawIdle(dc *gg.Context) error {
	dc.SetRGBA(1, 1, 1, 0.2)
	dc.SetLineWidth(16)
	dc.DrawCircle(CanvasWidth/2, CanvasHeight/2-120, 190)
	dc.Stroke()

	face, err := fontFace(gobold.TTF, 96)
	if err != nil {
		return fmt.Errorf("idle font: %w", err)
	}
	dc.SetFontFace(face)
	dc.SetRGBA(1, 1, 1, 0.8)
	dc.DrawStringAnchored("BEM-VINDO", CanvasWidth/2, CanvasHeight/2+220, 0.5, 0.5)
	return nil
}

var (
	fontMu    sync.Mutex
	fontCache = map[string]*truetype.Font{}
)

// fontFace parses (and caches) a bundled Go font and returns a face at
// the requested pixel size.
func fontFace(ttf []byte, sizePx float64) (font.Face, error) {
	key := fmt.Sprintf("%p", &ttf[0])

	fontMu.Lock()
	f, ok := fontCache[key]
	fontMu.Unlock()

	if !ok {
		parsed, err := truetype.Parse(ttf)
		if err != nil {
			return nil, fmt.Errorf("parse font: %w", err)
		}
		fontMu.Lock()
		fontCache[key] = parsed
		fontMu.Unlock()
		f = parsed
	}

	return truetype.NewFace(f, &truetype.Options{Size: sizePx}), nil
}
