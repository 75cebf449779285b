// Package lyrics turns pasted ad-hoc text into a projectable slide deck.
package lyrics

import (
	"strings"

	"github.com/google/uuid"
	"go.proclama.app/proclama/content"
	"go.proclama.app/proclama/internal/types"
)

// Deck is one pasted set of lyrics, split into slides on blank lines.
type Deck struct {
	ID     string   `json:"id"`
	Title  string   `json:"title,omitempty"`
	Slides []string `json:"slides"`
}

// Parse splits pasted text into a deck. Title is optional; when set it
// becomes the caption on every slide. Returns nil for effectively empty
// input.
func Parse(title, text string) *Deck {
	slides := content.SplitStanzas(text)
	if len(slides) == 0 {
		return nil
	}

	return &Deck{
		ID:     uuid.NewString(),
		Title:  strings.TrimSpace(title),
		Slides: slides,
	}
}

// Units builds the projectable sequence: each slide as a Lyric unit.
func (d *Deck) Units() []types.ContentUnit {
	units := make([]types.ContentUnit, len(d.Slides))
	for i, slide := range d.Slides {
		units[i] = types.ContentUnit{
			Kind:    types.KindLyric,
			Body:    slide,
			Caption: d.Title,
		}
	}
	return units
}
