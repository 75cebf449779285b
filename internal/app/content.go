package app

import (
	"context"
	"fmt"

	"go.proclama.app/proclama/clipboard"
	"go.proclama.app/proclama/content/bible"
	"go.proclama.app/proclama/content/hymnal"
	"go.proclama.app/proclama/content/lyrics"
)

// BookInfo is the list entry the control window renders per book.
type BookInfo struct {
	Index        int    `json:"index"` // 1-based
	Abbrev       string `json:"abbrev"`
	Name         string `json:"name"`
	ChapterCount int    `json:"chapterCount"`
}

// ListBibleVersions returns the supported translations.
func (s *Service) ListBibleVersions() []bible.Version {
	return bible.Versions()
}

// ListBooks loads a translation (download on first use) and returns its
// books, optionally filtered by a search query.
func (s *Service) ListBooks(version, query string) ([]BookInfo, error) {
	books, err := s.bible.Load(context.Background(), version)
	if err != nil {
		return nil, err
	}

	// Indices must refer to the full canon, not the filtered list.
	indexOf := make(map[string]int, len(books))
	for i, b := range books {
		indexOf[b.Abbrev] = i + 1
	}

	filtered := bible.SearchBooks(books, query)
	out := make([]BookInfo, len(filtered))
	for i, b := range filtered {
		out[i] = BookInfo{
			Index:        indexOf[b.Abbrev],
			Abbrev:       b.Abbrev,
			Name:         b.Name,
			ChapterCount: len(b.Chapters),
		}
	}
	return out, nil
}

// GetChapter returns the verses of one chapter. Indices are 1-based.
func (s *Service) GetChapter(version string, bookIndex, chapter int) ([]string, error) {
	books, err := s.bible.Load(context.Background(), version)
	if err != nil {
		return nil, err
	}
	if bookIndex < 1 || bookIndex > len(books) {
		return nil, fmt.Errorf("book index out of range: %d", bookIndex)
	}
	book := books[bookIndex-1]
	if chapter < 1 || chapter > len(book.Chapters) {
		return nil, fmt.Errorf("%s has no chapter %d", book.Name, chapter)
	}
	return book.Chapters[chapter-1], nil
}

// LoadHymns loads the hymn collection, downloading when not cached.
// force redownloads even when a cached copy exists.
func (s *Service) LoadHymns(force bool) (int, error) {
	hymns, err := s.hymns.Load(context.Background(), force)
	if err != nil {
		return 0, err
	}
	return len(hymns), nil
}

// SearchHymns returns hymns matching the query by number, title, or
// lyric fragment.
func (s *Service) SearchHymns(query string) ([]hymnal.Hymn, error) {
	hymns, err := s.hymns.Load(context.Background(), false)
	if err != nil {
		return nil, err
	}
	return hymnal.Search(hymns, query), nil
}

// GetHymnStanzas returns the projectable stanzas of one hymn.
func (s *Service) GetHymnStanzas(number int) ([]string, error) {
	h, err := s.hymnByNumber(number)
	if err != nil {
		return nil, err
	}
	return hymnal.Stanzas(h.Lyrics), nil
}

func (s *Service) hymnByNumber(number int) (hymnal.Hymn, error) {
	hymns, err := s.hymns.Load(context.Background(), false)
	if err != nil {
		return hymnal.Hymn{}, err
	}
	for _, h := range hymns {
		if h.Number == number {
			return h, nil
		}
	}
	return hymnal.Hymn{}, fmt.Errorf("hymn not found: %d", number)
}

// LoadDeck parses pasted lyrics into a slide deck and keeps it for the
// session. Decks are not persisted; they exist for ad-hoc material.
func (s *Service) LoadDeck(title, text string) (*lyrics.Deck, error) {
	deck := lyrics.Parse(title, text)
	if deck == nil {
		return nil, fmt.Errorf("no slides in pasted text")
	}

	s.deckMu.Lock()
	s.decks[deck.ID] = deck
	s.deckMu.Unlock()
	return deck, nil
}

// LoadDeckFromClipboard builds a deck from whatever text is currently on
// the system clipboard.
func (s *Service) LoadDeckFromClipboard(title string) (*lyrics.Deck, error) {
	text, err := clipboard.GetText()
	if err != nil {
		return nil, fmt.Errorf("read clipboard: %w", err)
	}
	return s.LoadDeck(title, text)
}
