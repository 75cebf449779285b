// Package bible loads and addresses scripture content.
//
// The data model matches the thiagobodruk/biblia JSON files: an array of
// books, each with an abbreviation, a name, and chapters as arrays of
// verse strings. Three Portuguese translations are offered; each is
// fetched once with mirror failover and kept in the offline cache.
package bible

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"go.proclama.app/proclama/cache"
	"go.proclama.app/proclama/content"
	"go.proclama.app/proclama/internal/types"
)

// Book is one bible book. Chapters[i][j] is verse j+1 of chapter i+1.
type Book struct {
	Abbrev   string     `json:"abbrev"`
	Name     string     `json:"name"`
	Chapters [][]string `json:"chapters"`
}

// Version identifies an available translation.
type Version struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Versions lists the supported translations.
func Versions() []Version {
	return []Version{
		{ID: "nvi", Label: "Nova Versão Internacional (NVI)"},
		{ID: "acf", Label: "Almeida Corrigida Fiel (ACF)"},
		{ID: "aa", Label: "Almeida e Atualizada (AA)"},
	}
}

// mirrors lists the source URLs per version, tried in order.
var mirrors = map[string][]string{
	"nvi": {
		"https://raw.githubusercontent.com/thiagobodruk/biblia/master/json/nvi.json",
		"https://cdn.jsdelivr.net/gh/thiagobodruk/biblia@master/json/nvi.json",
	},
	"acf": {
		"https://raw.githubusercontent.com/thiagobodruk/biblia/master/json/acf.json",
		"https://cdn.jsdelivr.net/gh/thiagobodruk/biblia@master/json/acf.json",
	},
	"aa": {
		"https://raw.githubusercontent.com/thiagobodruk/biblia/master/json/aa.json",
		"https://cdn.jsdelivr.net/gh/thiagobodruk/biblia@master/json/aa.json",
	},
}

// minBooks is a sanity floor: a complete bible has 66 books.
const minBooks = 66

// Library loads translations on demand and keeps them in memory plus
// the offline cache.
type Library struct {
	mu     sync.Mutex
	loaded map[string][]Book

	cache   *cache.Cache
	client  *http.Client
	mirrors map[string][]string
}

// NewLibrary creates a library. cache may be nil (no offline reuse);
// client may be nil (http.DefaultClient).
func NewLibrary(c *cache.Cache, client *http.Client) *Library {
	return &Library{
		loaded:  make(map[string][]Book),
		cache:   c,
		client:  client,
		mirrors: mirrors,
	}
}

// Load returns the books of a translation: from memory, else from the
// offline cache, else downloaded with mirror failover (and then cached).
func (l *Library) Load(ctx context.Context, version string) ([]Book, error) {
	urls, ok := l.mirrors[version]
	if !ok {
		return nil, fmt.Errorf("unknown bible version: %s", version)
	}

	l.mu.Lock()
	if books, ok := l.loaded[version]; ok {
		l.mu.Unlock()
		return books, nil
	}
	l.mu.Unlock()

	key := cacheKey(version)
	if l.cache != nil {
		var books []Book
		found, err := l.cache.Get(key, &books)
		if err == nil && found && len(books) >= minBooks {
			l.store(version, books)
			return books, nil
		}
	}

	body, err := content.FetchWithFailover(ctx, l.client, urls)
	if err != nil {
		return nil, fmt.Errorf("load bible %s: %w", version, err)
	}

	var books []Book
	if err := content.DecodeLenient(body, &books); err != nil {
		return nil, fmt.Errorf("parse bible %s: %w", version, err)
	}
	if len(books) < minBooks {
		return nil, fmt.Errorf("incomplete bible %s: %d books", version, len(books))
	}

	if l.cache != nil {
		// Best effort; download already succeeded.
		_ = l.cache.Set(key, books, cache.DefaultTTL)
	}
	l.store(version, books)
	return books, nil
}

func (l *Library) store(version string, books []Book) {
	l.mu.Lock()
	l.loaded[version] = books
	l.mu.Unlock()
}

func cacheKey(version string) string {
	return "bible_" + version
}

// Reference formats the human-readable caption for a verse, e.g.
// "Gênesis 1:3". Chapter and verse are 1-based.
func Reference(book Book, chapter, verse int) string {
	return fmt.Sprintf("%s %d:%d", book.Name, chapter, verse)
}

// ChapterUnits builds the projectable sequence for one chapter: every
// verse as a Text unit with its caption. The returned slice backs the
// navigation cursor, so its order is the canonical verse order.
func ChapterUnits(book Book, chapter int) ([]types.ContentUnit, error) {
	if chapter < 1 || chapter > len(book.Chapters) {
		return nil, fmt.Errorf("%s has no chapter %d", book.Name, chapter)
	}

	verses := book.Chapters[chapter-1]
	units := make([]types.ContentUnit, len(verses))
	for i, text := range verses {
		units[i] = types.ContentUnit{
			Kind:    types.KindText,
			Body:    text,
			Caption: Reference(book, chapter, i+1),
		}
	}
	return units, nil
}

// SearchBooks returns the books whose name or abbreviation matches the
// query, ignoring case and diacritics.
func SearchBooks(books []Book, query string) []Book {
	query = content.Fold(strings.TrimSpace(query))
	if query == "" {
		return books
	}

	var out []Book
	for _, b := range books {
		if strings.Contains(content.Fold(b.Name), query) || strings.Contains(content.Fold(b.Abbrev), query) {
			out = append(out, b)
		}
	}
	return out
}
