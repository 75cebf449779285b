// Package hymnal loads the Harpa Cristã hymn collection.
//
// The published JSON sources disagree wildly on shape: a plain array, a
// wrapper object ("hinos"/"hymns"), or an object map keyed by hymn
// number, with lyrics either as one newline-separated string or split
// into verses plus a chorus. Normalize flattens all of them into one
// model so everything downstream is format-agnostic.
package hymnal

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"

	"go.proclama.app/proclama/cache"
	"go.proclama.app/proclama/content"
	"go.proclama.app/proclama/internal/types"
)

// Hymn is one normalized hymn. Lyrics hold the full text with stanzas
// separated by blank lines.
type Hymn struct {
	Number int    `json:"numero"`
	Title  string `json:"titulo"`
	Lyrics string `json:"letra"`
}

// mirrors are the Harpa sources, tried in order.
var mirrors = []string{
	"https://raw.githubusercontent.com/DanielLiberato/Harpa-Crista-JSON-640-Hinos-Completa/master/json/harpa.json",
	"https://cdn.jsdelivr.net/gh/DanielLiberato/Harpa-Crista-JSON-640-Hinos-Completa@master/json/harpa.json",
	"https://raw.githubusercontent.com/yurimutti/harpa-crista-json/main/harpa.json",
}

// minHymns is the sanity floor: the Harpa has 640 hymns, so a source
// yielding fewer than 50 is a broken or partial file.
const minHymns = 50

const cacheKey = "harpa_data"

// Loader fetches, normalizes, and caches the hymn collection.
type Loader struct {
	mu    sync.Mutex
	hymns []Hymn

	cache   *cache.Cache
	client  *http.Client
	mirrors []string
}

// NewLoader creates a loader. cache may be nil; client may be nil.
func NewLoader(c *cache.Cache, client *http.Client) *Loader {
	return &Loader{cache: c, client: client, mirrors: mirrors}
}

// Load returns the hymn collection sorted by number: from memory, else
// the offline cache, else downloaded with failover and cached.
// force skips memory and cache and always redownloads.
func (l *Loader) Load(ctx context.Context, force bool) ([]Hymn, error) {
	if !force {
		l.mu.Lock()
		if len(l.hymns) > 0 {
			hymns := l.hymns
			l.mu.Unlock()
			return hymns, nil
		}
		l.mu.Unlock()

		if l.cache != nil {
			var cached []Hymn
			found, err := l.cache.Get(cacheKey, &cached)
			if err == nil && found && len(cached) >= minHymns {
				l.store(cached)
				return cached, nil
			}
		}
	}

	body, err := content.FetchWithFailover(ctx, l.client, l.mirrors)
	if err != nil {
		return nil, fmt.Errorf("load hymnal: %w", err)
	}

	var raw any
	if err := content.DecodeLenient(body, &raw); err != nil {
		return nil, fmt.Errorf("parse hymnal: %w", err)
	}

	hymns, err := Normalize(raw)
	if err != nil {
		return nil, fmt.Errorf("normalize hymnal: %w", err)
	}

	if l.cache != nil {
		_ = l.cache.Set(cacheKey, hymns, cache.DefaultTTL)
	}
	l.store(hymns)
	return hymns, nil
}

func (l *Loader) store(hymns []Hymn) {
	l.mu.Lock()
	l.hymns = hymns
	l.mu.Unlock()
}

// Search matches hymns by number, title, or lyric fragment, ignoring
// case and diacritics.
func Search(hymns []Hymn, query string) []Hymn {
	query = strings.TrimSpace(query)
	if query == "" {
		return hymns
	}
	folded := content.Fold(query)

	var out []Hymn
	for _, h := range hymns {
		switch {
		case strings.Contains(fmt.Sprint(h.Number), query),
			strings.Contains(content.Fold(h.Title), folded),
			strings.Contains(content.Fold(h.Lyrics), folded):
			out = append(out, h)
		}
	}
	return out
}

// Stanzas splits raw lyrics into projectable stanzas on blank lines.
func Stanzas(raw string) []string {
	return content.SplitStanzas(raw)
}

// IsChorus reports whether a stanza is the chorus, by its marker line.
func IsChorus(stanza string) bool {
	folded := content.Fold(stanza)
	return strings.Contains(folded, "coro") || strings.Contains(folded, "refrao")
}

// Caption formats the hymn's caption, e.g. "15. Conversão".
func Caption(h Hymn) string {
	return fmt.Sprintf("%d. %s", h.Number, h.Title)
}

// StanzaUnits builds the projectable sequence for one hymn: each stanza
// as a Lyric unit carrying the hymn caption. Backs the navigation
// cursor.
func StanzaUnits(h Hymn) []types.ContentUnit {
	stanzas := Stanzas(h.Lyrics)
	units := make([]types.ContentUnit, len(stanzas))
	caption := Caption(h)
	for i, stanza := range stanzas {
		units[i] = types.ContentUnit{
			Kind:    types.KindLyric,
			Body:    stanza,
			Caption: caption,
		}
	}
	return units
}

// sortHymns orders by hymn number in place.
func sortHymns(hymns []Hymn) {
	sort.Slice(hymns, func(i, j int) bool { return hymns[i].Number < hymns[j].Number })
}
