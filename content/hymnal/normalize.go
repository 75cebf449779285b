package hymnal

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Normalize converts any of the known source shapes into the flat hymn
// model. It returns an error when the result is implausibly small,
// which makes the failover loop move on to the next mirror.
func Normalize(raw any) ([]Hymn, error) {
	items := extractList(raw)

	var hymns []Hymn
	for _, item := range items {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		h := normalizeEntry(entry)
		if h.Number > 0 && h.Lyrics != "" {
			hymns = append(hymns, h)
		}
	}

	if len(hymns) < minHymns {
		return nil, fmt.Errorf("incomplete source: only %d hymns found", len(hymns))
	}

	sortHymns(hymns)
	return hymns, nil
}

// extractList digs the hymn list out of whichever wrapper the source
// used: a bare array, {"hinos": [...]}, {"hymns": [...]}, or an object
// map keyed by hymn number.
func extractList(raw any) []any {
	switch data := raw.(type) {
	case []any:
		return data
	case map[string]any:
		if list, ok := data["hinos"].([]any); ok {
			return list
		}
		if list, ok := data["hymns"].([]any); ok {
			return list
		}
		// Object-map form: keep values that look like hymn entries,
		// in key order so normalization is deterministic.
		keys := make([]string, 0, len(data))
		for k := range data {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		var list []any
		for _, k := range keys {
			entry, ok := data[k].(map[string]any)
			if !ok {
				continue
			}
			hasID := entry["numero"] != nil || entry["hino"] != nil
			hasText := entry["letra"] != nil || entry["verses"] != nil
			if hasID && hasText {
				list = append(list, entry)
			}
		}
		return list
	default:
		return nil
	}
}

func normalizeEntry(entry map[string]any) Hymn {
	title := firstString(entry, "titulo", "title", "hino")
	if title == "" {
		title = "Sem título"
	}
	// Titles like "1 - Chuvas de Graça" carry the number; strip it.
	if strings.Contains(title, " - ") {
		parts := strings.SplitN(title, " - ", 2)
		if n, err := strconv.Atoi(strings.TrimSpace(parts[0])); err == nil && n > 0 {
			title = parts[1]
		}
	}

	lyrics := firstString(entry, "letra", "text", "lyrics")
	if lyrics == "" {
		lyrics = rebuildLyrics(entry)
	}

	number := firstInt(entry, "numero", "number")
	if number == 0 {
		if hino := firstString(entry, "hino"); hino != "" {
			prefix := strings.SplitN(hino, " - ", 2)[0]
			number, _ = strconv.Atoi(strings.TrimSpace(prefix))
		}
	}

	return Hymn{Number: number, Title: title, Lyrics: lyrics}
}

// rebuildLyrics reconstructs the full text from the split "verses" form,
// interleaving the chorus after every stanza the way the hymn is sung.
func rebuildLyrics(entry map[string]any) string {
	verses, ok := entry["verses"].(map[string]any)
	if !ok {
		return ""
	}

	var chorus string
	if coro := firstString(entry, "coro"); coro != "" {
		chorus = "[Coro]\n" + brToNewline(coro)
	}

	keys := make([]string, 0, len(verses))
	for k := range verses {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, _ := strconv.Atoi(keys[i])
		b, _ := strconv.Atoi(keys[j])
		return a < b
	})

	var parts []string
	for _, k := range keys {
		parts = append(parts, brToNewline(fmt.Sprint(verses[k])))
		if chorus != "" {
			parts = append(parts, chorus)
		}
	}
	return strings.Join(parts, "\n\n")
}

var brTag = regexp.MustCompile(`<br\s*/?>`)

func brToNewline(s string) string {
	return brTag.ReplaceAllString(s, "\n")
}

// firstString returns the first present, non-empty string among keys.
func firstString(entry map[string]any, keys ...string) string {
	for _, k := range keys {
		if s, ok := entry[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// firstInt returns the first present key coerced to int. Sources encode
// numbers as JSON numbers or as strings.
func firstInt(entry map[string]any, keys ...string) int {
	for _, k := range keys {
		switch v := entry[k].(type) {
		case float64:
			return int(v)
		case int:
			return v
		case string:
			if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
				return n
			}
		}
	}
	return 0
}
