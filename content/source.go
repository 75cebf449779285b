// Package content provides the shared plumbing for remote content
// acquisition: mirrored fetch with failover and tolerant decoding of the
// not-quite-JSON files some mirrors serve.
package content

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"
)

// FetchTimeout bounds a single mirror attempt.
const FetchTimeout = 20 * time.Second

// maxBodySize caps a mirror response. The largest real payload (a full
// bible translation) is under 5 MB.
const maxBodySize = 32 << 20

// FetchWithFailover tries each mirror in order and returns the first
// successful response body. Individual failures are logged and skipped;
// only after every mirror failed does an error come back.
func FetchWithFailover(ctx context.Context, client *http.Client, urls []string) ([]byte, error) {
	if client == nil {
		client = http.DefaultClient
	}

	var lastErr error
	for _, url := range urls {
		body, err := fetchOne(ctx, client, url)
		if err != nil {
			slog.Warn("content mirror failed", "url", url, "error", err)
			lastErr = err
			if ctx.Err() != nil {
				break
			}
			continue
		}
		slog.Info("content downloaded", "url", url, "bytes", len(body))
		return body, nil
	}
	return nil, fmt.Errorf("all mirrors failed: %w", lastErr)
}

func fetchOne(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, FetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("http status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}

// DecodeLenient unmarshals data into v. Strict JSON is tried first; on
// failure the data goes through the YAML decoder, which accepts the
// JavaScript-object style (unquoted keys, trailing commas stripped) that
// a couple of the hymn mirrors actually serve.
func DecodeLenient(data []byte, v any) error {
	jsonErr := json.Unmarshal(data, v)
	if jsonErr == nil {
		return nil
	}

	if yamlErr := yaml.Unmarshal(data, v); yamlErr != nil {
		return fmt.Errorf("decode: %w (lenient fallback: %v)", jsonErr, yamlErr)
	}
	return nil
}

var blankLine = regexp.MustCompile(`\n\s*\n`)

// SplitStanzas splits text into blocks on blank lines. Lines holding
// only spaces or tabs count as blank, which pasted and scraped text
// frequently has.
func SplitStanzas(text string) []string {
	normalized := strings.ReplaceAll(text, "\r\n", "\n")

	var out []string
	for _, part := range blankLine.Split(normalized, -1) {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold lowercases s and strips diacritics, so "Gênesis" matches a search
// for "genesis". Portuguese content makes accent-insensitive search a
// requirement, not a nicety.
func Fold(s string) string {
	folded, _, err := transform.String(foldTransformer, s)
	if err != nil {
		return strings.ToLower(s)
	}
	return strings.ToLower(folded)
}
