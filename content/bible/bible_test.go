package bible

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.proclama.app/proclama/cache"
	"go.proclama.app/proclama/internal/types"
)

func genesis() Book {
	return Book{
		Abbrev: "gn",
		Name:   "Gênesis",
		Chapters: [][]string{
			{
				"No princípio criou Deus os céus e a terra.",
				"A terra era sem forma e vazia.",
				"Disse Deus: Haja luz; e houve luz.",
			},
			{"Assim foram acabados os céus e a terra."},
		},
	}
}

// testCanon is a full-sized book list so Load's completeness floor
// passes without shipping a real translation in the test.
func testCanon() []Book {
	books := []Book{genesis()}
	for i := 1; i < minBooks; i++ {
		books = append(books, Book{
			Abbrev:   fmt.Sprintf("b%d", i),
			Name:     fmt.Sprintf("Livro %d", i),
			Chapters: [][]string{{"verso"}},
		})
	}
	return books
}

func bibleServer(t *testing.T, books []Book) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(books)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestLibrary_Load(t *testing.T) {
	srv := bibleServer(t, testCanon())

	l := NewLibrary(nil, nil)
	l.mirrors = map[string][]string{"nvi": {srv.URL}}

	books, err := l.Load(context.Background(), "nvi")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(books) != minBooks {
		t.Errorf("len = %d, want %d", len(books), minBooks)
	}
	if books[0].Name != "Gênesis" {
		t.Errorf("first book = %q", books[0].Name)
	}
}

func TestLibrary_UnknownVersion(t *testing.T) {
	l := NewLibrary(nil, nil)
	if _, err := l.Load(context.Background(), "klingon"); err == nil {
		t.Error("no error for unknown version")
	}
}

func TestLibrary_MemoryReuse(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		json.NewEncoder(w).Encode(testCanon())
	}))
	defer srv.Close()

	l := NewLibrary(nil, nil)
	l.mirrors = map[string][]string{"nvi": {srv.URL}}

	l.Load(context.Background(), "nvi")
	l.Load(context.Background(), "nvi")

	if hits != 1 {
		t.Errorf("mirror hit %d times, want 1", hits)
	}
}

func TestLibrary_OfflineCache(t *testing.T) {
	c, err := cache.New(t.TempDir())
	if err != nil {
		t.Fatalf("cache.New: %v", err)
	}
	defer c.Close()

	srv := bibleServer(t, testCanon())

	l1 := NewLibrary(c, nil)
	l1.mirrors = map[string][]string{"acf": {srv.URL}}
	if _, err := l1.Load(context.Background(), "acf"); err != nil {
		t.Fatalf("Load: %v", err)
	}

	// A fresh library with dead mirrors must be served from the cache.
	l2 := NewLibrary(c, nil)
	l2.mirrors = map[string][]string{"acf": {"http://127.0.0.1:0/unreachable"}}
	books, err := l2.Load(context.Background(), "acf")
	if err != nil {
		t.Fatalf("offline Load: %v", err)
	}
	if len(books) != minBooks {
		t.Errorf("offline len = %d", len(books))
	}
}

func TestLibrary_RejectsIncompleteSource(t *testing.T) {
	srv := bibleServer(t, []Book{genesis()})

	l := NewLibrary(nil, nil)
	l.mirrors = map[string][]string{"nvi": {srv.URL}}

	if _, err := l.Load(context.Background(), "nvi"); err == nil {
		t.Error("no error for a 1-book source")
	}
}

func TestVersions(t *testing.T) {
	vs := Versions()
	if len(vs) != 3 {
		t.Fatalf("len = %d, want 3", len(vs))
	}
	if vs[0].ID != "nvi" {
		t.Errorf("default-first version = %q, want nvi", vs[0].ID)
	}
	for _, v := range vs {
		if v.Label == "" {
			t.Errorf("version %q has no label", v.ID)
		}
	}
}

func TestReference(t *testing.T) {
	if got := Reference(genesis(), 1, 3); got != "Gênesis 1:3" {
		t.Errorf("Reference = %q, want %q", got, "Gênesis 1:3")
	}
}

func TestChapterUnits(t *testing.T) {
	units, err := ChapterUnits(genesis(), 1)
	if err != nil {
		t.Fatalf("ChapterUnits: %v", err)
	}
	if len(units) != 3 {
		t.Fatalf("len = %d, want 3", len(units))
	}

	third := units[2]
	if third.Kind != types.KindText {
		t.Errorf("Kind = %v, want Text", third.Kind)
	}
	if third.Body != "Disse Deus: Haja luz; e houve luz." {
		t.Errorf("Body = %q", third.Body)
	}
	if third.Caption != "Gênesis 1:3" {
		t.Errorf("Caption = %q", third.Caption)
	}
}

func TestChapterUnits_OutOfRange(t *testing.T) {
	for _, chapter := range []int{0, -1, 3} {
		if _, err := ChapterUnits(genesis(), chapter); err == nil {
			t.Errorf("no error for chapter %d", chapter)
		}
	}
}

func TestSearchBooks(t *testing.T) {
	books := []Book{
		genesis(),
		{Abbrev: "ex", Name: "Êxodo"},
		{Abbrev: "jo", Name: "João"},
	}

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"empty returns all", "", []string{"Gênesis", "Êxodo", "João"}},
		{"accent insensitive name", "exodo", []string{"Êxodo"}},
		{"case insensitive", "JOAO", []string{"João"}},
		{"by abbreviation", "gn", []string{"Gênesis"}},
		{"no match", "apocalipse", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SearchBooks(books, tt.query)
			if len(got) != len(tt.want) {
				t.Fatalf("SearchBooks(%q) = %d books, want %d", tt.query, len(got), len(tt.want))
			}
			for i, name := range tt.want {
				if got[i].Name != name {
					t.Errorf("result[%d] = %q, want %q", i, got[i].Name, name)
				}
			}
		})
	}
}
