package search

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvoss/verso/internal/storage"
)

func newTestStore(t *testing.T) *storage.Store {
	t.Helper()

	store, err := storage.NewStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func seedSongs(t *testing.T, store *storage.Store) {
	t.Helper()

	songs := []*storage.Song{
		{
			Artist:     "Nirvana",
			Title:      "Lithium",
			AlbumTitle: "Nevermind",
			Lyrics:     "I'm so happy because today I found my friends",
			ViewedAt:   time.Now(),
		},
		{
			Artist:     "Daft Punk",
			Title:      "Around the World",
			AlbumTitle: "Homework",
			Lyrics:     "around the world around the world",
			ViewedAt:   time.Now().Add(-time.Hour),
		},
		{
			Artist:     "Leonard Cohen",
			Title:      "Hallelujah",
			AlbumTitle: "Various Positions",
			Lyrics:     "now I've heard there was a secret chord",
			ViewedAt:   time.Now().Add(-2 * time.Hour),
		},
	}
	for _, s := range songs {
		require.NoError(t, store.SaveSong(s))
	}
}

func TestEngineSearchEmptyQuery(t *testing.T) {
	engine := NewEngine(newTestStore(t))

	for _, query := range []string{"", "   ", "a"} {
		results, err := engine.Search(query, 10)
		assert.NoError(t, err)
		assert.Empty(t, results, "query %q should return no results", query)
	}
}

func TestEngineSearchByTitle(t *testing.T) {
	store := newTestStore(t)
	seedSongs(t, store)
	engine := NewEngine(store)

	results, err := engine.Search("lithium", 10)
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Equal(t, "Lithium", results[0].Song.Title)
}

func TestEngineSearchByLyrics(t *testing.T) {
	store := newTestStore(t)
	seedSongs(t, store)
	engine := NewEngine(store)

	results, err := engine.Search("secret chord", 10)
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Equal(t, "Hallelujah", results[0].Song.Title)
}

func TestEngineSearchFuzzyArtist(t *testing.T) {
	store := newTestStore(t)
	seedSongs(t, store)
	engine := NewEngine(store)

	// Misspelled artist still matches through similarity scoring
	results, err := engine.Search("nirvana lithium", 10)
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Equal(t, "Nirvana", results[0].Song.Artist)
}

func TestEngineSearchLimit(t *testing.T) {
	store := newTestStore(t)
	seedSongs(t, store)
	engine := NewEngine(store)

	// "the" appears in more than one entry
	results, err := engine.Search("the world around", 1)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(results), 1)
}

func TestEngineTitleOutranksLyrics(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.SaveSong(&storage.Song{
		Artist: "Band A", Title: "Stormy Weather", Lyrics: "la la la", ViewedAt: time.Now(),
	}))
	require.NoError(t, store.SaveSong(&storage.Song{
		Artist: "Band B", Title: "Something Else", Lyrics: "stormy night again", ViewedAt: time.Now(),
	}))

	engine := NewEngine(store)
	results, err := engine.Search("stormy", 10)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "Stormy Weather", results[0].Song.Title,
		"title match should outrank lyrics match")
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"Hello World", []string{"hello", "world"}},
		{"rock-and-roll", []string{"rock", "and", "roll"}},
		{"a b c", nil}, // single chars dropped
		{"", nil},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, tokenize(tt.input), "tokenize(%q)", tt.input)
	}
}

func TestNewSearcherFallsBack(t *testing.T) {
	store := newTestStore(t)

	// An unusable index path forces the scan-engine fallback
	searcher := NewSearcher(store, string([]byte{0}))
	require.NotNil(t, searcher)

	seedSongs(t, store)
	results, err := searcher.Search("lithium", 10)
	require.NoError(t, err)
	assert.NotEmpty(t, results)
}
