package storage

import (
	"path/filepath"
	"testing"
	"time"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := NewStore(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

func TestSongID(t *testing.T) {
	a := SongID("Daft Punk", "Around the World")
	b := SongID("  daft punk ", "AROUND THE WORLD")
	if a != b {
		t.Errorf("SongID should be case/space-insensitive: %q != %q", a, b)
	}

	c := SongID("Daft Punk", "One More Time")
	if a == c {
		t.Error("different titles must yield different IDs")
	}
}

func TestStore_SaveAndGetSong(t *testing.T) {
	store := setupTestStore(t)

	song := &Song{
		Artist:     "Daft Punk",
		Title:      "Around the World",
		AlbumTitle: "Homework",
		CoverURL:   "http://example.com/cover.jpg",
		Explicit:   false,
		Lyrics:     "around the world\naround the world",
		ViewedAt:   time.Now(),
	}

	if err := store.SaveSong(song); err != nil {
		t.Fatalf("failed to save song: %v", err)
	}
	if song.ID == "" {
		t.Fatal("SaveSong should assign an ID when missing")
	}

	retrieved, err := store.GetSong(song.ID)
	if err != nil {
		t.Fatalf("failed to get song: %v", err)
	}

	if retrieved.Artist != song.Artist {
		t.Errorf("expected Artist %s, got %s", song.Artist, retrieved.Artist)
	}
	if retrieved.Title != song.Title {
		t.Errorf("expected Title %s, got %s", song.Title, retrieved.Title)
	}
	if retrieved.Lyrics != song.Lyrics {
		t.Errorf("expected Lyrics %q, got %q", song.Lyrics, retrieved.Lyrics)
	}
	if retrieved.AlbumTitle != song.AlbumTitle {
		t.Errorf("expected AlbumTitle %s, got %s", song.AlbumTitle, retrieved.AlbumTitle)
	}
}

func TestStore_GetSong_NotFound(t *testing.T) {
	store := setupTestStore(t)

	if _, err := store.GetSong("non-existent"); err == nil {
		t.Error("expected error for non-existent song, got nil")
	}
}

func TestStore_SaveSong_ReplacesEntry(t *testing.T) {
	store := setupTestStore(t)

	first := &Song{Artist: "Nirvana", Title: "Lithium", Lyrics: "v1", ViewedAt: time.Now()}
	if err := store.SaveSong(first); err != nil {
		t.Fatal(err)
	}

	second := &Song{Artist: "Nirvana", Title: "Lithium", Lyrics: "v2", ViewedAt: time.Now()}
	if err := store.SaveSong(second); err != nil {
		t.Fatal(err)
	}

	songs, err := store.RecentSongs(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(songs) != 1 {
		t.Fatalf("expected 1 entry after re-view, got %d", len(songs))
	}
	if songs[0].Lyrics != "v2" {
		t.Errorf("expected replaced lyrics v2, got %q", songs[0].Lyrics)
	}
}

func TestStore_RecentSongs_Ordering(t *testing.T) {
	store := setupTestStore(t)

	base := time.Now()
	titles := []string{"first", "second", "third"}
	for i, title := range titles {
		song := &Song{
			Artist:   "artist",
			Title:    title,
			ViewedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if err := store.SaveSong(song); err != nil {
			t.Fatal(err)
		}
	}

	songs, err := store.RecentSongs(2)
	if err != nil {
		t.Fatal(err)
	}
	if len(songs) != 2 {
		t.Fatalf("expected 2 songs with limit, got %d", len(songs))
	}
	if songs[0].Title != "third" || songs[1].Title != "second" {
		t.Errorf("expected newest-first [third second], got [%s %s]", songs[0].Title, songs[1].Title)
	}
}

func TestStore_DeleteSong(t *testing.T) {
	store := setupTestStore(t)

	song := &Song{Artist: "a", Title: "b", ViewedAt: time.Now()}
	if err := store.SaveSong(song); err != nil {
		t.Fatal(err)
	}

	if err := store.DeleteSong(song.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if _, err := store.GetSong(song.ID); err == nil {
		t.Error("expected error after delete, got nil")
	}
}
