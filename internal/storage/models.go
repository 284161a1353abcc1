package storage

import (
	"strings"
	"time"
)

// Song is a viewed song kept in history: the suggestion metadata that led
// to it plus the lyrics that were fetched for it.
type Song struct {
	ID         string    `json:"id"`
	Artist     string    `json:"artist"`
	Title      string    `json:"title"`
	AlbumTitle string    `json:"album_title"`
	CoverURL   string    `json:"cover_url"`
	Explicit   bool      `json:"explicit"`
	Lyrics     string    `json:"lyrics"`
	ViewedAt   time.Time `json:"viewed_at"`
}

// SongID derives a stable history key from the artist/title pair.
// Re-viewing the same song replaces its entry instead of duplicating it.
func SongID(artist, title string) string {
	return strings.ToLower(strings.TrimSpace(artist)) + "\x00" + strings.ToLower(strings.TrimSpace(title))
}
