package search

import "github.com/nvoss/verso/internal/storage"

// Result is one history match with its relevance score.
type Result struct {
	Song  *storage.Song
	Score float64
}

// Searcher defines the minimal history-search API used by the TUI.
type Searcher interface {
	Search(query string, limit int) ([]*Result, error)
}

// UpdateListener can be implemented by engines that maintain an external
// index and want to be told about newly viewed songs.
type UpdateListener interface {
	OnSongSaved(song *storage.Song)
}

// DeleteListener is notified when a history entry is removed.
type DeleteListener interface {
	OnSongDeleted(songID string)
}

// DebugStatser provides lightweight stats for visibility/debugging.
type DebugStatser interface {
	DocCount() (int, error)
}
