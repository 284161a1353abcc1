package tui

import "fmt"

// Canonical short status messages used across the app.
const (
	MsgSearching     = "Searching…"
	MsgLoadingLyrics = "Loading lyrics…"
	MsgNoSongFound   = "No song with this title found."
	MsgSuggestFailed = "Could not fetch suggestions. Check your connection and try again."
	MsgLyricsFailed  = "Could not fetch lyrics for this song."
	MsgHistoryEmpty  = "No songs viewed yet"
	MsgSongDeleted   = "Removed from history"
)

func MsgResultsCount(n int) string {
	if n == 1 {
		return "1 match"
	}
	return fmt.Sprintf("%d matches", n)
}

func MsgThreshold(min int) string {
	if min <= 1 {
		return "chart: all words"
	}
	return fmt.Sprintf("chart: words sung ≥%d times", min)
}
