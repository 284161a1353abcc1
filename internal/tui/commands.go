package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nvoss/verso/internal/browser"
	"github.com/nvoss/verso/internal/debuglog"
	"github.com/nvoss/verso/internal/lyricsapi"
	"github.com/nvoss/verso/internal/search"
	"github.com/nvoss/verso/internal/storage"
)

// scheduleSuggest arms the debounce timer for the current input value.
// The sequence number pins the timer to the keystroke that created it.
func (a *App) scheduleSuggest(seq uint64) tea.Cmd {
	return tea.Tick(a.config.Search.Debounce, func(time.Time) tea.Msg {
		return suggestDebounceMsg{seq: seq}
	})
}

func (a *App) fetchSuggestions(seq uint64, query string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), a.config.API.HTTPTimeout)
		defer cancel()

		suggestions, err := a.client.Suggest(ctx, query)
		if err != nil {
			return suggestionsMsg{seq: seq, err: err}
		}
		if max := a.config.Search.MaxSuggestions; max > 0 && len(suggestions) > max {
			suggestions = suggestions[:max]
		}
		return suggestionsMsg{seq: seq, suggestions: suggestions}
	}
}

func (a *App) fetchLyrics(seq uint64, s lyricsapi.Suggestion) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), a.config.API.HTTPTimeout)
		defer cancel()

		lyrics, err := a.client.Lyrics(ctx, s.Artist, s.Title)
		if err != nil {
			return songLoadedMsg{seq: seq, err: err}
		}

		song := &storage.Song{
			ID:         storage.SongID(s.Artist, s.Title),
			Artist:     s.Artist,
			Title:      s.Title,
			AlbumTitle: s.AlbumTitle,
			CoverURL:   s.CoverURL,
			Explicit:   s.Explicit,
			Lyrics:     lyrics,
			ViewedAt:   time.Now(),
		}
		return songLoadedMsg{seq: seq, song: song}
	}
}

// renderSong turns a song into glamour-rendered markdown for the viewport.
func (a *App) renderSong(song *storage.Song) tea.Cmd {
	return func() tea.Msg {
		var md strings.Builder

		md.WriteString(fmt.Sprintf("# %s\n\n", song.Title))

		byline := song.Artist
		if song.AlbumTitle != "" {
			byline += " · " + song.AlbumTitle
		}
		md.WriteString(fmt.Sprintf("*%s*\n\n", byline))

		if song.Explicit {
			md.WriteString("`EXPLICIT`\n\n")
		}
		if song.CoverURL != "" {
			md.WriteString(fmt.Sprintf("Cover: %s\n\n", truncateMiddle(song.CoverURL, 60)))
		}
		md.WriteString(fmt.Sprintf("[Search the web](%s)\n\n", browser.WebSearchURL(song.Artist, song.Title)))
		md.WriteString("---\n\n")

		// Trailing double space keeps single newlines as hard breaks
		// so verse lines survive the markdown rendering.
		md.WriteString(strings.ReplaceAll(song.Lyrics, "\n", "  \n"))
		md.WriteString("\n")

		renderer, err := a.getRenderer()
		if err != nil {
			debuglog.Warnf("glamour renderer unavailable: %v", err)
			return songRenderedMsg{content: md.String()}
		}

		rendered, err := renderer.Render(md.String())
		if err != nil {
			debuglog.Warnf("render failed for %s: %v", song.ID, err)
			return songRenderedMsg{content: md.String()}
		}

		return songRenderedMsg{content: rendered}
	}
}

// saveHistory records a viewed song and keeps the index in step.
func (a *App) saveHistory(song *storage.Song) tea.Cmd {
	return func() tea.Msg {
		if err := a.store.SaveSong(song); err != nil {
			debuglog.Warnf("failed to save song %s: %v", song.ID, err)
			return nil
		}
		if listener, ok := a.searcher.(search.UpdateListener); ok {
			listener.OnSongSaved(song)
		}
		return nil
	}
}

func (a *App) loadHistory() tea.Cmd {
	return func() tea.Msg {
		songs, err := a.store.RecentSongs(100)
		if err != nil {
			return errorMsg{err: err}
		}
		return historyLoadedMsg{songs: songs}
	}
}

func (a *App) searchHistory(query string) tea.Cmd {
	return func() tea.Msg {
		results, err := a.searcher.Search(query, 100)
		if err != nil {
			return errorMsg{err: err}
		}
		return historyResultsMsg{results: results}
	}
}

func (a *App) deleteSong(song *storage.Song) tea.Cmd {
	return func() tea.Msg {
		if err := a.store.DeleteSong(song.ID); err != nil {
			return songDeletedMsg{err: err}
		}
		if listener, ok := a.searcher.(search.DeleteListener); ok {
			listener.OnSongDeleted(song.ID)
		}
		return songDeletedMsg{}
	}
}

func (a *App) openWeb(artist, title string) tea.Cmd {
	return func() tea.Msg {
		target := browser.WebSearchURL(artist, title)
		if err := a.launcher.Open(target); err != nil {
			return errorMsg{err: err}
		}
		return nil
	}
}
