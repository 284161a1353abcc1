package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nvoss/verso/internal/config"
	"github.com/nvoss/verso/internal/freq"
)

const maxQueryLength = 200

// KeyHandler routes key events by view and input focus. Text input
// gets first claim on keystrokes; custom bindings apply only when no
// text field is focused.
type KeyHandler struct {
	app      *App
	config   *config.Config
	modifier string
}

func NewKeyHandler(app *App, cfg *config.Config) *KeyHandler {
	return &KeyHandler{
		app:      app,
		config:   cfg,
		modifier: cfg.Keys.Modifier,
	}
}

func (kh *KeyHandler) HandleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if kh.isInTextInputMode() {
		return kh.handleTextInputMode(msg)
	}

	if model, cmd, handled := kh.handleCustomKeys(msg); handled {
		return model, cmd
	}

	return kh.delegateToComponent(msg)
}

func (kh *KeyHandler) isInTextInputMode() bool {
	switch kh.app.view {
	case ViewSearch:
		return kh.app.searchInput.Focused()
	case ViewHistory:
		return kh.app.historyInput.Focused()
	}
	return false
}

func (kh *KeyHandler) handleTextInputMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return kh.app, tea.Quit
	case "esc":
		return kh.navigateBack()
	case "enter":
		return kh.handleTextInputEnter()
	case "down", "tab":
		return kh.moveFocusToList()
	}

	if model, cmd, handled := kh.handleModifierKeys(msg); handled {
		return model, cmd
	}

	return kh.delegateToTextInput(msg)
}

// handleTextInputEnter bypasses the debounce: an explicit submit fires
// the request immediately under a fresh sequence number.
func (kh *KeyHandler) handleTextInputEnter() (tea.Model, tea.Cmd) {
	a := kh.app

	switch a.view {
	case ViewSearch:
		query := sanitizeQuery(a.searchInput.Value())
		a.suggestSeq++
		a.pendingQuery = query
		if query == "" {
			return a, nil
		}
		a.status = MsgSearching
		return a, a.fetchSuggestions(a.suggestSeq, query)

	case ViewHistory:
		if len(a.historyList.Items()) > 0 {
			a.historyInput.Blur()
			a.historyList.Select(0)
		}
		return a, nil
	}

	return a, nil
}

func (kh *KeyHandler) moveFocusToList() (tea.Model, tea.Cmd) {
	a := kh.app

	switch a.view {
	case ViewSearch:
		if len(a.suggestionList.Items()) > 0 {
			a.searchInput.Blur()
			a.suggestionList.Select(0)
		}
	case ViewHistory:
		if len(a.historyList.Items()) > 0 {
			a.historyInput.Blur()
			a.historyList.Select(0)
		}
	}

	return a, nil
}

// delegateToTextInput feeds the keystroke to the focused input and, on
// a value change, re-arms the debounce timer under a new sequence so
// any previously scheduled timer fires as a no-op.
func (kh *KeyHandler) delegateToTextInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a := kh.app
	var cmds []tea.Cmd

	switch a.view {
	case ViewSearch:
		before := a.searchInput.Value()
		newInput, cmd := a.searchInput.Update(msg)
		a.searchInput = newInput
		cmds = append(cmds, cmd)

		after := sanitizeQuery(a.searchInput.Value())
		if after != sanitizeQuery(before) {
			a.suggestSeq++
			a.pendingQuery = after
			if after == "" {
				// An emptied query never reaches the network.
				a.suggestions = nil
				a.suggestionList.SetItems(nil)
				a.status = ""
			} else {
				cmds = append(cmds, a.scheduleSuggest(a.suggestSeq))
			}
		}

	case ViewHistory:
		before := a.historyInput.Value()
		newInput, cmd := a.historyInput.Update(msg)
		a.historyInput = newInput
		cmds = append(cmds, cmd)

		after := strings.TrimSpace(a.historyInput.Value())
		if after != strings.TrimSpace(before) {
			if after == "" {
				cmds = append(cmds, a.loadHistory())
			} else {
				cmds = append(cmds, a.searchHistory(after))
			}
		}
	}

	return a, tea.Batch(cmds...)
}

func (kh *KeyHandler) handleCustomKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		return kh.app, tea.Quit, true
	case "esc":
		model, cmd := kh.navigateBack()
		return model, cmd, true
	case "enter":
		model, cmd := kh.handleSelect()
		return model, cmd, true
	case "/", "i":
		if model, cmd, ok := kh.focusInput(); ok {
			return model, cmd, true
		}
	}

	if model, cmd, handled := kh.handleModifierKeys(msg); handled {
		return model, cmd, true
	}

	return kh.app, nil, false
}

func (kh *KeyHandler) handleModifierKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	a := kh.app
	b := kh.config.Keys.Bindings

	switch msg.String() {
	case kh.chord(b.History):
		a.previousView = a.view
		a.view = ViewHistory
		a.status = ""
		a.historyInput.SetValue("")
		a.historyInput.Focus()
		return a, a.loadHistory(), true

	case kh.chord(b.ToggleChart):
		if a.view != ViewSong || a.currentSong == nil {
			return a, nil, true
		}
		if a.chartMin > 1 {
			a.chartMin = 1
		} else {
			a.chartMin = kh.config.Chart.MinCount
			if a.chartMin < 2 {
				a.chartMin = 2
			}
		}
		a.freqTable = freq.Count(a.currentSong.Lyrics, a.chartMin)
		return a, nil, true

	case kh.chord(b.OpenWeb):
		switch a.view {
		case ViewSong:
			if a.currentSong != nil {
				return a, a.openWeb(a.currentSong.Artist, a.currentSong.Title), true
			}
		case ViewHistory:
			if item, ok := a.historyList.SelectedItem().(historyItem); ok {
				return a, a.openWeb(item.song.Artist, item.song.Title), true
			}
		}
		return a, nil, true

	case kh.chord(b.DeleteHistory):
		if a.view != ViewHistory {
			return a, nil, true
		}
		if item, ok := a.historyList.SelectedItem().(historyItem); ok {
			a.songToDelete = item.song
			a.view = ViewDeleteConfirm
		}
		return a, nil, true
	}

	return a, nil, false
}

func (kh *KeyHandler) chord(key string) string {
	return fmt.Sprintf("%s+%s", kh.modifier, key)
}

// handleSelect activates the highlighted item for the current view.
func (kh *KeyHandler) handleSelect() (tea.Model, tea.Cmd) {
	a := kh.app

	switch a.view {
	case ViewSearch:
		item, ok := a.suggestionList.SelectedItem().(suggestionItem)
		if !ok {
			return a, nil
		}
		a.lyricsSeq++
		a.loadingLyrics = true
		a.status = MsgLoadingLyrics
		a.previousView = ViewSearch
		return a, a.fetchLyrics(a.lyricsSeq, item.s)

	case ViewHistory:
		item, ok := a.historyList.SelectedItem().(historyItem)
		if !ok {
			return a, nil
		}
		a.currentSong = item.song
		a.freqTable = freq.Count(item.song.Lyrics, a.chartMin)
		a.previousView = ViewHistory
		a.view = ViewSong
		a.loadingLyrics = true
		return a, a.renderSong(item.song)

	case ViewDeleteConfirm:
		if a.songToDelete == nil {
			a.view = ViewHistory
			return a, nil
		}
		return a, a.deleteSong(a.songToDelete)
	}

	return a, nil
}

func (kh *KeyHandler) focusInput() (tea.Model, tea.Cmd, bool) {
	a := kh.app

	switch a.view {
	case ViewSearch:
		a.searchInput.Focus()
		return a, nil, true
	case ViewHistory:
		a.historyInput.Focus()
		return a, nil, true
	}

	return a, nil, false
}

func (kh *KeyHandler) navigateBack() (tea.Model, tea.Cmd) {
	a := kh.app

	switch a.view {
	case ViewDeleteConfirm:
		a.songToDelete = nil
		a.view = ViewHistory
		return a, nil

	case ViewSong:
		a.view = a.previousView
		if a.view == ViewHistory {
			a.historyInput.Focus()
			return a, a.loadHistory()
		}
		a.searchInput.Focus()
		return a, nil

	case ViewHistory:
		a.view = ViewSearch
		a.status = ""
		a.searchInput.Focus()
		return a, nil

	case ViewSearch:
		if !a.searchInput.Focused() {
			a.searchInput.Focus()
			return a, nil
		}
		return a, tea.Quit
	}

	return a, nil
}

func (kh *KeyHandler) delegateToComponent(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a := kh.app
	var cmds []tea.Cmd

	switch a.view {
	case ViewSearch:
		// Moving up past the first row hands focus back to the input.
		if msg.String() == "up" && a.suggestionList.Index() == 0 {
			a.searchInput.Focus()
			return a, nil
		}
		newList, cmd := a.suggestionList.Update(msg)
		a.suggestionList = newList
		cmds = append(cmds, cmd)

	case ViewSong:
		newViewport, cmd := a.viewport.Update(msg)
		a.viewport = newViewport
		cmds = append(cmds, cmd)

	case ViewHistory:
		if msg.String() == "up" && a.historyList.Index() == 0 {
			a.historyInput.Focus()
			return a, nil
		}
		newList, cmd := a.historyList.Update(msg)
		a.historyList = newList
		cmds = append(cmds, cmd)
	}

	return a, tea.Batch(cmds...)
}

func (kh *KeyHandler) GetHelpForCurrentView() []string {
	a := kh.app
	b := kh.config.Keys.Bindings

	switch a.view {
	case ViewSearch:
		help := []string{"enter: search", "↓/tab: results"}
		help = append(help, kh.chord(b.History)+": history", "ctrl+c: quit")
		return help
	case ViewSong:
		return []string{
			"↑/↓: scroll",
			kh.chord(b.ToggleChart) + ": threshold",
			kh.chord(b.OpenWeb) + ": web",
			"esc: back",
		}
	case ViewHistory:
		return []string{
			"enter: open",
			kh.chord(b.DeleteHistory) + ": remove",
			kh.chord(b.OpenWeb) + ": web",
			"esc: back",
		}
	case ViewDeleteConfirm:
		return nil
	}

	return nil
}

// sanitizeQuery trims, collapses internal whitespace runs, and caps
// the length before a query is allowed near the debounce timer.
func sanitizeQuery(query string) string {
	query = strings.TrimSpace(query)
	query = strings.Join(strings.Fields(query), " ")
	if len(query) > maxQueryLength {
		query = query[:maxQueryLength]
	}
	return query
}
