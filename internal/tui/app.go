package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/nvoss/verso/internal/browser"
	"github.com/nvoss/verso/internal/config"
	"github.com/nvoss/verso/internal/freq"
	"github.com/nvoss/verso/internal/lyricsapi"
	"github.com/nvoss/verso/internal/search"
	"github.com/nvoss/verso/internal/storage"
)

// chartPanelMinTotal is the terminal width below which the song view
// drops the frequency chart column.
const chartPanelMinTotal = 84

type App struct {
	config     *config.Config
	store      *storage.Store
	client     *lyricsapi.Client
	searcher   search.Searcher
	launcher   *browser.Launcher
	keyHandler *KeyHandler

	searchInput    textinput.Model
	suggestionList list.Model
	historyInput   textinput.Model
	historyList    list.Model
	viewport       viewport.Model

	view         View
	previousView View

	suggestions  []lyricsapi.Suggestion
	currentSong  *storage.Song
	freqTable    freq.Table
	chartMin     int
	songToDelete *storage.Song

	// Monotonic sequence numbers let stale debounce timers and stale
	// responses be discarded: only a message carrying the latest
	// sequence of its kind is applied.
	suggestSeq   uint64
	lyricsSeq    uint64
	pendingQuery string

	loadingLyrics bool
	status        string
	err           error

	width  int
	height int

	glamourRenderer *glamour.TermRenderer
	rendererWidth   int
}

func NewApp(store *storage.Store, cfg *config.Config) *App {
	suggestionList := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	suggestionList.Title = "› suggestions"
	suggestionList.SetShowStatusBar(false)
	suggestionList.SetShowHelp(false)
	suggestionList.SetFilteringEnabled(false)

	historyList := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	historyList.Title = "› history"
	historyList.SetShowStatusBar(false)
	historyList.SetShowHelp(false)
	historyList.SetFilteringEnabled(false)

	vp := viewport.New(0, 0)

	si := textinput.New()
	si.Placeholder = "Search for a song title..."
	si.Focus()

	hi := textinput.New()
	hi.Placeholder = "Filter history..."

	app := &App{
		config:         cfg,
		store:          store,
		client:         lyricsapi.NewClient(cfg),
		searcher:       search.NewSearcher(store, cfg.Database.SearchIndex),
		launcher:       browser.NewLauncher(cfg),
		searchInput:    si,
		suggestionList: suggestionList,
		historyInput:   hi,
		historyList:    historyList,
		viewport:       vp,
		view:           ViewSearch,
		previousView:   ViewSearch,
		chartMin:       cfg.Chart.MinCount,
	}

	app.keyHandler = NewKeyHandler(app, cfg)

	return app
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		tea.EnterAltScreen,
	)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height

		// The search/history views keep 8 lines for input chrome
		listHeight := msg.Height - 8
		if listHeight < 5 {
			listHeight = 5
		}
		a.suggestionList.SetSize(msg.Width, listHeight)
		a.historyList.SetSize(msg.Width, listHeight)

		a.viewport.Width = a.lyricsWidth()
		a.viewport.Height = msg.Height - 3

		inputWidth := msg.Width - 8
		if inputWidth < 20 {
			inputWidth = msg.Width
		}
		a.searchInput.Width = inputWidth
		a.historyInput.Width = inputWidth

	case tea.KeyMsg:
		return a.keyHandler.HandleKey(msg)

	case suggestDebounceMsg:
		// Only the most recently scheduled timer may fire a request.
		if msg.seq != a.suggestSeq || a.pendingQuery == "" {
			return a, nil
		}
		if len(a.pendingQuery) < a.config.Search.MinQueryLength {
			return a, nil
		}
		a.status = MsgSearching
		return a, a.fetchSuggestions(msg.seq, a.pendingQuery)

	case suggestionsMsg:
		if msg.seq != a.suggestSeq {
			// A newer request was issued while this one was in flight.
			return a, nil
		}
		return a, a.applySuggestions(msg)

	case songLoadedMsg:
		if msg.seq != a.lyricsSeq {
			return a, nil
		}
		return a, a.applySongLoaded(msg)

	case songRenderedMsg:
		if a.view == ViewSong {
			a.viewport.SetContent(msg.content)
			a.viewport.GotoTop()
			a.loadingLyrics = false
		}

	case historyLoadedMsg:
		if a.view == ViewHistory {
			a.setHistoryItems(msg.songs)
		}

	case historyResultsMsg:
		if a.view == ViewHistory {
			songs := make([]*storage.Song, 0, len(msg.results))
			for _, r := range msg.results {
				songs = append(songs, r.Song)
			}
			a.setHistoryItems(songs)
		}

	case songDeletedMsg:
		if msg.err != nil {
			a.err = msg.err
		} else {
			a.view = ViewHistory
			a.songToDelete = nil
			a.status = MsgSongDeleted
			return a, a.loadHistory()
		}

	case errorMsg:
		a.err = msg.err
	}

	switch a.view {
	case ViewSearch:
		if !a.searchInput.Focused() {
			newList, cmd := a.suggestionList.Update(msg)
			a.suggestionList = newList
			cmds = append(cmds, cmd)
		}
	case ViewSong:
		switch msg.(type) {
		case tea.KeyMsg, tea.WindowSizeMsg, tea.MouseMsg:
			newViewport, cmd := a.viewport.Update(msg)
			a.viewport = newViewport
			cmds = append(cmds, cmd)
		}
	case ViewHistory:
		if !a.historyInput.Focused() {
			newList, cmd := a.historyList.Update(msg)
			a.historyList = newList
			cmds = append(cmds, cmd)
		}
	}

	return a, tea.Batch(cmds...)
}

// applySuggestions folds a suggestion response into the search view.
func (a *App) applySuggestions(msg suggestionsMsg) tea.Cmd {
	a.err = nil

	if msg.err != nil {
		a.suggestions = nil
		a.suggestionList.SetItems([]list.Item{})
		if lyricsapi.IsTransport(msg.err) {
			a.status = MsgSuggestFailed
		} else {
			a.status = MsgNoSongFound
		}
		return nil
	}

	a.suggestions = msg.suggestions
	items := make([]list.Item, len(msg.suggestions))
	for i, s := range msg.suggestions {
		items[i] = suggestionItem{s: s}
	}
	a.suggestionList.SetItems(items)
	a.status = MsgResultsCount(len(items))
	return nil
}

// applySongLoaded installs a fetched song or reports the failure while
// leaving the suggestion list untouched.
func (a *App) applySongLoaded(msg songLoadedMsg) tea.Cmd {
	a.loadingLyrics = false

	if msg.err != nil {
		a.view = ViewSearch
		a.status = MsgLyricsFailed
		return nil
	}

	a.currentSong = msg.song
	a.freqTable = freq.Count(msg.song.Lyrics, a.chartMin)
	a.loadingLyrics = true
	a.view = ViewSong
	a.status = ""
	return tea.Batch(a.renderSong(msg.song), a.saveHistory(msg.song))
}

func (a *App) setHistoryItems(songs []*storage.Song) {
	items := make([]list.Item, len(songs))
	for i, s := range songs {
		items[i] = historyItem{song: s}
	}
	a.historyList.SetItems(items)
}

// lyricsWidth is the viewport width once the chart column is carved out.
func (a *App) lyricsWidth() int {
	if !a.chartVisible() {
		return a.width
	}
	return a.width - a.chartWidth()
}

func (a *App) chartVisible() bool {
	return a.width >= chartPanelMinTotal
}

func (a *App) chartWidth() int {
	// label + bar + count + padding
	return a.config.Chart.BarWidth + 24
}

func (a *App) getRenderer() (*glamour.TermRenderer, error) {
	wordWrapWidth := (a.lyricsWidth() * 9) / 10
	if wordWrapWidth > 100 {
		wordWrapWidth = 100
	}
	if wordWrapWidth < 20 {
		wordWrapWidth = 20
	}

	if a.glamourRenderer == nil || abs(a.rendererWidth-wordWrapWidth) > 10 {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(wordWrapWidth),
		)
		if err != nil {
			return nil, err
		}
		a.glamourRenderer = r
		a.rendererWidth = wordWrapWidth
	}

	return a.glamourRenderer, nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func (a *App) View() string {
	var content string

	switch a.view {
	case ViewSearch:
		content = a.viewSearch()
	case ViewSong:
		content = a.viewSong()
	case ViewHistory:
		content = a.viewHistory()
	case ViewDeleteConfirm:
		content = a.viewDeleteConfirm()
	}

	customStatus := a.getCustomStatusBar()
	if customStatus != "" {
		separatorWidth := a.width - 2
		if separatorWidth < 0 {
			separatorWidth = 0
		}
		separator := lipgloss.NewStyle().
			Foreground(MutedColor).
			Render("─" + strings.Repeat("─", separatorWidth))

		return lipgloss.JoinVertical(lipgloss.Top, content, separator, customStatus)
	}

	return content
}

func (a *App) viewSearch() string {
	inputBorderColor := MutedColor
	if a.searchInput.Focused() {
		inputBorderColor = AccentColor
	}

	inputWidth := a.width - 8
	if inputWidth < 10 {
		inputWidth = a.width - 4
	}
	a.searchInput.Width = inputWidth

	searchInput := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(inputBorderColor).
		Padding(0, 1).
		Width(inputWidth + 4).
		Render(a.searchInput.View())

	statusLine := ""
	if a.status != "" {
		style := HelpStyle
		if a.status == MsgNoSongFound || a.status == MsgSuggestFailed || a.status == MsgLyricsFailed {
			style = ErrorMessageStyle
		}
		statusLine = style.Render(a.status)
	}

	var body string
	if len(a.suggestionList.Items()) > 0 {
		body = a.suggestionList.View()
	} else if a.pendingQuery == "" && a.status == "" {
		body = lipgloss.NewStyle().
			Width(a.width).
			Height(a.height - 11).
			Align(lipgloss.Center, lipgloss.Center).
			Render(GetWelcomeMessage())
	}

	searchContent := lipgloss.JoinVertical(
		lipgloss.Top,
		HeaderStyle.Render("› search"),
		"",
		searchInput,
		statusLine,
		"",
		body,
	)

	return lipgloss.NewStyle().
		Width(a.width).
		Height(a.height - 3).
		MaxHeight(a.height - 3).
		Render(searchContent)
}

func (a *App) viewSong() string {
	if a.loadingLyrics {
		return lipgloss.NewStyle().
			Width(a.width).
			Height(a.height-3).
			Align(lipgloss.Center, lipgloss.Center).
			Render(HelpStyle.Render(MsgLoadingLyrics))
	}

	lyricsPane := a.viewport.View()
	if !a.chartVisible() {
		return lyricsPane
	}

	chartPane := lipgloss.NewStyle().
		Width(a.chartWidth()).
		Height(a.height-3).
		MaxHeight(a.height-3).
		Padding(0, 1).
		Render(lipgloss.JoinVertical(
			lipgloss.Top,
			HeaderStyle.Render("› word frequency"),
			HelpStyle.Render(MsgThreshold(a.chartMin)),
			"",
			renderChart(a.freqTable, a.config.Chart.MaxBars, a.config.Chart.BarWidth),
		))

	return lipgloss.JoinHorizontal(lipgloss.Top, lyricsPane, chartPane)
}

func (a *App) viewHistory() string {
	inputBorderColor := MutedColor
	if a.historyInput.Focused() {
		inputBorderColor = AccentColor
	}

	inputWidth := a.width - 8
	if inputWidth < 10 {
		inputWidth = a.width - 4
	}
	a.historyInput.Width = inputWidth

	historyInput := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(inputBorderColor).
		Padding(0, 1).
		Width(inputWidth + 4).
		Render(a.historyInput.View())

	statusLine := ""
	if a.status != "" {
		statusLine = HelpStyle.Render(a.status)
	}

	var body string
	if len(a.historyList.Items()) > 0 {
		body = a.historyList.View()
	} else {
		body = HelpStyle.Render(MsgHistoryEmpty)
	}

	content := lipgloss.JoinVertical(
		lipgloss.Top,
		HeaderStyle.Render("› history"),
		"",
		historyInput,
		statusLine,
		"",
		body,
	)

	return lipgloss.NewStyle().
		Width(a.width).
		Height(a.height - 3).
		MaxHeight(a.height - 3).
		Render(content)
}

func (a *App) viewDeleteConfirm() string {
	songName := "Unknown Song"
	if a.songToDelete != nil {
		songName = a.songToDelete.Artist + " – " + a.songToDelete.Title
	}

	modalWidth := (a.width * 4) / 5
	if modalWidth < 20 {
		modalWidth = a.width
	}
	songName = truncateEnd(songName, modalWidth-4)

	return lipgloss.NewStyle().
		Width(a.width).
		Height(a.height-3).
		Align(lipgloss.Center, lipgloss.Center).
		Render(
			lipgloss.JoinVertical(
				lipgloss.Center,
				ErrorMessageStyle.Render("⚠ Remove From History"),
				"",
				lipgloss.NewStyle().
					Foreground(ExplicitColor).
					Bold(true).
					Width(modalWidth).
					Align(lipgloss.Center).
					Render(songName),
				"",
				"",
				HelpStyle.Render("Enter: confirm • Esc: cancel"),
			),
		)
}

func (a *App) getCustomStatusBar() string {
	commands := a.keyHandler.GetHelpForCurrentView()

	if a.err != nil {
		errorMsg := ErrorMessageStyle.Render(fmt.Sprintf("✗ %v", a.err))
		return lipgloss.NewStyle().
			Width(a.width).
			Padding(0, 1).
			Foreground(MutedColor).
			Render(errorMsg)
	}

	if len(commands) == 0 {
		return ""
	}

	commandText := strings.Join(commands, " • ")
	return lipgloss.NewStyle().
		Width(a.width).
		Padding(0, 1).
		Foreground(MutedColor).
		Render(commandText)
}

type suggestionItem struct {
	s lyricsapi.Suggestion
}

func (i suggestionItem) Title() string {
	title := i.s.Title
	if i.s.Explicit {
		title += " " + ExplicitBadgeStyle.Render("[E]")
	}
	return title
}

func (i suggestionItem) Description() string {
	desc := i.s.Artist
	if i.s.AlbumTitle != "" {
		desc += " • " + i.s.AlbumTitle
	}
	return desc
}

func (i suggestionItem) FilterValue() string { return i.s.Title + " " + i.s.Artist }

type historyItem struct {
	song *storage.Song
}

func (i historyItem) Title() string {
	title := i.song.Title
	if i.song.Explicit {
		title += " " + ExplicitBadgeStyle.Render("[E]")
	}
	return title
}

func (i historyItem) Description() string {
	desc := i.song.Artist
	if i.song.AlbumTitle != "" {
		desc += " • " + i.song.AlbumTitle
	}
	if !i.song.ViewedAt.IsZero() {
		desc += TimeStyle.Render(" • " + i.song.ViewedAt.Format("Jan 2, 15:04"))
	}
	return desc
}

func (i historyItem) FilterValue() string { return i.song.Title + " " + i.song.Artist }

type suggestDebounceMsg struct {
	seq uint64
}

type suggestionsMsg struct {
	seq         uint64
	suggestions []lyricsapi.Suggestion
	err         error
}

type songLoadedMsg struct {
	seq  uint64
	song *storage.Song
	err  error
}

type songRenderedMsg struct {
	content string
}

type historyLoadedMsg struct {
	songs []*storage.Song
}

type historyResultsMsg struct {
	results []*search.Result
}

type songDeletedMsg struct {
	err error
}

type errorMsg struct {
	err error
}
