package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

const AppName = "verso"

// ASCII art logo lines for verso - canonical definition
var LogoLines = []string{
	"▄   ▄ ▄▄▄▄▄ ▄▄▄▄▄  ▄▄▄▄ ▄▄▄▄▄",
	"█   █ █     █   █ █     █   █",
	"▀█ █▀ █▀▀▀  █▀▀▀▄ ▀▀▀▀█ █   █",
	" ▀█▀  █▄▄▄▄ █   █ ▄▄▄▄█ █▄▄▄█",
}

// Banner gradient colors
var BannerColors = []lipgloss.Color{
	lipgloss.Color("#FF6B6B"),
	lipgloss.Color("#FFA86B"),
	lipgloss.Color("#95E1D3"),
	lipgloss.Color("#4ECDC4"),
	lipgloss.Color("#FF6B6B"),
}

var (
	PrimaryColor   = lipgloss.Color("#FF6B6B")
	SecondaryColor = lipgloss.Color("#4ECDC4")
	AccentColor    = lipgloss.Color("#95E1D3")

	TextColor  = lipgloss.Color("#EAEAEA")
	MutedColor = lipgloss.Color("#94A3B8")

	ExplicitColor = lipgloss.Color("#FFE66D")
	ErrorColor    = lipgloss.Color("#EF4444")
	SuccessColor  = lipgloss.Color("#10B981")
)

// Styled components
var (
	LogoStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true)

	TitleStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			Bold(true).
			Padding(0, 2)

	HeaderStyle = lipgloss.NewStyle().
			Foreground(SecondaryColor).
			Bold(true)

	HelpStyle = lipgloss.NewStyle().
			Foreground(MutedColor).
			Italic(true)

	ExplicitBadgeStyle = lipgloss.NewStyle().
				Foreground(ExplicitColor).
				Bold(true)

	ErrorMessageStyle = lipgloss.NewStyle().
				Foreground(ErrorColor).
				Bold(true)

	SongTitleStyle = lipgloss.NewStyle().
			Foreground(SecondaryColor).
			Bold(true)

	TimeStyle = lipgloss.NewStyle().
			Foreground(MutedColor).
			Faint(true)

	BarStyle = lipgloss.NewStyle().
			Foreground(SecondaryColor)

	BarLabelStyle = lipgloss.NewStyle().
			Foreground(TextColor)

	BarCountStyle = lipgloss.NewStyle().
			Foreground(MutedColor)
)

func GetWelcomeMessage() string {
	return GetCompactBanner("Type a song title to search")
}

func GetCompactBanner(message string) string {
	var coloredLines []string
	for _, line := range LogoLines {
		coloredLines = append(coloredLines, LogoStyle.Render(line))
	}

	logo := lipgloss.JoinVertical(lipgloss.Center, coloredLines...)

	return lipgloss.JoinVertical(
		lipgloss.Center,
		logo,
		"",
		HelpStyle.Render(message),
	)
}

func ShowBanner(version string) {
	lines := make([]string, len(LogoLines)+1)
	copy(lines, LogoLines)
	lines[len(LogoLines)] = ""

	versionTag := version
	if versionTag != "" && versionTag != "dev" {
		if versionTag[0] != 'v' && versionTag[0] != 'V' {
			versionTag = "v" + versionTag
		}
		lines = append(lines, fmt.Sprintf("    Lyrics Search %s", versionTag))
	} else {
		lines = append(lines, "    Lyrics Search")
	}

	// Apply gradient coloring to each line
	var coloredLines []string
	for i, line := range lines {
		if line == "" {
			coloredLines = append(coloredLines, line)
			continue
		}

		colorIdx := i % len(BannerColors)
		style := lipgloss.NewStyle().
			Foreground(BannerColors[colorIdx]).
			Bold(i < len(LogoLines))

		coloredLines = append(coloredLines, style.Render(line))
	}

	borderStyle := lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(lipgloss.Color("#4ECDC4")).
		Padding(1, 3).
		MarginTop(1)

	banner := lipgloss.JoinVertical(lipgloss.Center, coloredLines...)
	output := borderStyle.Render(banner)

	fmt.Println(lipgloss.NewStyle().
		Width(70).
		Align(lipgloss.Center).
		MarginBottom(1).
		Render(output))
}
