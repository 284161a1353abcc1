package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nvoss/verso/internal/freq"
)

// renderChart draws a horizontal bar chart of the frequency table. Bars
// scale against the largest count; entries keep the table's order.
func renderChart(table freq.Table, maxBars, barWidth int) string {
	if len(table) == 0 {
		return HelpStyle.Render("No words at this threshold")
	}

	shown := table.Top(maxBars)
	max := shown.Max()
	if max == 0 {
		return HelpStyle.Render("No words at this threshold")
	}

	labelWidth := 0
	for _, e := range shown {
		if n := len([]rune(e.Word)); n > labelWidth {
			labelWidth = n
		}
	}
	if labelWidth > 14 {
		labelWidth = 14
	}

	rows := make([]string, 0, len(shown))
	for _, e := range shown {
		barLen := e.Count * barWidth / max
		if barLen < 1 {
			barLen = 1
		}

		row := BarLabelStyle.Render(padRight(e.Word, labelWidth)) +
			" " +
			BarStyle.Render(strings.Repeat("█", barLen)) +
			" " +
			BarCountStyle.Render(strconv.Itoa(e.Count))
		rows = append(rows, row)
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
