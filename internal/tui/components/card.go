// Package components provides shared UI components for the TUI.
package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/f3rmion/marketlab/internal/format"
	"github.com/mattn/go-runewidth"
)

var (
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#3d5a80")).
			Padding(0, 1)

	cardSelectedStyle = cardStyle.
				BorderForeground(lipgloss.Color("#ffe66d"))

	cardTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#f1faee"))

	pillStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#1a1a2e")).
			Background(lipgloss.Color("#a8e6cf")).
			Padding(0, 1)

	pillWarnStyle = pillStyle.
			Background(lipgloss.Color("#ffb86b"))

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#a8dadc"))

	priceStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffe66d"))

	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")).
			Italic(true)

	footerErrorStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#ff6b6b"))
)

// minCardWidth keeps cards legible on narrow terminals.
const minCardWidth = 24

// RenderCard draws one result card, width columns wide including the border.
func RenderCard(c format.Card, selected bool, width int) string {
	width = max(width, minCardWidth)
	inner := width - cardStyle.GetHorizontalFrameSize()

	pill := pillWarnStyle.Render(c.Status)
	if c.Found {
		pill = pillStyle.Render(c.Status)
	}

	titleRoom := inner - lipgloss.Width(pill) - 1
	head := cardTitleStyle.Render(runewidth.Truncate(c.Title, max(titleRoom, 1), "…")) + " " + pill

	lines := []string{head}
	if len(c.Meta) > 0 {
		lines = append(lines, metaStyle.Render(runewidth.Truncate(strings.Join(c.Meta, " · "), inner, "…")))
	}
	lines = append(lines, priceStyle.Render(c.Price))

	footer := footerStyle
	if c.Failed {
		footer = footerErrorStyle
	}
	lines = append(lines, footer.Render(runewidth.Truncate(c.Footer, inner, "…")))

	style := cardStyle
	if selected {
		style = cardSelectedStyle
	}
	return style.Width(width - style.GetHorizontalBorderSize()).Render(strings.Join(lines, "\n"))
}

// Summary lays cards out as an aligned plain-text table, one row per
// card. Used for the clipboard and non-interactive output.
func Summary(cards []format.Card) string {
	if len(cards) == 0 {
		return ""
	}

	widths := make([]int, 3)
	for _, c := range cards {
		for i, cell := range []string{c.Title, c.Status, c.Price} {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}

	var b strings.Builder
	for _, c := range cards {
		cells := []string{c.Title, c.Status, c.Price}
		for i, cell := range cells {
			b.WriteString(runewidth.FillRight(cell, widths[i]))
			b.WriteString("  ")
		}
		b.WriteString(c.Footer)
		b.WriteString("\n")
	}
	return b.String()
}
