// Package views provides the individual views for the unified TUI.
package views

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			Background(lipgloss.Color("#1a1a2e")).
			Padding(0, 1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ecdc4"))

	badgeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#a8dadc")).
			Background(lipgloss.Color("#2d3436")).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#a8dadc")).
			Bold(true)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f1faee"))

	chipStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#3d5a80")).
			Padding(0, 1)

	chipActiveStyle = chipStyle.
			Bold(true).
			Foreground(lipgloss.Color("#ffe66d")).
			BorderForeground(lipgloss.Color("#ffe66d"))

	infoBannerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ecdc4"))

	errorBannerStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#ff6b6b"))

	bannerLabelStyle = lipgloss.NewStyle().Bold(true)

	bigTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffe66d"))

	emptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")).
			Italic(true).
			Padding(1, 2)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	loadingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffe66d")).
			Bold(true).
			Italic(true)

	copiedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#a8e6cf")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ff6b6b")).
			Bold(true)
)
