package views

import (
	"fmt"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/f3rmion/marketlab/internal/config"
)

// Settings view styles
var (
	settingsTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#FF6B6B")).
				MarginBottom(1)

	settingsPathStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#666666")).
				Italic(true).
				MarginBottom(1)

	settingsTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#888888")).
				Padding(0, 2)

	settingsTabActiveStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#ffe66d")).
				Background(lipgloss.Color("#2d3436")).
				Padding(0, 2)

	settingsHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#a8dadc"))

	settingsKeyStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#a8dadc")).
				Width(16)

	settingsRowStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#f1faee"))

	settingsMutedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#666666"))

	settingsHelpStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#666666")).
				MarginTop(1)
)

var settingsTabs = []string{"Backend", "Quick picks"}

// SettingsModel is the read-only settings view.
type SettingsModel struct {
	config    *config.Config
	configDir string

	// Tabs: 0=Backend, 1=Quick picks
	tab     int
	scrollY int

	width  int
	height int
}

// NewSettingsModel creates a new settings model.
func NewSettingsModel(cfg *config.Config, configDir string) SettingsModel {
	return SettingsModel{
		config:    cfg,
		configDir: configDir,
	}
}

// SetSize updates the view dimensions.
func (m *SettingsModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Tab returns the active tab index.
func (m SettingsModel) Tab() int {
	return m.tab
}

// Update handles messages.
func (m SettingsModel) Update(msg tea.Msg) (SettingsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "right", "l":
			m.tab = (m.tab + 1) % len(settingsTabs)
			m.scrollY = 0
		case "shift+tab", "left", "h":
			m.tab = (m.tab - 1 + len(settingsTabs)) % len(settingsTabs)
			m.scrollY = 0
		case "j", "down":
			m.scrollY++
		case "k", "up":
			if m.scrollY > 0 {
				m.scrollY--
			}
		case "g":
			m.scrollY = 0
		}
	}
	return m, nil
}

// View renders the settings view.
func (m SettingsModel) View() string {
	var b strings.Builder

	b.WriteString(settingsTitleStyle.Render("marketlab configuration"))
	b.WriteString("\n")
	b.WriteString(settingsPathStyle.Render("Config: " + filepath.Join(m.configDir, config.FileName)))
	b.WriteString("\n\n")

	// Tabs
	var tabViews []string
	for i, t := range settingsTabs {
		style := settingsTabStyle
		if i == m.tab {
			style = settingsTabActiveStyle
		}
		tabViews = append(tabViews, style.Render(t))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabViews...))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("#3d5a80")).Render(strings.Repeat("─", max(min(m.width-4, 60), 10))))
	b.WriteString("\n\n")

	if m.config == nil {
		b.WriteString(settingsMutedStyle.Render("No configuration loaded"))
		b.WriteString("\n")
		b.WriteString(settingsMutedStyle.Render("Run 'marketlab init' to create a config file"))
	} else if m.tab == 0 {
		b.WriteString(m.renderBackend())
	} else {
		b.WriteString(m.renderQuick())
	}

	b.WriteString("\n")
	b.WriteString(settingsHelpStyle.Render("tab/←→: switch tabs • j/k: scroll • edit the file and restart to apply"))

	return b.String()
}

func (m SettingsModel) renderBackend() string {
	rows := [][2]string{
		{"Endpoint", m.config.Endpoint},
		{"Request", "POST " + strings.TrimRight(m.config.Endpoint, "/") + "/api/etf"},
		{"Timeout", m.config.Timeout.String()},
		{"Locale", m.config.Locale},
		{"Log level", m.config.Log.Level},
		{"Log file", m.config.LogPath(m.configDir)},
	}

	var b strings.Builder
	b.WriteString(settingsHeaderStyle.Render("Backend"))
	b.WriteString("\n\n")
	for _, r := range rows {
		b.WriteString(settingsKeyStyle.Render(r[0]))
		b.WriteString(settingsRowStyle.Render(r[1]))
		b.WriteString("\n")
	}
	return b.String()
}

func (m SettingsModel) renderQuick() string {
	var b strings.Builder

	if len(m.config.QuickTickers) == 0 {
		b.WriteString(settingsMutedStyle.Render("No quick picks configured"))
		b.WriteString("\n")
		b.WriteString(settingsMutedStyle.Render("Add quick_tickers to the config file"))
		return b.String()
	}

	b.WriteString(settingsHeaderStyle.Render(fmt.Sprintf("Quick picks (%d configured)", len(m.config.QuickTickers))))
	b.WriteString("\n\n")

	b.WriteString(settingsMutedStyle.Render(fmt.Sprintf("%-8s %s", "Key", "Ticker")))
	b.WriteString("\n")
	b.WriteString(settingsMutedStyle.Render(strings.Repeat("─", 30)))
	b.WriteString("\n")

	visibleHeight := max(m.height-12, 5)
	start := m.scrollY
	if start >= len(m.config.QuickTickers) {
		start = 0
	}
	end := min(start+visibleHeight, len(m.config.QuickTickers))

	for i := start; i < end; i++ {
		key := "tab"
		if i < 9 {
			key = fmt.Sprintf("alt+%d", i+1)
		}
		b.WriteString(settingsRowStyle.Render(fmt.Sprintf("%-8s %s", key, m.config.QuickTickers[i])))
		b.WriteString("\n")
	}

	if len(m.config.QuickTickers) > visibleHeight {
		b.WriteString("\n")
		b.WriteString(settingsMutedStyle.Render(fmt.Sprintf("Showing %d-%d of %d", start+1, end, len(m.config.QuickTickers))))
	}

	return b.String()
}
