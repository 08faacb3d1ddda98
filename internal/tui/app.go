package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/f3rmion/marketlab/internal/config"
	"github.com/f3rmion/marketlab/internal/controller"
	"github.com/f3rmion/marketlab/internal/format"
	"github.com/f3rmion/marketlab/internal/tui/views"
)

// ViewType represents the current active view
type ViewType int

const (
	ViewLookup ViewType = iota
	ViewSettings
)

// MenuItem represents a sidebar menu entry
type MenuItem struct {
	Label    string
	View     ViewType
	Shortcut string
}

// ViewSwitchMsg requests a view change
type ViewSwitchMsg struct {
	View ViewType
}

// AppModel is the main TUI model
type AppModel struct {
	// Layout state
	width        int
	height       int
	sidebarWidth int
	ready        bool

	// Navigation
	currentView   ViewType
	menuItems     []MenuItem
	selectedMenu  int
	sidebarActive bool

	// Sub-models (views)
	lookupView   views.LookupModel
	settingsView views.SettingsModel

	// Help overlay
	showHelp bool
}

// NewApp creates the TUI application. cfg supplies the endpoint label and
// quick-select tickers; configDir is shown in the settings view.
func NewApp(ctrl *controller.Controller, f *format.Formatter, cfg *config.Config, configDir string) AppModel {
	if cfg == nil {
		cfg = config.Default()
	}

	menuItems := []MenuItem{
		{Label: "Lookup", View: ViewLookup, Shortcut: "1"},
		{Label: "Settings", View: ViewSettings, Shortcut: "2"},
	}

	return AppModel{
		sidebarWidth: 18,
		currentView:  ViewLookup,
		menuItems:    menuItems,

		lookupView:   views.NewLookupModel(ctrl, f, cfg.Endpoint, cfg.QuickTickers),
		settingsView: views.NewSettingsModel(cfg, configDir),
	}
}

// Lookup exposes the lookup view, mainly for tests.
func (m AppModel) Lookup() views.LookupModel {
	return m.lookupView
}

// CurrentView returns the active view.
func (m AppModel) CurrentView() ViewType {
	return m.currentView
}

// Init initializes the model
func (m AppModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Help overlay - any key closes it
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}

		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "f1":
			m.showHelp = true
			return m, nil
		case "esc":
			m.sidebarActive = !m.sidebarActive
			return m, nil
		}

		if m.sidebarActive {
			return m.updateSidebar(msg)
		}

		// Printable keys belong to the ticker input on the lookup view.
		if m.currentView == ViewSettings {
			switch msg.String() {
			case "?":
				m.showHelp = true
				return m, nil
			case "q":
				return m, tea.Quit
			}
		}

		var cmd tea.Cmd
		switch m.currentView {
		case ViewLookup:
			m.lookupView, cmd = m.lookupView.Update(msg)
		case ViewSettings:
			m.settingsView, cmd = m.settingsView.Update(msg)
		}
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		contentWidth := m.width - m.sidebarWidth - 4
		contentHeight := m.height - 2

		m.lookupView.SetSize(contentWidth, contentHeight)
		m.settingsView.SetSize(contentWidth, contentHeight)
		return m, nil

	case ViewSwitchMsg:
		m.switchTo(msg.View)
		return m, nil
	}

	// Responses, spinner ticks and timers always go to the lookup view so
	// a request keeps resolving while another view is shown.
	var cmd tea.Cmd
	m.lookupView, cmd = m.lookupView.Update(msg)
	return m, cmd
}

func (m AppModel) updateSidebar(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "?":
		m.showHelp = true
	case "j", "down":
		if m.selectedMenu < len(m.menuItems)-1 {
			m.selectedMenu++
		}
	case "k", "up":
		if m.selectedMenu > 0 {
			m.selectedMenu--
		}
	case "enter", "l", "right":
		m.switchTo(m.menuItems[m.selectedMenu].View)
	default:
		for _, item := range m.menuItems {
			if msg.String() == item.Shortcut {
				m.switchTo(item.View)
				break
			}
		}
	}
	return m, nil
}

func (m *AppModel) switchTo(v ViewType) {
	m.currentView = v
	for i, item := range m.menuItems {
		if item.View == v {
			m.selectedMenu = i
			break
		}
	}
	m.sidebarActive = false
}

// View renders the UI
func (m AppModel) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	sidebar := m.renderSidebar()

	var content string
	switch m.currentView {
	case ViewLookup:
		content = m.lookupView.View()
	case ViewSettings:
		content = m.settingsView.View()
	}

	contentWidth := m.width - m.sidebarWidth - 4
	mainContent := ContentStyle.
		Width(contentWidth).
		Height(m.height - 2).
		Render(content)

	return lipgloss.JoinHorizontal(lipgloss.Top, sidebar, mainContent)
}

// renderSidebar renders the sidebar navigation
func (m AppModel) renderSidebar() string {
	var items []string

	items = append(items, SidebarTitleStyle.Render(" marketlab "))

	// Derived from the controller's phase, never tracked separately.
	if m.lookupView.Busy() {
		items = append(items, BusyStyle.Render("● loading"))
	} else {
		items = append(items, "")
	}

	for i, item := range m.menuItems {
		label := item.Shortcut + ". " + item.Label

		style := SidebarItemStyle
		if i == m.selectedMenu {
			if m.sidebarActive {
				style = SidebarItemActiveStyle
			} else {
				style = SidebarItemStyle.Bold(true).Foreground(ColorSecondary)
			}
		}
		items = append(items, style.Render(label))
	}

	usedHeight := len(items) + 4
	for i := 0; i < m.height-usedHeight-2; i++ {
		items = append(items, "")
	}

	items = append(items, SidebarHelpStyle.Render("f1 Help  esc Menu"))

	content := lipgloss.JoinVertical(lipgloss.Left, items...)

	return SidebarStyle.
		Width(m.sidebarWidth).
		Height(m.height - 2).
		Render(content)
}

type helpEntry struct {
	key  string
	desc string
}

var helpSections = []struct {
	title   string
	entries []helpEntry
}{
	{"Global Keys", []helpEntry{
		{"esc", "Toggle sidebar focus"},
		{"1-2", "Switch views (sidebar)"},
		{"f1 / ?", "Show this help"},
		{"ctrl+c", "Quit"},
	}},
	{"Lookup View", []helpEntry{
		{"enter", "Search prices"},
		{"ctrl+l", "Clear input and results"},
		{"ctrl+x", "Cancel the running request"},
		{"alt+1-9", "Add a quick pick"},
		{"tab", "Focus quick picks"},
		{"↑/↓", "Select result"},
		{"pgup/pgdn", "Scroll results"},
		{"ctrl+y", "Copy results"},
	}},
	{"Settings View", []helpEntry{
		{"tab/←→", "Switch tabs"},
		{"j/k", "Scroll"},
	}},
}

// renderHelp renders the help overlay
func (m AppModel) renderHelp() string {
	var b strings.Builder
	b.WriteString(HelpTitleStyle.Render("marketlab - ETF price lookup"))
	b.WriteString("\n")

	for _, section := range helpSections {
		b.WriteString(HelpSectionStyle.Render(section.title))
		b.WriteString("\n")
		for _, e := range section.entries {
			b.WriteString(HelpKeyStyle.Render(e.key))
			b.WriteString(HelpDescStyle.Render(e.desc))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(ColorMuted).Italic(true).Render("Press any key to close"))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, HelpBoxStyle.Render(b.String()))
}
