package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/f3rmion/marketlab/internal/clipboard"
	"github.com/f3rmion/marketlab/internal/controller"
	"github.com/f3rmion/marketlab/internal/format"
	"github.com/f3rmion/marketlab/internal/market"
	"github.com/f3rmion/marketlab/internal/tickers"
	"github.com/f3rmion/marketlab/internal/tui/bigchar"
	"github.com/f3rmion/marketlab/internal/tui/components"
)

// EmptyResults is shown in place of the result list before any lookup.
const EmptyResults = `No results yet. Enter a ticker and press Enter to search prices.`

const (
	// chromeHeight is the number of lines around the result list.
	chromeHeight  = 19
	bigTitleRows  = 4
	maxCardWidth  = 72
	minListHeight = 4
)

type clearCopiedMsg struct{}

func clearCopiedAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return clearCopiedMsg{}
	})
}

// LookupModel is the ticker lookup view model.
type LookupModel struct {
	input   textinput.Model
	spinner spinner.Model
	list    viewport.Model

	ctrl      *controller.Controller
	formatter *format.Formatter
	clip      clipboard.Writer
	canCopy   bool
	endpoint  string
	quick     []string

	// Quick-select row focus
	chipsFocused bool
	chip         int

	// Index of the highlighted result card
	selected int

	copied  bool
	copyErr error

	width  int
	height int
}

// NewLookupModel creates a new lookup view model.
func NewLookupModel(ctrl *controller.Controller, f *format.Formatter, endpoint string, quick []string) LookupModel {
	ti := textinput.New()
	ti.Placeholder = "Example: IWDA SWDA VUAA"
	ti.Focus()
	ti.CharLimit = 256
	ti.Width = 48
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#4ecdc4"))
	ti.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffe66d"))

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = loadingStyle

	if f == nil {
		f = format.Default()
	}

	return LookupModel{
		input:     ti,
		spinner:   sp,
		list:      viewport.New(maxCardWidth, minListHeight),
		ctrl:      ctrl,
		formatter: f,
		clip:      clipboard.System,
		canCopy:   clipboard.Available(),
		endpoint:  endpoint,
		quick:     append([]string(nil), quick...),
	}
}

// SetClipboard replaces the clipboard used by ctrl+y. A nil writer
// disables copying.
func (m *LookupModel) SetClipboard(w clipboard.Writer) {
	m.clip = w
	m.canCopy = w != nil
}

// SetSize updates the view dimensions.
func (m *LookupModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = max(min(width-4, 64), 16)
	m.list.Width = m.cardWidth()
	m.list.Height = max(height-chromeHeight, minListHeight)
	m.sync()
}

// State returns the current request state.
func (m LookupModel) State() market.RequestState {
	return m.ctrl.State()
}

// Busy reports whether a lookup is in flight.
func (m LookupModel) Busy() bool {
	return m.ctrl.State().Busy()
}

// Query returns the current input text.
func (m LookupModel) Query() string {
	return m.input.Value()
}

// Selected returns the index of the highlighted result.
func (m LookupModel) Selected() int {
	return m.selected
}

// Update handles messages.
func (m LookupModel) Update(msg tea.Msg) (LookupModel, tea.Cmd) {
	switch msg := msg.(type) {
	case controller.ResponseMsg:
		if m.ctrl.Resolve(msg) {
			m.selected = 0
			m.list.GotoTop()
		}
		m.sync()
		return m, nil

	case spinner.TickMsg:
		if !m.Busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case clearCopiedMsg:
		m.copied = false
		return m, nil

	case tea.KeyMsg:
		if n, ok := quickIndex(msg.String()); ok {
			m.appendQuick(n)
			return m, nil
		}

		switch msg.String() {
		case "enter":
			if m.chipsFocused {
				m.appendQuick(m.chip)
				return m, nil
			}
			return m, m.submit()
		case "ctrl+l":
			m.clear()
			return m, nil
		case "ctrl+x":
			m.ctrl.Cancel()
			m.sync()
			return m, nil
		case "ctrl+y":
			return m, m.copy()
		case "tab":
			m.toggleChips()
			return m, nil
		case "up":
			m.move(-1)
			return m, nil
		case "down":
			m.move(1)
			return m, nil
		case "pgup":
			m.list.SetYOffset(m.list.YOffset - m.list.Height)
			return m, nil
		case "pgdown":
			m.list.SetYOffset(m.list.YOffset + m.list.Height)
			return m, nil
		}

		if m.chipsFocused {
			switch msg.String() {
			case "left", "h":
				m.chip = (m.chip - 1 + len(m.quick)) % len(m.quick)
			case "right", "l":
				m.chip = (m.chip + 1) % len(m.quick)
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *LookupModel) submit() tea.Cmd {
	cmd := m.ctrl.Submit(m.input.Value())
	m.sync()
	if cmd == nil {
		return nil
	}
	m.selected = 0
	m.copied = false
	m.copyErr = nil
	return tea.Batch(cmd, m.spinner.Tick)
}

func (m *LookupModel) clear() {
	m.ctrl.Clear()
	m.input.SetValue("")
	m.selected = 0
	m.copied = false
	m.copyErr = nil
	if m.chipsFocused {
		m.toggleChips()
	}
	m.list.GotoTop()
	m.sync()
}

func (m *LookupModel) appendQuick(i int) {
	if i < 0 || i >= len(m.quick) {
		return
	}
	m.input.SetValue(tickers.Append(m.input.Value(), m.quick[i]))
	m.input.CursorEnd()
}

func (m *LookupModel) toggleChips() {
	if len(m.quick) == 0 {
		return
	}
	m.chipsFocused = !m.chipsFocused
	if m.chipsFocused {
		m.input.Blur()
	} else {
		m.input.Focus()
	}
}

func (m *LookupModel) move(delta int) {
	n := len(m.ctrl.State().Results)
	if n == 0 {
		return
	}
	m.selected = min(max(m.selected+delta, 0), n-1)
	m.sync()
}

func (m *LookupModel) copy() tea.Cmd {
	cards := m.formatter.Cards(m.ctrl.State().Results)
	if len(cards) == 0 || !m.canCopy {
		return nil
	}
	if err := m.clip.Write(components.Summary(cards)); err != nil {
		m.copyErr = err
		return nil
	}
	m.copyErr = nil
	m.copied = true
	return clearCopiedAfter(2 * time.Second)
}

// sync rebuilds the result list and keeps the selected card in view.
func (m *LookupModel) sync() {
	cards := m.renderCards()
	m.list.SetContent(strings.Join(cards, "\n"))

	if len(cards) == 0 {
		m.selected = 0
		return
	}
	m.selected = min(m.selected, len(cards)-1)

	top := 0
	for _, c := range cards[:m.selected] {
		top += lipgloss.Height(c)
	}
	bottom := top + lipgloss.Height(cards[m.selected])

	switch {
	case top < m.list.YOffset:
		m.list.SetYOffset(top)
	case bottom > m.list.YOffset+m.list.Height:
		m.list.SetYOffset(bottom - m.list.Height)
	}
}

// renderCards draws one card per result, in order.
func (m LookupModel) renderCards() []string {
	cards := m.formatter.Cards(m.ctrl.State().Results)
	out := make([]string, 0, len(cards))
	for i, c := range cards {
		out = append(out, components.RenderCard(c, i == m.selected, m.cardWidth()))
	}
	return out
}

func (m LookupModel) cardWidth() int {
	if m.width <= 0 {
		return maxCardWidth
	}
	return min(m.width-2, maxCardWidth)
}

// View renders the lookup view.
func (m LookupModel) View() string {
	state := m.ctrl.State()
	var b strings.Builder

	// Header
	b.WriteString(titleStyle.Render("Markets Lab"))
	b.WriteString("  ")
	b.WriteString(badgeStyle.Render("POST " + strings.TrimRight(m.endpoint, "/") + "/api/etf"))
	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render("Enter one or more tickers, send the request and see the prices."))
	b.WriteString("\n\n")

	// Form
	b.WriteString(labelStyle.Render("Tickers (separate with space or comma)"))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(m.renderActions(state))
	b.WriteString("\n\n")

	// Quick-select
	if len(m.quick) > 0 {
		b.WriteString(m.renderChips())
		b.WriteString("\n")
	}

	// Status banner
	b.WriteString(renderStatus(state))
	b.WriteString("\n\n")

	// Results
	b.WriteString(labelStyle.Render(fmt.Sprintf("Results (%d)", len(state.Results))))
	if m.copied {
		b.WriteString("  " + copiedStyle.Render("Copied!"))
	} else if m.copyErr != nil {
		b.WriteString("  " + errorStyle.Render("Copy failed: "+m.copyErr.Error()))
	}
	b.WriteString("\n")

	if len(state.Results) == 0 {
		b.WriteString(emptyStyle.Render(EmptyResults))
		b.WriteString("\n")
	} else {
		if art := m.renderBigTitle(state); art != "" {
			b.WriteString(art)
			b.WriteString("\n")
		}
		b.WriteString(m.list.View())
		b.WriteString("\n")
	}

	// Help
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.helpLine(state)))

	return b.String()
}

func (m LookupModel) renderActions(state market.RequestState) string {
	// The busy indicator is a projection of the phase, never stored.
	if state.Busy() {
		return m.spinner.View() + " " + loadingStyle.Render("Loading...") + "  " + helpStyle.Render("ctrl+x cancel")
	}
	return valueStyle.Render("enter") + helpStyle.Render(" search prices  ") +
		valueStyle.Render("ctrl+l") + helpStyle.Render(" clear")
}

func (m LookupModel) renderChips() string {
	chips := []string{helpStyle.Render("Quick picks: ")}
	for i, t := range m.quick {
		style := chipStyle
		if m.chipsFocused && i == m.chip {
			style = chipActiveStyle
		}
		label := t
		if i < 9 {
			label = fmt.Sprintf("%d %s", i+1, t)
		}
		chips = append(chips, style.Render(label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, chips...)
}

func (m LookupModel) renderBigTitle(state market.RequestState) string {
	if m.selected >= len(state.Results) || m.height < chromeHeight+minListHeight+bigTitleRows {
		return ""
	}
	title := format.Title(state.Results[m.selected])
	art := bigchar.GetCached(title, bigTitleRows, m.cardWidth())
	if art == "" {
		return ""
	}
	return bigTitleStyle.Render(art)
}

func (m LookupModel) helpLine(state market.RequestState) string {
	// Submits are ignored until the current request settles.
	if state.Busy() {
		return "request in progress: wait or ctrl+x to cancel • esc menu"
	}

	parts := []string{"alt+1-9 quick pick", "tab chips"}
	if len(state.Results) > 1 {
		parts = append(parts, "↑/↓ select", "pgup/pgdn scroll")
	}
	if len(state.Results) > 0 && m.canCopy {
		parts = append(parts, "ctrl+y copy")
	}
	parts = append(parts, "esc menu")
	return strings.Join(parts, " • ")
}

// renderStatus draws the banner colored by tone. Empty messages render
// as an empty line.
func renderStatus(state market.RequestState) string {
	if state.Message == "" {
		return ""
	}
	if state.Tone == market.ToneError {
		return errorBannerStyle.Render(bannerLabelStyle.Render("Error:") + " " + state.Message)
	}
	return infoBannerStyle.Render(bannerLabelStyle.Render("Info:") + " " + state.Message)
}

// quickIndex maps alt+1..alt+9 to a zero-based chip index.
func quickIndex(key string) (int, bool) {
	digit, ok := strings.CutPrefix(key, "alt+")
	if !ok || len(digit) != 1 || digit[0] < '1' || digit[0] > '9' {
		return 0, false
	}
	return int(digit[0] - '1'), true
}
