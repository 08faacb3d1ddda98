package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/f3rmion/marketlab/internal/controller"
	"github.com/f3rmion/marketlab/internal/tui"
	"github.com/spf13/cobra"
)

var interactiveCmd = &cobra.Command{
	Use:     "ui",
	Aliases: []string{"i", "interactive"},
	Short:   "Launch interactive TUI",
	Long: `Launch the interactive terminal UI.

Controls:
  Enter    Search prices
  Ctrl+L   Clear input and results
  Ctrl+X   Cancel the running request
  Alt+1-9  Add a quick-pick ticker
  Ctrl+Y   Copy results
  Esc      Sidebar
  Ctrl+C   Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(interactiveCmd)
}

// runTUI launches the TUI application.
func runTUI(cmd *cobra.Command, args []string) error {
	s, err := loadSession()
	if err != nil {
		return err
	}
	defer s.Close()

	client, err := s.client()
	if err != nil {
		return err
	}
	f, err := s.formatter()
	if err != nil {
		return err
	}

	ctrl := controller.New(client,
		controller.WithTimeout(s.cfg.Timeout),
		controller.WithLogger(s.log),
	)

	s.log.Info().
		Str("endpoint", client.BaseURL()).
		Dur("timeout", s.cfg.Timeout).
		Str("locale", f.Locale().String()).
		Msg("starting ui")

	p := tea.NewProgram(
		tui.NewApp(ctrl, f, s.cfg, s.dir),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}

	return nil
}
