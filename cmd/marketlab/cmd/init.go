package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/f3rmion/marketlab/internal/config"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize marketlab configuration",
	Long: `Write a commented config.yaml to your config directory.

The file sets the backend endpoint, request timeout, price locale, the
quick-pick tickers and logging. Edit it, then run 'marketlab'.`,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().Bool("force", false, "overwrite existing configuration")
}

func runInit(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")
	configDir := getConfigDir()

	path, err := writeTemplate(configDir, force)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created %s\n\n", path)
	fmt.Fprintln(out, "Next steps:")
	fmt.Fprintln(out, "  1. Set endpoint to your price backend")
	fmt.Fprintln(out, "  2. Run 'marketlab lookup IWDA' to test the connection")
	fmt.Fprintln(out, "  3. Run 'marketlab' to open the TUI")

	return nil
}

// writeTemplate writes config.Template into dir, refusing to replace an
// existing file unless force is set.
func writeTemplate(dir string, force bool) (string, error) {
	path := filepath.Join(dir, config.FileName)

	if _, err := os.Stat(path); err == nil && !force {
		return "", fmt.Errorf("config file already exists: %s\nUse --force to overwrite", path)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("checking config file: %w", err)
	}

	if err := config.EnsureDir(dir); err != nil {
		return "", fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(config.Template), 0644); err != nil {
		return "", fmt.Errorf("writing config file: %w", err)
	}

	return path, nil
}
