// Package cmd contains all CLI commands for marketlab.
package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/f3rmion/marketlab/internal/backend"
	"github.com/f3rmion/marketlab/internal/config"
	"github.com/f3rmion/marketlab/internal/format"
	"github.com/f3rmion/marketlab/internal/logging"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgDir string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "marketlab",
	Short: "Look up ETF and stock prices from a price backend",
	Long: `marketlab sends batches of tickers to a price-lookup backend and shows
one result card per ticker: resolved symbol, availability, price and source.

Tickers can be separated by spaces or commas. They are sent as typed,
in order, duplicates included.

Running 'marketlab' without arguments launches the interactive TUI.`,
	SilenceUsage: true,
	RunE:         runTUI,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgDir, "config", "", "config directory (default is $HOME/.config/marketlab)")
	flags.String("endpoint", "", "backend base URL")
	flags.Duration("timeout", 0, "per-request timeout")
	flags.String("locale", "", "locale for price formatting, e.g. it-IT")
	flags.Bool("verbose", false, "debug logging")

	for _, name := range []string{"endpoint", "timeout", "locale", "verbose"} {
		viper.BindPFlag(name, flags.Lookup(name))
	}

	viper.SetEnvPrefix("MARKETLAB")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
}

// getConfigDir returns the configuration directory path.
func getConfigDir() string {
	if cfgDir != "" {
		return cfgDir
	}
	if dir := viper.GetString("config_dir"); dir != "" {
		return dir
	}
	dir, err := config.GetConfigDir()
	if err != nil {
		return "."
	}
	return dir
}

// session is the resolved configuration shared by the commands.
type session struct {
	cfg *config.Config
	dir string
	log zerolog.Logger

	closer io.Closer
}

// loadSession reads config.yaml, applies flag and environment overrides
// and opens the log file.
func loadSession() (*session, error) {
	dir := getConfigDir()

	cfg, err := config.Load(dir)
	if err != nil {
		return nil, err
	}
	cfg.Merge(viper.GetViper())
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger, closer, err := logging.Open(cfg.LogPath(dir), cfg.Log.Level)
	if err != nil {
		return nil, err
	}

	return &session{cfg: cfg, dir: dir, log: logger, closer: closer}, nil
}

func (s *session) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

func (s *session) client() (*backend.Client, error) {
	return backend.NewClient(s.cfg.Endpoint, backend.WithLogger(s.log))
}

func (s *session) formatter() (*format.Formatter, error) {
	return format.NewFormatter(s.cfg.Locale)
}
