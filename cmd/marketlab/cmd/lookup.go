package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/f3rmion/marketlab/internal/format"
	"github.com/f3rmion/marketlab/internal/market"
	"github.com/f3rmion/marketlab/internal/tickers"
	"github.com/f3rmion/marketlab/internal/tui/components"
	"github.com/spf13/cobra"
)

var lookupCmd = &cobra.Command{
	Use:   "lookup <ticker>...",
	Short: "Look up prices without the TUI",
	Long: `Send one batched request for the given tickers and print one row per
result: symbol, availability, price and source.

Example:
  marketlab lookup IWDA SWDA
  marketlab lookup "iwda, vuaa" --json
  marketlab lookup IWDA.AS --single`,
	Args: cobra.MinimumNArgs(1),
	RunE: runLookup,
}

func init() {
	rootCmd.AddCommand(lookupCmd)
	lookupCmd.Flags().Bool("json", false, "print the raw results as JSON")
	lookupCmd.Flags().Bool("single", false, "use the per-ticker endpoint (one ticker only)")
}

// priceService is the part of the backend client the lookup command needs.
type priceService interface {
	Lookup(ctx context.Context, tickers []string) ([]market.LookupResult, error)
	LookupOne(ctx context.Context, ticker string) (market.LookupResult, error)
}

type lookupOptions struct {
	json   bool
	single bool
}

func runLookup(cmd *cobra.Command, args []string) error {
	var opts lookupOptions
	opts.json, _ = cmd.Flags().GetBool("json")
	opts.single, _ = cmd.Flags().GetBool("single")

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

	ctx, cancel := context.WithTimeout(cmd.Context(), s.cfg.Timeout)
	defer cancel()

	return lookupTickers(ctx, client, f, cmd.OutOrStdout(), args, opts)
}

// lookupTickers normalizes args, performs the request and prints the
// results to w.
func lookupTickers(ctx context.Context, svc priceService, f *format.Formatter, w io.Writer, args []string, opts lookupOptions) error {
	query, err := tickers.Normalize(strings.Join(args, " "))
	if err != nil {
		return err
	}

	var results []market.LookupResult
	if opts.single {
		if query.Len() != 1 {
			return fmt.Errorf("--single takes exactly one ticker, got %d", query.Len())
		}
		r, err := svc.LookupOne(ctx, query.Tickers[0])
		if err != nil {
			return fmt.Errorf("request failed: %w", err)
		}
		results = []market.LookupResult{r}
	} else {
		results, err = svc.Lookup(ctx, query.Tickers)
		if err != nil {
			return fmt.Errorf("request failed: %w", err)
		}
	}

	if opts.json {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(market.Results(results))
	}

	if len(results) == 0 {
		_, err := fmt.Fprintln(w, "No results.")
		return err
	}
	_, err = io.WriteString(w, components.Summary(f.Cards(results)))
	return err
}
