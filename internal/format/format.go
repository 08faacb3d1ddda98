// Package format maps lookup results to display strings.
package format

import (
	"fmt"
	"math"
	"strings"

	"github.com/f3rmion/marketlab/internal/market"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Display labels.
const (
	TitlePlaceholder = "Ticker"
	StatusAvailable  = "Available"
	StatusNotFound   = "Not found"
	PriceMissing     = "n/a"
	SourcePrefix     = "Source: "
	DefaultSource    = "unknown"
	DefaultLocale    = "en-US"
)

const (
	minFractionDigits = 2
	maxFractionDigits = 4
)

// Card is the display form of one LookupResult.
type Card struct {
	Title  string
	Status string
	Found  bool
	Meta   []string // category and name, when known
	Price  string
	Footer string
	// Failed is set when the footer carries a backend error.
	Failed bool
}

// Formatter renders results for a locale.
type Formatter struct {
	tag     language.Tag
	printer *message.Printer
}

// NewFormatter creates a Formatter for a BCP 47 locale such as "en-US" or "it-IT".
func NewFormatter(locale string) (*Formatter, error) {
	if strings.TrimSpace(locale) == "" {
		locale = DefaultLocale
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("parsing locale %q: %w", locale, err)
	}
	return &Formatter{tag: tag, printer: message.NewPrinter(tag)}, nil
}

// Default returns a Formatter for DefaultLocale.
func Default() *Formatter {
	return &Formatter{tag: language.AmericanEnglish, printer: message.NewPrinter(language.AmericanEnglish)}
}

// Locale returns the formatter's language tag.
func (f *Formatter) Locale() language.Tag {
	return f.tag
}

// Card maps r to its display form.
func (f *Formatter) Card(r market.LookupResult) Card {
	c := Card{
		Title:  Title(r),
		Status: Status(r),
		Found:  r.Found,
		Price:  f.Price(r.Price, r.Currency),
		Footer: Footer(r),
		Failed: present(r.Error),
	}
	if present(r.Category) {
		c.Meta = append(c.Meta, strings.TrimSpace(*r.Category))
	}
	if present(r.Name) {
		c.Meta = append(c.Meta, strings.TrimSpace(*r.Name))
	}
	return c
}

// Cards maps every result, keeping order.
func (f *Formatter) Cards(results []market.LookupResult) []Card {
	cards := make([]Card, 0, len(results))
	for _, r := range results {
		cards = append(cards, f.Card(r))
	}
	return cards
}

// Price renders value with 2 to 4 fraction digits in the formatter's
// locale, followed by the currency code when one is given.
func (f *Formatter) Price(value *float64, currency *string) string {
	if value == nil || math.IsNaN(*value) || math.IsInf(*value, 0) {
		return PriceMissing
	}
	formatted := f.printer.Sprint(number.Decimal(*value,
		number.MinFractionDigits(minFractionDigits),
		number.MaxFractionDigits(maxFractionDigits),
	))
	if present(currency) {
		return formatted + " " + strings.TrimSpace(*currency)
	}
	return formatted
}

// FormatPrice renders a price with the default locale.
func FormatPrice(value *float64, currency *string) string {
	return Default().Price(value, currency)
}

// Title prefers the resolved symbol over the requested one.
func Title(r market.LookupResult) string {
	if present(r.ResolvedTicker) {
		return strings.TrimSpace(*r.ResolvedTicker)
	}
	if strings.TrimSpace(r.Ticker) != "" {
		return r.Ticker
	}
	return TitlePlaceholder
}

// Status is the availability label.
func Status(r market.LookupResult) string {
	if r.Found {
		return StatusAvailable
	}
	return StatusNotFound
}

// Footer shows the backend error, or where the price came from.
func Footer(r market.LookupResult) string {
	if present(r.Error) {
		return *r.Error
	}
	if present(r.Source) {
		return SourcePrefix + strings.TrimSpace(*r.Source)
	}
	return SourcePrefix + DefaultSource
}

func present(s *string) bool {
	return s != nil && strings.TrimSpace(*s) != ""
}
