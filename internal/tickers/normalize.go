// Package tickers turns free-form user input into ticker symbols.
package tickers

import (
	"errors"
	"strings"
	"unicode"

	"github.com/f3rmion/marketlab/internal/market"
)

// ErrValidation matches every ValidationError via errors.Is.
var ErrValidation = errors.New("invalid ticker input")

// Kind tells apart the two ways input can be rejected.
type Kind int

const (
	KindEmpty  Kind = iota // nothing but whitespace
	KindFormat             // only separators, no symbols
)

// ValidationError reports input that cannot produce a request.
type ValidationError struct {
	Kind  Kind
	Input string
}

func (e *ValidationError) Error() string {
	if e.Kind == KindEmpty {
		return "Enter at least one ticker"
	}
	return "Invalid format"
}

// Is makes errors.Is(err, ErrValidation) work.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func isSeparator(r rune) bool {
	return r == ',' || unicode.IsSpace(r)
}

// Normalize splits raw on runs of commas and Unicode whitespace.
// Order is kept; symbols are neither deduplicated nor case-folded.
func Normalize(raw string) (market.TickerQuery, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return market.TickerQuery{}, &ValidationError{Kind: KindEmpty, Input: raw}
	}

	out := strings.FieldsFunc(trimmed, isSeparator)

	if len(out) == 0 {
		return market.TickerQuery{}, &ValidationError{Kind: KindFormat, Input: raw}
	}

	return market.TickerQuery{Raw: raw, Tickers: out}, nil
}

// Append adds symbol to the end of text, space-joined.
func Append(text, symbol string) string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return symbol
	}
	return trimmed + " " + symbol
}
