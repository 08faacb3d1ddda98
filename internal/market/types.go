// Package market provides the core types shared by the lookup client.
package market

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// LookupResult is one record returned by the price-lookup backend.
// Only Ticker and Found are always present; every other field may be
// missing or null in the payload.
type LookupResult struct {
	Ticker         string   `json:"ticker" yaml:"ticker"`
	ResolvedTicker *string  `json:"resolved_ticker,omitempty" yaml:"resolved_ticker,omitempty"`
	Found          bool     `json:"found" yaml:"found"`
	Category       *string  `json:"category,omitempty" yaml:"category,omitempty"`
	Name           *string  `json:"name,omitempty" yaml:"name,omitempty"`
	Price          *float64 `json:"price,omitempty" yaml:"price,omitempty"`
	Currency       *string  `json:"currency,omitempty" yaml:"currency,omitempty"`
	Source         *string  `json:"source,omitempty" yaml:"source,omitempty"`
	Error          *string  `json:"error,omitempty" yaml:"error,omitempty"`
}

// Results is an ordered list of lookup results.
//
// The backend may answer with a single object instead of a list; decoding
// accepts both and always yields a list.
type Results []LookupResult

// UnmarshalJSON decodes either one result object or an array of them.
func (r *Results) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*r = Results{}
		return nil
	}

	if trimmed[0] == '[' {
		var list []LookupResult
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return fmt.Errorf("decoding result list: %w", err)
		}
		if list == nil {
			list = []LookupResult{}
		}
		*r = list
		return nil
	}

	var single LookupResult
	if err := json.Unmarshal(trimmed, &single); err != nil {
		return fmt.Errorf("decoding result: %w", err)
	}
	*r = Results{single}
	return nil
}

// TickerQuery is the raw input text plus its normalized symbols.
type TickerQuery struct {
	Raw     string
	Tickers []string
}

// Len returns the number of symbols in the query.
func (q TickerQuery) Len() int {
	return len(q.Tickers)
}

// Phase is a discrete state of the request lifecycle.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseSuccess
	PhaseError
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseSuccess:
		return "success"
	case PhaseError:
		return "error"
	default:
		return "unknown"
	}
}

// Tone classifies a status message.
type Tone int

const (
	ToneInfo  Tone = iota // Informational
	ToneError             // Failure surfaced to the user
)

func (t Tone) String() string {
	if t == ToneError {
		return "error"
	}
	return "info"
}

// RequestState is the lifecycle state of the lookup session.
// Results is non-empty only when Phase is PhaseSuccess.
type RequestState struct {
	Phase   Phase
	Message string
	Tone    Tone
	Results []LookupResult
}

// Busy reports whether a request is in flight.
func (s RequestState) Busy() bool {
	return s.Phase == PhaseLoading
}

// Str returns a pointer to s. Handy for building optional fields.
func Str(s string) *string {
	return &s
}

// Float returns a pointer to f.
func Float(f float64) *float64 {
	return &f
}
