package backend

import (
	"context"

	"github.com/f3rmion/marketlab/internal/market"
)

// Service is the single-round-trip batch capability the lookup session
// depends on. *Client implements it; tests substitute their own.
type Service interface {
	Lookup(ctx context.Context, tickers []string) ([]market.LookupResult, error)
}

// ServiceFunc adapts a plain function to Service.
type ServiceFunc func(ctx context.Context, tickers []string) ([]market.LookupResult, error)

// Lookup calls f.
func (f ServiceFunc) Lookup(ctx context.Context, tickers []string) ([]market.LookupResult, error) {
	return f(ctx, tickers)
}

var _ Service = (*Client)(nil)
