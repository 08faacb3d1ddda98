// Package backend talks to the price-lookup HTTP service.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/f3rmion/marketlab/internal/market"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	batchPath        = "/api/etf"
	defaultUserAgent = "marketlab/1.0"
	maxResponseBytes = 4 << 20
)

// HTTPClient describes an HTTP client.
//
//go:generate mockgen -package=backend_test -destination=mock_http_client_test.go -source=client.go HTTPClient
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client is a price-lookup API client.
type Client struct {
	// baseURL is the scheme and host of the backend, without a trailing slash.
	baseURL    string
	httpClient HTTPClient
	userAgent  string
	log        zerolog.Logger
}

// ClientOption is a configuration option for Client.
type ClientOption func(*Client)

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(httpClient HTTPClient) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithLogger attaches a logger for request tracing.
func WithLogger(l zerolog.Logger) ClientOption {
	return func(c *Client) {
		c.log = l
	}
}

// batchRequest is the POST body for a batch lookup.
type batchRequest struct {
	Tickers []string `json:"tickers"`
}

// NewClient creates a client for the backend at baseURL.
func NewClient(baseURL string, options ...ClientOption) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("parsing endpoint: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("endpoint must be an http or https URL, got %q", baseURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("endpoint has no host: %q", baseURL)
	}

	c := &Client{
		baseURL:    strings.TrimRight(u.String(), "/"),
		// No client-level timeout: callers bound each request with ctx.
		httpClient: &http.Client{},
		userAgent:  defaultUserAgent,
		log:        zerolog.Nop(),
	}
	for _, option := range options {
		option(c)
	}
	return c, nil
}

// BaseURL returns the backend endpoint the client targets.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Lookup resolves all tickers in a single round trip.
func (c *Client) Lookup(ctx context.Context, tickers []string) ([]market.LookupResult, error) {
	if tickers == nil {
		tickers = []string{}
	}
	body, err := json.Marshal(batchRequest{Tickers: tickers})
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+batchPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, len(tickers))
}

// LookupOne resolves a single ticker through the per-symbol endpoint.
func (c *Client) LookupOne(ctx context.Context, ticker string) (market.LookupResult, error) {
	endpoint := c.baseURL + batchPath + "/" + url.PathEscape(ticker)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return market.LookupResult{}, fmt.Errorf("creating request: %w", err)
	}

	results, err := c.do(req, 1)
	if err != nil {
		return market.LookupResult{}, err
	}
	if len(results) == 0 {
		return market.LookupResult{}, &TransportError{Op: req.Method, URL: endpoint, Err: fmt.Errorf("empty response")}
	}
	return results[0], nil
}

func (c *Client) do(req *http.Request, count int) ([]market.LookupResult, error) {
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	log := c.log.With().
		Str("request_id", requestID).
		Str("method", req.Method).
		Str("url", req.URL.String()).
		Int("tickers", count).
		Logger()

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn().Err(err).Dur("duration", time.Since(start)).Msg("request failed")
		return nil, &TransportError{Op: req.Method, URL: req.URL.String(), Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		log.Warn().Err(err).Int("status", resp.StatusCode).Msg("reading response failed")
		return nil, &TransportError{Op: req.Method, URL: req.URL.String(), StatusCode: resp.StatusCode, Err: fmt.Errorf("reading response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Warn().Int("status", resp.StatusCode).Dur("duration", time.Since(start)).Msg("non-success status")
		return nil, &TransportError{Op: req.Method, URL: req.URL.String(), StatusCode: resp.StatusCode, Status: true}
	}

	var results market.Results
	if err := json.Unmarshal(respBody, &results); err != nil {
		log.Warn().Err(err).Int("status", resp.StatusCode).Msg("undecodable response")
		return nil, &TransportError{Op: req.Method, URL: req.URL.String(), StatusCode: resp.StatusCode, Err: fmt.Errorf("unmarshaling response: %w", err)}
	}

	log.Info().
		Int("status", resp.StatusCode).
		Int("results", len(results)).
		Dur("duration", time.Since(start)).
		Msg("lookup completed")

	return results, nil
}
