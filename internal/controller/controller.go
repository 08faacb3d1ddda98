// Package controller owns the lookup request lifecycle.
//
// The Controller is driven from a Bubble Tea Update loop: Submit returns a
// tea.Cmd that performs the backend call off the loop, and the resulting
// ResponseMsg is fed back through Resolve. Only the Controller writes the
// RequestState.
package controller

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/f3rmion/marketlab/internal/backend"
	"github.com/f3rmion/marketlab/internal/market"
	"github.com/f3rmion/marketlab/internal/tickers"
	"github.com/rs/zerolog"
)

// DefaultTimeout bounds a single lookup.
const DefaultTimeout = 20 * time.Second

// ResponseMsg carries the outcome of one backend call.
type ResponseMsg struct {
	Seq     uint64
	Results []market.LookupResult
	Err     error
}

// Controller is the request lifecycle state machine.
type Controller struct {
	svc     backend.Service
	timeout time.Duration
	log     zerolog.Logger

	state  market.RequestState
	seq    uint64
	cancel context.CancelFunc
}

// Option configures a Controller.
type Option func(*Controller)

// WithTimeout sets the per-request timeout. Non-positive values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithLogger attaches a logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Controller) {
		c.log = l
	}
}

// New creates an idle Controller backed by svc.
func New(svc backend.Service, opts ...Option) *Controller {
	c := &Controller{
		svc:     svc,
		timeout: DefaultTimeout,
		log:     zerolog.Nop(),
		state:   market.RequestState{Phase: market.PhaseIdle, Tone: market.ToneInfo},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns a snapshot of the current state.
func (c *Controller) State() market.RequestState {
	s := c.state
	if c.state.Results != nil {
		s.Results = append([]market.LookupResult(nil), c.state.Results...)
	}
	return s
}

// Timeout returns the per-request timeout.
func (c *Controller) Timeout() time.Duration {
	return c.timeout
}

// Submit validates text and, if valid, starts a lookup.
//
// Submissions while a request is in flight are rejected: the state is left
// untouched and no command is returned.
func (c *Controller) Submit(text string) tea.Cmd {
	if c.state.Busy() {
		c.log.Debug().Msg("submit rejected while loading")
		return nil
	}

	query, err := tickers.Normalize(text)
	if err != nil {
		c.state.Tone = market.ToneError
		c.state.Message = err.Error()
		c.log.Debug().Err(err).Msg("submit rejected by validation")
		return nil
	}

	c.seq++
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	c.cancel = cancel

	c.state = market.RequestState{
		Phase:   market.PhaseLoading,
		Tone:    market.ToneInfo,
		Message: fmt.Sprintf("Request for %d tickers in progress", query.Len()),
	}
	c.log.Debug().Uint64("seq", c.seq).Strs("tickers", query.Tickers).Msg("request issued")

	seq := c.seq
	svc := c.svc
	symbols := append([]string(nil), query.Tickers...)
	return func() tea.Msg {
		defer cancel()
		results, err := svc.Lookup(ctx, symbols)
		return ResponseMsg{Seq: seq, Results: results, Err: err}
	}
}

// Resolve applies a response. It reports false when the response is stale
// (cleared, canceled or superseded) and was dropped.
func (c *Controller) Resolve(msg ResponseMsg) bool {
	if !c.state.Busy() || msg.Seq != c.seq {
		c.log.Debug().Uint64("seq", msg.Seq).Uint64("current", c.seq).Msg("dropping stale response")
		return false
	}
	c.release()

	if msg.Err != nil {
		c.state = market.RequestState{
			Phase:   market.PhaseError,
			Tone:    market.ToneError,
			Message: "Request failed: " + c.describe(msg.Err),
		}
		c.log.Warn().Err(msg.Err).Uint64("seq", msg.Seq).Msg("request failed")
		return true
	}

	results := append([]market.LookupResult{}, msg.Results...)
	c.state = market.RequestState{
		Phase:   market.PhaseSuccess,
		Tone:    market.ToneInfo,
		Message: fmt.Sprintf("Completed: %d results", len(results)),
		Results: results,
	}
	c.log.Debug().Uint64("seq", msg.Seq).Int("results", len(results)).Msg("request completed")
	return true
}

// Clear returns to Idle from any phase, abandoning any in-flight request.
func (c *Controller) Clear() {
	c.abandon()
	c.state = market.RequestState{Phase: market.PhaseIdle, Tone: market.ToneInfo}
}

// Cancel abandons the in-flight request. It reports false when nothing
// was loading.
func (c *Controller) Cancel() bool {
	if !c.state.Busy() {
		return false
	}
	c.abandon()
	c.state = market.RequestState{
		Phase:   market.PhaseIdle,
		Tone:    market.ToneInfo,
		Message: "Request canceled",
	}
	return true
}

// abandon cancels the outstanding request and invalidates its sequence.
func (c *Controller) abandon() {
	if c.state.Busy() {
		c.seq++
	}
	c.release()
}

func (c *Controller) release() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

func (c *Controller) describe(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Sprintf("request timed out after %s", c.timeout)
	}
	return err.Error()
}
