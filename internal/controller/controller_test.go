package controller_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/f3rmion/marketlab/internal/backend"
	"github.com/f3rmion/marketlab/internal/controller"
	"github.com/f3rmion/marketlab/internal/market"
	"github.com/stretchr/testify/require"
)

// stubService records calls and answers with fixed results.
type stubService struct {
	calls   atomic.Int32
	got     [][]string
	results []market.LookupResult
	err     error
}

func (s *stubService) Lookup(_ context.Context, tickers []string) ([]market.LookupResult, error) {
	s.calls.Add(1)
	s.got = append(s.got, tickers)
	return s.results, s.err
}

func run(t *testing.T, c *controller.Controller, text string) controller.ResponseMsg {
	t.Helper()

	cmd := c.Submit(text)
	require.NotNil(t, cmd)
	msg, ok := cmd().(controller.ResponseMsg)
	require.True(t, ok)
	return msg
}

func TestInitialState(t *testing.T) {
	t.Parallel()

	c := controller.New(&stubService{})
	s := c.State()
	require.Equal(t, market.PhaseIdle, s.Phase)
	require.Equal(t, market.ToneInfo, s.Tone)
	require.Empty(t, s.Message)
	require.Empty(t, s.Results)
	require.Equal(t, controller.DefaultTimeout, c.Timeout())
}

func TestSubmitValidation(t *testing.T) {
	t.Parallel()

	svc := &stubService{}
	c := controller.New(svc)

	require.Nil(t, c.Submit("   "))
	s := c.State()
	require.Equal(t, market.PhaseIdle, s.Phase)
	require.Equal(t, market.ToneError, s.Tone)
	require.Equal(t, "Enter at least one ticker", s.Message)

	require.Nil(t, c.Submit(" ,, "))
	s = c.State()
	require.Equal(t, market.PhaseIdle, s.Phase)
	require.Equal(t, "Invalid format", s.Message)

	require.Zero(t, svc.calls.Load())
}

func TestSubmitSingleRecordSuccess(t *testing.T) {
	t.Parallel()

	svc := &stubService{results: []market.LookupResult{{Ticker: "IWDA", Found: true}}}
	c := controller.New(svc)

	cmd := c.Submit("IWDA")
	require.NotNil(t, cmd)

	s := c.State()
	require.Equal(t, market.PhaseLoading, s.Phase)
	require.True(t, s.Busy())
	require.Equal(t, market.ToneInfo, s.Tone)
	require.Equal(t, "Request for 1 tickers in progress", s.Message)
	require.Empty(t, s.Results)

	msg, ok := cmd().(controller.ResponseMsg)
	require.True(t, ok)
	require.True(t, c.Resolve(msg))

	s = c.State()
	require.Equal(t, market.PhaseSuccess, s.Phase)
	require.Equal(t, "Completed: 1 results", s.Message)
	require.Len(t, s.Results, 1)
	require.Equal(t, int32(1), svc.calls.Load())
	require.Equal(t, [][]string{{"IWDA"}}, svc.got)
}

func TestSubmitCarriesFullOrderedList(t *testing.T) {
	t.Parallel()

	svc := &stubService{results: []market.LookupResult{{Ticker: "IWDA"}}}
	c := controller.New(svc)

	msg := run(t, c, "IWDA, SWDA  VUAA IWDA")
	require.True(t, c.Resolve(msg))

	require.Equal(t, [][]string{{"IWDA", "SWDA", "VUAA", "IWDA"}}, svc.got)

	// M != N is fine.
	s := c.State()
	require.Equal(t, "Completed: 1 results", s.Message)
	require.Len(t, s.Results, 1)
}

func TestEnteringLoadingClearsPreviousResults(t *testing.T) {
	t.Parallel()

	svc := &stubService{results: []market.LookupResult{{Ticker: "A"}, {Ticker: "B"}}}
	c := controller.New(svc)

	require.True(t, c.Resolve(run(t, c, "A B")))
	require.Len(t, c.State().Results, 2)

	cmd := c.Submit("C")
	require.NotNil(t, cmd)
	require.Empty(t, c.State().Results)
	require.Equal(t, market.PhaseLoading, c.State().Phase)
}

func TestTransportFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)

	client, err := backend.NewClient(srv.URL)
	require.NoError(t, err)

	c := controller.New(client)
	require.True(t, c.Resolve(run(t, c, "IWDA")))

	s := c.State()
	require.Equal(t, market.PhaseError, s.Phase)
	require.Equal(t, market.ToneError, s.Tone)
	require.Contains(t, s.Message, "502")
	require.Empty(t, s.Results)
}

func TestNetworkFailureMessage(t *testing.T) {
	t.Parallel()

	c := controller.New(&stubService{err: errors.New("dial tcp: connection refused")})
	require.True(t, c.Resolve(run(t, c, "IWDA")))

	s := c.State()
	require.Equal(t, market.PhaseError, s.Phase)
	require.Equal(t, "Request failed: dial tcp: connection refused", s.Message)
}

func TestRetryAfterError(t *testing.T) {
	t.Parallel()

	svc := &stubService{err: errors.New("boom")}
	c := controller.New(svc)
	require.True(t, c.Resolve(run(t, c, "IWDA")))
	require.Equal(t, market.PhaseError, c.State().Phase)

	svc.err = nil
	svc.results = []market.LookupResult{{Ticker: "IWDA", Found: true}}
	require.True(t, c.Resolve(run(t, c, "IWDA")))
	require.Equal(t, market.PhaseSuccess, c.State().Phase)
}

func TestSubmitWhileLoadingIsRejected(t *testing.T) {
	t.Parallel()

	svc := &stubService{results: []market.LookupResult{{Ticker: "A"}}}
	c := controller.New(svc)

	first := c.Submit("A")
	require.NotNil(t, first)
	before := c.State()

	require.Nil(t, c.Submit("B"))
	require.Nil(t, c.Submit(""))
	require.Equal(t, before, c.State())

	msg := first().(controller.ResponseMsg)
	require.True(t, c.Resolve(msg))
	require.Equal(t, int32(1), svc.calls.Load())
}

func TestClearFromEveryPhase(t *testing.T) {
	t.Parallel()

	idle := controller.New(&stubService{})
	idle.Clear()

	loading := controller.New(&stubService{})
	require.NotNil(t, loading.Submit("A"))
	loading.Clear()

	success := controller.New(&stubService{results: []market.LookupResult{{Ticker: "A"}}})
	require.True(t, success.Resolve(run(t, success, "A")))
	success.Clear()

	failed := controller.New(&stubService{err: errors.New("boom")})
	require.True(t, failed.Resolve(run(t, failed, "A")))
	failed.Clear()

	invalid := controller.New(&stubService{})
	invalid.Submit("  ")
	invalid.Clear()

	for _, c := range []*controller.Controller{idle, loading, success, failed, invalid} {
		s := c.State()
		require.Equal(t, market.PhaseIdle, s.Phase)
		require.Equal(t, market.ToneInfo, s.Tone)
		require.Empty(t, s.Message)
		require.Empty(t, s.Results)
	}
}

func TestClearDropsLateResponse(t *testing.T) {
	t.Parallel()

	c := controller.New(&stubService{results: []market.LookupResult{{Ticker: "A"}}})
	cmd := c.Submit("A")
	require.NotNil(t, cmd)

	c.Clear()
	require.False(t, c.Resolve(cmd().(controller.ResponseMsg)))

	s := c.State()
	require.Equal(t, market.PhaseIdle, s.Phase)
	require.Empty(t, s.Results)
}

func TestCancel(t *testing.T) {
	t.Parallel()

	started := make(chan struct{})
	svc := backend.ServiceFunc(func(ctx context.Context, _ []string) ([]market.LookupResult, error) {
		close(started)
		<-ctx.Done()
		return nil, ctx.Err()
	})
	c := controller.New(svc)

	require.False(t, c.Cancel())

	cmd := c.Submit("A")
	require.NotNil(t, cmd)

	done := make(chan controller.ResponseMsg, 1)
	go func() { done <- cmd().(controller.ResponseMsg) }()
	<-started

	require.True(t, c.Cancel())
	s := c.State()
	require.Equal(t, market.PhaseIdle, s.Phase)
	require.Equal(t, "Request canceled", s.Message)

	select {
	case msg := <-done:
		require.ErrorIs(t, msg.Err, context.Canceled)
		require.False(t, c.Resolve(msg))
	case <-time.After(2 * time.Second):
		t.Fatal("canceled request did not return")
	}
	require.Equal(t, market.PhaseIdle, c.State().Phase)
}

func TestTimeout(t *testing.T) {
	t.Parallel()

	svc := backend.ServiceFunc(func(ctx context.Context, _ []string) ([]market.LookupResult, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})
	c := controller.New(svc, controller.WithTimeout(20*time.Millisecond))

	require.True(t, c.Resolve(run(t, c, "A")))

	s := c.State()
	require.Equal(t, market.PhaseError, s.Phase)
	require.Equal(t, "Request failed: request timed out after 20ms", s.Message)
}

func TestTimeoutWithHTTPBackend(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(func() {
		close(release)
		srv.Close()
	})

	client, err := backend.NewClient(srv.URL)
	require.NoError(t, err)

	c := controller.New(client, controller.WithTimeout(80*time.Millisecond))
	start := time.Now()
	require.True(t, c.Resolve(run(t, c, "IWDA")))

	require.GreaterOrEqual(t, time.Since(start), 80*time.Millisecond)
	require.Equal(t, "Request failed: request timed out after 80ms", c.State().Message)
}

func TestConfiguredTimeoutGovernsSlowBackend(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"ticker":"IWDA","found":true}]`))
	}))
	t.Cleanup(srv.Close)

	client, err := backend.NewClient(srv.URL)
	require.NoError(t, err)

	c := controller.New(client, controller.WithTimeout(time.Minute))
	require.True(t, c.Resolve(run(t, c, "IWDA")))

	s := c.State()
	require.Equal(t, market.PhaseSuccess, s.Phase)
	require.Len(t, s.Results, 1)
}

func TestStateIsASnapshot(t *testing.T) {
	t.Parallel()

	c := controller.New(&stubService{results: []market.LookupResult{{Ticker: "A"}}})
	require.True(t, c.Resolve(run(t, c, "A")))

	s := c.State()
	s.Results[0].Ticker = "mutated"
	require.Equal(t, "A", c.State().Results[0].Ticker)
}
