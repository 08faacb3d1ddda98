package backend

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewClientLeavesDeadlineToContext(t *testing.T) {
	t.Parallel()

	c, err := NewClient("http://localhost:8000")
	require.NoError(t, err)

	hc, ok := c.httpClient.(*http.Client)
	require.True(t, ok)
	require.Zero(t, hc.Timeout)
}

func TestLookupBoundedOnlyByContext(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(150 * time.Millisecond)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ticker":"IWDA","found":true}`))
	}))
	t.Cleanup(srv.Close)

	c, err := NewClient(srv.URL)
	require.NoError(t, err)

	// The context allows far more than the server needs; nothing else may
	// cut the request short.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	results, err := c.Lookup(ctx, []string{"IWDA"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.True(t, results[0].Found)
}
