package tickers_test

import (
	"errors"
	"testing"

	"github.com/f3rmion/marketlab/internal/tickers"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want []string
	}{
		{"mixed separators", "IWDA, SWDA  VUAA", []string{"IWDA", "SWDA", "VUAA"}},
		{"single", "IWDA", []string{"IWDA"}},
		{"leading and trailing", "  ,IWDA,, ", []string{"IWDA"}},
		{"tabs and newlines", "IWDA\tSWDA\nVUAA", []string{"IWDA", "SWDA", "VUAA"}},
		{"keeps duplicates", "IWDA IWDA", []string{"IWDA", "IWDA"}},
		{"keeps case", "iwda Swda", []string{"iwda", "Swda"}},
		{"keeps suffixes", "IWDA.AS VUAA.MI", []string{"IWDA.AS", "VUAA.MI"}},
		{"no-break space", "IWDA\u00a0SWDA", []string{"IWDA", "SWDA"}},
		{"ideographic space", "IWDA\u3000SWDA", []string{"IWDA", "SWDA"}},
		{"em space and comma", "IWDA\u2003,\u2003SWDA", []string{"IWDA", "SWDA"}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			q, err := tickers.Normalize(c.in)
			require.NoError(t, err)
			require.Equal(t, c.want, q.Tickers)
			require.Equal(t, c.in, q.Raw)
			require.Equal(t, len(c.want), q.Len())
		})
	}
}

func TestNormalizeRejects(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		kind tickers.Kind
		msg  string
	}{
		{"empty", "", tickers.KindEmpty, "Enter at least one ticker"},
		{"whitespace", "   ", tickers.KindEmpty, "Enter at least one ticker"},
		{"commas", ",,,", tickers.KindFormat, "Invalid format"},
		{"commas and spaces", " , , ", tickers.KindFormat, "Invalid format"},
		{"commas and no-break spaces", ",\u00a0,", tickers.KindFormat, "Invalid format"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			_, err := tickers.Normalize(c.in)
			require.Error(t, err)
			require.True(t, errors.Is(err, tickers.ErrValidation))

			var verr *tickers.ValidationError
			require.True(t, errors.As(err, &verr))
			require.Equal(t, c.kind, verr.Kind)
			require.Equal(t, c.msg, verr.Error())
		})
	}
}

func TestAppend(t *testing.T) {
	t.Parallel()

	require.Equal(t, "IWDA", tickers.Append("", "IWDA"))
	require.Equal(t, "IWDA", tickers.Append("   ", "IWDA"))
	require.Equal(t, "SWDA IWDA", tickers.Append("  SWDA  ", "IWDA"))
	require.Equal(t, "SWDA, VUAA IWDA", tickers.Append("SWDA, VUAA", "IWDA"))
}
