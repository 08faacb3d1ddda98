package clipboard

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func lookPathFor(installed ...string) func(string) (string, error) {
	return func(name string) (string, error) {
		for _, n := range installed {
			if n == name {
				return "/usr/bin/" + name, nil
			}
		}
		return "", errors.New("not found")
	}
}

func TestCommand(t *testing.T) {
	cases := []struct {
		name      string
		goos      string
		installed []string
		want      []string
		err       error
	}{
		{"darwin", "darwin", []string{"pbcopy"}, []string{"pbcopy"}, nil},
		{"windows", "windows", []string{"cmd"}, []string{"cmd", "/c", "clip"}, nil},
		{"wayland first", "linux", []string{"wl-copy", "xclip"}, []string{"wl-copy"}, nil},
		{"xclip", "linux", []string{"xclip", "xsel"}, []string{"xclip", "-selection", "clipboard"}, nil},
		{"xsel fallback", "linux", []string{"xsel"}, []string{"xsel", "--clipboard", "--input"}, nil},
		{"nothing installed", "linux", nil, nil, ErrUnavailable},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := command(c.goos, lookPathFor(c.installed...))
			require.ErrorIs(t, err, c.err)
			require.Equal(t, c.want, got)
		})
	}
}

func TestWriterFunc(t *testing.T) {
	var got string
	w := WriterFunc(func(text string) error {
		got = text
		return nil
	})
	require.NoError(t, w.Write("IWDA 91.20 EUR"))
	require.Equal(t, "IWDA 91.20 EUR", got)
}
