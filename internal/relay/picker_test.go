package relay

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePicker struct {
	dir string
	err error
}

func (f fakePicker) PickDirectory(context.Context) (string, error) {
	return f.dir, f.err
}

func TestPrompter(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader(" SWIM42 \r\n1234"), &out)

	creds, err := p.Credentials(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Credentials{AccessCode: "SWIM42", AdminPIN: "1234"}, creds)
	assert.Contains(t, out.String(), "meet code")
	assert.Contains(t, out.String(), "admin PIN")

	_, err = p.Ask(context.Background(), "again: ")
	assert.ErrorIs(t, err, io.EOF)
}

func TestPrompter_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewPrompter(strings.NewReader("x\n"), io.Discard).Ask(ctx, "q: ")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestResolveWatchDir(t *testing.T) {
	existing := t.TempDir()
	missing := filepath.Join(existing, "nope")
	ctx := context.Background()

	t.Run("configured wins", func(t *testing.T) {
		dir, err := ResolveWatchDir(ctx, existing, fakePicker{dir: missing}, nil)
		require.NoError(t, err)
		assert.Equal(t, existing, dir)
	})

	t.Run("picker", func(t *testing.T) {
		dir, err := ResolveWatchDir(ctx, "", fakePicker{dir: existing}, nil)
		require.NoError(t, err)
		assert.Equal(t, existing, dir)
	})

	t.Run("picker failure falls back to prompt", func(t *testing.T) {
		prompt := NewPrompter(strings.NewReader(existing+"\n"), io.Discard)
		dir, err := ResolveWatchDir(ctx, "", fakePicker{err: errors.New("zenity: not found")}, prompt)
		require.NoError(t, err)
		assert.Equal(t, existing, dir)
	})

	t.Run("directory must exist", func(t *testing.T) {
		_, err := ResolveWatchDir(ctx, missing, nil, nil)
		assert.ErrorIs(t, err, ErrWatchDirMissing)
	})

	t.Run("nothing chosen", func(t *testing.T) {
		_, err := ResolveWatchDir(ctx, "", fakePicker{err: ErrNoSelection}, nil)
		assert.ErrorIs(t, err, ErrNoSelection)
	})
}

func TestNativePicker(t *testing.T) {
	tests := []struct {
		goos string
		prog string
	}{
		{"windows", "powershell"},
		{"darwin", "osascript"},
		{"linux", "zenity"},
	}

	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			var gotName string
			p := &NativePicker{GOOS: tt.goos, run: func(_ context.Context, name string, _ ...string) ([]byte, error) {
				gotName = name
				return []byte("/srv/meet\n"), nil
			}}

			dir, err := p.PickDirectory(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.prog, gotName)
			assert.Equal(t, "/srv/meet", dir)
		})
	}

	t.Run("cancelled dialog", func(t *testing.T) {
		p := &NativePicker{GOOS: "linux", run: func(context.Context, string, ...string) ([]byte, error) {
			return []byte("\n"), nil
		}}
		_, err := p.PickDirectory(context.Background())
		assert.ErrorIs(t, err, ErrNoSelection)
	})
}
