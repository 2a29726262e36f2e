package meetconfig

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcfadden20/Swim-meet-timer/internal/domain"
)

func TestWatcher_ExistingMeetDirectory(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "4"), 0o755))

	in := NewIngestor(root)
	w, err := NewWatcher(in, 20*time.Millisecond)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.StartAsync(ctx)
	defer func() { _ = w.Stop() }()

	writeMeetFile(t, root, "4", domain.MeetDetailsFilename, `{"meetName":"Watched"}`)

	assert.Eventually(t, func() bool {
		return in.Snapshot(4).MeetName == "Watched"
	}, 2*time.Second, 10*time.Millisecond)
}

func TestWatcher_NewMeetDirectory(t *testing.T) {
	root := t.TempDir()
	in := NewIngestor(root)
	w, err := NewWatcher(in, 20*time.Millisecond)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.StartAsync(ctx)
	defer func() { _ = w.Stop() }()

	writeMeetFile(t, root, "8", domain.SessionSummaryFilename, "1,1,Free\n1,2,Free\n")

	assert.Eventually(t, func() bool {
		return len(in.Snapshot(8).Events) == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "4"), 0o755))

	in := NewIngestor(root)
	w, err := NewWatcher(in, 10*time.Millisecond)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.StartAsync(ctx)
	defer func() { _ = w.Stop() }()

	writeMeetFile(t, root, "4", "session_1_event_1_heat_1_race_1.json", `{}`)
	time.Sleep(100 * time.Millisecond)

	assert.Nil(t, in.Snapshot(4).UpdatedAt)
}

func TestWatcher_StopIsIdempotentAfterCancel(t *testing.T) {
	in := NewIngestor(t.TempDir())
	w, err := NewWatcher(in, 10*time.Millisecond)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	w.StartAsync(ctx)
	cancel()

	assert.NoError(t, w.Stop())
}

func TestNewWatcher_MissingRoot(t *testing.T) {
	_, err := NewWatcher(NewIngestor(filepath.Join(t.TempDir(), "absent")), time.Millisecond)
	assert.Error(t, err)
}
