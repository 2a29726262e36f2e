package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcfadden20/Swim-meet-timer/internal/config"
	"github.com/mcfadden20/Swim-meet-timer/internal/logger"
	"github.com/mcfadden20/Swim-meet-timer/internal/testing/leaktest"
)

func TestCleanupLogs_KeepsNewest(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 12; i++ {
		name := fmt.Sprintf(LogFileNamePattern, fmt.Sprintf("2024-05-%02d_10-00-00", i+1))
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), nil, 0644))

	cleanupLogs(dir, 9)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.Len(t, names, 10)
	assert.Contains(t, names, "notes.txt")
	assert.Contains(t, names, "service_2024-05-12_10-00-00.log")
	assert.NotContains(t, names, "service_2024-05-03_10-00-00.log")
}

func TestSetupLogger_CreatesLogFile(t *testing.T) {
	cfg := &config.Config{LogDir: filepath.Join(t.TempDir(), "logs"), Environment: "test"}

	f, err := SetupLogger(cfg, logger.CLIConfig("swim-meet-timer-test"))
	require.NoError(t, err)
	t.Cleanup(func() {
		logger.InitLogger(logger.DefaultConfig())
		f.Close()
	})

	info, err := os.Stat(f.Name())
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0), "startup lines are written to the file")
}

func TestStartIngestion_LoadsExistingMeetAndStops(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "12"), 0755))

	checker := leaktest.NewGoroutineChecker(t)

	cfg := &config.Config{
		MeetDataDir:          root,
		ConfigReadAttempts:   1,
		ConfigReadDelay:      time.Millisecond,
		ConfigSettleDelay:    10 * time.Millisecond,
		ConfigRescanInterval: time.Hour,
		WorkerCount:          1,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ing, err := StartIngestion(ctx, cfg)
	require.NoError(t, err)
	assert.Equal(t, int64(12), ing.Ingestor.Snapshot(12).MeetID)

	ing.Stop()
	cancel()
	checker.Check(0)
}
