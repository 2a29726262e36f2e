package meetconfig

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/mcfadden20/Swim-meet-timer/internal/domain"
	"github.com/mcfadden20/Swim-meet-timer/internal/logger"
	"github.com/mcfadden20/Swim-meet-timer/internal/metrics"
)

// Ingestor holds the last successfully parsed configuration of every meet.
type Ingestor struct {
	root     string
	attempts int
	delay    time.Duration
	readFile func(string) ([]byte, error)
	now      func() time.Time

	mu        sync.RWMutex
	snapshots map[int64]domain.ConfigSnapshot
}

// Option configures an Ingestor.
type Option func(*Ingestor)

// WithRetry sets the read attempts and the delay between them.
func WithRetry(attempts int, delay time.Duration) Option {
	return func(in *Ingestor) {
		if attempts > 0 {
			in.attempts = attempts
		}
		in.delay = delay
	}
}

// WithReadFile replaces os.ReadFile, mainly for tests that simulate locked files.
func WithReadFile(fn func(string) ([]byte, error)) Option {
	return func(in *Ingestor) {
		in.readFile = fn
	}
}

// WithClock sets the time source used for UpdatedAt.
func WithClock(now func() time.Time) Option {
	return func(in *Ingestor) {
		in.now = now
	}
}

// NewIngestor creates an ingestor over <root>/<meetID>/ directories.
func NewIngestor(root string, opts ...Option) *Ingestor {
	in := &Ingestor{
		root:      root,
		attempts:  DefaultReadAttempts,
		delay:     DefaultReadDelay,
		readFile:  os.ReadFile,
		now:       time.Now,
		snapshots: make(map[int64]domain.ConfigSnapshot),
	}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// Root returns the data root directory.
func (in *Ingestor) Root() string {
	return in.root
}

// MeetDir returns the directory holding one meet's files.
func (in *Ingestor) MeetDir(meetID int64) string {
	return filepath.Join(in.root, strconv.FormatInt(meetID, 10))
}

// Ingest re-reads both config files of a meet. Each file is handled on its own:
// a file that is missing or stays unreadable leaves its half of the snapshot as it was.
// Only context cancellation is returned as an error.
func (in *Ingestor) Ingest(ctx context.Context, meetID int64) error {
	dir := in.MeetDir(meetID)
	log := logger.FromContext(ctx).With(logger.AttrKeyMeetID, meetID)

	details, detailsErr := readWithRetry(ctx, in, filepath.Join(dir, domain.MeetDetailsFilename), ParseDetails)
	events, eventsErr := readWithRetry(ctx, in, filepath.Join(dir, domain.SessionSummaryFilename), ParseSessionSummary)

	if err := ctx.Err(); err != nil {
		return err
	}

	in.mu.Lock()
	snap, ok := in.snapshots[meetID]
	if !ok {
		snap = emptySnapshot(meetID)
	}
	changed := false
	if detailsErr == nil {
		snap.MeetName = details.MeetName
		snap.StartDate = details.StartDate
		snap.Details = details.Raw
		changed = true
	}
	if eventsErr == nil {
		snap.Events = events
		changed = true
	}
	if changed {
		ts := in.now()
		snap.UpdatedAt = &ts
		in.snapshots[meetID] = snap
	}
	in.mu.Unlock()

	for _, e := range []struct {
		name string
		err  error
	}{{domain.MeetDetailsFilename, detailsErr}, {domain.SessionSummaryFilename, eventsErr}} {
		switch {
		case e.err == nil:
			metrics.ConfigIngestsTotal.WithLabelValues(e.name, metrics.ResultSuccess).Inc()
		case errors.Is(e.err, fs.ErrNotExist):
			log.Debug(LogMsgConfigFileMissing, LogKeyFile, e.name)
		default:
			metrics.ConfigIngestsTotal.WithLabelValues(e.name, metrics.ResultFailure).Inc()
			log.Warn(LogMsgConfigFileUnavailable, LogKeyFile, e.name, LogKeyError, e.err)
		}
	}
	if changed {
		log.Info(LogMsgConfigIngested, LogKeyEvents, len(snap.Events))
	}
	return nil
}

// IngestAll ingests every numeric subdirectory of the data root.
func (in *Ingestor) IngestAll(ctx context.Context) error {
	ids, err := in.meetIDs()
	if err != nil {
		return err
	}
	for _, id := range ids {
		if err := in.Ingest(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// Snapshot returns the current configuration of a meet, or an empty one.
func (in *Ingestor) Snapshot(meetID int64) domain.ConfigSnapshot {
	in.mu.RLock()
	defer in.mu.RUnlock()
	snap, ok := in.snapshots[meetID]
	if !ok {
		return emptySnapshot(meetID)
	}
	return snap
}

func (in *Ingestor) meetIDs() ([]int64, error) {
	entries, err := os.ReadDir(in.root)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf(ErrContextListDataRoot, in.root, err)
	}
	var ids []int64
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if id, ok := parseMeetID(e.Name()); ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func parseMeetID(name string) (int64, bool) {
	id, err := strconv.ParseInt(name, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func emptySnapshot(meetID int64) domain.ConfigSnapshot {
	return domain.ConfigSnapshot{MeetID: meetID, Events: []domain.EventSummary{}}
}

// readWithRetry reads and parses path, retrying read and parse failures with a
// fixed delay. A missing file is returned at once.
func readWithRetry[T any](ctx context.Context, in *Ingestor, path string, parse func([]byte) (T, error)) (T, error) {
	var zero T
	var lastErr error
	for attempt := 1; attempt <= in.attempts; attempt++ {
		data, err := in.readFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			return zero, err
		}
		if err == nil {
			v, perr := parse(data)
			if perr == nil {
				return v, nil
			}
			err = perr
		}
		lastErr = err

		if attempt == in.attempts {
			break
		}
		logger.FromContext(ctx).Debug(LogMsgConfigFileRetry,
			LogKeyPath, path, LogKeyAttempt, attempt, LogKeyError, err)

		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(in.delay):
		}
	}
	return zero, fmt.Errorf(ErrContextReadAttempts, filepath.Base(path), in.attempts, lastErr)
}
