// Package snapshot writes the race files and heartbeat the meet program
// picks up from each meet directory.
package snapshot

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

	"github.com/mcfadden20/Swim-meet-timer/internal/concurrency"
	"github.com/mcfadden20/Swim-meet-timer/internal/domain"
	"github.com/mcfadden20/Swim-meet-timer/internal/logger"
	"github.com/mcfadden20/Swim-meet-timer/internal/metrics"
	"github.com/mcfadden20/Swim-meet-timer/internal/utils"
)

// HeatWriter is what result mutations need from the writer.
type HeatWriter interface {
	WriteHeat(ctx context.Context, snap domain.HeatSnapshot) (string, error)
}

// Writer emits immutable per-heat race files and keeps the heartbeat current.
type Writer struct {
	root  string
	locks *concurrency.LockManager
	now   func() time.Time

	// heartbeat counters per meet, seeded from disk on first use
	mu       sync.Mutex
	counters map[int64]int64
}

// NewWriter creates a writer rooted at the meet data directory.
func NewWriter(root string, locks *concurrency.LockManager) *Writer {
	if locks == nil {
		locks = concurrency.NewLockManager()
	}
	return &Writer{
		root:     root,
		locks:    locks,
		now:      time.Now,
		counters: make(map[int64]int64),
	}
}

// WithClock replaces the time source; used by tests for stable output.
func (w *Writer) WithClock(now func() time.Time) *Writer {
	w.now = now
	return w
}

// MeetDir returns the directory holding one meet's files.
func (w *Writer) MeetDir(meetID int64) string {
	return filepath.Join(w.root, strconv.FormatInt(meetID, 10))
}

// CheckDataRoot creates the data root if needed and checks that it is writable.
func (w *Writer) CheckDataRoot() error {
	if err := os.MkdirAll(w.root, dirPerm); err != nil {
		return fmt.Errorf(ErrContextMeetDir, w.root, err)
	}
	f, err := os.CreateTemp(w.root, ".writecheck-*")
	if err != nil {
		return fmt.Errorf(ErrContextMeetDir, w.root, err)
	}
	name := f.Name()
	_ = f.Close()
	return os.Remove(name)
}

// WriteHeat writes the next race file for the heat and then the heartbeat.
// The heartbeat is written even when the race file could not be.
// It returns the race file name, and any write error.
func (w *Writer) WriteHeat(ctx context.Context, snap domain.HeatSnapshot) (string, error) {
	start := time.Now()
	defer func() {
		metrics.SnapshotWriteDuration.Observe(time.Since(start).Seconds())
	}()
	log := logger.FromContext(ctx).With(logger.AttrKeyMeetID, snap.MeetID, LogKeyHeat, snap.HeatKey.String())

	var name string
	err := w.locks.WithHeat(snap.HeatKey, func() error {
		dir := w.MeetDir(snap.MeetID)
		var raceErr error
		name, raceErr = w.writeRace(dir, snap)

		seq := 0
		if raceErr != nil {
			metrics.SnapshotWritesTotal.WithLabelValues(metrics.ResultFailure).Inc()
			log.Error(LogMsgRaceFileFailed, LogKeyError, raceErr)
		} else {
			rf, _ := domain.ParseRaceFilename(name)
			seq = rf.Race
			metrics.SnapshotWritesTotal.WithLabelValues(metrics.ResultSuccess).Inc()
			log.Info(LogMsgRaceFileWritten, LogKeyFile, name, LogKeyRace, seq, LogKeyRevision, snap.Revision)
		}

		counter, hbErr := w.writeHeartbeat(ctx, dir, snap.HeatKey, seq)
		if hbErr != nil {
			metrics.HeartbeatWritesTotal.WithLabelValues(metrics.ResultFailure).Inc()
			log.Error(LogMsgHeartbeatFailed, LogKeyCounter, counter, LogKeyError, hbErr)
		} else {
			metrics.HeartbeatWritesTotal.WithLabelValues(metrics.ResultSuccess).Inc()
			log.Debug(LogMsgHeartbeatWritten, LogKeyCounter, counter, LogKeyRace, seq)
		}
		return errors.Join(raceErr, hbErr)
	})
	return name, err
}

func (w *Writer) writeRace(dir string, snap domain.HeatSnapshot) (string, error) {
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return "", fmt.Errorf(ErrContextMeetDir, dir, err)
	}

	seq, err := NextSequence(dir, snap.SessionNumber, snap.EventNumber, snap.HeatNumber)
	if err != nil {
		return "", err
	}

	rf := domain.RaceFile{
		Session: snap.SessionNumber,
		Event:   snap.EventNumber,
		Heat:    snap.HeatNumber,
		Race:    seq,
		Revised: snap.Revision,
	}

	current := currentByLane(snap.Results)
	lanes := make([]laneRow, 0, len(current))
	for _, r := range current {
		lanes = append(lanes, renderLane(r))
	}

	body := raceFile{
		CreatedAt:       w.now().UTC().Format(createdAtLayout),
		ProtocolVersion: domain.ProtocolVersion,
		SessionNumber:   snap.SessionNumber,
		EventNumber:     snap.EventNumber,
		HeatNumber:      snap.HeatNumber,
		RaceNumber:      seq,
		IsRevision:      snap.Revision,
		Lanes:           lanes,
	}

	name := rf.Filename()
	if err := saveFile(filepath.Join(dir, name), body); err != nil {
		return "", fmt.Errorf(ErrContextWriteRace, name, err)
	}
	return name, nil
}

func saveFile(path string, v interface{}) error {
	out, err := utils.MarshalIndentJSON(v)
	if err != nil {
		return err
	}
	return utils.WriteFileAtomic(path, out, filePerm)
}

// NextSequence scans dir and returns one more than the highest race number
// already used by the heat. Plain and revised files share the counter.
func NextSequence(dir string, session, event, heat int) (int, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return 1, nil
	}
	if err != nil {
		return 0, fmt.Errorf(ErrContextScanSequence, dir, err)
	}

	want := domain.RaceFile{Session: session, Event: event, Heat: heat}
	highest := 0
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		rf, ok := domain.ParseRaceFilename(e.Name())
		if !ok || !rf.SameHeat(want) {
			continue
		}
		if rf.Race > highest {
			highest = rf.Race
		}
	}
	return highest + 1, nil
}

// writeHeartbeat bumps the meet counter and overwrites the heartbeat file.
// The meet-wide mutex keeps counter order and file order the same.
// It returns the counter value written.
func (w *Writer) writeHeartbeat(ctx context.Context, dir string, heat domain.HeatKey, seq int) (int64, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	counter, seeded := w.counters[heat.MeetID]
	if !seeded {
		counter = w.seedCounter(ctx, dir)
	}
	counter++
	w.counters[heat.MeetID] = counter

	hb := heartbeat{
		CurrentEvent:         strconv.Itoa(heat.EventNumber),
		CurrentHeat:          heat.HeatNumber,
		CurrentSessionNumber: heat.SessionNumber,
		CurrentRaceNumber:    counter,
		LastRaceSequence:     seq,
		ProtocolVersion:      domain.ProtocolVersion,
		TimingSystemType:     domain.TimingSystemType,
		TimingSystemVersion:  domain.TimingSystemVersion,
		TimersPerLaneCount:   domain.TimersPerLaneCount,
		UpdatedAt:            w.now().UTC().Format(createdAtLayout),
	}
	if err := saveFile(filepath.Join(dir, domain.HeartbeatFilename), hb); err != nil {
		return counter, fmt.Errorf(ErrContextWriteHeartbeat, err)
	}
	return counter, nil
}

// seedCounter reads currentRaceNumber from an existing heartbeat so the
// counter keeps increasing across restarts.
func (w *Writer) seedCounter(ctx context.Context, dir string) int64 {
	path := filepath.Join(dir, domain.HeartbeatFilename)
	var hb heartbeat
	if err := utils.LoadJSON(path, &hb); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			logger.FromContext(ctx).Warn(LogMsgHeartbeatSeedError, LogKeyError, err)
		}
		return 0
	}
	return hb.CurrentRaceNumber
}
