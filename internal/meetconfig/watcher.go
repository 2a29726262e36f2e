package meetconfig

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/mcfadden20/Swim-meet-timer/internal/domain"
	"github.com/mcfadden20/Swim-meet-timer/internal/logger"
)

// Watcher re-ingests a meet once one of its config files has stopped changing.
type Watcher struct {
	ingestor *Ingestor
	watcher  *fsnotify.Watcher
	settle   time.Duration

	mu     sync.Mutex
	timers map[int64]*time.Timer

	due      chan int64
	done     chan struct{}
	stopOnce sync.Once
	finished chan struct{}
}

// NewWatcher watches the ingestor's data root and each meet directory below it.
func NewWatcher(in *Ingestor, settle time.Duration) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		ingestor: in,
		watcher:  fw,
		settle:   settle,
		timers:   make(map[int64]*time.Timer),
		due:      make(chan int64, 16),
		done:     make(chan struct{}),
		finished: make(chan struct{}),
	}

	if err := fw.Add(in.Root()); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf(ErrContextWatchDirectory, in.Root(), err)
	}
	ids, err := in.meetIDs()
	if err != nil {
		_ = fw.Close()
		return nil, err
	}
	for _, id := range ids {
		if err := fw.Add(in.MeetDir(id)); err != nil {
			_ = fw.Close()
			return nil, fmt.Errorf(ErrContextWatchDirectory, in.MeetDir(id), err)
		}
	}
	return w, nil
}

// Start runs the event loop until ctx is cancelled or Stop is called.
func (w *Watcher) Start(ctx context.Context) {
	defer close(w.finished)
	log := logger.FromContext(ctx)
	log.Info(LogMsgWatcherStarted, LogKeyPath, w.ingestor.Root())

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handle(ctx, event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Error(LogMsgWatcherError, LogKeyError, err)
		case id := <-w.due:
			if err := w.ingestor.Ingest(ctx, id); err != nil {
				return
			}
		case <-ctx.Done():
			w.shutdown()
			return
		case <-w.done:
			return
		}
	}
}

// StartAsync starts watching in a goroutine.
func (w *Watcher) StartAsync(ctx context.Context) {
	go w.Start(ctx)
}

// Stop stops the watcher and waits for the event loop to exit.
func (w *Watcher) Stop() error {
	err := w.shutdown()
	<-w.finished
	return err
}

func (w *Watcher) shutdown() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.done)
		w.mu.Lock()
		for id, t := range w.timers {
			t.Stop()
			delete(w.timers, id)
		}
		w.mu.Unlock()
		err = w.watcher.Close()
		logger.Info(LogMsgWatcherStopped)
	})
	return err
}

func (w *Watcher) handle(ctx context.Context, event fsnotify.Event) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return
	}

	dir, name := filepath.Split(filepath.Clean(event.Name))
	dir = filepath.Clean(dir)

	// a new meet directory under the root
	if dir == filepath.Clean(w.ingestor.Root()) {
		id, ok := parseMeetID(name)
		if !ok || !event.Has(fsnotify.Create) {
			return
		}
		if info, err := os.Stat(event.Name); err != nil || !info.IsDir() {
			return
		}
		if err := w.watcher.Add(event.Name); err != nil {
			logger.FromContext(ctx).Error(LogMsgWatcherError, LogKeyPath, event.Name, LogKeyError, err)
			return
		}
		logger.FromContext(ctx).Info(LogMsgWatchingMeet, logger.AttrKeyMeetID, id)
		w.schedule(id)
		return
	}

	if name != domain.MeetDetailsFilename && name != domain.SessionSummaryFilename {
		return
	}
	if filepath.Dir(dir) != filepath.Clean(w.ingestor.Root()) {
		return
	}
	if id, ok := parseMeetID(filepath.Base(dir)); ok {
		w.schedule(id)
	}
}

// schedule (re)arms the settle timer of a meet.
func (w *Watcher) schedule(meetID int64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if t, ok := w.timers[meetID]; ok {
		t.Stop()
	}
	var t *time.Timer
	t = time.AfterFunc(w.settle, func() {
		w.mu.Lock()
		if w.timers[meetID] == t {
			delete(w.timers, meetID)
		}
		w.mu.Unlock()
		select {
		case w.due <- meetID:
		case <-w.done:
		}
	})
	w.timers[meetID] = t
}
