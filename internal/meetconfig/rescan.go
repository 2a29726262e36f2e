package meetconfig

import (
	"context"

	"github.com/mcfadden20/Swim-meet-timer/internal/logger"
)

// RescanJob re-ingests every meet. It is scheduled on the worker pool as a
// fallback for filesystem events the watcher missed.
type RescanJob struct {
	Ingestor *Ingestor
}

// Process implements worker.Job
func (j RescanJob) Process(ctx context.Context) error {
	if err := j.Ingestor.IngestAll(ctx); err != nil {
		logger.FromContext(ctx).Error(LogMsgRescanFailed, LogKeyError, err)
		return err
	}
	return nil
}
