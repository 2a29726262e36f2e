package worker

import (
	"context"
	"fmt"
	"sync"

	"github.com/mcfadden20/Swim-meet-timer/internal/logger"
)

// Job is one unit of background work, such as a config rescan
type Job interface {
	Process(ctx context.Context) error
}

// JobFunc adapts a plain function to Job
type JobFunc func(ctx context.Context) error

// Process calls f(ctx)
func (f JobFunc) Process(ctx context.Context) error { return f(ctx) }

// Pool runs queued jobs on a fixed number of goroutines
type Pool struct {
	workers  int
	jobQueue chan Job
	wg       sync.WaitGroup
	quit     chan struct{}
	ctx      context.Context
}

// NewPool creates a new worker pool
func NewPool(workers int, queueSize int) *Pool {
	if workers < 1 {
		workers = 1
	}
	return &Pool{
		workers:  workers,
		jobQueue: make(chan Job, queueSize),
		quit:     make(chan struct{}),
		ctx:      context.Background(),
	}
}

// Start starts the workers. Jobs run with ctx so they inherit its logger and cancellation.
func (p *Pool) Start(ctx context.Context) {
	if ctx != nil {
		p.ctx = ctx
	}
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for {
		select {
		case job := <-p.jobQueue:
			if err := job.Process(p.ctx); err != nil {
				logger.FromContext(p.ctx).Error(LogMsgWorkerJobFailed,
					LogKeyJob, fmt.Sprintf("%T", job), LogKeyError, err)
			}
		case <-p.quit:
			return
		}
	}
}

// TryEnqueue adds a job without blocking and reports whether it was accepted.
// A stopped pool accepts nothing.
func (p *Pool) TryEnqueue(job Job) bool {
	select {
	case <-p.quit:
		return false
	default:
	}
	select {
	case p.jobQueue <- job:
		return true
	default:
		return false
	}
}

// Stop stops the workers and waits for them to finish
func (p *Pool) Stop() {
	close(p.quit)
	p.wg.Wait()
	logger.FromContext(p.ctx).Debug(LogMsgWorkerStopped, "queued", len(p.jobQueue))
}
