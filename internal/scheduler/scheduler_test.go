package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mcfadden20/Swim-meet-timer/internal/worker"
)

// MockJob is a simple job for testing
type MockJob struct {
	Done chan struct{}
}

func (m *MockJob) Process(ctx context.Context) error {
	select {
	case m.Done <- struct{}{}:
	default:
	}
	return nil
}

func TestScheduler(t *testing.T) {
	pool := worker.NewPool(1, 10)
	pool.Start(context.Background())
	defer pool.Stop()

	sched := New(pool)
	defer sched.Stop()

	job := &MockJob{
		Done: make(chan struct{}, 10),
	}

	sched.Schedule(10*time.Millisecond, "mock", job)

	timeout := time.After(time.Second)
	runCount := 0

	for runCount < 2 {
		select {
		case <-job.Done:
			runCount++
		case <-timeout:
			t.Fatal("Timeout waiting for job execution")
		}
	}

	assert.GreaterOrEqual(t, runCount, 2)
}

func TestScheduler_FullQueueDropsTick(t *testing.T) {
	// pool never started, so the queue of one stays full after the first tick
	pool := worker.NewPool(1, 1)
	sched := New(pool)

	job := &MockJob{Done: make(chan struct{}, 10)}
	sched.Schedule(5*time.Millisecond, "mock", job)

	time.Sleep(50 * time.Millisecond)
	sched.Stop()

	assert.False(t, pool.TryEnqueue(job), "queue should still hold exactly one job")
}
