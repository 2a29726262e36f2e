package offlinequeue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mcfadden20/Swim-meet-timer/internal/apiclient"
	"github.com/mcfadden20/Swim-meet-timer/internal/domain"
	"github.com/mcfadden20/Swim-meet-timer/internal/logger"
)

// Outcome is what the operator is told after a submission.
type Outcome int

const (
	OutcomeSent Outcome = iota
	OutcomeQueued
)

func (o Outcome) String() string {
	if o == OutcomeQueued {
		return "queued"
	}
	return "sent"
}

// Sender is the part of the API client that records results.
type Sender interface {
	SubmitTime(ctx context.Context, req apiclient.TimeRequest) (*domain.ResultRecord, error)
	SubmitDQ(ctx context.Context, req apiclient.DQRequest) (*domain.ResultRecord, error)
}

// Store is the queue as used by the Submitter.
type Store interface {
	Enqueue(ctx context.Context, item Item) (Item, error)
	List(ctx context.Context) ([]Item, error)
	Remove(ctx context.Context, id string) error
	Park(ctx context.Context, id, reason string) error
	MarkAttempt(ctx context.Context, id string) error
	Len(ctx context.Context) (int, error)
}

// FlushResult summarises one flush pass.
type FlushResult struct {
	Sent      int
	Parked    int
	Remaining int
}

// Submitter sends submissions and parks them in the queue while the service
// is unreachable.
type Submitter struct {
	sender Sender
	queue  Store
	now    func() time.Time
}

// NewSubmitter creates a submitter
func NewSubmitter(sender Sender, queue Store) *Submitter {
	return &Submitter{sender: sender, queue: queue, now: time.Now}
}

// SubmitTime stamps req with the local time when unset and submits it.
func (s *Submitter) SubmitTime(ctx context.Context, req apiclient.TimeRequest) (Outcome, error) {
	if req.ClientTimestamp == nil {
		ts := s.now()
		req.ClientTimestamp = &ts
	}
	payload, err := json.Marshal(req)
	if err != nil {
		return OutcomeSent, fmt.Errorf(ErrContextMarshal, err)
	}
	return s.Submit(ctx, KindTime, payload)
}

// SubmitDQ submits a DQ call.
func (s *Submitter) SubmitDQ(ctx context.Context, req apiclient.DQRequest) (Outcome, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return OutcomeSent, fmt.Errorf(ErrContextMarshal, err)
	}
	return s.Submit(ctx, KindDQ, payload)
}

// Submit sends payload. When the service is unavailable the payload is queued
// and OutcomeQueued is returned with a nil error. Rejections are returned as
// errors and never queued.
func (s *Submitter) Submit(ctx context.Context, kind Kind, payload json.RawMessage) (Outcome, error) {
	err := s.send(ctx, kind, payload)
	if err == nil {
		return OutcomeSent, nil
	}
	if !apiclient.IsTransient(err) {
		return OutcomeSent, err
	}

	item, qerr := s.queue.Enqueue(ctx, Item{Kind: kind, Payload: payload})
	if qerr != nil {
		return OutcomeSent, errors.Join(err, qerr)
	}
	logger.FromContext(ctx).Warn(LogMsgQueued, LogKeyID, item.ID, LogKeyKind, string(kind), LogKeyError, err)
	return OutcomeQueued, nil
}

func (s *Submitter) send(ctx context.Context, kind Kind, payload json.RawMessage) error {
	switch kind {
	case KindTime:
		var req apiclient.TimeRequest
		if err := json.Unmarshal(payload, &req); err != nil {
			return fmt.Errorf(ErrContextDecodeQueued, kind, err)
		}
		_, err := s.sender.SubmitTime(ctx, req)
		return err
	case KindDQ:
		var req apiclient.DQRequest
		if err := json.Unmarshal(payload, &req); err != nil {
			return fmt.Errorf(ErrContextDecodeQueued, kind, err)
		}
		_, err := s.sender.SubmitDQ(ctx, req)
		return err
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}

// Flush resends queued items in order. A transient failure stops the pass
// and leaves that item and everything after it queued. An item the service
// refuses outright is parked rather than deleted.
func (s *Submitter) Flush(ctx context.Context) (FlushResult, error) {
	log := logger.FromContext(ctx)
	var res FlushResult

	items, err := s.queue.List(ctx)
	if err != nil {
		return res, err
	}

	for i, it := range items {
		err := s.send(ctx, it.Kind, it.Payload)
		switch {
		case err == nil:
			if err := s.queue.Remove(ctx, it.ID); err != nil {
				return res, err
			}
			res.Sent++
			log.Info(LogMsgFlushed, LogKeyID, it.ID, LogKeyKind, string(it.Kind))
		case apiclient.IsTransient(err) || ctx.Err() != nil:
			if merr := s.queue.MarkAttempt(ctx, it.ID); merr != nil {
				log.Warn(LogMsgFlushFailed, LogKeyID, it.ID, LogKeyError, merr)
			}
			res.Remaining = len(items) - i
			log.Warn(LogMsgFlushStopped, LogKeyID, it.ID, LogKeyAttempts, it.Attempts+1, LogKeyError, err)
			return res, err
		default:
			if perr := s.queue.Park(ctx, it.ID, err.Error()); perr != nil {
				return res, perr
			}
			res.Parked++
			log.Error(LogMsgFlushParked, LogKeyID, it.ID, LogKeyKind, string(it.Kind), LogKeyError, err)
		}
	}

	if res.Sent > 0 || res.Parked > 0 {
		log.Info(LogMsgFlushCompleted, LogKeySent, res.Sent, LogKeyParked, res.Parked)
	}
	return res, nil
}

// Run flushes immediately and then on every interval until ctx is done.
func (s *Submitter) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if _, err := s.Flush(ctx); err != nil && ctx.Err() == nil && !apiclient.IsTransient(err) {
			logger.FromContext(ctx).Error(LogMsgFlushFailed, LogKeyError, err)
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
