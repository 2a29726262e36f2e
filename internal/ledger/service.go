// Package ledger serves the relay agent: it authenticates meet credentials,
// lists race files the agent has not acknowledged yet and records receipts.
package ledger

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/mcfadden20/Swim-meet-timer/internal/domain"
	"github.com/mcfadden20/Swim-meet-timer/internal/logger"
	"github.com/mcfadden20/Swim-meet-timer/internal/metrics"
	"github.com/mcfadden20/Swim-meet-timer/internal/repository"
)

// Service defines the relay-facing delivery ledger
type Service interface {
	Authenticate(ctx context.Context, accessCode, adminPIN string) (*domain.Meet, error)
	VerifyAuth(ctx context.Context, accessCode, adminPIN string) (*domain.Meet, error)
	Pending(ctx context.Context, accessCode, adminPIN string) ([]domain.PendingFile, error)
	Receipt(ctx context.Context, accessCode, adminPIN string, filenames []string) (int, error)
}

// Config holds ledger tuning
type Config struct {
	DataRoot          string
	CacheSize         int
	CacheTTL          time.Duration
	FailuresPerMinute int
}

type service struct {
	meets    repository.Meets
	receipts repository.Receipts
	root     string
	cache    *credentialCache
	throttle *failureThrottle
}

// NewService creates a new ledger service
func NewService(meets repository.Meets, receipts repository.Receipts, cfg Config) Service {
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &service{
		meets:    meets,
		receipts: receipts,
		root:     cfg.DataRoot,
		cache:    newCredentialCache(cfg.CacheSize, ttl),
		throttle: newFailureThrottle(cfg.FailuresPerMinute),
	}
}

// Authenticate resolves the meet owning accessCode and checks adminPIN against it.
// A correct pair always succeeds. Once an access code has used up its failure
// budget, further wrong pairs get ErrTooManyAttempts instead of ErrUnauthorized.
func (s *service) Authenticate(ctx context.Context, accessCode, adminPIN string) (*domain.Meet, error) {
	if accessCode == "" || adminPIN == "" {
		metrics.AuthAttemptsTotal.WithLabelValues(metrics.ResultRejected).Inc()
		return nil, domain.ErrUnauthorized
	}

	meet, ok := s.cache.Get(accessCode)
	if !ok {
		found, err := s.meets.GetMeetByAccessCode(ctx, accessCode)
		if errors.Is(err, domain.ErrMeetNotFound) {
			return nil, s.reject(ctx, accessCode)
		}
		if err != nil {
			return nil, fmt.Errorf(ErrContextLookupMeet, err)
		}
		meet = *found
		s.cache.Set(meet)
	}

	if subtle.ConstantTimeCompare([]byte(adminPIN), []byte(meet.AdminPIN)) != 1 {
		return nil, s.reject(ctx, accessCode)
	}
	if !meet.IsActive {
		metrics.AuthAttemptsTotal.WithLabelValues(metrics.ResultRejected).Inc()
		return nil, fmt.Errorf("%w: %w", domain.ErrUnauthorized, domain.ErrMeetInactive)
	}

	metrics.AuthAttemptsTotal.WithLabelValues(metrics.ResultSuccess).Inc()
	return &meet, nil
}

func (s *service) reject(ctx context.Context, accessCode string) error {
	log := logger.FromContext(ctx)
	if s.throttle.Blocked(accessCode) {
		metrics.AuthAttemptsTotal.WithLabelValues(metrics.ResultThrottled).Inc()
		log.Warn(LogMsgAuthThrottled, LogKeyCodeHint, codeHint(accessCode))
		return domain.ErrTooManyAttempts
	}
	s.throttle.Fail(accessCode)
	metrics.AuthAttemptsTotal.WithLabelValues(metrics.ResultRejected).Inc()
	log.Warn(LogMsgAuthRejected, LogKeyCodeHint, codeHint(accessCode))
	return domain.ErrUnauthorized
}

// VerifyAuth is the relay agent's handshake; it only authenticates.
func (s *service) VerifyAuth(ctx context.Context, accessCode, adminPIN string) (*domain.Meet, error) {
	return s.Authenticate(ctx, accessCode, adminPIN)
}

// Pending returns race files in the meet's own directory that have no receipt,
// ordered by session, event, heat and race.
func (s *service) Pending(ctx context.Context, accessCode, adminPIN string) ([]domain.PendingFile, error) {
	meet, err := s.Authenticate(ctx, accessCode, adminPIN)
	if err != nil {
		return nil, err
	}
	log := logger.FromContext(ctx).With(logger.AttrKeyMeetID, meet.ID)

	dir := filepath.Join(s.root, strconv.FormatInt(meet.ID, 10))
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return []domain.PendingFile{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf(ErrContextListDir, dir, err)
	}

	acked, err := s.receipts.ListReceipts(ctx, meet.ID)
	if err != nil {
		return nil, fmt.Errorf(ErrContextListReceipts, err)
	}

	type candidate struct {
		name string
		rf   domain.RaceFile
	}
	var candidates []candidate
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		rf, ok := domain.ParseRaceFilename(e.Name())
		if !ok {
			continue
		}
		if _, done := acked[e.Name()]; done {
			continue
		}
		candidates = append(candidates, candidate{name: e.Name(), rf: rf})
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].rf.Less(candidates[j].rf)
	})

	pending := make([]domain.PendingFile, 0, len(candidates))
	for _, c := range candidates {
		data, err := os.ReadFile(filepath.Join(dir, c.name))
		if err == nil && !json.Valid(data) {
			err = errors.New("invalid json")
		}
		if err != nil {
			log.Warn(LogMsgPendingSkipped, LogKeyFile, c.name, LogKeyError, err)
			continue
		}
		pending = append(pending, domain.PendingFile{Filename: c.name, Content: json.RawMessage(data)})
	}

	metrics.PendingFilesServed.Add(float64(len(pending)))
	log.Debug(LogMsgPendingServed, LogKeyCount, len(pending))
	return pending, nil
}

// Receipt records that the meet's relay agent wrote filenames locally.
// Recording a name twice is a no-op; the count covers new receipts only.
func (s *service) Receipt(ctx context.Context, accessCode, adminPIN string, filenames []string) (int, error) {
	meet, err := s.Authenticate(ctx, accessCode, adminPIN)
	if err != nil {
		return 0, err
	}

	seen := make(map[string]struct{}, len(filenames))
	unique := make([]string, 0, len(filenames))
	for _, name := range filenames {
		if _, ok := domain.ParseRaceFilename(name); !ok {
			return 0, fmt.Errorf("%w: "+ErrMsgBadFilename, domain.ErrInvalidInput, name)
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		unique = append(unique, name)
	}
	if len(unique) == 0 {
		return 0, nil
	}

	n, err := s.receipts.InsertReceipts(ctx, meet.ID, unique)
	if err != nil {
		return 0, fmt.Errorf(ErrContextRecord, err)
	}

	metrics.ReceiptsRecorded.Add(float64(n))
	logger.FromContext(ctx).Info(LogMsgReceiptsRecorded,
		logger.AttrKeyMeetID, meet.ID, LogKeyCount, len(unique), LogKeyNew, n)
	return n, nil
}

// codeHint keeps access codes out of logs beyond their first two characters.
func codeHint(code string) string {
	if len(code) <= 2 {
		return code
	}
	return code[:2] + "…"
}
