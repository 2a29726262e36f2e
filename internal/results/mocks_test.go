package results

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/mcfadden20/Swim-meet-timer/internal/domain"
)

// MockMeets
type MockMeets struct {
	mock.Mock
}

func (m *MockMeets) GetMeetByID(ctx context.Context, meetID int64) (*domain.Meet, error) {
	args := m.Called(ctx, meetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Meet), args.Error(1)
}

func (m *MockMeets) GetMeetByAccessCode(ctx context.Context, accessCode string) (*domain.Meet, error) {
	args := m.Called(ctx, accessCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Meet), args.Error(1)
}

// MockWriter
type MockWriter struct {
	mock.Mock
}

func (m *MockWriter) WriteHeat(ctx context.Context, snap domain.HeatSnapshot) (string, error) {
	args := m.Called(ctx, snap)
	return args.String(0), args.Error(1)
}

// fakeResults is an in-memory results store with the same lookup rules as the
// postgres repository.
type fakeResults struct {
	mu      sync.Mutex
	nextID  int64
	records []domain.ResultRecord

	insertErr error
}

func newFakeResults() *fakeResults {
	return &fakeResults{}
}

func (f *fakeResults) InsertResult(ctx context.Context, rec *domain.ResultRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return f.insertErr
	}
	f.nextID++
	rec.ID = f.nextID
	rec.CreatedAt = time.Now()
	rec.UpdatedAt = rec.CreatedAt
	f.records = append(f.records, *rec)
	return nil
}

func (f *fakeResults) UpdateResult(ctx context.Context, rec *domain.ResultRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.records {
		if f.records[i].ID == rec.ID && f.records[i].MeetID == rec.MeetID {
			rec.UpdatedAt = time.Now()
			f.records[i] = *rec
			return nil
		}
	}
	return fmt.Errorf("update %d: %w", rec.ID, domain.ErrResultNotFound)
}

func (f *fakeResults) GetResult(ctx context.Context, meetID, resultID int64) (*domain.ResultRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.records {
		if r.ID == resultID && r.MeetID == meetID {
			out := r
			return &out, nil
		}
	}
	return nil, fmt.Errorf("get %d: %w", resultID, domain.ErrResultNotFound)
}

func (f *fakeResults) FindLatestDQ(ctx context.Context, meetID int64, event, heat, lane int) (*domain.ResultRecord, error) {
	return f.latest(func(r domain.ResultRecord) bool {
		return r.MeetID == meetID && r.EventNumber == event && r.HeatNumber == heat && r.Lane == lane && r.IsDQ
	}), nil
}

func (f *fakeResults) FindLatestTiming(ctx context.Context, meetID int64, session, event, heat, lane int) (*domain.ResultRecord, error) {
	return f.latest(func(r domain.ResultRecord) bool {
		return r.MeetID == meetID && r.SessionNumber == session && r.EventNumber == event &&
			r.HeatNumber == heat && r.Lane == lane && !r.IsDQ
	}), nil
}

func (f *fakeResults) ListHeatResults(ctx context.Context, heat domain.HeatKey) ([]domain.ResultRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.ResultRecord
	for _, r := range f.records {
		if r.Heat() == heat {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeResults) latest(match func(domain.ResultRecord) bool) *domain.ResultRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.records) - 1; i >= 0; i-- {
		if match(f.records[i]) {
			out := f.records[i]
			return &out
		}
	}
	return nil
}

func (f *fakeResults) dqRows(meetID int64, event, heat, lane int) []domain.ResultRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.ResultRecord
	for _, r := range f.records {
		if r.MeetID == meetID && r.EventNumber == event && r.HeatNumber == heat && r.Lane == lane && r.IsDQ {
			out = append(out, r)
		}
	}
	return out
}
