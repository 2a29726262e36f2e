package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/mcfadden20/Swim-meet-timer/internal/domain"
	"github.com/mcfadden20/Swim-meet-timer/internal/results"
)

type MockResultsService struct {
	mock.Mock
}

func (m *MockResultsService) SubmitTime(ctx context.Context, sub results.TimeSubmission) (*domain.ResultRecord, error) {
	args := m.Called(ctx, sub)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ResultRecord), args.Error(1)
}

func (m *MockResultsService) SubmitDQ(ctx context.Context, sub results.DQSubmission) (*domain.ResultRecord, error) {
	args := m.Called(ctx, sub)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ResultRecord), args.Error(1)
}

func (m *MockResultsService) CorrectResult(ctx context.Context, c results.Correction) (*domain.ResultRecord, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ResultRecord), args.Error(1)
}

func (m *MockResultsService) VerifyOfficialPIN(ctx context.Context, meetID int64, pin string) error {
	return m.Called(ctx, meetID, pin).Error(0)
}

type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) Authenticate(ctx context.Context, accessCode, adminPIN string) (*domain.Meet, error) {
	args := m.Called(ctx, accessCode, adminPIN)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Meet), args.Error(1)
}

func (m *MockLedgerService) VerifyAuth(ctx context.Context, accessCode, adminPIN string) (*domain.Meet, error) {
	args := m.Called(ctx, accessCode, adminPIN)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Meet), args.Error(1)
}

func (m *MockLedgerService) Pending(ctx context.Context, accessCode, adminPIN string) ([]domain.PendingFile, error) {
	args := m.Called(ctx, accessCode, adminPIN)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PendingFile), args.Error(1)
}

func (m *MockLedgerService) Receipt(ctx context.Context, accessCode, adminPIN string, filenames []string) (int, error) {
	args := m.Called(ctx, accessCode, adminPIN, filenames)
	return args.Int(0), args.Error(1)
}

type stubStatus map[int64]domain.ConfigSnapshot

func (s stubStatus) Snapshot(meetID int64) domain.ConfigSnapshot {
	if snap, ok := s[meetID]; ok {
		return snap
	}
	return domain.ConfigSnapshot{MeetID: meetID, Events: []domain.EventSummary{}}
}
