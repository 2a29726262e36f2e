package relay

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/mcfadden20/Swim-meet-timer/internal/apiclient"
	"github.com/mcfadden20/Swim-meet-timer/internal/domain"
)

type MockClient struct {
	mock.Mock
}

func (m *MockClient) VerifyAuth(ctx context.Context, accessCode, adminPIN string) (*apiclient.VerifyAuthResponse, error) {
	args := m.Called(ctx, accessCode, adminPIN)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*apiclient.VerifyAuthResponse), args.Error(1)
}

func (m *MockClient) PendingFiles(ctx context.Context, accessCode, adminPIN string) ([]domain.PendingFile, error) {
	args := m.Called(ctx, accessCode, adminPIN)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PendingFile), args.Error(1)
}

func (m *MockClient) Receipt(ctx context.Context, accessCode, adminPIN string, filenames []string) (int, error) {
	args := m.Called(ctx, accessCode, adminPIN, filenames)
	return args.Int(0), args.Error(1)
}

// queuedCredentials hands out one pair per call.
type queuedCredentials struct {
	pairs []Credentials
	calls int
}

func (q *queuedCredentials) Credentials(context.Context) (Credentials, error) {
	if q.calls >= len(q.pairs) {
		return Credentials{}, context.Canceled
	}
	c := q.pairs[q.calls]
	q.calls++
	return c, nil
}
