package repository

import (
	"context"

	"github.com/mcfadden20/Swim-meet-timer/internal/domain"
)

// Meets reads meet identities and credentials. Meets are created outside the
// core, so there is no write side.
type Meets interface {
	GetMeetByID(ctx context.Context, meetID int64) (*domain.Meet, error)
	GetMeetByAccessCode(ctx context.Context, accessCode string) (*domain.Meet, error)
}
