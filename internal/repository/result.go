package repository

import (
	"context"

	"github.com/mcfadden20/Swim-meet-timer/internal/domain"
)

// Results defines data access for lane results
type Results interface {
	InsertResult(ctx context.Context, rec *domain.ResultRecord) error
	UpdateResult(ctx context.Context, rec *domain.ResultRecord) error
	GetResult(ctx context.Context, meetID, resultID int64) (*domain.ResultRecord, error)
	// FindLatestDQ returns nil, nil when the lane has no DQ record.
	FindLatestDQ(ctx context.Context, meetID int64, event, heat, lane int) (*domain.ResultRecord, error)
	// FindLatestTiming returns nil, nil when the lane has no timing record.
	FindLatestTiming(ctx context.Context, meetID int64, session, event, heat, lane int) (*domain.ResultRecord, error)
	ListHeatResults(ctx context.Context, heat domain.HeatKey) ([]domain.ResultRecord, error)
}
