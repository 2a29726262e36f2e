package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mcfadden20/Swim-meet-timer/internal/domain"
)

// MeetRepository implements repository.Meets
type MeetRepository struct {
	db *pgxpool.Pool
}

// NewMeetRepository creates a new meet repository
func NewMeetRepository(db *pgxpool.Pool) *MeetRepository {
	return &MeetRepository{db: db}
}

const meetColumns = `id, name, access_code, admin_pin, is_active, created_at`

// GetMeetByID returns domain.ErrMeetNotFound when no meet has the id
func (r *MeetRepository) GetMeetByID(ctx context.Context, meetID int64) (*domain.Meet, error) {
	query := `SELECT ` + meetColumns + ` FROM meets WHERE id = $1`
	meet, err := scanMeet(r.db.QueryRow(ctx, query, meetID))
	if err != nil {
		return nil, fmt.Errorf(ErrContextGetMeet, meetID, err)
	}
	return meet, nil
}

// GetMeetByAccessCode returns domain.ErrMeetNotFound when the code is unknown
func (r *MeetRepository) GetMeetByAccessCode(ctx context.Context, accessCode string) (*domain.Meet, error) {
	query := `SELECT ` + meetColumns + ` FROM meets WHERE access_code = $1`
	meet, err := scanMeet(r.db.QueryRow(ctx, query, accessCode))
	if err != nil {
		return nil, fmt.Errorf(ErrContextGetMeetByCode, err)
	}
	return meet, nil
}

func scanMeet(row pgx.Row) (*domain.Meet, error) {
	var m domain.Meet
	err := row.Scan(&m.ID, &m.Name, &m.AccessCode, &m.AdminPIN, &m.IsActive, &m.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrMeetNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}
