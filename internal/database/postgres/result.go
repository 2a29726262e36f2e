package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mcfadden20/Swim-meet-timer/internal/domain"
)

// ResultRepository implements repository.Results
type ResultRepository struct {
	db *pgxpool.Pool
}

// NewResultRepository creates a new result repository
func NewResultRepository(db *pgxpool.Pool) *ResultRepository {
	return &ResultRepository{db: db}
}

const resultColumns = `id, meet_id, session_number, event_number, heat_number, lane,
	time_ms, is_no_show, swimmer_name, is_dq, dq_code, dq_description, official_initials,
	raw_time, client_timestamp, created_at, updated_at`

// InsertResult stores a new record and fills in its id and timestamps
func (r *ResultRepository) InsertResult(ctx context.Context, rec *domain.ResultRecord) error {
	query := `
		INSERT INTO results (meet_id, session_number, event_number, heat_number, lane,
			time_ms, is_no_show, swimmer_name, is_dq, dq_code, dq_description,
			official_initials, raw_time, client_timestamp)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query,
		rec.MeetID,
		rec.SessionNumber,
		rec.EventNumber,
		rec.HeatNumber,
		rec.Lane,
		rec.TimeMS,
		rec.IsNoShow,
		rec.SwimmerName,
		rec.IsDQ,
		rec.DQCode,
		rec.DQDescription,
		rec.OfficialInitials,
		rec.RawTimeMS,
		rec.ClientTimestamp,
	).Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			err = fmt.Errorf("%w: duplicate dq for lane %d", domain.ErrInvalidInput, rec.Lane)
		}
		return fmt.Errorf(ErrContextInsertResult, err)
	}
	return nil
}

// UpdateResult overwrites every mutable column of an existing record
func (r *ResultRepository) UpdateResult(ctx context.Context, rec *domain.ResultRecord) error {
	query := `
		UPDATE results
		SET session_number = $3, event_number = $4, heat_number = $5, lane = $6,
			time_ms = $7, is_no_show = $8, swimmer_name = $9, is_dq = $10, dq_code = $11,
			dq_description = $12, official_initials = $13, raw_time = $14, updated_at = NOW()
		WHERE id = $1 AND meet_id = $2
		RETURNING updated_at
	`
	err := r.db.QueryRow(ctx, query,
		rec.ID,
		rec.MeetID,
		rec.SessionNumber,
		rec.EventNumber,
		rec.HeatNumber,
		rec.Lane,
		rec.TimeMS,
		rec.IsNoShow,
		rec.SwimmerName,
		rec.IsDQ,
		rec.DQCode,
		rec.DQDescription,
		rec.OfficialInitials,
		rec.RawTimeMS,
	).Scan(&rec.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf(ErrContextUpdateResult, rec.ID, domain.ErrResultNotFound)
	}
	if err != nil {
		if isUniqueViolation(err) {
			err = fmt.Errorf("%w: duplicate dq for lane %d", domain.ErrInvalidInput, rec.Lane)
		}
		return fmt.Errorf(ErrContextUpdateResult, rec.ID, err)
	}
	return nil
}

// GetResult returns a record of the given meet
func (r *ResultRepository) GetResult(ctx context.Context, meetID, resultID int64) (*domain.ResultRecord, error) {
	query := `SELECT ` + resultColumns + ` FROM results WHERE id = $1 AND meet_id = $2`
	rec, err := scanResult(r.db.QueryRow(ctx, query, resultID, meetID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf(ErrContextGetResult, resultID, domain.ErrResultNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf(ErrContextGetResult, resultID, err)
	}
	return rec, nil
}

// FindLatestDQ returns the most recent DQ record of a lane or nil
func (r *ResultRepository) FindLatestDQ(ctx context.Context, meetID int64, event, heat, lane int) (*domain.ResultRecord, error) {
	query := `
		SELECT ` + resultColumns + `
		FROM results
		WHERE meet_id = $1 AND event_number = $2 AND heat_number = $3 AND lane = $4 AND is_dq
		ORDER BY id DESC
		LIMIT 1
	`
	rec, err := scanResult(r.db.QueryRow(ctx, query, meetID, event, heat, lane))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf(ErrContextFindDQ, err)
	}
	return rec, nil
}

// FindLatestTiming returns the most recent non-DQ record of a lane or nil
func (r *ResultRepository) FindLatestTiming(ctx context.Context, meetID int64, session, event, heat, lane int) (*domain.ResultRecord, error) {
	query := `
		SELECT ` + resultColumns + `
		FROM results
		WHERE meet_id = $1 AND session_number = $2 AND event_number = $3
			AND heat_number = $4 AND lane = $5 AND NOT is_dq
		ORDER BY id DESC
		LIMIT 1
	`
	rec, err := scanResult(r.db.QueryRow(ctx, query, meetID, session, event, heat, lane))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf(ErrContextFindTiming, err)
	}
	return rec, nil
}

// ListHeatResults returns every record of a heat in insertion order
func (r *ResultRepository) ListHeatResults(ctx context.Context, heat domain.HeatKey) ([]domain.ResultRecord, error) {
	query := `
		SELECT ` + resultColumns + `
		FROM results
		WHERE meet_id = $1 AND session_number = $2 AND event_number = $3 AND heat_number = $4
		ORDER BY id
	`
	rows, err := r.db.Query(ctx, query, heat.MeetID, heat.SessionNumber, heat.EventNumber, heat.HeatNumber)
	if err != nil {
		return nil, fmt.Errorf(ErrContextListHeat, heat, err)
	}
	defer rows.Close()

	var out []domain.ResultRecord
	for rows.Next() {
		rec, err := scanResult(rows)
		if err != nil {
			return nil, fmt.Errorf(ErrContextScanResultRow, err)
		}
		out = append(out, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf(ErrContextIterResultRows, err)
	}
	return out, nil
}

func scanResult(row pgx.Row) (*domain.ResultRecord, error) {
	var rec domain.ResultRecord
	err := row.Scan(
		&rec.ID,
		&rec.MeetID,
		&rec.SessionNumber,
		&rec.EventNumber,
		&rec.HeatNumber,
		&rec.Lane,
		&rec.TimeMS,
		&rec.IsNoShow,
		&rec.SwimmerName,
		&rec.IsDQ,
		&rec.DQCode,
		&rec.DQDescription,
		&rec.OfficialInitials,
		&rec.RawTimeMS,
		&rec.ClientTimestamp,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}
