package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ReceiptRepository implements repository.Receipts
type ReceiptRepository struct {
	db *pgxpool.Pool
}

// NewReceiptRepository creates a new receipt repository
func NewReceiptRepository(db *pgxpool.Pool) *ReceiptRepository {
	return &ReceiptRepository{db: db}
}

// ListReceipts returns the acknowledged filenames of one meet
func (r *ReceiptRepository) ListReceipts(ctx context.Context, meetID int64) (map[string]struct{}, error) {
	rows, err := r.db.Query(ctx, `SELECT filename FROM sync_receipts WHERE meet_id = $1`, meetID)
	if err != nil {
		return nil, fmt.Errorf(ErrContextListReceipts, meetID, err)
	}
	defer rows.Close()

	out := make(map[string]struct{})
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf(ErrContextScanReceiptRow, err)
		}
		out[name] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf(ErrContextIterReceiptRows, err)
	}
	return out, nil
}

// InsertReceipts records each filename once per meet; re-inserting is a no-op
func (r *ReceiptRepository) InsertReceipts(ctx context.Context, meetID int64, filenames []string) (int, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	defer SafeRollback(ctx, tx)

	query := `
		INSERT INTO sync_receipts (meet_id, filename)
		VALUES ($1, $2)
		ON CONFLICT (meet_id, filename) DO NOTHING
	`
	inserted := 0
	for _, name := range filenames {
		tag, err := tx.Exec(ctx, query, meetID, name)
		if err != nil {
			return 0, fmt.Errorf(ErrContextInsertReceipt, name, err)
		}
		inserted += int(tag.RowsAffected())
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToCommit, err)
	}
	return inserted, nil
}
