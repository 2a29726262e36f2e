package repository

import (
	"context"
)

// Receipts defines data access for the relay delivery ledger
type Receipts interface {
	// ListReceipts returns the set of filenames the meet's relay agent acknowledged.
	ListReceipts(ctx context.Context, meetID int64) (map[string]struct{}, error)
	// InsertReceipts records each filename if absent and returns how many were new.
	InsertReceipts(ctx context.Context, meetID int64, filenames []string) (int, error)
}
