package postgres

// PostgreSQL Error Codes
const (
	// PgErrorCodeUniqueViolation is the PostgreSQL error code for unique constraint violations
	PgErrorCodeUniqueViolation = "23505"
)

// Error Messages - Transaction Operations
const (
	ErrMsgFailedToBeginTransaction = "failed to begin transaction"
	ErrMsgFailedToCommit           = "failed to commit transaction"
)

// Error context formats for repository operations
const (
	ErrContextGetMeet         = "failed to get meet %d: %w"
	ErrContextGetMeetByCode   = "failed to get meet by access code: %w"
	ErrContextInsertResult    = "failed to insert result: %w"
	ErrContextUpdateResult    = "failed to update result %d: %w"
	ErrContextGetResult       = "failed to get result %d: %w"
	ErrContextFindDQ          = "failed to find dq record: %w"
	ErrContextFindTiming      = "failed to find timing record: %w"
	ErrContextListHeat        = "failed to list results for heat %s: %w"
	ErrContextListReceipts    = "failed to list receipts for meet %d: %w"
	ErrContextInsertReceipt   = "failed to insert receipt %q: %w"
	ErrContextScanResultRow   = "failed to scan result row: %w"
	ErrContextIterResultRows  = "failed to iterate result rows: %w"
	ErrContextScanReceiptRow  = "failed to scan receipt row: %w"
	ErrContextIterReceiptRows = "failed to iterate receipt rows: %w"
)

// Log Messages
const (
	LogMsgFailedToRollback = "Failed to rollback transaction"
)
