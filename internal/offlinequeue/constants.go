package offlinequeue

const schema = `
CREATE TABLE IF NOT EXISTS queued_submissions (
	seq       INTEGER PRIMARY KEY AUTOINCREMENT,
	id        TEXT    NOT NULL UNIQUE,
	kind      TEXT    NOT NULL,
	payload   TEXT    NOT NULL,
	queued_at TEXT    NOT NULL,
	attempts  INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS parked_submissions (
	seq       INTEGER PRIMARY KEY AUTOINCREMENT,
	id        TEXT    NOT NULL UNIQUE,
	kind      TEXT    NOT NULL,
	payload   TEXT    NOT NULL,
	queued_at TEXT    NOT NULL,
	attempts  INTEGER NOT NULL DEFAULT 0,
	parked_at TEXT    NOT NULL,
	reason    TEXT    NOT NULL
);
`

const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// ============================================================================
// Error Context Formats
// ============================================================================

const (
	ErrContextOpen         = "failed to open queue database: %w"
	ErrContextPragma       = "failed to set %s: %w"
	ErrContextSchema       = "failed to create queue schema: %w"
	ErrContextEnqueue      = "failed to enqueue submission: %w"
	ErrContextList         = "failed to list queued submissions: %w"
	ErrContextRemove       = "failed to remove queued submission %s: %w"
	ErrContextMarkAttempt  = "failed to record attempt for %s: %w"
	ErrContextCount        = "failed to count queued submissions: %w"
	ErrContextPark         = "failed to park queued submission %s: %w"
	ErrContextListParked   = "failed to list parked submissions: %w"
	ErrContextMarshal      = "failed to encode submission: %w"
	ErrContextDecodeQueued = "failed to decode queued %s submission: %w"
)

// ============================================================================
// Log Messages
// ============================================================================

const (
	LogMsgQueued         = "Server unreachable, submission saved offline"
	LogMsgFlushed        = "Queued submission sent"
	LogMsgFlushParked    = "Queued submission rejected by server, parked for review"
	LogMsgFlushStopped   = "Server still unreachable, flush paused"
	LogMsgFlushCompleted = "Offline queue flushed"
	LogMsgFlushFailed    = "Offline queue flush failed"
)

// Log keys
const (
	LogKeyID        = "id"
	LogKeyKind      = "kind"
	LogKeyAttempts  = "attempts"
	LogKeySent      = "sent"
	LogKeyParked    = "parked"
	LogKeyRemaining = "remaining"
	LogKeyError     = "error"
)
