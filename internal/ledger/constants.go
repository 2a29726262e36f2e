package ledger

import "time"

// ============================================================================
// Defaults
// ============================================================================

// DefaultCacheSize is the default number of resolved access codes kept
const DefaultCacheSize = 256

// DefaultCacheTTL is how long a resolved access code is trusted
const DefaultCacheTTL = 5 * time.Minute

// DefaultFailuresPerMinute is the failed-credential budget per access code
const DefaultFailuresPerMinute = 10

// throttleTrackedCodes bounds the number of access codes with failure state
const throttleTrackedCodes = 4096

// ============================================================================
// Error Context Formats
// ============================================================================

const (
	ErrContextLookupMeet   = "failed to resolve access code: %w"
	ErrContextListDir      = "failed to list meet directory %s: %w"
	ErrContextListReceipts = "failed to load receipts: %w"
	ErrContextRecord       = "failed to record receipts: %w"
	ErrMsgBadFilename      = "not a race file name: %q"
)

// ============================================================================
// Log Messages
// ============================================================================

const (
	LogMsgAuthRejected     = "Sync credentials rejected"
	LogMsgAuthThrottled    = "Sync credentials throttled"
	LogMsgPendingSkipped   = "Skipping unreadable race file"
	LogMsgPendingServed    = "Pending race files served"
	LogMsgReceiptsRecorded = "Sync receipts recorded"
)

// Log keys
const (
	LogKeyFile     = "file"
	LogKeyCount    = "count"
	LogKeyNew      = "new"
	LogKeyError    = "error"
	LogKeyCodeHint = "access_code_prefix"
)
