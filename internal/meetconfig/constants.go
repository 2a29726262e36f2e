package meetconfig

import "time"

// ============================================================================
// Defaults
// ============================================================================

// DefaultReadAttempts bounds how often a locked or half-written file is re-read
const DefaultReadAttempts = 5

// DefaultReadDelay is the fixed pause between read attempts
const DefaultReadDelay = 100 * time.Millisecond

// DefaultSettleDelay is how long a config file must stay quiet before it is ingested
const DefaultSettleDelay = 500 * time.Millisecond

// ============================================================================
// CSV Columns
// ============================================================================

const (
	colEvent       = 0
	colHeat        = 1
	colDescription = 2
)

// ============================================================================
// Error Context Formats
// ============================================================================

const (
	ErrContextStripBOM       = "failed to strip byte order mark: %w"
	ErrContextDecodeDetails  = "failed to decode meet details: %w"
	ErrContextReadSummary    = "failed to read session summary: %w"
	ErrContextReadAttempts   = "giving up on %s after %d attempts: %w"
	ErrContextWatchDirectory = "failed to watch %s: %w"
	ErrContextListDataRoot   = "failed to list data root %s: %w"
)

// ============================================================================
// Log Messages
// ============================================================================

const (
	LogMsgConfigFileMissing     = "Meet config file not present"
	LogMsgConfigFileRetry       = "Meet config file unreadable, retrying"
	LogMsgConfigFileUnavailable = "Meet config file unavailable, keeping previous value"
	LogMsgConfigIngested        = "Meet config ingested"
	LogMsgWatcherStarted        = "Meet config watcher started"
	LogMsgWatcherStopped        = "Meet config watcher stopped"
	LogMsgWatcherError          = "Meet config watcher error"
	LogMsgWatchingMeet          = "Watching meet directory"
	LogMsgRescanFailed          = "Meet config rescan failed"
)

// Log keys
const (
	LogKeyPath    = "path"
	LogKeyFile    = "file"
	LogKeyAttempt = "attempt"
	LogKeyEvents  = "events"
	LogKeyError   = "error"
)
