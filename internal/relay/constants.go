package relay

import (
	"os"
	"time"
)

// DefaultPollInterval is the fixed delay between two polls.
const DefaultPollInterval = 120 * time.Second

const (
	filePerm   os.FileMode = 0o644
	jsonIndent = "  "
)

// ============================================================================
// Log Messages
// ============================================================================

const (
	LogMsgStateChanged       = "Relay state changed"
	LogMsgCredentialsMissing = "Both meet code and admin PIN are required"
	LogMsgVerified           = "Credentials verified"
	LogMsgRejected           = "Credentials rejected, check meet code and PIN"
	LogMsgServerUnreachable  = "Could not reach server, will retry"
	LogMsgSyncActive         = "Synchronizer active"
	LogMsgPendingFailed      = "Could not fetch pending files"
	LogMsgNothingPending     = "No files pending"
	LogMsgFileWritten        = "Wrote race file"
	LogMsgFileWriteFailed    = "Failed to write race file"
	LogMsgReceiptFailed      = "Failed to send receipt, will retry next cycle"
	LogMsgReceiptSent        = "Acknowledged files"
	LogMsgPickerFailed       = "Native folder dialog unavailable"
)

// Log keys
const (
	LogKeyFrom     = "from"
	LogKeyTo       = "to"
	LogKeyMeetID   = "meet_id"
	LogKeyMeetName = "meet_name"
	LogKeyDir      = "dir"
	LogKeyFilename = "filename"
	LogKeyCount    = "count"
	LogKeyInterval = "interval"
	LogKeyError    = "error"
)

// ============================================================================
// Error Context Formats
// ============================================================================

const (
	ErrContextReadCredentials = "failed to read credentials: %w"
	ErrContextResolveDir      = "failed to choose watch directory: %w"
	ErrContextIndentContent   = "failed to format %s: %w"
	ErrContextWriteFile       = "failed to write %s: %w"
)
