package results

// ============================================================================
// Error Context Formats
// ============================================================================

const (
	ErrContextLookupMeet      = "failed to look up meet %d: %w"
	ErrContextInsertTiming    = "failed to store timing result: %w"
	ErrContextFindDQ          = "failed to look up existing dq: %w"
	ErrContextFindTiming      = "failed to look up lane timing: %w"
	ErrContextStoreDQ         = "failed to store dq: %w"
	ErrContextLoadResult      = "failed to load result %d: %w"
	ErrContextStoreCorrection = "failed to store correction for result %d: %w"
)

// ============================================================================
// Validation Messages
// ============================================================================

const (
	ErrMsgMeetIDRequired   = "meet_id must be a positive integer"
	ErrMsgEventRequired    = "event_number must be a positive integer"
	ErrMsgHeatRequired     = "heat_number must be a positive integer"
	ErrMsgLaneRequired     = "lane must be a positive integer"
	ErrMsgSessionInvalid   = "session_number must be positive when given"
	ErrMsgTimeNegative     = "time_ms must not be negative"
	ErrMsgResultIDRequired = "result id must be a positive integer"
	ErrMsgCorrectDQRecord  = "dq records are changed through submit-dq"
	ErrMsgDQCodeRequired   = "dq_code is required"
)

// ============================================================================
// Log Messages
// ============================================================================

const (
	LogMsgTimeSubmitted      = "Timing result stored"
	LogMsgDQInserted         = "DQ stored"
	LogMsgDQUpdated          = "Existing DQ overwritten"
	LogMsgResultCorrected    = "Result corrected"
	LogMsgHeatListFailed     = "Could not load heat for snapshot"
	LogMsgOfficialPINInvalid = "Official PIN rejected"
)

// Log keys
const (
	LogKeyResultID = "result_id"
	LogKeyHeat     = "heat"
	LogKeyLane     = "lane"
	LogKeyError    = "error"
)
