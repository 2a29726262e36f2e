package handler

// Generic HTTP error messages for client responses.
// Both handlers and tests should reference these constants.
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	// Query and path parameter error messages
	ErrMsgMissingQueryParam = "Missing %s query parameter"
	ErrMsgInvalidQueryParam = "Invalid %s query parameter"
	ErrMsgInvalidResultID   = "Invalid result ID"
)

// Operation names used in logs
const (
	OpMeetStatus   = "Meet status"
	OpSubmitTime   = "Submit time"
	OpCorrect      = "Correct result"
	OpSubmitDQ     = "Submit DQ"
	OpVerifyPIN    = "Verify official PIN"
	OpVerifyAuth   = "Verify relay credentials"
	OpPendingFiles = "Pending files"
	OpReceipt      = "Receipt"
)

// Success messages for API responses
const (
	MsgPINVerified = "PIN verified"
)

// Query parameter names
const (
	ParamMeetID     = "meet_id"
	ParamAccessCode = "access_code"
	ParamAdminPIN   = "admin_pin"
)
