package apiclient

import "time"

// API paths
const (
	PathResults      = "/api/results"
	PathSubmitDQ     = "/api/official/submit-dq"
	PathMeetStatus   = "/api/maestro/status"
	PathVerifyAuth   = "/api/sync/verify-auth"
	PathPendingFiles = "/api/sync/pending-files"
	PathReceipt      = "/api/sync/receipt"
)

// Query parameter names
const (
	ParamAccessCode = "access_code"
	ParamAdminPIN   = "admin_pin"
	ParamMeetID     = "meet_id"
)

// Client defaults
const (
	DefaultTimeout    = 10 * time.Second
	DefaultRetries    = 2
	DefaultRetryDelay = 500 * time.Millisecond
)

// Log messages
const (
	LogMsgRetrying      = "Retrying API request"
	LogMsgRequestFailed = "API request failed"
)
