package apiclient

import (
	"time"

	"github.com/mcfadden20/Swim-meet-timer/internal/domain"
)

// TimeRequest is the body of POST /api/results
type TimeRequest struct {
	MeetID          int64      `json:"meet_id"`
	SessionNumber   int        `json:"session_number,omitempty"`
	EventNumber     int        `json:"event_number"`
	HeatNumber      int        `json:"heat_number"`
	Lane            int        `json:"lane"`
	TimeMS          int64      `json:"time_ms"`
	IsNoShow        bool       `json:"is_no_show"`
	SwimmerName     string     `json:"swimmer_name,omitempty"`
	ClientTimestamp *time.Time `json:"client_timestamp,omitempty"`
}

// DQRequest is the body of POST /api/official/submit-dq
type DQRequest struct {
	MeetID           int64  `json:"meet_id"`
	AdminPIN         string `json:"admin_pin"`
	SessionNumber    int    `json:"session_number,omitempty"`
	EventNumber      int    `json:"event_number"`
	HeatNumber       int    `json:"heat_number"`
	Lane             int    `json:"lane"`
	DQCode           string `json:"dq_code"`
	DQDescription    string `json:"dq_description,omitempty"`
	OfficialInitials string `json:"official_initials,omitempty"`
	TimeMS           *int64 `json:"time_ms,omitempty"`
}

// VerifyAuthResponse is returned by GET /api/sync/verify-auth
type VerifyAuthResponse struct {
	MeetID   int64  `json:"meet_id"`
	MeetName string `json:"meet_name"`
}

// PendingResponse is returned by GET /api/sync/pending-files
type PendingResponse struct {
	Pending []domain.PendingFile `json:"pending"`
}

// ReceiptRequest is the body of POST /api/sync/receipt
type ReceiptRequest struct {
	AccessCode string   `json:"access_code"`
	AdminPIN   string   `json:"admin_pin"`
	Filenames  []string `json:"filenames"`
}

// ReceiptResponse is returned by POST /api/sync/receipt
type ReceiptResponse struct {
	Acknowledged int `json:"acknowledged"`
}

type errorResponse struct {
	Error string `json:"error"`
}
