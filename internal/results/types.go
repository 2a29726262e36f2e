package results

import "time"

// TimeSubmission is a lane time recorded by a timer.
type TimeSubmission struct {
	MeetID          int64
	SessionNumber   int // 0 means the default session
	EventNumber     int
	HeatNumber      int
	Lane            int
	TimeMS          int64
	IsNoShow        bool
	SwimmerName     string
	ClientTimestamp *time.Time
}

// DQSubmission is a disqualification called by an official.
type DQSubmission struct {
	MeetID           int64
	AdminPIN         string
	SessionNumber    int
	EventNumber      int
	HeatNumber       int
	Lane             int
	DQCode           string
	DQDescription    string
	OfficialInitials string
	TimeMS           *int64
}

// Correction edits an existing timing record. Nil fields are left unchanged.
type Correction struct {
	MeetID      int64
	AdminPIN    string
	ResultID    int64
	EventNumber *int
	HeatNumber  *int
	Lane        *int
	TimeMS      *int64
	IsNoShow    *bool
}
