package domain

import (
	"fmt"
	"time"
)

// ResultRecord is one lane result for a heat: a timing entry or a DQ.
type ResultRecord struct {
	ID               int64      `json:"id" db:"id"`
	MeetID           int64      `json:"meet_id" db:"meet_id"`
	SessionNumber    int        `json:"session_number" db:"session_number"`
	EventNumber      int        `json:"event_number" db:"event_number"`
	HeatNumber       int        `json:"heat_number" db:"heat_number"`
	Lane             int        `json:"lane" db:"lane"`
	TimeMS           int64      `json:"time_ms" db:"time_ms"`
	IsNoShow         bool       `json:"is_no_show" db:"is_no_show"`
	SwimmerName      string     `json:"swimmer_name,omitempty" db:"swimmer_name"`
	IsDQ             bool       `json:"is_dq" db:"is_dq"`
	DQCode           string     `json:"dq_code,omitempty" db:"dq_code"`
	DQDescription    string     `json:"dq_description,omitempty" db:"dq_description"`
	OfficialInitials string     `json:"official_initials,omitempty" db:"official_initials"`
	RawTimeMS        *int64     `json:"raw_time,omitempty" db:"raw_time"`
	ClientTimestamp  *time.Time `json:"client_timestamp,omitempty" db:"client_timestamp"`
	CreatedAt        time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at" db:"updated_at"`
}

// Heat returns the heat this record belongs to.
func (r ResultRecord) Heat() HeatKey {
	return HeatKey{
		MeetID:        r.MeetID,
		SessionNumber: r.SessionNumber,
		EventNumber:   r.EventNumber,
		HeatNumber:    r.HeatNumber,
	}
}

// HeatKey identifies one heat of one meet.
type HeatKey struct {
	MeetID        int64 `json:"meet_id"`
	SessionNumber int   `json:"session_number"`
	EventNumber   int   `json:"event_number"`
	HeatNumber    int   `json:"heat_number"`
}

func (k HeatKey) String() string {
	return fmt.Sprintf("%d:%d:%d:%d", k.MeetID, k.SessionNumber, k.EventNumber, k.HeatNumber)
}

// HeatSnapshot is the input of one snapshot write: every known result for the
// heat, and whether the write follows an edit of an existing record.
type HeatSnapshot struct {
	HeatKey
	Results  []ResultRecord
	Revision bool
}
