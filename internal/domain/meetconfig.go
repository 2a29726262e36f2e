package domain

import "time"

// MeetDetails is the identity record the meet program writes for a meet.
type MeetDetails struct {
	MeetName  string         `json:"meetName"`
	StartDate string         `json:"startDate"`
	Raw       map[string]any `json:"-"`
}

// EventSummary lists the heats the meet program has seeded for one event.
type EventSummary struct {
	EventNumber int    `json:"event_number"`
	Description string `json:"description"`
	HeatCount   int    `json:"heat_count"`
	Heats       []int  `json:"heats"`
}

// ConfigSnapshot is the last successfully parsed configuration of a meet.
type ConfigSnapshot struct {
	MeetID    int64          `json:"meet_id"`
	MeetName  string         `json:"meet_name,omitempty"`
	StartDate string         `json:"start_date,omitempty"`
	Details   map[string]any `json:"meet_details,omitempty"`
	Events    []EventSummary `json:"events"`
	UpdatedAt *time.Time     `json:"updated_at,omitempty"`
}
