package snapshot

import (
	"fmt"
	"sort"

	"github.com/mcfadden20/Swim-meet-timer/internal/domain"
)

// laneRow is one lane of a race file.
type laneRow struct {
	Lane          int     `json:"lane"`
	Timer1        *string `json:"timer1"`
	IsEmpty       bool    `json:"isEmpty"`
	IsDQ          bool    `json:"isDq"`
	DQCode        *string `json:"dqCode"`
	DQDescription *string `json:"dqDescription"`
	DQOfficial    *string `json:"dqOfficial"`
}

// raceFile is the body of session_<S>_event_<E>_heat_<H>_race_<N>[-revised].json.
type raceFile struct {
	CreatedAt       string    `json:"createdAt"`
	ProtocolVersion string    `json:"protocolVersion"`
	SessionNumber   int       `json:"sessionNumber"`
	EventNumber     int       `json:"eventNumber"`
	HeatNumber      int       `json:"heatNumber"`
	RaceNumber      int       `json:"raceNumber"`
	IsRevision      bool      `json:"isRevision"`
	Lanes           []laneRow `json:"lanes"`
}

// heartbeat is the body of timing_system_configuration.json.
type heartbeat struct {
	CurrentEvent         string `json:"currentEvent"`
	CurrentHeat          int    `json:"currentHeat"`
	CurrentSessionNumber int    `json:"currentSessionNumber"`
	CurrentRaceNumber    int64  `json:"currentRaceNumber"`
	LastRaceSequence     int    `json:"lastRaceSequence"`
	ProtocolVersion      string `json:"protocolVersion"`
	TimingSystemType     string `json:"timingSystemType"`
	TimingSystemVersion  string `json:"timingSystemVersion"`
	TimersPerLaneCount   int    `json:"timersPerLaneCount"`
	UpdatedAt            string `json:"updatedAt"`
}

// FormatTime renders elapsed milliseconds as HH:MM:SS.mmm.
func FormatTime(ms int64) string {
	hours := ms / 3_600_000
	minutes := (ms % 3_600_000) / 60_000
	seconds := (ms % 60_000) / 1000
	millis := ms % 1000
	return fmt.Sprintf("%02d:%02d:%02d.%03d", hours, minutes, seconds, millis)
}

// currentByLane picks the record shown for each lane: the latest DQ if the
// lane has one, otherwise the latest timing record. Lanes come back sorted.
func currentByLane(results []domain.ResultRecord) []domain.ResultRecord {
	type pick struct {
		dq     *domain.ResultRecord
		timing *domain.ResultRecord
	}
	lanes := make(map[int]*pick)
	newer := func(cur *domain.ResultRecord, cand *domain.ResultRecord) bool {
		return cur == nil || cand.ID >= cur.ID
	}

	for i := range results {
		r := &results[i]
		p, ok := lanes[r.Lane]
		if !ok {
			p = &pick{}
			lanes[r.Lane] = p
		}
		if r.IsDQ {
			if newer(p.dq, r) {
				p.dq = r
			}
		} else if newer(p.timing, r) {
			p.timing = r
		}
	}

	out := make([]domain.ResultRecord, 0, len(lanes))
	for _, p := range lanes {
		if p.dq != nil {
			out = append(out, *p.dq)
		} else {
			out = append(out, *p.timing)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Lane < out[j].Lane })
	return out
}

func renderLane(r domain.ResultRecord) laneRow {
	row := laneRow{
		Lane:          r.Lane,
		IsEmpty:       r.IsNoShow,
		IsDQ:          r.IsDQ,
		DQCode:        optional(r.DQCode),
		DQDescription: optional(r.DQDescription),
		DQOfficial:    optional(r.OfficialInitials),
	}
	if r.TimeMS > 0 && !r.IsNoShow && !r.IsDQ {
		t := FormatTime(r.TimeMS)
		row.Timer1 = &t
	}
	return row
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
