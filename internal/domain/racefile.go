package domain

import (
	"fmt"
	"regexp"
	"strconv"
)

var raceFilePattern = regexp.MustCompile(`^session_(\d+)_event_(\d+)_heat_(\d+)_race_(\d+)(-revised)?\.json$`)

// RaceFile is the parsed name of a race snapshot file.
type RaceFile struct {
	Session int
	Event   int
	Heat    int
	Race    int
	Revised bool
}

// Filename renders session_<S>_event_<E>_heat_<H>_race_<N>[-revised].json.
func (f RaceFile) Filename() string {
	suffix := ""
	if f.Revised {
		suffix = "-revised"
	}
	return fmt.Sprintf("session_%d_event_%d_heat_%d_race_%d%s.json", f.Session, f.Event, f.Heat, f.Race, suffix)
}

// SameHeat reports whether both files belong to the same session, event and heat.
func (f RaceFile) SameHeat(other RaceFile) bool {
	return f.Session == other.Session && f.Event == other.Event && f.Heat == other.Heat
}

// Less orders files by session, event, heat, race and finally plain before revised.
func (f RaceFile) Less(other RaceFile) bool {
	switch {
	case f.Session != other.Session:
		return f.Session < other.Session
	case f.Event != other.Event:
		return f.Event < other.Event
	case f.Heat != other.Heat:
		return f.Heat < other.Heat
	case f.Race != other.Race:
		return f.Race < other.Race
	}
	return !f.Revised && other.Revised
}

// ParseRaceFilename parses a race snapshot file name. Names that do not match
// the pattern exactly, including any path component, return false.
func ParseRaceFilename(name string) (RaceFile, bool) {
	m := raceFilePattern.FindStringSubmatch(name)
	if m == nil {
		return RaceFile{}, false
	}

	nums := make([]int, 4)
	for i := range nums {
		n, err := strconv.Atoi(m[i+1])
		if err != nil {
			return RaceFile{}, false
		}
		nums[i] = n
	}

	return RaceFile{
		Session: nums[0],
		Event:   nums[1],
		Heat:    nums[2],
		Race:    nums[3],
		Revised: m[5] != "",
	}, true
}
