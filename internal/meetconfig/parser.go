// Package meetconfig ingests the configuration files the meet program writes
// into each meet directory and keeps the last good parse in memory.
package meetconfig

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/mcfadden20/Swim-meet-timer/internal/domain"
)

// ErrEmptyFile is returned for a file with no content. The meet program
// truncates before rewriting, so an empty file is read again later.
var ErrEmptyFile = errors.New("file is empty")

// stripBOM drops a leading byte order mark, decoding UTF-16 input to UTF-8 on the way.
// Input that is empty or only whitespace afterwards yields ErrEmptyFile.
func stripBOM(data []byte) ([]byte, error) {
	out, _, err := transform.Bytes(unicode.BOMOverride(transform.Nop), data)
	if err != nil {
		return nil, fmt.Errorf(ErrContextStripBOM, err)
	}
	if len(bytes.TrimSpace(out)) == 0 {
		return nil, ErrEmptyFile
	}
	return out, nil
}

// ParseDetails decodes the meet identity record.
func ParseDetails(data []byte) (domain.MeetDetails, error) {
	clean, err := stripBOM(data)
	if err != nil {
		return domain.MeetDetails{}, err
	}

	var raw map[string]any
	if err := json.Unmarshal(clean, &raw); err != nil {
		return domain.MeetDetails{}, fmt.Errorf(ErrContextDecodeDetails, err)
	}
	if raw == nil {
		return domain.MeetDetails{}, fmt.Errorf(ErrContextDecodeDetails, errors.New("not an object"))
	}

	details := domain.MeetDetails{Raw: raw}
	details.MeetName, _ = raw["meetName"].(string)
	details.StartDate, _ = raw["startDate"].(string)
	return details, nil
}

// ParseSessionSummary reads (event, heat, description, ...) rows and groups them per event.
// Rows whose event column is not a positive integer are dropped, which also
// drops a header row when one is present.
func ParseSessionSummary(data []byte) ([]domain.EventSummary, error) {
	clean, err := stripBOM(data)
	if err != nil {
		return nil, err
	}

	r := csv.NewReader(bytes.NewReader(clean))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true

	byEvent := make(map[int]*eventAccumulator)
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf(ErrContextReadSummary, err)
		}

		event, ok := positiveInt(column(row, colEvent))
		if !ok {
			continue
		}
		acc, exists := byEvent[event]
		if !exists {
			acc = &eventAccumulator{heats: make(map[int]struct{})}
			byEvent[event] = acc
		}
		if heat, ok := positiveInt(column(row, colHeat)); ok {
			acc.addHeat(heat)
		}
		if acc.description == "" {
			acc.description = column(row, colDescription)
		}
	}

	events := make([]domain.EventSummary, 0, len(byEvent))
	for number, acc := range byEvent {
		events = append(events, acc.summary(number))
	}
	sort.Slice(events, func(i, j int) bool {
		return events[i].EventNumber < events[j].EventNumber
	})
	return events, nil
}

type eventAccumulator struct {
	description string
	maxHeat     int
	heats       map[int]struct{}
}

func (a *eventAccumulator) addHeat(heat int) {
	a.heats[heat] = struct{}{}
	if heat > a.maxHeat {
		a.maxHeat = heat
	}
}

func (a *eventAccumulator) summary(number int) domain.EventSummary {
	heats := make([]int, 0, len(a.heats))
	for h := range a.heats {
		heats = append(heats, h)
	}
	sort.Ints(heats)
	return domain.EventSummary{
		EventNumber: number,
		Description: a.description,
		HeatCount:   a.maxHeat,
		Heats:       heats,
	}
}

func column(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func positiveInt(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
