package snapshot

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcfadden20/Swim-meet-timer/internal/concurrency"
	"github.com/mcfadden20/Swim-meet-timer/internal/domain"
	"github.com/mcfadden20/Swim-meet-timer/internal/utils"
)

var fixedNow = time.Date(2026, 4, 11, 9, 30, 15, 250_000_000, time.UTC)

func newTestWriter(t *testing.T) (*Writer, string) {
	t.Helper()
	root := t.TempDir()
	return NewWriter(root, concurrency.NewLockManager()).WithClock(func() time.Time { return fixedNow }), root
}

func heat(meet int64, session, event, h int) domain.HeatKey {
	return domain.HeatKey{MeetID: meet, SessionNumber: session, EventNumber: event, HeatNumber: h}
}

func readHeartbeat(t *testing.T, dir string) heartbeat {
	t.Helper()
	var hb heartbeat
	require.NoError(t, utils.LoadJSON(filepath.Join(dir, domain.HeartbeatFilename), &hb))
	return hb
}

func TestWriteHeat_Golden(t *testing.T) {
	w, root := newTestWriter(t)
	key := heat(3, 1, 2, 1)

	results := []domain.ResultRecord{
		{ID: 1, Lane: 3, TimeMS: 65432, SwimmerName: "A. Swimmer"},
		{ID: 2, Lane: 1, IsNoShow: true},
		{ID: 3, Lane: 2, TimeMS: 71005},
		{ID: 4, Lane: 2, TimeMS: 71005, IsDQ: true, DQCode: "SW 7.4", DQDescription: "Alternating kick", OfficialInitials: "JB"},
		{ID: 5, Lane: 3, TimeMS: 64321},
		{ID: 6, Lane: 5, TimeMS: 3_723_004},
	}

	name, err := w.WriteHeat(context.Background(), domain.HeatSnapshot{HeatKey: key, Results: results})
	require.NoError(t, err)
	assert.Equal(t, "session_1_event_2_heat_1_race_1.json", name)

	dir := filepath.Join(root, "3")
	race, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	hb, err := os.ReadFile(filepath.Join(dir, domain.HeartbeatFilename))
	require.NoError(t, err)

	g := goldie.New(t)
	g.Assert(t, "race_file", race)
	g.Assert(t, "heartbeat", hb)
}

func TestWriteHeat_SequenceIncreases(t *testing.T) {
	w, root := newTestWriter(t)
	key := heat(1, 1, 4, 2)
	snap := domain.HeatSnapshot{HeatKey: key, Results: []domain.ResultRecord{{ID: 1, Lane: 1, TimeMS: 30000}}}

	for i := 1; i <= 5; i++ {
		name, err := w.WriteHeat(context.Background(), snap)
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("session_1_event_4_heat_2_race_%d.json", i), name)
	}

	hb := readHeartbeat(t, filepath.Join(root, "1"))
	assert.Equal(t, int64(5), hb.CurrentRaceNumber)
	assert.Equal(t, 5, hb.LastRaceSequence)
	assert.Equal(t, "4", hb.CurrentEvent)
	assert.Equal(t, 2, hb.CurrentHeat)
}

func TestWriteHeat_RevisionSharesCounter(t *testing.T) {
	w, root := newTestWriter(t)
	key := heat(1, 1, 1, 1)

	name, err := w.WriteHeat(context.Background(), domain.HeatSnapshot{HeatKey: key})
	require.NoError(t, err)
	assert.Equal(t, "session_1_event_1_heat_1_race_1.json", name)

	name, err = w.WriteHeat(context.Background(), domain.HeatSnapshot{HeatKey: key, Revision: true})
	require.NoError(t, err)
	assert.Equal(t, "session_1_event_1_heat_1_race_2-revised.json", name)

	name, err = w.WriteHeat(context.Background(), domain.HeatSnapshot{HeatKey: key})
	require.NoError(t, err)
	assert.Equal(t, "session_1_event_1_heat_1_race_3.json", name)

	var body raceFile
	require.NoError(t, utils.LoadJSON(filepath.Join(root, "1", "session_1_event_1_heat_1_race_2-revised.json"), &body))
	assert.True(t, body.IsRevision)
	assert.Equal(t, 2, body.RaceNumber)
	assert.NotNil(t, body.Lanes)
}

func TestWriteHeat_ContinuesAfterRestart(t *testing.T) {
	w, root := newTestWriter(t)
	key := heat(2, 1, 1, 1)

	for i := 0; i < 3; i++ {
		_, err := w.WriteHeat(context.Background(), domain.HeatSnapshot{HeatKey: key})
		require.NoError(t, err)
	}

	restarted := NewWriter(root, nil).WithClock(func() time.Time { return fixedNow })
	name, err := restarted.WriteHeat(context.Background(), domain.HeatSnapshot{HeatKey: key})
	require.NoError(t, err)
	assert.Equal(t, "session_1_event_1_heat_1_race_4.json", name)

	hb := readHeartbeat(t, filepath.Join(root, "2"))
	assert.Equal(t, int64(4), hb.CurrentRaceNumber)
}

func TestWriteHeat_HeatsAndMeetsAreIndependent(t *testing.T) {
	w, root := newTestWriter(t)
	ctx := context.Background()

	_, err := w.WriteHeat(ctx, domain.HeatSnapshot{HeatKey: heat(1, 1, 1, 1)})
	require.NoError(t, err)
	_, err = w.WriteHeat(ctx, domain.HeatSnapshot{HeatKey: heat(1, 1, 1, 1)})
	require.NoError(t, err)

	name, err := w.WriteHeat(ctx, domain.HeatSnapshot{HeatKey: heat(1, 1, 1, 2)})
	require.NoError(t, err)
	assert.Equal(t, "session_1_event_1_heat_2_race_1.json", name)

	name, err = w.WriteHeat(ctx, domain.HeatSnapshot{HeatKey: heat(1, 2, 1, 1)})
	require.NoError(t, err)
	assert.Equal(t, "session_2_event_1_heat_1_race_1.json", name)

	name, err = w.WriteHeat(ctx, domain.HeatSnapshot{HeatKey: heat(9, 1, 1, 1)})
	require.NoError(t, err)
	assert.Equal(t, "session_1_event_1_heat_1_race_1.json", name)

	assert.Equal(t, int64(4), readHeartbeat(t, filepath.Join(root, "1")).CurrentRaceNumber)
	assert.Equal(t, int64(1), readHeartbeat(t, filepath.Join(root, "9")).CurrentRaceNumber)
}

func TestWriteHeat_ConcurrentWritersNeverCollide(t *testing.T) {
	w, root := newTestWriter(t)
	key := heat(1, 1, 3, 1)

	const writers = 20
	var wg sync.WaitGroup
	names := make(chan string, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			name, err := w.WriteHeat(context.Background(), domain.HeatSnapshot{HeatKey: key})
			assert.NoError(t, err)
			names <- name
		}()
	}
	wg.Wait()
	close(names)

	var races []int
	for n := range names {
		rf, ok := domain.ParseRaceFilename(n)
		require.True(t, ok, n)
		races = append(races, rf.Race)
	}
	sort.Ints(races)
	for i, r := range races {
		assert.Equal(t, i+1, r)
	}

	hb := readHeartbeat(t, filepath.Join(root, "1"))
	assert.Equal(t, int64(writers), hb.CurrentRaceNumber)
}

func TestWriteHeat_RaceFailureStillWritesHeartbeat(t *testing.T) {
	w, root := newTestWriter(t)
	dir := filepath.Join(root, "1")
	// a directory squatting on the next race file name makes the rename fail
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "session_1_event_1_heat_1_race_1.json"), 0o755))

	name, err := w.WriteHeat(context.Background(), domain.HeatSnapshot{HeatKey: heat(1, 1, 1, 1)})
	assert.Error(t, err)
	assert.Empty(t, name)

	hb := readHeartbeat(t, dir)
	assert.Equal(t, int64(1), hb.CurrentRaceNumber)
	assert.Equal(t, 0, hb.LastRaceSequence)
}

func TestWriteHeat_UnwritableRoot(t *testing.T) {
	file := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	w := NewWriter(file, nil)
	_, err := w.WriteHeat(context.Background(), domain.HeatSnapshot{HeatKey: heat(1, 1, 1, 1)})
	assert.Error(t, err)
}

func TestWriteHeat_FilesReadableByMeetProgram(t *testing.T) {
	w, root := newTestWriter(t)
	name, err := w.WriteHeat(context.Background(), domain.HeatSnapshot{HeatKey: heat(4, 1, 1, 1)})
	require.NoError(t, err)

	dir := filepath.Join(root, "4")
	for _, f := range []string{name, domain.HeartbeatFilename} {
		info, err := os.Stat(filepath.Join(dir, f))
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(filePerm), info.Mode().Perm(), f)
	}
}

func TestNextSequence(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{
		"session_1_event_1_heat_1_race_1.json",
		"session_1_event_1_heat_1_race_4-revised.json",
		"session_1_event_1_heat_2_race_9.json",
		"session_2_event_1_heat_1_race_7.json",
		"session_1_event_1_heat_1_race_12.json.tmp",
		".session_1_event_1_heat_1_race_30.json.tmp-123",
		domain.HeartbeatFilename,
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("{}"), 0o644))
	}

	seq, err := NextSequence(dir, 1, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, 5, seq)

	seq, err = NextSequence(filepath.Join(dir, "missing"), 1, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, seq)
}

func TestCheckDataRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "meets")
	w := NewWriter(root, nil)

	require.NoError(t, w.CheckDataRoot())
	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Empty(t, entries, "write check file removed")

	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o600))
	assert.Error(t, NewWriter(blocker, nil).CheckDataRoot())
}
