package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcfadden20/Swim-meet-timer/internal/domain"
)

func TestRepositories_Integration(t *testing.T) {
	pool := setupTestPool(t)
	ctx := context.Background()

	meetID := seedMeet(t, pool, "Spring Invitational", "SPRING", "4321", true)
	otherID := seedMeet(t, pool, "Winter Open", "WINTER", "9999", true)

	meets := NewMeetRepository(pool)
	results := NewResultRepository(pool)
	receipts := NewReceiptRepository(pool)

	t.Run("GetMeetByID", func(t *testing.T) {
		meet, err := meets.GetMeetByID(ctx, meetID)
		require.NoError(t, err)
		assert.Equal(t, "Spring Invitational", meet.Name)
		assert.Equal(t, "4321", meet.AdminPIN)
		assert.True(t, meet.IsActive)

		_, err = meets.GetMeetByID(ctx, 99999)
		assert.ErrorIs(t, err, domain.ErrMeetNotFound)
	})

	t.Run("GetMeetByAccessCode", func(t *testing.T) {
		meet, err := meets.GetMeetByAccessCode(ctx, "WINTER")
		require.NoError(t, err)
		assert.Equal(t, otherID, meet.ID)

		_, err = meets.GetMeetByAccessCode(ctx, "NOPE")
		assert.ErrorIs(t, err, domain.ErrMeetNotFound)
	})

	t.Run("Result lifecycle", func(t *testing.T) {
		timing := &domain.ResultRecord{
			MeetID:        meetID,
			SessionNumber: 1,
			EventNumber:   3,
			HeatNumber:    2,
			Lane:          4,
			TimeMS:        65432,
			SwimmerName:   "A. Swimmer",
		}
		require.NoError(t, results.InsertResult(ctx, timing))
		assert.NotZero(t, timing.ID)
		assert.False(t, timing.CreatedAt.IsZero())

		latest, err := results.FindLatestTiming(ctx, meetID, 1, 3, 2, 4)
		require.NoError(t, err)
		require.NotNil(t, latest)
		assert.Equal(t, timing.ID, latest.ID)
		assert.Nil(t, latest.RawTimeMS)

		dq, err := results.FindLatestDQ(ctx, meetID, 3, 2, 4)
		require.NoError(t, err)
		assert.Nil(t, dq)

		raw := timing.TimeMS
		dqRec := &domain.ResultRecord{
			MeetID:           meetID,
			SessionNumber:    1,
			EventNumber:      3,
			HeatNumber:       2,
			Lane:             4,
			IsDQ:             true,
			DQCode:           "SW 7.4",
			DQDescription:    "Alternating kick",
			OfficialInitials: "JB",
			RawTimeMS:        &raw,
		}
		require.NoError(t, results.InsertResult(ctx, dqRec))

		// a second DQ row for the same lane violates the partial unique index
		dup := *dqRec
		dup.ID = 0
		err = results.InsertResult(ctx, &dup)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)

		dq, err = results.FindLatestDQ(ctx, meetID, 3, 2, 4)
		require.NoError(t, err)
		require.NotNil(t, dq)
		assert.Equal(t, dqRec.ID, dq.ID)
		require.NotNil(t, dq.RawTimeMS)
		assert.Equal(t, int64(65432), *dq.RawTimeMS)

		dq.DQCode = "SW 8.2"
		require.NoError(t, results.UpdateResult(ctx, dq))

		got, err := results.GetResult(ctx, meetID, dq.ID)
		require.NoError(t, err)
		assert.Equal(t, "SW 8.2", got.DQCode)

		_, err = results.GetResult(ctx, otherID, dq.ID)
		assert.ErrorIs(t, err, domain.ErrResultNotFound)

		heat, err := results.ListHeatResults(ctx, domain.HeatKey{MeetID: meetID, SessionNumber: 1, EventNumber: 3, HeatNumber: 2})
		require.NoError(t, err)
		assert.Len(t, heat, 2)
	})

	t.Run("UpdateResult missing row", func(t *testing.T) {
		err := results.UpdateResult(ctx, &domain.ResultRecord{ID: 123456, MeetID: meetID, EventNumber: 1, HeatNumber: 1, Lane: 1})
		assert.ErrorIs(t, err, domain.ErrResultNotFound)
	})

	t.Run("Receipts are idempotent and scoped per meet", func(t *testing.T) {
		name := "session_1_event_3_heat_2_race_1.json"

		n, err := receipts.InsertReceipts(ctx, meetID, []string{name})
		require.NoError(t, err)
		assert.Equal(t, 1, n)

		n, err = receipts.InsertReceipts(ctx, meetID, []string{name})
		require.NoError(t, err)
		assert.Equal(t, 0, n)

		mine, err := receipts.ListReceipts(ctx, meetID)
		require.NoError(t, err)
		assert.Contains(t, mine, name)

		theirs, err := receipts.ListReceipts(ctx, otherID)
		require.NoError(t, err)
		assert.Empty(t, theirs)
	})
}
