package database

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/mcfadden20/Swim-meet-timer/internal/testing/leaktest"
)

var containerConnString string

func TestMain(m *testing.M) {
	flag.Parse()

	stop := func() {}
	if !testing.Short() {
		containerConnString, stop = startPostgres(context.Background())
	}

	code := m.Run()
	stop()
	os.Exit(code)
}

func startPostgres(ctx context.Context) (conn string, stop func()) {
	stop = func() {}
	defer func() {
		// testcontainers panics when no Docker daemon is reachable
		if r := recover(); r != nil {
			fmt.Printf("postgres container unavailable: %v\n", r)
		}
	}()

	c, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("swimmeet"),
		postgres.WithUsername("timer"),
		postgres.WithPassword("timer"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		fmt.Printf("postgres container unavailable: %v\n", err)
		return "", stop
	}

	conn, err = c.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = c.Terminate(ctx)
		return "", stop
	}
	return conn, func() { _ = c.Terminate(ctx) }
}

func openTestPool(t *testing.T, maxConns int) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	if containerConnString == "" {
		t.Skip("Skipping integration test: database not available")
	}

	pool, err := NewPool(context.Background(), PoolSettings{
		ConnString:      containerConnString,
		MaxConns:        maxConns,
		MaxConnIdleTime: time.Minute,
		MaxConnLifetime: 5 * time.Minute,
		ApplicationName: "swim-meet-timer-test",
	})
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	require.NoError(t, Migrate(context.Background(), pool))
	return pool
}

func TestNewPool_RejectsMalformedConnString(t *testing.T) {
	_, err := NewPool(context.Background(), PoolSettings{ConnString: "postgres://%zz"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgFailedToParseConnString)
}

func TestNewPool_AppliesSettings(t *testing.T) {
	pool := openTestPool(t, 1)

	assert.Equal(t, int32(DefaultMinConnections), pool.Config().MaxConns, "max conns never below the idle floor")

	var app string
	err := pool.QueryRow(context.Background(), "SHOW application_name").Scan(&app)
	require.NoError(t, err)
	assert.Equal(t, "swim-meet-timer-test", app)
}

func TestMigrate_Idempotent(t *testing.T) {
	pool := openTestPool(t, 4)
	ctx := context.Background()

	require.NoError(t, Migrate(ctx, pool), "second run must be a no-op")

	for _, table := range []string{"meets", "results", "sync_receipts"} {
		var exists bool
		err := pool.QueryRow(ctx, "SELECT to_regclass($1) IS NOT NULL", table).Scan(&exists)
		require.NoError(t, err)
		assert.True(t, exists, "table %s should exist", table)
	}
}

func insertMeet(t *testing.T, pool *pgxpool.Pool, code, pin string) int64 {
	t.Helper()
	var id int64
	err := pool.QueryRow(context.Background(),
		`INSERT INTO meets (name, access_code, admin_pin) VALUES ($1, $2, $3) RETURNING id`,
		"Meet "+code, code, pin).Scan(&id)
	require.NoError(t, err)
	return id
}

func TestSchema_Constraints(t *testing.T) {
	pool := openTestPool(t, 4)
	ctx := context.Background()

	meetA := insertMeet(t, pool, "SCHEMA-A", "1001")
	meetB := insertMeet(t, pool, "SCHEMA-B", "1002")

	t.Run("one DQ row per lane", func(t *testing.T) {
		insert := `INSERT INTO results (meet_id, event_number, heat_number, lane, is_dq, dq_code)
			VALUES ($1, 3, 2, 4, TRUE, $2)`
		_, err := pool.Exec(ctx, insert, meetA, "FS")
		require.NoError(t, err)
		_, err = pool.Exec(ctx, insert, meetA, "SO")
		assert.Error(t, err)
		_, err = pool.Exec(ctx, insert, meetB, "FS")
		assert.NoError(t, err, "other meets are independent")
	})

	t.Run("timing rows repeat freely", func(t *testing.T) {
		insert := `INSERT INTO results (meet_id, event_number, heat_number, lane, time_ms)
			VALUES ($1, 1, 1, 1, $2)`
		for _, ms := range []int64{65432, 65500} {
			_, err := pool.Exec(ctx, insert, meetA, ms)
			require.NoError(t, err)
		}
	})

	t.Run("lane must be positive", func(t *testing.T) {
		_, err := pool.Exec(ctx,
			`INSERT INTO results (meet_id, event_number, heat_number, lane) VALUES ($1, 1, 1, 0)`, meetA)
		assert.Error(t, err)
	})

	t.Run("receipts are unique per meet", func(t *testing.T) {
		insert := `INSERT INTO sync_receipts (meet_id, filename) VALUES ($1, $2)`
		name := "session_1_event_1_heat_1_race_1.json"
		_, err := pool.Exec(ctx, insert, meetA, name)
		require.NoError(t, err)
		_, err = pool.Exec(ctx, insert, meetB, name)
		assert.NoError(t, err)
		_, err = pool.Exec(ctx, insert, meetA, name)
		assert.Error(t, err)
	})

	t.Run("deleting a meet cascades", func(t *testing.T) {
		_, err := pool.Exec(ctx, `DELETE FROM meets WHERE id = $1`, meetB)
		require.NoError(t, err)

		var n int
		err = pool.QueryRow(ctx,
			`SELECT (SELECT count(*) FROM results WHERE meet_id = $1) + (SELECT count(*) FROM sync_receipts WHERE meet_id = $1)`,
			meetB).Scan(&n)
		require.NoError(t, err)
		assert.Zero(t, n)
	})
}

func TestPool_ConcurrentHeatReads(t *testing.T) {
	pool := openTestPool(t, 5)
	ctx := context.Background()
	meet := insertMeet(t, pool, "SCHEMA-C", "1003")

	checker := leaktest.NewGoroutineChecker(t)

	var wg sync.WaitGroup
	for lane := 1; lane <= 10; lane++ {
		wg.Add(1)
		go func(lane int) {
			defer wg.Done()
			_, err := pool.Exec(ctx,
				`INSERT INTO results (meet_id, event_number, heat_number, lane, time_ms) VALUES ($1, 5, 1, $2, $3)`,
				meet, lane, 60000+lane)
			if err != nil {
				t.Errorf("lane %d: %v", lane, err)
			}
		}(lane)
	}
	wg.Wait()

	var n int
	require.NoError(t, pool.QueryRow(ctx,
		`SELECT count(*) FROM results WHERE meet_id = $1 AND event_number = 5`, meet).Scan(&n))
	assert.Equal(t, 10, n)
	assert.Zero(t, pool.Stat().AcquiredConns(), "all connections released")

	checker.Check(2)
}
