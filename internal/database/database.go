package database

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Pool is the part of the connection pool the readiness check and shutdown need
type Pool interface {
	Ping(ctx context.Context) error
	Close()
}

// PoolSettings sizes the record store connection pool
type PoolSettings struct {
	ConnString      string
	MaxConns        int
	MaxConnIdleTime time.Duration
	MaxConnLifetime time.Duration
	// ApplicationName shows up in pg_stat_activity
	ApplicationName string
}

// NewPool opens a pool and pings it once before returning
func NewPool(ctx context.Context, s PoolSettings) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(s.ConnString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToParseConnString, err)
	}

	maxConns := min(max(s.MaxConns, DefaultMinConnections), math.MaxInt32)
	cfg.MaxConns = int32(maxConns)
	cfg.MinConns = DefaultMinConnections
	cfg.MaxConnIdleTime = s.MaxConnIdleTime
	cfg.MaxConnLifetime = s.MaxConnLifetime
	if s.ApplicationName != "" {
		cfg.ConnConfig.RuntimeParams["application_name"] = s.ApplicationName
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToCreatePool, err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, PingTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToPingDatabase, err)
	}

	slog.Default().Info(LogMsgSuccessfullyConnectedToDatabase, "max_conns", cfg.MaxConns)
	return pool, nil
}
