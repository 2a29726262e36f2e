package database

import "time"

// Connection pool
const (
	// DefaultMinConnections is kept open even when idle
	DefaultMinConnections = 2

	PingTimeout = 5 * time.Second
)

// Migration settings
const (
	MigrationDialect = "postgres"
	MigrationDir     = "."
)

// Error Messages - Database Operations
const (
	ErrMsgFailedToParseConnString = "failed to parse connection string"
	ErrMsgFailedToCreatePool      = "failed to create connection pool"
	ErrMsgFailedToPingDatabase    = "failed to ping database"
	ErrMsgFailedToMigrate         = "failed to apply migrations"
)

// Log Messages
const (
	LogMsgSuccessfullyConnectedToDatabase = "Successfully connected to the database"
	LogMsgMigrationsApplied               = "Database migrations applied"
)
