package database

import "time"

// Pool defaults
const (
	// DefaultMinConnections keeps a couple of warm connections for dig saves
	DefaultMinConnections int32 = 2

	// ConnectTimeout bounds the startup ping
	ConnectTimeout = 10 * time.Second
)

// Error messages
const (
	ErrMsgFailedToParseConnString = "failed to parse connection string"
	ErrMsgFailedToCreatePool      = "failed to create connection pool"
	ErrMsgFailedToPingDatabase    = "failed to ping database"
	ErrMsgFailedToInitMigrations  = "failed to initialize migrations"
	ErrMsgFailedToApplyMigrations = "failed to apply migrations"
)

// Log messages
const (
	LogMsgSuccessfullyConnectedToDatabase = "Connected to database"
	LogMsgMigrationApplied                = "Migration applied"
	LogMsgMigrationsUpToDate              = "Database migrations up to date"
)
