package snapshot

// Directory and file permissions for files handed to the meet program
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// createdAtLayout is RFC 3339 with millisecond precision
const createdAtLayout = "2006-01-02T15:04:05.000Z07:00"

// Error context formats
const (
	ErrContextMeetDir        = "failed to prepare meet directory %s: %w"
	ErrContextScanSequence   = "failed to scan race files in %s: %w"
	ErrContextWriteRace      = "failed to write race file %s: %w"
	ErrContextWriteHeartbeat = "failed to write heartbeat: %w"
)

// Log messages
const (
	LogMsgRaceFileWritten    = "Race file written"
	LogMsgRaceFileFailed     = "Race file write failed"
	LogMsgHeartbeatWritten   = "Heartbeat written"
	LogMsgHeartbeatFailed    = "Heartbeat write failed"
	LogMsgHeartbeatSeedError = "Existing heartbeat unreadable, counter restarts"
)

// Log keys
const (
	LogKeyFile     = "file"
	LogKeyHeat     = "heat"
	LogKeyRace     = "race"
	LogKeyRevision = "revision"
	LogKeyCounter  = "counter"
	LogKeyError    = "error"
)
