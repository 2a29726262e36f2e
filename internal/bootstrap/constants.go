package bootstrap

// =============================================================================
// File System Permissions
// =============================================================================

const (
	// DirPermission is the standard permission for creating directories
	DirPermission = 0755

	// LogFilePermission is the permission for log files (read/write for owner, read for group/others)
	LogFilePermission = 0666
)

// =============================================================================
// Logger Configuration
// =============================================================================

const (
	// LogFileTimestampFormat is the timestamp format for log filenames (YYYY-MM-DD_HH-MM-SS)
	LogFileTimestampFormat = "2006-01-02_15-04-05"

	// LogFileNamePattern is the format string for log filenames
	LogFileNamePattern = "service_%s.log"

	LogFileExtension = ".log"

	// LogFileRetentionCount is the number of log files kept after cleanup
	LogFileRetentionCount = 9
)

// Log messages for logger initialization
const (
	LogMsgLoggingInitialized  = "Logging initialized"
	LogMsgStartingService     = "Starting swim meet timing service"
	LogMsgConfigurationLoaded = "Configuration loaded"
	LogMsgFailedCreateLogsDir = "failed to create logs directory"
	LogMsgFailedOpenLogFile   = "failed to open log file"
	LogMsgFailedDeleteOldLog  = "Failed to delete old log file"
)

// =============================================================================
// Meet Configuration Ingestion
// =============================================================================

const (
	// WorkerQueueSize bounds pending background jobs; a full queue skips a rescan tick
	WorkerQueueSize = 16

	// JobNameConfigRescan names the scheduled meet configuration rescan
	JobNameConfigRescan = "meet-config-rescan"
)

const (
	LogMsgIngestionStarted    = "Meet configuration ingestion started"
	LogMsgInitialIngestFailed = "Initial meet configuration scan failed"
	ErrMsgFailedCreateWatcher = "failed to create meet configuration watcher"
	ErrMsgDataDirUnusable     = "meet data directory is not writable"
)

// =============================================================================
// Shutdown Messages
// =============================================================================

const (
	LogMsgShuttingDownServer   = "Shutting down server..."
	LogMsgServerStopped        = "Server stopped"
	LogMsgServerForcedShutdown = "Server forced to shutdown"
	LogMsgWatcherStopFailed    = "Meet configuration watcher stop failed"
	LogMsgStoppingBackground   = "Stopping background jobs..."
)
