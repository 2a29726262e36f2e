package config

import "time"

// Environment variable names
const (
	EnvPort        = "PORT"
	EnvLogLevel    = "LOG_LEVEL"
	EnvLogFormat   = "LOG_FORMAT"
	EnvEnvironment = "ENVIRONMENT"
	EnvServiceName = "SERVICE_NAME"
	EnvVersion     = "VERSION"
	EnvLogDir      = "LOG_DIR"

	EnvDBUser            = "DB_USER"
	EnvDBPassword        = "DB_PASSWORD"
	EnvDBHost            = "DB_HOST"
	EnvDBPort            = "DB_PORT"
	EnvDBName            = "DB_NAME"
	EnvDBMaxConns        = "DB_MAX_CONNS"
	EnvDBMaxConnIdleTime = "DB_MAX_CONN_IDLE_TIME"
	EnvDBMaxConnLifetime = "DB_MAX_CONN_LIFETIME"

	EnvMeetDataDir          = "MEET_DATA_DIR"
	EnvConfigReadAttempts   = "CONFIG_READ_ATTEMPTS"
	EnvConfigReadDelay      = "CONFIG_READ_DELAY"
	EnvConfigSettleDelay    = "CONFIG_SETTLE_DELAY"
	EnvConfigRescanInterval = "CONFIG_RESCAN_INTERVAL"

	EnvAuthCacheSize         = "AUTH_CACHE_SIZE"
	EnvAuthCacheTTL          = "AUTH_CACHE_TTL"
	EnvAuthFailuresPerMinute = "AUTH_FAILURES_PER_MINUTE"

	EnvWorkerCount    = "WORKER_COUNT"
	EnvTrustedProxies = "TRUSTED_PROXIES"
	EnvRequestLimit   = "REQUEST_LIMIT"
	EnvRequestWindow  = "REQUEST_WINDOW"
)

// Defaults
const (
	DefaultPort        = "3000"
	DefaultLogLevel    = "info"
	DefaultLogFormat   = "text"
	DefaultEnvironment = "dev"
	DefaultServiceName = "swim-meet-timer"
	DefaultVersion     = "dev"
	DefaultLogDir      = "logs"

	DefaultDBMaxConns        = 10
	DefaultDBMaxConnIdleTime = 30 * time.Minute
	DefaultDBMaxConnLifetime = time.Hour

	DefaultMeetDataDir          = "meet_data"
	DefaultConfigReadAttempts   = 5
	DefaultConfigReadDelay      = 100 * time.Millisecond
	DefaultConfigSettleDelay    = 500 * time.Millisecond
	DefaultConfigRescanInterval = 30 * time.Second

	DefaultAuthCacheSize         = 256
	DefaultAuthCacheTTL          = 5 * time.Minute
	DefaultAuthFailuresPerMinute = 10

	DefaultWorkerCount   = 2
	DefaultRequestLimit  = 1000
	DefaultRequestWindow = 5 * time.Minute
)
