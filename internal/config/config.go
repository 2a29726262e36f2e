package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/mcfadden20/Swim-meet-timer/internal/database"
)

// Config holds the service configuration
type Config struct {
	Port        int
	LogLevel    string
	LogFormat   string
	Environment string
	ServiceName string
	Version     string
	LogDir      string

	DBUser            string
	DBPassword        string
	DBHost            string
	DBPort            string
	DBName            string
	DBMaxConns        int
	DBMaxConnIdleTime time.Duration
	DBMaxConnLifetime time.Duration

	// MeetDataDir holds one directory per meet id, shared with the meet program
	MeetDataDir          string
	ConfigReadAttempts   int
	ConfigReadDelay      time.Duration
	ConfigSettleDelay    time.Duration
	ConfigRescanInterval time.Duration

	AuthCacheSize         int
	AuthCacheTTL          time.Duration
	AuthFailuresPerMinute int

	WorkerCount    int
	TrustedProxies []string
	RequestLimit   int
	RequestWindow  time.Duration
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:    getEnv(EnvLogLevel, DefaultLogLevel),
		LogFormat:   getEnv(EnvLogFormat, DefaultLogFormat),
		Environment: getEnv(EnvEnvironment, DefaultEnvironment),
		ServiceName: getEnv(EnvServiceName, DefaultServiceName),
		Version:     getEnv(EnvVersion, DefaultVersion),
		LogDir:      getEnv(EnvLogDir, DefaultLogDir),

		DBUser:            getEnv(EnvDBUser, "postgres"),
		DBPassword:        getEnv(EnvDBPassword, "postgres"),
		DBHost:            getEnv(EnvDBHost, "localhost"),
		DBPort:            getEnv(EnvDBPort, "5432"),
		DBName:            getEnv(EnvDBName, "swimmeet"),
		DBMaxConns:        getEnvAsInt(EnvDBMaxConns, DefaultDBMaxConns),
		DBMaxConnIdleTime: getEnvAsDuration(EnvDBMaxConnIdleTime, DefaultDBMaxConnIdleTime),
		DBMaxConnLifetime: getEnvAsDuration(EnvDBMaxConnLifetime, DefaultDBMaxConnLifetime),

		MeetDataDir:          getEnv(EnvMeetDataDir, DefaultMeetDataDir),
		ConfigReadAttempts:   getEnvAsInt(EnvConfigReadAttempts, DefaultConfigReadAttempts),
		ConfigReadDelay:      getEnvAsDuration(EnvConfigReadDelay, DefaultConfigReadDelay),
		ConfigSettleDelay:    getEnvAsDuration(EnvConfigSettleDelay, DefaultConfigSettleDelay),
		ConfigRescanInterval: getEnvAsDuration(EnvConfigRescanInterval, DefaultConfigRescanInterval),

		AuthCacheSize:         getEnvAsInt(EnvAuthCacheSize, DefaultAuthCacheSize),
		AuthCacheTTL:          getEnvAsDuration(EnvAuthCacheTTL, DefaultAuthCacheTTL),
		AuthFailuresPerMinute: getEnvAsInt(EnvAuthFailuresPerMinute, DefaultAuthFailuresPerMinute),

		WorkerCount:    getEnvAsInt(EnvWorkerCount, DefaultWorkerCount),
		TrustedProxies: getEnvAsSlice(EnvTrustedProxies),
		RequestLimit:   getEnvAsInt(EnvRequestLimit, DefaultRequestLimit),
		RequestWindow:  getEnvAsDuration(EnvRequestWindow, DefaultRequestWindow),
	}

	portStr := getEnv(EnvPort, DefaultPort)
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	if cfg.ConfigReadAttempts < 1 {
		return nil, fmt.Errorf("%s must be at least 1, got %d", EnvConfigReadAttempts, cfg.ConfigReadAttempts)
	}
	if strings.TrimSpace(cfg.MeetDataDir) == "" {
		return nil, fmt.Errorf("%s must not be empty", EnvMeetDataDir)
	}

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt parses an integer variable, falling back to the default when unset or malformed
func getEnvAsInt(key string, defaultValue int) int {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return defaultValue
	}
	return n
}

// getEnvAsDuration parses a Go duration string ("500ms", "2m"), falling back to the default
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil || d < 0 {
		return defaultValue
	}
	return d
}

// getEnvAsSlice splits a comma separated variable, dropping empty entries
func getEnvAsSlice(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}

// PoolSettings returns the record store pool settings, tagged with the service name
func (c *Config) PoolSettings() database.PoolSettings {
	return database.PoolSettings{
		ConnString:      c.GetDBConnString(),
		MaxConns:        c.DBMaxConns,
		MaxConnIdleTime: c.DBMaxConnIdleTime,
		MaxConnLifetime: c.DBMaxConnLifetime,
		ApplicationName: c.ServiceName,
	}
}

// IsDevelopment reports whether the service runs in a development environment
func (c *Config) IsDevelopment() bool {
	return c.Environment == DefaultEnvironment || c.Environment == "development"
}
