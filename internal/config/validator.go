package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// ExpectedEnvSchemaVersion is bumped whenever a required variable is added
const ExpectedEnvSchemaVersion = "1.0"

const envSchemaVersion = "ENV_SCHEMA_VERSION"

// RequiredEnvVars must be present in production
var RequiredEnvVars = []string{
	envSchemaVersion,
	EnvDBUser,
	EnvDBPassword,
	EnvDBHost,
	EnvDBPort,
	EnvDBName,
	EnvMeetDataDir,
}

var (
	intEnvVars = []string{
		EnvDBMaxConns, EnvConfigReadAttempts, EnvAuthCacheSize,
		EnvAuthFailuresPerMinute, EnvWorkerCount, EnvRequestLimit,
	}
	durationEnvVars = []string{
		EnvDBMaxConnIdleTime, EnvDBMaxConnLifetime, EnvConfigReadDelay,
		EnvConfigSettleDelay, EnvConfigRescanInterval, EnvAuthCacheTTL, EnvRequestWindow,
	}
)

// ValidateEnv checks the schema version, required variables, and that numeric
// and duration variables parse. Load falls back to defaults on a typo; this
// turns the typo into a startup error instead.
func ValidateEnv() error {
	switch v := os.Getenv(envSchemaVersion); v {
	case ExpectedEnvSchemaVersion:
	case "":
		return fmt.Errorf("%s is not set (expected %s)", envSchemaVersion, ExpectedEnvSchemaVersion)
	default:
		return fmt.Errorf("%s mismatch: expected %s, got %s", envSchemaVersion, ExpectedEnvSchemaVersion, v)
	}

	var missing []string
	for _, key := range RequiredEnvVars {
		if os.Getenv(key) == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	var malformed []string
	for _, key := range intEnvVars {
		if v := os.Getenv(key); v != "" {
			if _, err := strconv.Atoi(v); err != nil {
				malformed = append(malformed, key)
			}
		}
	}
	for _, key := range durationEnvVars {
		if v := os.Getenv(key); v != "" {
			if _, err := time.ParseDuration(v); err != nil {
				malformed = append(malformed, key)
			}
		}
	}
	if len(malformed) > 0 {
		return fmt.Errorf("malformed environment variables: %s", strings.Join(malformed, ", "))
	}

	return nil
}

// ValidateEnvWithWarnings runs ValidateEnv and reports suspicious but usable settings
func ValidateEnvWithWarnings() ([]string, error) {
	if err := ValidateEnv(); err != nil {
		return nil, err
	}

	var warnings []string
	if os.Getenv(EnvDBPassword) == "change_this_secure_password" {
		warnings = append(warnings, "DB_PASSWORD is still the placeholder value")
	}

	dataDir := os.Getenv(EnvMeetDataDir)
	if !filepath.IsAbs(dataDir) {
		warnings = append(warnings, "MEET_DATA_DIR is relative; it resolves against the working directory")
	}
	if info, err := os.Stat(dataDir); err != nil || !info.IsDir() {
		warnings = append(warnings, "MEET_DATA_DIR does not exist yet")
	}

	return warnings, nil
}
