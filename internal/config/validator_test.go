package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv(envSchemaVersion, ExpectedEnvSchemaVersion)
	t.Setenv(EnvDBUser, "timer")
	t.Setenv(EnvDBPassword, "s3cret")
	t.Setenv(EnvDBHost, "localhost")
	t.Setenv(EnvDBPort, "5432")
	t.Setenv(EnvDBName, "swimmeet")
	t.Setenv(EnvMeetDataDir, t.TempDir())
}

func TestValidateEnv(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{name: "complete", env: nil},
		{name: "missing version", env: map[string]string{envSchemaVersion: ""}, wantErr: "ENV_SCHEMA_VERSION is not set"},
		{name: "version mismatch", env: map[string]string{envSchemaVersion: "0.9"}, wantErr: "expected 1.0, got 0.9"},
		{name: "missing data dir", env: map[string]string{EnvMeetDataDir: ""}, wantErr: EnvMeetDataDir},
		{name: "bad int", env: map[string]string{EnvConfigReadAttempts: "five"}, wantErr: EnvConfigReadAttempts},
		{name: "bad duration", env: map[string]string{EnvConfigSettleDelay: "500"}, wantErr: EnvConfigSettleDelay},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequiredEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			err := ValidateEnv()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateEnvWithWarnings(t *testing.T) {
	t.Run("placeholder password", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv(EnvDBPassword, "change_this_secure_password")

		warnings, err := ValidateEnvWithWarnings()
		require.NoError(t, err)
		require.Len(t, warnings, 1)
		assert.Contains(t, warnings[0], "DB_PASSWORD")
	})

	t.Run("relative missing data dir", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv(EnvMeetDataDir, "does-not-exist/meets")

		warnings, err := ValidateEnvWithWarnings()
		require.NoError(t, err)
		assert.Len(t, warnings, 2)
	})
}
