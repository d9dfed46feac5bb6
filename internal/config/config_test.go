package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `
[database]
host = "localhost"
user = "clinic"
password = "secret"
dbname = "clinic_booking"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "info", cfg.Logs.Level)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, 30, cfg.Reminders.PollIntervalSeconds)
	assert.Equal(t, 50, cfg.Reminders.BatchSize)
	assert.False(t, cfg.RateLimit.TrustForwarded)
	assert.Equal(t,
		"host=localhost port=5432 user=clinic password=secret dbname=clinic_booking sslmode=disable",
		cfg.Database.DSN())
}

func TestLoad_EnvOverride(t *testing.T) {
	path := writeConfig(t, `
[server]
http_port = 9090

[database]
host = "db"
dbname = "clinic_booking"

[rate_limit]
trust_forwarded = true
`)
	t.Setenv(EnvConfigPath, path)

	cfg, err := Load("does-not-exist.toml")
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.True(t, cfg.RateLimit.TrustForwarded)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{
			name: "missing host",
			body: `
[database]
dbname = "clinic_booking"
`,
		},
		{
			name: "reminders without notification service",
			body: `
[database]
host = "db"
dbname = "clinic_booking"

[reminders]
enabled = true
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}
