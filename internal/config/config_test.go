package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("DB_DSN", "postgres://localhost:5432/schedule")
	t.Setenv("TELEGRAM_TOKEN", "123:abc")
	t.Setenv("ENV", "")
	t.Setenv("MIGRATIONS_PATH", "")
	t.Setenv("TIMEZONE", "")
	t.Setenv("DIGEST_HOUR", "")
	t.Setenv("ADMIN_IDS", "")
	t.Setenv("LOG_LEVEL", "")
}

func TestFromEnv_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "migrations", cfg.MigrationsPath)
	assert.Equal(t, "Europe/Moscow", cfg.Timezone)
	assert.Equal(t, 20, cfg.DigestHour)
	require.NotNil(t, cfg.Location)
	assert.Equal(t, "Europe/Moscow", cfg.Location.String())
	assert.False(t, cfg.IsProduction())
	assert.Empty(t, cfg.AdminIDs)
}

func TestFromEnv_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("ENV", "production")
	t.Setenv("TIMEZONE", "UTC")
	t.Setenv("DIGEST_HOUR", "7")
	t.Setenv("ADMIN_IDS", "101, 202,")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 7, cfg.DigestHour)
	assert.Equal(t, "UTC", cfg.Location.String())
	assert.Equal(t, []int64{101, 202}, cfg.AdminIDs)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestFromEnv_Errors(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "missing dsn", key: "DB_DSN", value: ""},
		{name: "missing token", key: "TELEGRAM_TOKEN", value: ""},
		{name: "hour not a number", key: "DIGEST_HOUR", value: "evening"},
		{name: "hour out of range", key: "DIGEST_HOUR", value: "24"},
		{name: "unknown timezone", key: "TIMEZONE", value: "Mars/Olympus"},
		{name: "bad admin id", key: "ADMIN_IDS", value: "101,admin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequired(t)
			t.Setenv(tt.key, tt.value)

			_, err := FromEnv()
			assert.Error(t, err)
		})
	}
}
