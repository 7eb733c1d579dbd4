package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("APP_PORT", "")
	t.Setenv("REDIS_CACHE_TTL", "")
	t.Setenv("EVENT_RETENTION_DAYS", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, 15*time.Minute, cfg.Redis.CacheTTL)
	assert.Equal(t, 90, cfg.Queue.EventRetentionDays)
	assert.False(t, cfg.IsProduction())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("REDIS_CACHE_TTL", "1m")
	t.Setenv("QUEUE_ENABLED", "false")
	t.Setenv("WORKER_CONCURRENCY", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, time.Minute, cfg.Redis.CacheTTL)
	assert.False(t, cfg.Queue.Enabled)
	assert.Equal(t, 10, cfg.Queue.Concurrency)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("REDIS_CACHE_TTL", "soon")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("REDIS_CACHE_TTL", "")
	t.Setenv("EVENT_RETENTION_DAYS", "0")
	_, err = Load()
	assert.ErrorContains(t, err, "EVENT_RETENTION_DAYS")
}

func TestLoadDatabaseConfig(t *testing.T) {
	t.Setenv("DB_PORT", "6543")
	t.Setenv("DB_PASSWORD", "secret")
	cfg, err := LoadDatabaseConfig()
	require.NoError(t, err)
	assert.Equal(t, 6543, cfg.Port)
	assert.Equal(t, "schema_migrations", cfg.MigrationsTable)

	t.Setenv("APP_ENV", "production")
	t.Setenv("DB_PASSWORD", "")
	_, err = LoadDatabaseConfig()
	assert.ErrorContains(t, err, "DB_PASSWORD")
}
