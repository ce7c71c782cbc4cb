package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "inventory-service", cfg.App.Name)
	assert.Equal(t, "0.0.0.0:8080", cfg.App.Addr())
	assert.Equal(t, 30*time.Second, cfg.App.RequestTimeout())
	assert.Equal(t, BackendPostgres, cfg.Storage.Backend)
	assert.Equal(t, "inventory.db", cfg.Storage.BoltPath)
	assert.True(t, cfg.Postgres.InitSchema)
	assert.Equal(t, 12, cfg.Auth.BcryptCost)
}

func TestLoadBoltBackend(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "bolt")
	t.Setenv("BOLT_PATH", "/tmp/test-inventory.db")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, BackendBolt, cfg.Storage.Backend)
	assert.Equal(t, "/tmp/test-inventory.db", cfg.Storage.BoltPath)
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "sqlite")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadRejectsBadRedisDB(t *testing.T) {
	t.Setenv("REDIS_DB", "not-a-number")

	_, err := Load()
	require.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("POSTGRES_MAX_CONNS", "25")
	t.Setenv("HTTP_REQUEST_TIMEOUT_SECONDS", "gibberish")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:9090", cfg.App.Addr())
	assert.Equal(t, int32(25), cfg.Postgres.MaxConns)
	// unparsable numbers fall back to the default
	assert.Equal(t, 30, cfg.App.RequestTimeoutSeconds)
}
