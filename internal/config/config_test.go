package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, EnvDev, cfg.AppEnv)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, time.Hour, cfg.SyncMatchesInterval)
	assert.Equal(t, 6*time.Hour, cfg.SyncPlayersInterval)
	assert.Equal(t, 500, cfg.SyncPlayersLimit)
	assert.Equal(t, 200, cfg.SyncMatchesLimit)
	assert.Equal(t, float64(10), cfg.ProviderRequestsPerSecond)
	assert.True(t, cfg.ProviderCircuitEnabled)
	assert.True(t, cfg.BootstrapOnStart)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_ENV", "prod")
	t.Setenv("SYNC_PLAYERS_LIMIT", "50")
	t.Setenv("PROVIDER_REQUESTS_PER_SECOND", "2.5")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("APP_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, EnvProd, cfg.AppEnv)
	assert.Equal(t, 50, cfg.SyncPlayersLimit)
	assert.Equal(t, 2.5, cfg.ProviderRequestsPerSecond)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
}

func TestLoad_InvalidAppEnv(t *testing.T) {
	t.Setenv("APP_ENV", "production")

	_, err := Load()
	require.Error(t, err)
}

func TestLoad_InvalidDuration(t *testing.T) {
	t.Setenv("SYNC_MATCHES_INTERVAL", "soon")

	_, err := Load()
	require.Error(t, err)
}
