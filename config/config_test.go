package config

import (
	"testing"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppConfig_Defaults(t *testing.T) {
	var cfg AppConfig
	require.NoError(t, env.Parse(&cfg))
	cfg.Sanitize()

	assert.False(t, cfg.IsDev)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.True(t, cfg.HTTP.CookieSecure)
	assert.Equal(t, 10*time.Second, cfg.HTTP.ShutdownTimeout)
	assert.Equal(t, "http://localhost:3001", cfg.API.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.API.Timeout)
	assert.Equal(t, "/api/member/dashboard", cfg.API.MemberPath)
	assert.Equal(t, "/api/auth/login", cfg.API.LoginPath)
	assert.Equal(t, StoreBackendMemory, cfg.Store.Backend)
	assert.Equal(t, 720*time.Hour, cfg.Store.TTL)
	assert.Equal(t, "localhost", cfg.Postgres.Host)
	assert.True(t, cfg.Postgres.RunMigrationsOnStart)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
}

func TestAppConfig_FromEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("API_BASE_URL", "https://api.example.com")
	t.Setenv("API_TIMEOUT", "3s")
	t.Setenv("STORE_BACKEND", "redis")
	t.Setenv("STORE_TTL", "24h")
	t.Setenv("REDIS_ADDR", "redis.internal:6379")

	var cfg AppConfig
	require.NoError(t, env.Parse(&cfg))
	cfg.Sanitize()

	assert.Equal(t, ":9090", cfg.HTTP.Addr)
	assert.Equal(t, "https://api.example.com", cfg.API.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.API.Timeout)
	assert.Equal(t, StoreBackendRedis, cfg.Store.Backend)
	assert.Equal(t, 24*time.Hour, cfg.Store.TTL)
	assert.Equal(t, "redis.internal:6379", cfg.Redis.Addr)
}

func TestAppConfig_InvalidStoreBackend(t *testing.T) {
	t.Setenv("STORE_BACKEND", "cassandra")

	var cfg AppConfig
	err := env.Parse(&cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid StoreBackend")
}

func TestStoreBackend_UnmarshalText(t *testing.T) {
	var b StoreBackend
	require.NoError(t, b.UnmarshalText([]byte("POSTGRES")))
	assert.Equal(t, StoreBackendPostgres, b)

	require.Error(t, b.UnmarshalText([]byte("")))
}

func TestAppConfig_Sanitize_Guardrails(t *testing.T) {
	cfg := AppConfig{
		HTTP:  HTTPConfig{ShutdownTimeout: -time.Second, LoginRatePerMinute: 0, LoginBurst: -1},
		API:   APIConfig{Timeout: 0},
		Store: StoreConfig{TTL: -time.Hour},
	}
	cfg.Sanitize()

	assert.Equal(t, 10*time.Second, cfg.HTTP.ShutdownTimeout)
	assert.Equal(t, 1, cfg.HTTP.LoginRatePerMinute)
	assert.Equal(t, 1, cfg.HTTP.LoginBurst)
	assert.Equal(t, 10*time.Second, cfg.API.Timeout)
	assert.Equal(t, time.Duration(0), cfg.Store.TTL)
}

func TestAppConfig_DevModeFromNodeEnv(t *testing.T) {
	t.Setenv("NODE_ENV", "development")

	var cfg AppConfig
	require.NoError(t, env.Parse(&cfg))
	cfg.Sanitize()

	assert.True(t, cfg.IsDev)
}
