package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("missing required settings are reported together", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")
		t.Setenv("FRONT_END_URL", "")
		t.Setenv("DB_URL", "")
		t.Setenv("DB_PASSWORD", "")

		cfg, err := Load()
		require.Error(t, err)
		require.Nil(t, cfg)
		require.Contains(t, err.Error(), "JWT_SECRET is required")
		require.Contains(t, err.Error(), "FRONT_END_URL is required")
		require.Contains(t, err.Error(), "DB_URL or DB_PASSWORD is required")
	})

	t.Run("defaults", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "secret")
		t.Setenv("FRONT_END_URL", "http://localhost:5173")
		t.Setenv("DB_URL", "postgres://hr:pw@localhost:5432/hrms")
		t.Setenv("TOKEN_TTL", "")
		t.Setenv("SERVER_PORT", "")
		t.Setenv("PORT", "")

		cfg, err := Load()
		require.NoError(t, err)
		require.Equal(t, DefaultTokenTTL, cfg.TokenTTL)
		require.Equal(t, 30*24*time.Hour, cfg.TokenTTL)
		require.Equal(t, "postgres://hr:pw@localhost:5432/hrms", cfg.DSN())
		require.Equal(t, 20, cfg.RateLimitAuth)
		require.False(t, cfg.Redis.Enabled)
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "secret")
		t.Setenv("FRONT_END_URL", "http://localhost:5173")
		t.Setenv("DB_URL", "")
		t.Setenv("DB_PASSWORD", "pw")
		t.Setenv("TOKEN_TTL", "1h")
		t.Setenv("REDIS_ENABLED", "true")
		t.Setenv("RATE_LIMIT_AUTH", "5")

		cfg, err := Load()
		require.NoError(t, err)
		require.Equal(t, time.Hour, cfg.TokenTTL)
		require.True(t, cfg.Redis.Enabled)
		require.Equal(t, 5, cfg.RateLimitAuth)
		require.Contains(t, cfg.DSN(), "password=pw")
	})
}

func TestMaskPassword(t *testing.T) {
	require.Equal(t,
		"host=db port=5432 user=hr password=***** dbname=hrms sslmode=disable",
		maskPassword("host=db port=5432 user=hr password=hunter2 dbname=hrms sslmode=disable"))
	require.Equal(t,
		"postgres://hr:*****@db:5432/hrms",
		maskPassword("postgres://hr:hunter2@db:5432/hrms"))
	require.Equal(t, "postgres://db/hrms", maskPassword("postgres://db/hrms"))
}
