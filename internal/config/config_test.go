package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "5432", cfg.DBPort)
	assert.Equal(t, 168*time.Hour, cfg.JWTAccessExpiry)
	assert.Equal(t, 720*time.Hour, cfg.JWTRefreshExpiry)
	assert.Equal(t, 100, cfg.RateLimitMax)
	assert.Equal(t, 15*time.Minute, cfg.RateLimitWindow)
	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, "8080", cfg.Port)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("JWT_SECRET", "access-secret")
	t.Setenv("JWT_REFRESH_SECRET", "refresh-secret")
	t.Setenv("JWT_ACCESS_EXPIRY", "15m")
	t.Setenv("RATE_LIMIT_MAX", "25")
	t.Setenv("RATE_LIMIT_WINDOW", "1m")
	t.Setenv("PORT", "9999")

	cfg := Load()

	assert.Equal(t, "access-secret", cfg.JWTSecret)
	assert.Equal(t, "refresh-secret", cfg.JWTRefreshSecret)
	assert.Equal(t, 15*time.Minute, cfg.JWTAccessExpiry)
	assert.Equal(t, 25, cfg.RateLimitMax)
	assert.Equal(t, time.Minute, cfg.RateLimitWindow)
	assert.Equal(t, "9999", cfg.Port)
}

func TestLoadFallsBackOnBadValues(t *testing.T) {
	t.Setenv("JWT_ACCESS_EXPIRY", "not-a-duration")
	t.Setenv("RATE_LIMIT_MAX", "not-a-number")

	cfg := Load()

	assert.Equal(t, 168*time.Hour, cfg.JWTAccessExpiry)
	assert.Equal(t, 100, cfg.RateLimitMax)
}

func TestDSN(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_USER", "app")
	t.Setenv("DB_PASSWORD", "pw")
	t.Setenv("DB_NAME", "zara")

	cfg := Load()
	dsn := cfg.DSN()

	assert.Contains(t, dsn, "host=db.internal")
	assert.Contains(t, dsn, "user=app")
	assert.Contains(t, dsn, "password=pw")
	assert.Contains(t, dsn, "dbname=zara")
	assert.Contains(t, dsn, "sslmode=disable")
}
