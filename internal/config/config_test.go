package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ENV_FILE", "does-not-exist.env")
	t.Setenv("FRONTEND_URL", "http://localhost:5173")

	cfg := Load()

	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "HS256", cfg.JWTAlgorithm)
	assert.Equal(t, 30, cfg.AccessTokenMinutes)
	assert.Equal(t, "08:00", cfg.Reminder.DailyAt)
	assert.Zero(t, cfg.Reminder.Interval)
	assert.True(t, cfg.RolloverOnRead)
	assert.False(t, cfg.R2.Enabled())
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.CorsConfig.AllowedOrigins)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ENV_FILE", "does-not-exist.env")
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("ACCESS_TOKEN_EXPIRE_MINUTES", "45")
	t.Setenv("REMINDER_INTERVAL", "1m")
	t.Setenv("TIMEZONE", "Asia/Kolkata")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test ,")
	t.Setenv("ROLLOVER_ON_READ", "false")

	cfg := Load()

	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, 45, cfg.AccessTokenMinutes)
	assert.Equal(t, time.Minute, cfg.Reminder.Interval)
	assert.Equal(t, "Asia/Kolkata", cfg.Location.String())
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CorsConfig.AllowedOrigins)
	assert.False(t, cfg.RolloverOnRead)
}

func TestLoadInvalidValuesFallBack(t *testing.T) {
	t.Setenv("ENV_FILE", "does-not-exist.env")
	t.Setenv("ACCESS_TOKEN_EXPIRE_MINUTES", "soon")
	t.Setenv("REMINDER_INTERVAL", "-5m")
	t.Setenv("TIMEZONE", "Mars/Olympus")
	t.Setenv("ROLLOVER_ON_READ", "sometimes")

	cfg := Load()

	assert.Equal(t, 30, cfg.AccessTokenMinutes)
	assert.Zero(t, cfg.Reminder.Interval)
	assert.Equal(t, time.Local, cfg.Location)
	assert.True(t, cfg.RolloverOnRead)
}

func TestR2Enabled(t *testing.T) {
	r2 := R2Config{AccountID: "acc", AccessKeyID: "key", SecretAccessKey: "secret"}
	assert.False(t, r2.Enabled())
	r2.BucketName = "exports"
	assert.True(t, r2.Enabled())
}
