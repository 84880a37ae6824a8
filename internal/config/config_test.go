package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 587, cfg.SMTPPort)
	assert.Equal(t, 0, cfg.SessionTTLHours)
	assert.Equal(t, 1, cfg.PurgeIntervalHours)
	assert.Equal(t, ":8080", cfg.ListenAddr())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ACCOUNTD_PORT", "9090")
	t.Setenv("ACCOUNTD_SMTP_HOST", "smtp.example.com")
	t.Setenv("ACCOUNTD_SMTP_PORT", "2525")
	t.Setenv("ACCOUNTD_SMTP_SENDER", "noreply@example.com")
	t.Setenv("ACCOUNTD_SESSION_TTL_HOURS", "24")
	t.Setenv("DATABASE_URL", "postgres://example/db")

	cfg := Load()
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, 2525, cfg.SMTPPort)
	assert.Equal(t, 24, cfg.SessionTTLHours)
	assert.Equal(t, "postgres://example/db", cfg.DatabaseURL)
	assert.True(t, cfg.MailConfigured())
}

func TestLoadIgnoresBadValues(t *testing.T) {
	t.Setenv("ACCOUNTD_PORT", "not-a-port")
	t.Setenv("ACCOUNTD_SESSION_TTL_HOURS", "-5")

	cfg := Load()
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 0, cfg.SessionTTLHours)
	assert.False(t, cfg.MailConfigured())
}
