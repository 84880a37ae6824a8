package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port        int
	AdminToken  string
	JWTSecret   string
	DatabaseURL string
	RedisURL    string

	SMTPHost     string
	SMTPPort     int
	SMTPSender   string
	SMTPPassword string

	// SessionTTLHours > 0 opts in to expiring idle sessions (and with them
	// any pending recovery code). 0 keeps sessions forever, matching the
	// original behavior.
	SessionTTLHours    int
	PurgeIntervalHours int
}

func Load() Config {
	cfg := Config{
		Port:               8080,
		AdminToken:         os.Getenv("ACCOUNTD_ADMIN_TOKEN"),
		JWTSecret:          os.Getenv("ACCOUNTD_JWT_SECRET"),
		DatabaseURL:        os.Getenv("ACCOUNTD_DATABASE_URL"),
		RedisURL:           os.Getenv("ACCOUNTD_REDIS_URL"),
		SMTPHost:           os.Getenv("ACCOUNTD_SMTP_HOST"),
		SMTPPort:           587,
		SMTPSender:         os.Getenv("ACCOUNTD_SMTP_SENDER"),
		SMTPPassword:       os.Getenv("ACCOUNTD_SMTP_PASSWORD"),
		SessionTTLHours:    0,
		PurgeIntervalHours: 1,
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.RedisURL == "" {
		cfg.RedisURL = os.Getenv("REDIS_URL")
	}

	if v := os.Getenv("ACCOUNTD_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil && p > 0 && p < 65536 {
			cfg.Port = p
		}
	}

	if v := os.Getenv("ACCOUNTD_SMTP_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil && p > 0 && p < 65536 {
			cfg.SMTPPort = p
		}
	}

	if v := os.Getenv("ACCOUNTD_SESSION_TTL_HOURS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.SessionTTLHours = n
		}
	}

	if v := os.Getenv("ACCOUNTD_PURGE_INTERVAL_HOURS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.PurgeIntervalHours = n
		}
	}

	return cfg
}

func (c Config) ListenAddr() string {
	return ":" + strconv.Itoa(c.Port)
}

// MailConfigured reports whether outbound SMTP is usable; without it the
// process falls back to the log-only mailer.
func (c Config) MailConfigured() bool {
	return c.SMTPHost != "" && c.SMTPSender != ""
}
