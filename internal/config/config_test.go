package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadFrom(vars map[string]string) (*Config, error) {
	return load(env.Options{Environment: vars})
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := loadFrom(map[string]string{"TOKEN": "abc"})
	require.NoError(t, err)

	assert.Equal(t, "abc", cfg.Token)
	assert.Equal(t, "pt-BR", cfg.DefaultLocale)
	assert.Equal(t, "https://api.mymemory.translated.net", cfg.MyMemoryURL)
	assert.Equal(t, 10*time.Second, cfg.TranslateTimeout)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 10*time.Minute, cfg.SweepInterval)
	assert.Equal(t, "migrations", cfg.MigrationsPath)
	assert.False(t, cfg.UsesDatabase())
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
	assert.False(t, cfg.TelemetryEnabled)
}

func TestLoadOverrides(t *testing.T) {
	cfg, err := loadFrom(map[string]string{
		"TOKEN":             "abc",
		"GUILD_ID":          "123456789",
		"DATABASE_URL":      " postgres://localhost:5432/tradutor?sslmode=disable ",
		"DEFAULT_LOCALE":    "en",
		"MYMEMORY_EMAIL":    "dev@example.com",
		"TRANSLATE_TIMEOUT": "3s",
		"LOG_LEVEL":         "debug",
		"TELEMETRY_ENABLED": "true",
	})
	require.NoError(t, err)

	assert.Equal(t, "123456789", cfg.GuildID)
	assert.True(t, cfg.UsesDatabase())
	assert.Equal(t, "postgres://localhost:5432/tradutor?sslmode=disable", cfg.DatabaseURL)
	assert.Equal(t, "en", cfg.DefaultLocale)
	assert.Equal(t, 3*time.Second, cfg.TranslateTimeout)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
	assert.True(t, cfg.TelemetryEnabled)
}

func TestLoadAcceptsShippedLocales(t *testing.T) {
	for _, locale := range []string{"pt-BR", "en", "en-US"} {
		cfg, err := loadFrom(map[string]string{"TOKEN": "a", "DEFAULT_LOCALE": locale})
		require.NoError(t, err, locale)
		assert.Equal(t, locale, cfg.DefaultLocale)
	}
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name string
		vars map[string]string
	}{
		{name: "missing token", vars: map[string]string{}},
		{name: "blank token", vars: map[string]string{"TOKEN": "  "}},
		{name: "non numeric guild", vars: map[string]string{"TOKEN": "a", "GUILD_ID": "abc"}},
		{name: "database url without host", vars: map[string]string{"TOKEN": "a", "DATABASE_URL": "postgres:///x"}},
		{name: "mymemory url not http", vars: map[string]string{"TOKEN": "a", "MYMEMORY_URL": "ftp://example.com"}},
		{name: "bad locale", vars: map[string]string{"TOKEN": "a", "DEFAULT_LOCALE": "not a locale"}},
		{name: "locale without messages", vars: map[string]string{"TOKEN": "a", "DEFAULT_LOCALE": "ja"}},
		{name: "zero timeout", vars: map[string]string{"TOKEN": "a", "TRANSLATE_TIMEOUT": "0s"}},
		{name: "negative ttl", vars: map[string]string{"TOKEN": "a", "SESSION_TTL": "-1h"}},
		{name: "unparsable duration", vars: map[string]string{"TOKEN": "a", "SWEEP_INTERVAL": "soon"}},
		{name: "bad log level", vars: map[string]string{"TOKEN": "a", "LOG_LEVEL": "loud"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadFrom(tt.vars)
			assert.Error(t, err)
		})
	}
}
