package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"golang.org/x/text/language"

	"tradutor/internal/infrastructure/i18n"
)

type Config struct {
	Token          string `env:"TOKEN"`
	GuildID        string `env:"GUILD_ID"`
	DatabaseURL    string `env:"DATABASE_URL"`
	MigrationsPath string `env:"MIGRATIONS_PATH" envDefault:"migrations"`
	DefaultLocale  string `env:"DEFAULT_LOCALE"  envDefault:"pt-BR"`

	MyMemoryURL      string        `env:"MYMEMORY_URL"      envDefault:"https://api.mymemory.translated.net"`
	MyMemoryEmail    string        `env:"MYMEMORY_EMAIL"`
	TranslateTimeout time.Duration `env:"TRANSLATE_TIMEOUT" envDefault:"10s"`

	SessionTTL         time.Duration `env:"SESSION_TTL"          envDefault:"24h"`
	SweepInterval      time.Duration `env:"SWEEP_INTERVAL"       envDefault:"10m"`
	SlowQueryThreshold time.Duration `env:"SLOW_QUERY_THRESHOLD" envDefault:"200ms"`

	LogLevel   string `env:"LOG_LEVEL"   envDefault:"info"`
	LogColored bool   `env:"LOG_COLORED" envDefault:"true"`

	// Exporters follow the standard OTEL_* variables once enabled.
	TelemetryEnabled bool `env:"TELEMETRY_ENABLED" envDefault:"false"`
}

// Load charge la configuration depuis les variables d'environnement et la valide.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// .env est optionnel lorsque les variables sont fournies par l'environnement (Docker, CI, etc.).
	}
	return load(env.Options{})
}

func load(opts env.Options) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// UsesDatabase reports whether sessions are kept in PostgreSQL rather than
// in memory.
func (c *Config) UsesDatabase() bool {
	return c.DatabaseURL != ""
}

// SlogLevel returns the parsed LOG_LEVEL; validate guarantees it parses.
func (c *Config) SlogLevel() slog.Level {
	var lvl slog.Level
	_ = lvl.UnmarshalText([]byte(c.LogLevel))
	return lvl
}

// validate applique toutes les règles métier sur la configuration chargée.
func (c *Config) validate() error {
	if strings.TrimSpace(c.Token) == "" {
		return fmt.Errorf("config: TOKEN is required")
	}

	for _, r := range c.GuildID {
		if r < '0' || r > '9' {
			return fmt.Errorf("config: GUILD_ID must be a Discord guild ID (digits only)")
		}
	}

	c.DatabaseURL = strings.TrimSpace(c.DatabaseURL)
	if c.DatabaseURL != "" {
		parsed, err := url.Parse(c.DatabaseURL)
		if err != nil {
			return fmt.Errorf("config: invalid DATABASE_URL (%q): %w", c.DatabaseURL, err)
		}
		if parsed.Scheme == "" || parsed.Host == "" {
			return fmt.Errorf("config: invalid DATABASE_URL (%q): missing scheme or host", c.DatabaseURL)
		}
	}

	parsed, err := url.Parse(c.MyMemoryURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return fmt.Errorf("config: invalid MYMEMORY_URL (%q)", c.MyMemoryURL)
	}

	if _, err := language.Parse(c.DefaultLocale); err != nil {
		return fmt.Errorf("config: invalid DEFAULT_LOCALE (%q): %w", c.DefaultLocale, err)
	}
	if !i18n.SupportsLocale(c.DefaultLocale) {
		return fmt.Errorf("config: DEFAULT_LOCALE %q has no message file (supported: %v)", c.DefaultLocale, i18n.Locales)
	}

	for name, d := range map[string]time.Duration{
		"TRANSLATE_TIMEOUT": c.TranslateTimeout,
		"SESSION_TTL":       c.SessionTTL,
		"SWEEP_INTERVAL":    c.SweepInterval,
	} {
		if d <= 0 {
			return fmt.Errorf("config: %s must be positive", name)
		}
	}
	if c.SlowQueryThreshold < 0 {
		return fmt.Errorf("config: SLOW_QUERY_THRESHOLD cannot be negative")
	}

	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return fmt.Errorf("config: invalid LOG_LEVEL (%q)", c.LogLevel)
	}

	return nil
}
