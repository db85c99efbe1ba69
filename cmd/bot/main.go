package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"

	"tradutor/internal/adapters/discord"
	"tradutor/internal/application"
	"tradutor/internal/config"
	"tradutor/internal/infrastructure/database"
	"tradutor/internal/infrastructure/i18n"
	"tradutor/internal/infrastructure/memory"
	"tradutor/internal/infrastructure/mymemory"
	"tradutor/internal/infrastructure/telemetry"
	"tradutor/internal/ports/output"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("❌ invalid configuration", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      cfg.SlogLevel(),
		TimeFormat: time.DateTime,
		NoColor:    !cfg.LogColored,
	})))

	if cfg.TelemetryEnabled {
		shutdown, err := telemetry.Init(context.Background(), telemetry.WithServiceName("tradutor"))
		if err != nil {
			slog.Error("❌ failed to initialize telemetry", "error", err)
			os.Exit(1)
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdown(ctx); err != nil {
				slog.Warn("⚠️ telemetry shutdown", "error", err)
			}
		}()
		slog.Info("📡 OpenTelemetry enabled")
	}

	var sessions output.SessionRepository = memory.NewSessionRepository()
	if cfg.UsesDatabase() {
		if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
			slog.Error("❌ failed to migrate the database", "error", err)
			os.Exit(1)
		}
		pool, err := database.NewPool(context.Background(), cfg.DatabaseURL, cfg.SlowQueryThreshold)
		if err != nil {
			slog.Error("❌ failed to initialize the database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		sessions = database.NewSessionRepository(pool)
	} else {
		slog.Info("DATABASE_URL not set, keeping widget sessions in memory")
	}

	translator := i18n.NewTranslator(cfg.DefaultLocale)
	client := mymemory.NewClient(cfg.MyMemoryURL, cfg.TranslateTimeout, mymemory.WithEmail(cfg.MyMemoryEmail))
	widget := application.NewWidgetService(sessions, client, translator)

	bot, err := discord.NewBot(cfg, widget, translator)
	if err != nil {
		slog.Error("❌ failed to create the bot", "error", err)
		os.Exit(1)
	}
	if err := bot.Start(); err != nil {
		slog.Error("❌ failed to start the bot", "error", err)
		os.Exit(1)
	}
}
