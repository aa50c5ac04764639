// Package main implements the entry point for the Ruslex API server,
// which serves Russian-language learning content: verbs with their
// conjugations, nouns with their declensions, and per-user study groups.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"

	"github.com/ruslex/ruslex-api/internal/config"
	"github.com/ruslex/ruslex-api/internal/platform/logger"
)

func main() {
	migrateCmd := flag.String("migrate", "",
		"run a migration command (up, down, status) and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logg := logger.Setup(cfg.Server)

	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	if err := run(context.Background(), cfg, logg, *migrateCmd); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// run wires the application together and either executes a one-off
// migration command or starts the HTTP server. Pending migrations are
// always applied before the server accepts traffic.
func run(ctx context.Context, cfg *config.Config, logg *slog.Logger, migrateCmd string) error {
	db, err := openDatabase(cfg.Database, logg)
	if err != nil {
		return fmt.Errorf("failed to set up database: %w", err)
	}

	if migrateCmd != "" {
		defer func() {
			if err := db.Close(); err != nil {
				logg.Error("Error closing database connection", "error", err)
			}
		}()
		return runMigrations(db, migrateCmd, logg)
	}

	if err := runMigrations(db, "up", logg); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	app, err := newApplication(cfg, logg, db)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}
