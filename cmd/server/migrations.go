package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/twitter-persistence/internal/backend"
	"github.com/phrazzld/twitter-persistence/internal/config"
	"github.com/phrazzld/twitter-persistence/internal/platform/postgres/migrations"
)

// errMigrationsNeedPostgres is returned by -migrate for non-relational backends.
var errMigrationsNeedPostgres = errors.New("migrations require the postgres backend")

// runMigrations executes a goose command against the configured database.
func runMigrations(ctx context.Context, cfg *config.Config, logger *slog.Logger, command string) error {
	if cfg.Storage.Backend != config.BackendPostgres {
		return fmt.Errorf("%w (configured: %s)", errMigrationsNeedPostgres, cfg.Storage.Backend)
	}

	set, err := backend.Open(ctx, cfg.Storage, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := set.Close(); err != nil {
			logger.Error("Error closing database connection", slog.String("error", err.Error()))
		}
	}()

	logger.Info("Executing migrations", slog.String("command", command))
	return migrations.Run(ctx, set.DB, logger, command)
}
