package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/twitter-persistence/internal/activerecord"
	"github.com/phrazzld/twitter-persistence/internal/backend"
	"github.com/phrazzld/twitter-persistence/internal/config"
	"github.com/phrazzld/twitter-persistence/internal/mapper"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	stores   *backend.Set
	users    *mapper.UserMapper
	accounts *activerecord.Model
}

// newApplication opens the configured backend and builds both persistence styles on it.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	stores, err := backend.Open(ctx, cfg.Storage, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage backend: %w", err)
	}

	app := &application{
		config: cfg,
		logger: logger,
		stores: stores,
		users:  mapper.New(stores.DataMapper, mapper.WithLogger(logger)),
		accounts: activerecord.NewModel(stores.ActiveRecord,
			activerecord.WithLogger(logger)),
	}

	logger.Info("Application initialized successfully", slog.String("backend", stores.Kind))
	return app, nil
}

// Run serves the HTTP surface until shutdown and then releases the backend,
// whether serving ended cleanly or not.
func (app *application) Run(ctx context.Context) error {
	defer app.cleanup()

	if err := app.listenAndServe(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if err := app.stores.Close(); err != nil {
		app.logger.Error("Error closing storage backend", slog.String("error", err.Error()))
	}
	app.logger.Info("Application shutdown completed")
}
