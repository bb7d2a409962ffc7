package main

import (
	"fmt"
	"log/slog"

	"github.com/phrazzld/twitter-persistence/internal/config"
	"github.com/phrazzld/twitter-persistence/internal/platform/logger"
	"github.com/phrazzld/twitter-persistence/internal/redact"
)

// loadAppConfig loads the configuration and builds the process logger from
// its log level. Connection URLs are only ever logged redacted.
func loadAppConfig() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	l, err := logger.Setup(logger.LoggerConfig{Level: cfg.Server.LogLevel})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	l.Info("Server configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.String("backend", cfg.Storage.Backend))

	switch cfg.Storage.Backend {
	case config.BackendPostgres:
		l.Debug("Database configuration", slog.String("url", redact.URL(cfg.Storage.DatabaseURL)))
	case config.BackendRedis:
		l.Debug("Redis configuration", slog.String("url", redact.URL(cfg.Storage.RedisURL)))
	}

	return cfg, l, nil
}
