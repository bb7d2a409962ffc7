// Package main implements the entry point for the twitter-persistence server,
// which exposes the Active Record and Data Mapper user stores over HTTP.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/phrazzld/twitter-persistence/internal/platform/postgres/migrations"
	"github.com/phrazzld/twitter-persistence/internal/redact"
)

// options holds the command line flags.
type options struct {
	migrate string
	seed    string
}

func parseFlags(args []string) (options, error) {
	var opts options

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.StringVar(&opts.migrate, "migrate", "",
		fmt.Sprintf("run a migration command (%s, %s, %s, %s, %s) and exit",
			migrations.CommandUp, migrations.CommandDown, migrations.CommandReset,
			migrations.CommandStatus, migrations.CommandVersion))
	fs.StringVar(&opts.seed, "seed", "",
		`comma-separated username:name pairs persisted before serving, e.g. "ada:Ada Lovelace,grace:Grace Hopper"`)

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	return opts, nil
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}

	cfg, logger, err := loadAppConfig()
	if err != nil {
		log.Fatalf("Startup failed: %v", err)
	}

	ctx := context.Background()

	if opts.migrate != "" {
		if err := runMigrations(ctx, cfg, logger, opts.migrate); err != nil {
			logger.Error("Migration failed", slog.String("error", redact.Error(err)))
			os.Exit(1)
		}
		return
	}

	app, err := newApplication(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize application", slog.String("error", redact.Error(err)))
		os.Exit(1)
	}

	if opts.seed != "" {
		if err := app.seed(ctx, opts.seed); err != nil {
			app.cleanup()
			logger.Error("Failed to seed users", slog.String("error", redact.Error(err)))
			os.Exit(1)
		}
	}

	if err := app.Run(ctx); err != nil {
		logger.Error("Server stopped with error", slog.String("error", redact.Error(err)))
		os.Exit(1)
	}
}
