// Package migrations provisions the tables the relational record stores use.
// The stores never create or alter schema themselves; this package is the
// setup collaborator run by the server's -migrate flag and by test helpers.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"

	"github.com/pressly/goose/v3"
)

//go:embed sql/*.sql
var files embed.FS

// TableName is the goose bookkeeping table.
const TableName = "schema_migrations"

// Commands accepted by Run.
const (
	CommandUp      = "up"
	CommandDown    = "down"
	CommandReset   = "reset"
	CommandStatus  = "status"
	CommandVersion = "version"
)

// slogAdapter routes goose output through slog.
type slogAdapter struct {
	logger *slog.Logger
}

func (a slogAdapter) Printf(format string, v ...interface{}) {
	a.logger.Info(fmt.Sprintf(format, v...))
}

func (a slogAdapter) Fatalf(format string, v ...interface{}) {
	a.logger.Error(fmt.Sprintf(format, v...))
}

func configure(logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	goose.SetBaseFS(files)
	goose.SetTableName(TableName)
	goose.SetLogger(slogAdapter{logger: logger.With(slog.String("component", "migrations"))})
	return goose.SetDialect("postgres")
}

// Up applies every pending migration.
func Up(ctx context.Context, db *sql.DB, logger *slog.Logger) error {
	return Run(ctx, db, logger, CommandUp)
}

// Run executes a goose command against db.
func Run(ctx context.Context, db *sql.DB, logger *slog.Logger, command string) error {
	if err := configure(logger); err != nil {
		return fmt.Errorf("failed to configure migrations: %w", err)
	}

	var err error
	switch command {
	case CommandUp:
		err = goose.UpContext(ctx, db, "sql")
	case CommandDown:
		err = goose.DownContext(ctx, db, "sql")
	case CommandReset:
		err = goose.ResetContext(ctx, db, "sql")
	case CommandStatus:
		err = goose.StatusContext(ctx, db, "sql")
	case CommandVersion:
		err = goose.VersionContext(ctx, db, "sql")
	default:
		return fmt.Errorf("unknown migration command %q", command)
	}
	if err != nil {
		return fmt.Errorf("migration %s failed: %w", command, err)
	}
	return nil
}

// Files lists the embedded migration file names in order.
func Files() ([]string, error) {
	entries, err := files.ReadDir("sql")
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names, nil
}
