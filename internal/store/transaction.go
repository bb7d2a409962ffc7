package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/twitter-persistence/internal/platform/logger"
	"github.com/phrazzld/twitter-persistence/internal/redact"
)

// TxFn is work done on a single transaction. Record stores bound to tx (for
// example through postgres.RecordStore.WithTx) see each other's writes.
type TxFn func(ctx context.Context, tx *sql.Tx) error

// RunInTransaction commits the writes fn makes on db as one unit. An error or
// panic from fn rolls everything back; a panic is re-raised afterwards.
func RunInTransaction(ctx context.Context, db *sql.DB, fn TxFn) error {
	log := logger.FromContext(ctx).With(slog.String("component", "transaction"))

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction", slog.String("error", redact.Error(err)))
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = rollback(log, tx, "panic")
			panic(p)
		}
	}()

	if err := fn(ctx, tx); err != nil {
		if rbErr := rollback(log, tx, "error"); rbErr != nil {
			return fmt.Errorf("error rolling back transaction: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit transaction", slog.String("error", redact.Error(err)))
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	log.Debug("transaction committed")
	return nil
}

// rollback aborts tx and logs the outcome against reason.
func rollback(log *slog.Logger, tx *sql.Tx, reason string) error {
	if err := tx.Rollback(); err != nil {
		log.Error("failed to roll back transaction",
			slog.String("reason", reason),
			slog.String("error", redact.Error(err)))
		return err
	}
	log.Debug("transaction rolled back", slog.String("reason", reason))
	return nil
}
