package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"regexp"

	"github.com/phrazzld/twitter-persistence/internal/platform/logger"
	"github.com/phrazzld/twitter-persistence/internal/redact"
	"github.com/phrazzld/twitter-persistence/internal/store"
)

// Default table names used by the two persistence patterns.
const (
	// UserMetadataTable backs the Data Mapper and carries a name column.
	UserMetadataTable = "user_metadata"
	// UsersTable backs the Active Record model and has no name column.
	UsersTable = "users"
)

var identifierPattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// RecordStore implements store.RecordStore on a single PostgreSQL table.
type RecordStore struct {
	db      store.DBTX
	logger  *slog.Logger
	table   string
	hasName bool
	columns string
}

// Option configures a RecordStore.
type Option func(*RecordStore)

// WithTable selects the table the store reads and writes.
// The name must be a plain lower-case SQL identifier.
func WithTable(table string) Option {
	return func(s *RecordStore) {
		s.table = table
	}
}

// WithoutNameColumn configures the store for a table with only id and username.
// Record.Name is then ignored on write and empty on read.
func WithoutNameColumn() Option {
	return func(s *RecordStore) {
		s.hasName = false
	}
}

// NewRecordStore creates a RecordStore over db, which may be a *sql.DB or a *sql.Tx.
// It defaults to the user_metadata table with a name column.
// If logger is nil, a default logger will be used.
// It panics if db is nil or the table name is not a valid identifier.
func NewRecordStore(db store.DBTX, logger *slog.Logger, opts ...Option) *RecordStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &RecordStore{
		db:      db,
		table:   UserMetadataTable,
		hasName: true,
	}
	for _, opt := range opts {
		opt(s)
	}

	if !identifierPattern.MatchString(s.table) {
		panic(fmt.Sprintf("invalid table name %q", s.table))
	}

	s.columns = "id, username"
	if s.hasName {
		s.columns += ", name"
	}
	s.logger = logger.With(
		slog.String("component", "record_store"),
		slog.String("table", s.table),
	)
	return s
}

var _ store.RecordStore = (*RecordStore)(nil)

// WithTx returns a copy of the store that runs its statements on tx.
func (s *RecordStore) WithTx(tx *sql.Tx) *RecordStore {
	cp := *s
	cp.db = tx
	return &cp
}

// Table returns the table this store is bound to.
func (s *RecordStore) Table() string {
	return s.table
}

// All implements store.RecordStore.All.
func (s *RecordStore) All(ctx context.Context) ([]store.Record, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY id", s.columns, s.table)
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to list records", slog.String("error", redact.Error(err)))
		return nil, store.NewStoreError(s.table, "all", "query failed", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	records := []store.Record{}
	for rows.Next() {
		rec, err := s.scan(rows)
		if err != nil {
			return nil, store.NewStoreError(s.table, "all", "scan failed", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError(s.table, "all", "iteration failed", MapError(err))
	}

	log.Debug("records listed", slog.Int("count", len(records)))
	return records, nil
}

// Truncate implements store.RecordStore.Truncate with DELETE, not TRUNCATE,
// so it participates in an enclosing transaction and keeps the identity sequence.
func (s *RecordStore) Truncate(ctx context.Context) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s", s.table))
	if err != nil {
		log.Error("failed to truncate records", slog.String("error", redact.Error(err)))
		return store.NewStoreError(s.table, "truncate", "delete failed", MapError(err))
	}

	if n, err := result.RowsAffected(); err == nil {
		log.Info("records truncated", slog.Int64("deleted", n))
	}
	return nil
}

// Create implements store.RecordStore.Create.
func (s *RecordStore) Create(ctx context.Context, rec store.Record) (store.Record, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var (
		query string
		args  []any
	)
	if s.hasName {
		query = fmt.Sprintf("INSERT INTO %s (username, name) VALUES ($1, $2) RETURNING id", s.table)
		args = []any{rec.Username, rec.Name}
	} else {
		query = fmt.Sprintf("INSERT INTO %s (username) VALUES ($1) RETURNING id", s.table)
		args = []any{rec.Username}
		rec.Name = ""
	}

	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&rec.ID); err != nil {
		log.Error("failed to create record",
			slog.String("error", redact.Error(err)),
			slog.String("username", rec.Username))
		return store.Record{}, store.NewStoreError(s.table, "create", "insert failed", MapError(err))
	}

	log.Debug("record created",
		slog.Int64("id", rec.ID),
		slog.String("username", rec.Username))
	return rec, nil
}

// FindOrCreateByUsername implements store.RecordStore.FindOrCreateByUsername.
// The lookup and insert are separate statements; run the store inside a
// transaction (WithTx) when that matters.
func (s *RecordStore) FindOrCreateByUsername(ctx context.Context, username string) (store.Record, error) {
	rec, found, err := s.FindBy(ctx, store.FieldUsername, username)
	if err != nil {
		return store.Record{}, err
	}
	if found {
		return rec, nil
	}
	return s.Create(ctx, store.Record{Username: username})
}

// Save implements store.RecordStore.Save.
func (s *RecordStore) Save(ctx context.Context, rec store.Record) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var (
		query string
		args  []any
	)
	if s.hasName {
		query = fmt.Sprintf("UPDATE %s SET username = $1, name = $2 WHERE id = $3", s.table)
		args = []any{rec.Username, rec.Name, rec.ID}
	} else {
		query = fmt.Sprintf("UPDATE %s SET username = $1 WHERE id = $2", s.table)
		args = []any{rec.Username, rec.ID}
	}

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to save record",
			slog.String("error", redact.Error(err)),
			slog.Int64("id", rec.ID))
		return store.NewStoreError(s.table, "save", "update failed", MapError(err))
	}

	if err := checkRowsAffected(result, fmt.Sprintf("record with id %d", rec.ID)); err != nil {
		log.Debug("record not found for save", slog.Int64("id", rec.ID))
		return err
	}

	log.Debug("record saved", slog.Int64("id", rec.ID))
	return nil
}

// FindBy implements store.RecordStore.FindBy.
func (s *RecordStore) FindBy(ctx context.Context, field store.Field, value string) (store.Record, bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	column, err := s.column(field)
	if err != nil {
		return store.Record{}, false, err
	}

	query := fmt.Sprintf(
		"SELECT %s FROM %s WHERE %s = $1 ORDER BY id LIMIT 1",
		s.columns, s.table, column,
	)
	rec, err := s.scan(s.db.QueryRowContext(ctx, query, value))
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("record not found",
			slog.String("field", column),
			slog.String("value", value))
		return store.Record{}, false, nil
	}
	if err != nil {
		log.Error("failed to find record",
			slog.String("error", redact.Error(err)),
			slog.String("field", column))
		return store.Record{}, false, store.NewStoreError(s.table, "find_by", "query failed", MapError(err))
	}

	return rec, true, nil
}

// column maps a lookup field to a column this table actually has.
func (s *RecordStore) column(field store.Field) (string, error) {
	switch {
	case field == store.FieldUsername:
		return "username", nil
	case field == store.FieldName && s.hasName:
		return "name", nil
	}
	return "", fmt.Errorf("%w: %q on table %s", store.ErrInvalidField, string(field), s.table)
}

type scanner interface {
	Scan(dest ...any) error
}

func (s *RecordStore) scan(row scanner) (store.Record, error) {
	var rec store.Record
	if !s.hasName {
		err := row.Scan(&rec.ID, &rec.Username)
		return rec, err
	}

	var name sql.NullString
	if err := row.Scan(&rec.ID, &rec.Username, &name); err != nil {
		return store.Record{}, err
	}
	rec.Name = name.String
	return rec, nil
}
