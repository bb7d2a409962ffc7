// Package backend turns a StorageConfig into the record stores used by the
// Active Record and Data Mapper sides. Selection happens once, when Open is
// called; nothing here is global.
package backend

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver for database/sql
	goredis "github.com/redis/go-redis/v9"

	"github.com/phrazzld/twitter-persistence/internal/config"
	"github.com/phrazzld/twitter-persistence/internal/platform/postgres"
	"github.com/phrazzld/twitter-persistence/internal/platform/redis"
	"github.com/phrazzld/twitter-persistence/internal/redact"
	"github.com/phrazzld/twitter-persistence/internal/store"
	"github.com/phrazzld/twitter-persistence/internal/store/memory"
)

// Redis namespaces for the two record sets.
const (
	RedisUsersNamespace        = "twitter:" + postgres.UsersTable
	RedisUserMetadataNamespace = "twitter:" + postgres.UserMetadataTable
)

// pingTimeout bounds the connectivity check made by Open.
const pingTimeout = 5 * time.Second

// ErrUnknownBackend is returned by Open for an unrecognized backend kind.
var ErrUnknownBackend = errors.New("unknown storage backend")

// Set is the pair of record stores a process runs with.
type Set struct {
	Kind string

	// ActiveRecord backs the self-saving users (no name column).
	ActiveRecord store.RecordStore
	// DataMapper backs the mapped users.
	DataMapper store.RecordStore

	// DB is the SQL handle when Kind is postgres, nil otherwise.
	DB *sql.DB

	closer io.Closer
}

// Close releases the connection held by the set, if any.
func (s *Set) Close() error {
	if s == nil || s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

// Ping checks that the backing service is reachable.
func (s *Set) Ping(ctx context.Context) error {
	switch {
	case s.DB != nil:
		return s.DB.PingContext(ctx)
	case s.Kind == config.BackendRedis:
		return s.DataMapper.(*redis.RecordStore).Ping(ctx)
	}
	return nil
}

// Open builds the record stores for cfg. The caller must Close the result.
func Open(ctx context.Context, cfg config.StorageConfig, logger *slog.Logger) (*Set, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("backend", cfg.Backend))

	switch cfg.Backend {
	case config.BackendMemory:
		logger.Info("using in-memory record stores")
		return &Set{
			Kind:         cfg.Backend,
			ActiveRecord: memory.New(),
			DataMapper:   memory.New(),
		}, nil

	case config.BackendPostgres:
		return openPostgres(ctx, cfg.DatabaseURL, logger)

	case config.BackendRedis:
		return openRedis(ctx, cfg.RedisURL, logger)
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
}

func openPostgres(ctx context.Context, url string, logger *slog.Logger) (*Set, error) {
	db, err := sql.Open("pgx", url)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", redact.URL(url), err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("database connection established")
	return &Set{
		Kind: config.BackendPostgres,
		ActiveRecord: postgres.NewRecordStore(db, logger,
			postgres.WithTable(postgres.UsersTable),
			postgres.WithoutNameColumn()),
		DataMapper: postgres.NewRecordStore(db, logger),
		DB:         db,
		closer:     db,
	}, nil
}

func openRedis(ctx context.Context, url string, logger *slog.Logger) (*Set, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}

	client := goredis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	logger.Info("redis connection established")
	return &Set{
		Kind: config.BackendRedis,
		ActiveRecord: redis.NewRecordStore(client,
			redis.WithNamespace(RedisUsersNamespace),
			redis.WithLogger(logger)),
		DataMapper: redis.NewRecordStore(client,
			redis.WithNamespace(RedisUserMetadataNamespace),
			redis.WithLogger(logger)),
		closer: client,
	}, nil
}
