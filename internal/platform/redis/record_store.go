// Package redis implements store.RecordStore on Redis. Records are hashes,
// ordering comes from a sorted set scored by ID and lookups scan, the same way
// the in-memory backend does.
//
// Usage:
//
//	client := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
//	s := redisstore.NewRecordStore(client, redisstore.WithNamespace("twitter:users"))
package redis

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/phrazzld/twitter-persistence/internal/platform/logger"
	"github.com/phrazzld/twitter-persistence/internal/redact"
	"github.com/phrazzld/twitter-persistence/internal/store"
)

const (
	fieldUsername = "username"
	fieldName     = "name"

	// DefaultNamespace prefixes every key when no namespace is configured.
	DefaultNamespace = "twitter:user_metadata"
)

var _ store.RecordStore = (*RecordStore)(nil)

// Option configures the RecordStore.
type Option func(*RecordStore)

// WithNamespace sets the key prefix, letting several stores share one database.
func WithNamespace(ns string) Option {
	return func(s *RecordStore) { s.keys = keys{ns: ns} }
}

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *RecordStore) { s.logger = l }
}

// RecordStore implements store.RecordStore backed by Redis.
// The caller owns the client lifecycle.
type RecordStore struct {
	client redis.Cmdable
	keys   keys
	logger *slog.Logger
}

// NewRecordStore creates a Redis-backed record store.
func NewRecordStore(client redis.Cmdable, opts ...Option) *RecordStore {
	s := &RecordStore{
		client: client,
		keys:   keys{ns: DefaultNamespace},
		logger: slog.Default(),
	}
	for _, o := range opts {
		o(s)
	}
	s.logger = s.logger.With(
		slog.String("component", "redis_record_store"),
		slog.String("namespace", s.keys.ns),
	)
	return s
}

// Ping verifies the Redis connection is alive.
func (s *RecordStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// All implements store.RecordStore.All.
func (s *RecordStore) All(ctx context.Context) ([]store.Record, error) {
	ids, err := s.liveIDs(ctx)
	if err != nil {
		return nil, err
	}

	records := make([]store.Record, 0, len(ids))
	if len(ids) == 0 {
		return records, nil
	}

	cmds := make([]*redis.MapStringStringCmd, len(ids))
	_, err = s.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for i, id := range ids {
			cmds[i] = pipe.HGetAll(ctx, s.keys.record(id))
		}
		return nil
	})
	if err != nil {
		return nil, store.NewStoreError(s.keys.ns, "all", "hgetall failed", err)
	}

	for i, cmd := range cmds {
		fields := cmd.Val()
		if len(fields) == 0 {
			// Removed between ZRANGE and HGETALL.
			continue
		}
		records = append(records, store.Record{
			ID:       ids[i],
			Username: fields[fieldUsername],
			Name:     fields[fieldName],
		})
	}
	return records, nil
}

// Truncate implements store.RecordStore.Truncate. The ID counter is kept.
func (s *RecordStore) Truncate(ctx context.Context) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	ids, err := s.liveIDs(ctx)
	if err != nil {
		return err
	}

	delKeys := make([]string, 0, len(ids)+1)
	for _, id := range ids {
		delKeys = append(delKeys, s.keys.record(id))
	}
	delKeys = append(delKeys, s.keys.ids())

	if err := s.client.Del(ctx, delKeys...).Err(); err != nil {
		log.Error("failed to truncate records", slog.String("error", redact.Error(err)))
		return store.NewStoreError(s.keys.ns, "truncate", "del failed", err)
	}

	log.Info("records truncated", slog.Int("deleted", len(ids)))
	return nil
}

// Create implements store.RecordStore.Create.
func (s *RecordStore) Create(ctx context.Context, rec store.Record) (store.Record, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	id, err := s.client.Incr(ctx, s.keys.seq()).Result()
	if err != nil {
		return store.Record{}, store.NewStoreError(s.keys.ns, "create", "incr failed", err)
	}
	rec.ID = id

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, s.keys.record(id), fieldUsername, rec.Username, fieldName, rec.Name)
		pipe.ZAdd(ctx, s.keys.ids(), redis.Z{Score: float64(id), Member: strconv.FormatInt(id, 10)})
		return nil
	})
	if err != nil {
		log.Error("failed to create record",
			slog.String("error", redact.Error(err)),
			slog.String("username", rec.Username))
		return store.Record{}, store.NewStoreError(s.keys.ns, "create", "write failed", err)
	}

	log.Debug("record created",
		slog.Int64("id", id),
		slog.String("username", rec.Username))
	return rec, nil
}

// FindOrCreateByUsername implements store.RecordStore.FindOrCreateByUsername.
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
	key := s.keys.record(rec.ID)

	n, err := s.client.Exists(ctx, key).Result()
	if err != nil {
		return store.NewStoreError(s.keys.ns, "save", "exists failed", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: record with id %d", store.ErrNotFound, rec.ID)
	}

	if err := s.client.HSet(ctx, key, fieldUsername, rec.Username, fieldName, rec.Name).Err(); err != nil {
		return store.NewStoreError(s.keys.ns, "save", "hset failed", err)
	}
	return nil
}

// FindBy implements store.RecordStore.FindBy with a linear scan over All.
func (s *RecordStore) FindBy(ctx context.Context, field store.Field, value string) (store.Record, bool, error) {
	if !field.Valid() {
		return store.Record{}, false, fmt.Errorf("%w: %q", store.ErrInvalidField, string(field))
	}

	records, err := s.All(ctx)
	if err != nil {
		return store.Record{}, false, err
	}
	for _, rec := range records {
		if v, _ := rec.Value(field); v == value {
			return rec, true, nil
		}
	}
	return store.Record{}, false, nil
}

// liveIDs returns every ID in the ids sorted set, ascending.
func (s *RecordStore) liveIDs(ctx context.Context) ([]int64, error) {
	members, err := s.client.ZRange(ctx, s.keys.ids(), 0, -1).Result()
	if err != nil {
		return nil, store.NewStoreError(s.keys.ns, "all", "zrange failed", err)
	}

	ids := make([]int64, 0, len(members))
	for _, m := range members {
		id, err := strconv.ParseInt(m, 10, 64)
		if err != nil {
			return nil, store.NewStoreError(s.keys.ns, "all", "corrupt id "+strconv.Quote(m), err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
