// Package mapper implements the Data Mapper side of the persistence
// comparison: domain.User knows nothing about storage and UserMapper moves it
// in and out of a store.RecordStore.
package mapper

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/twitter-persistence/internal/domain"
	"github.com/phrazzld/twitter-persistence/internal/platform/logger"
	"github.com/phrazzld/twitter-persistence/internal/store"
)

// Option configures a UserMapper.
type Option func(*UserMapper)

// WithTweetFactory sets the factory handed to every user the mapper loads.
func WithTweetFactory(f domain.TweetFactory) Option {
	return func(m *UserMapper) { m.tweetFactory = f }
}

// WithLogger sets the mapper's logger.
func WithLogger(l *slog.Logger) Option {
	return func(m *UserMapper) { m.logger = l }
}

// UserMapper translates between domain users and stored records.
type UserMapper struct {
	backend      store.RecordStore
	tweetFactory domain.TweetFactory
	logger       *slog.Logger
}

// New creates a UserMapper over backend. Loaded users tweet through
// domain.NewPost unless WithTweetFactory says otherwise.
func New(backend store.RecordStore, opts ...Option) *UserMapper {
	if backend == nil {
		panic("backend cannot be nil")
	}

	m := &UserMapper{
		backend:      backend,
		tweetFactory: domain.NewPost,
		logger:       slog.Default(),
	}
	for _, o := range opts {
		o(m)
	}
	m.logger = m.logger.With(slog.String("component", "user_mapper"))
	return m
}

// All returns every stored user in store order.
func (m *UserMapper) All(ctx context.Context) ([]*domain.User, error) {
	records, err := m.backend.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	users := make([]*domain.User, 0, len(records))
	for _, rec := range records {
		users = append(users, m.wrap(rec))
	}
	return users, nil
}

// Truncate removes every stored user.
func (m *UserMapper) Truncate(ctx context.Context) error {
	if err := m.backend.Truncate(ctx); err != nil {
		return fmt.Errorf("failed to truncate users: %w", err)
	}
	return nil
}

// Persist stores user, creating its record on first call and overwriting the
// stored name afterwards. The store keeps at most one record per username as
// long as only Persist writes to it. Field contents are not checked here;
// request validation belongs to the caller.
func (m *UserMapper) Persist(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, m.logger)

	if user == nil {
		return fmt.Errorf("%w: user is nil", store.ErrInvalidEntity)
	}

	rec, err := m.backend.FindOrCreateByUsername(ctx, user.Username)
	if err != nil {
		log.Error("failed to find or create user record",
			slog.String("error", err.Error()),
			slog.String("username", user.Username))
		return fmt.Errorf("failed to persist user %q: %w", user.Username, err)
	}

	rec.Name = user.Name
	if err := m.backend.Save(ctx, rec); err != nil {
		log.Error("failed to save user record",
			slog.String("error", err.Error()),
			slog.Int64("id", rec.ID),
			slog.String("username", user.Username))
		return fmt.Errorf("failed to persist user %q: %w", user.Username, err)
	}

	log.Debug("user persisted",
		slog.Int64("id", rec.ID),
		slog.String("username", user.Username))
	return nil
}

// FindByUsername loads the user with the given username.
// Returns store.ErrRecordNotFound when there is none.
func (m *UserMapper) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	rec, found, err := m.backend.FindBy(ctx, store.FieldUsername, username)
	if err != nil {
		return nil, fmt.Errorf("failed to find user %q: %w", username, err)
	}
	if !found {
		return nil, fmt.Errorf("%w: username %q", store.ErrRecordNotFound, username)
	}
	return m.wrap(rec), nil
}

func (m *UserMapper) wrap(rec store.Record) *domain.User {
	return domain.NewUser(rec.Name, rec.Username, m.tweetFactory)
}
