package activerecord

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/twitter-persistence/internal/domain"
	"github.com/phrazzld/twitter-persistence/internal/store"
)

// TweetSaver persists a tweet produced by a User.
type TweetSaver func(ctx context.Context, t domain.Tweet) error

// Option configures a Model.
type Option func(*Model)

// WithTweetFactory sets the factory every User of the model tweets through.
func WithTweetFactory(f domain.TweetFactory) Option {
	return func(m *Model) { m.tweetFactory = f }
}

// WithTweetSaver makes User.Tweet hand each produced tweet to save before
// returning it.
func WithTweetSaver(save TweetSaver) Option {
	return func(m *Model) { m.tweetSaver = save }
}

// WithLogger sets the model's logger.
func WithLogger(l *slog.Logger) Option {
	return func(m *Model) { m.logger = l }
}

// Model is the class side of the Active Record User.
type Model struct {
	backend      store.RecordStore
	tweetFactory domain.TweetFactory
	tweetSaver   TweetSaver
	logger       *slog.Logger
}

// NewModel creates a Model persisting through backend.
// A nil backend selects store.Placeholder.
func NewModel(backend store.RecordStore, opts ...Option) *Model {
	if backend == nil {
		backend = store.Placeholder{}
	}

	m := &Model{
		backend:      backend,
		tweetFactory: domain.NewPost,
		logger:       slog.Default(),
	}
	for _, o := range opts {
		o(m)
	}
	m.logger = m.logger.With(slog.String("component", "active_record"))
	return m
}

// New returns an unsaved User bound to the model.
func (m *Model) New() *User {
	return &User{model: m}
}

// Build returns an unsaved User with the given username.
func (m *Model) Build(username string) *User {
	return &User{Username: username, model: m}
}

// All returns every stored user in store order.
func (m *Model) All(ctx context.Context) ([]*User, error) {
	records, err := m.backend.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	users := make([]*User, 0, len(records))
	for _, rec := range records {
		users = append(users, m.load(rec))
	}
	return users, nil
}

// Truncate removes every stored user.
func (m *Model) Truncate(ctx context.Context) error {
	if err := m.backend.Truncate(ctx); err != nil {
		return fmt.Errorf("failed to truncate users: %w", err)
	}
	return nil
}

// FindByUsername returns the first stored user with the given username.
// Returns store.ErrRecordNotFound when there is none.
func (m *Model) FindByUsername(ctx context.Context, username string) (*User, error) {
	rec, found, err := m.backend.FindBy(ctx, store.FieldUsername, username)
	if err != nil {
		return nil, fmt.Errorf("failed to find user %q: %w", username, err)
	}
	if !found {
		return nil, fmt.Errorf("%w: username %q", store.ErrRecordNotFound, username)
	}
	return m.load(rec), nil
}

func (m *Model) load(rec store.Record) *User {
	return &User{Username: rec.Username, id: rec.ID, model: m}
}
