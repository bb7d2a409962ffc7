package activerecord

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/twitter-persistence/internal/domain"
	"github.com/phrazzld/twitter-persistence/internal/platform/logger"
	"github.com/phrazzld/twitter-persistence/internal/store"
)

// User is a Twitter user that persists itself.
type User struct {
	Username string `json:"username"`

	id    int64
	model *Model
}

// ID returns the ID of the record this value was last saved as or loaded
// from. Zero for unsaved users.
func (u *User) ID() int64 { return u.id }

// Persisted reports whether the user has been saved or was loaded from a store.
func (u *User) Persisted() bool { return u.id != 0 }

// Handle implements domain.Author.
func (u *User) Handle() string { return u.Username }

// Save inserts the user as a new record. It never updates: saving the same
// value twice leaves two records with the same username. The username is
// stored as is, empty included.
func (u *User) Save(ctx context.Context) error {
	if u.model == nil {
		return store.ErrNoBackend
	}

	log := logger.FromContextOrDefault(ctx, u.model.logger)

	rec, err := u.model.backend.Create(ctx, store.Record{Username: u.Username})
	if err != nil {
		log.Error("failed to save user",
			slog.String("error", err.Error()),
			slog.String("username", u.Username))
		return fmt.Errorf("failed to save user %q: %w", u.Username, err)
	}

	u.id = rec.ID
	log.Debug("user saved",
		slog.Int64("id", rec.ID),
		slog.String("username", u.Username))
	return nil
}

// Equal reports whether u and other share a username.
func (u *User) Equal(other *User) bool {
	if u == nil || other == nil {
		return u == other
	}
	return u.Username == other.Username
}

// Tweet produces a tweet authored by u. When the model has a TweetSaver the
// tweet is saved before it is returned.
func (u *User) Tweet(ctx context.Context, content string) (domain.Tweet, error) {
	var factory domain.TweetFactory
	if u.model != nil {
		factory = u.model.tweetFactory
	}

	t, err := domain.ComposeTweet(factory, u, content)
	if err != nil {
		return nil, err
	}

	if u.model != nil && u.model.tweetSaver != nil {
		if err := u.model.tweetSaver(ctx, t); err != nil {
			return nil, fmt.Errorf("failed to save tweet: %w", err)
		}
	}
	return t, nil
}

// ContainsUser reports whether users holds a user equal to u.
func ContainsUser(users []*User, u *User) bool {
	for _, candidate := range users {
		if candidate.Equal(u) {
			return true
		}
	}
	return false
}
