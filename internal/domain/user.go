package domain

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// User is a Twitter user. It has no knowledge of how it is stored.
// Two users are the same user when their usernames match.
type User struct {
	Name     string `json:"name"`
	Username string `json:"username" validate:"required"`

	tweetFactory TweetFactory
}

// NewUser creates a User. factory may be nil for users that never tweet;
// calling Tweet on such a user returns ErrNoTweetFactory.
func NewUser(name, username string, factory TweetFactory) *User {
	return &User{
		Name:         name,
		Username:     username,
		tweetFactory: factory,
	}
}

// Handle implements Author.
func (u *User) Handle() string {
	return u.Username
}

// Equal reports whether u and other share a username. Name and identity are ignored.
func (u *User) Equal(other *User) bool {
	if u == nil || other == nil {
		return u == other
	}
	return u.Username == other.Username
}

// Tweet produces a new tweet authored by u.
func (u *User) Tweet(content string) (Tweet, error) {
	return ComposeTweet(u.tweetFactory, u, content)
}

// Validate checks if the User has valid data.
func (u *User) Validate() error {
	err := validate.Struct(u)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			if fe.Field() == "Username" && fe.Tag() == "required" {
				return ErrEmptyUsername
			}
		}
		return fmt.Errorf("%w: %s", ErrValidation, verrs[0].Error())
	}
	return fmt.Errorf("%w: %v", ErrValidation, err)
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
