package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrEmptyUsername is returned when a user has no username.
	ErrEmptyUsername = errors.New("username cannot be empty")

	// ErrNoTweetFactory is returned by Tweet when the entity was built
	// without a tweet factory. It signals a wiring mistake, not bad input.
	ErrNoTweetFactory = errors.New("no tweet factory configured")

	// ErrNilTweet is returned when a tweet factory produces nil.
	ErrNilTweet = errors.New("tweet factory returned nil")
)
