// Package config loads server and storage settings from config.yaml, a .env
// file and TWITTER_* environment variables, in increasing order of precedence,
// and validates the result before anything is wired.
package config
