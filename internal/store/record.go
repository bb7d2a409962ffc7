package store

import (
	"context"
	"fmt"
)

// Record is a raw row held by a record store.
// ID is assigned by the backend on creation and increases monotonically.
// Name is empty for backends configured without a name column.
type Record struct {
	ID       int64
	Username string
	Name     string
}

// Field names a column a record can be looked up by.
type Field string

const (
	// FieldUsername is the natural lookup key.
	FieldUsername Field = "username"
	// FieldName looks records up by display name.
	FieldName Field = "name"
)

// Valid reports whether f is one of the known lookup fields.
func (f Field) Valid() bool {
	switch f {
	case FieldUsername, FieldName:
		return true
	}
	return false
}

// Value returns the value of field f on the record.
func (r Record) Value(f Field) (string, error) {
	switch f {
	case FieldUsername:
		return r.Username, nil
	case FieldName:
		return r.Name, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidField, string(f))
}

// RecordStore is the capability set every persistence backend provides.
type RecordStore interface {
	// All returns every stored record ordered by ID.
	// Returns an empty slice when the store holds nothing.
	All(ctx context.Context) ([]Record, error)

	// Truncate deletes every stored record. Calling it on an empty store is not an error.
	Truncate(ctx context.Context) error

	// Create inserts a new record with a fresh ID and returns it.
	// No uniqueness check is made: two records may share a username.
	Create(ctx context.Context, rec Record) (Record, error)

	// FindOrCreateByUsername returns the first record with the given username,
	// creating one when none exists.
	FindOrCreateByUsername(ctx context.Context, username string) (Record, error)

	// Save overwrites the fields of the record identified by rec.ID.
	// Returns ErrNotFound if no record has that ID.
	Save(ctx context.Context, rec Record) error

	// FindBy returns the record with the lowest ID whose field equals value.
	// The boolean is false when nothing matches; that is not an error.
	// Returns ErrInvalidField for an unknown field.
	FindBy(ctx context.Context, field Field, value string) (Record, bool, error)
}
