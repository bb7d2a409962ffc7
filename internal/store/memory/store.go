// Package memory provides an in-process implementation of store.RecordStore
// backed by an ordered slice.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/phrazzld/twitter-persistence/internal/store"
)

var _ store.RecordStore = (*Store)(nil)

// Store keeps records in insertion order. It is safe for concurrent use so a
// single instance can back an HTTP server; nothing else relies on that.
type Store struct {
	mu      sync.Mutex
	records []store.Record
	lastID  int64
}

// New returns an empty Store.
func New() *Store {
	return &Store{}
}

// All implements store.RecordStore.All.
func (s *Store) All(_ context.Context) ([]store.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]store.Record, len(s.records))
	copy(out, s.records)
	return out, nil
}

// Truncate implements store.RecordStore.Truncate.
// IDs are not reused afterwards, matching an auto-increment column.
func (s *Store) Truncate(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = nil
	return nil
}

// Create implements store.RecordStore.Create.
func (s *Store) Create(_ context.Context, rec store.Record) (store.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.appendLocked(rec), nil
}

// FindOrCreateByUsername implements store.RecordStore.FindOrCreateByUsername.
func (s *Store) FindOrCreateByUsername(_ context.Context, username string) (store.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexLocked(store.FieldUsername, username); i >= 0 {
		return s.records[i], nil
	}
	return s.appendLocked(store.Record{Username: username}), nil
}

// Save implements store.RecordStore.Save.
func (s *Store) Save(_ context.Context, rec store.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.records {
		if s.records[i].ID == rec.ID {
			s.records[i] = rec
			return nil
		}
	}
	return fmt.Errorf("%w: record with id %d", store.ErrNotFound, rec.ID)
}

// FindBy implements store.RecordStore.FindBy with a linear scan.
func (s *Store) FindBy(_ context.Context, field store.Field, value string) (store.Record, bool, error) {
	if !field.Valid() {
		return store.Record{}, false, fmt.Errorf("%w: %q", store.ErrInvalidField, string(field))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexLocked(field, value); i >= 0 {
		return s.records[i], true, nil
	}
	return store.Record{}, false, nil
}

func (s *Store) appendLocked(rec store.Record) store.Record {
	s.lastID++
	rec.ID = s.lastID
	s.records = append(s.records, rec)
	return rec
}

// indexLocked returns the position of the first record whose field equals
// value, or -1. field must already be valid.
func (s *Store) indexLocked(field store.Field, value string) int {
	for i, rec := range s.records {
		v, _ := rec.Value(field)
		if v == value {
			return i
		}
	}
	return -1
}
