package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/twitter-persistence/internal/store"
	"github.com/phrazzld/twitter-persistence/internal/store/memory"
)

var _ store.RecordStore = (*MockRecordStore)(nil)

// MockRecordStore implements store.RecordStore for testing.
// Calls without a function field set are served by an in-memory store.
type MockRecordStore struct {
	// Function fields for customizable behavior
	AllFn                    func(ctx context.Context) ([]store.Record, error)
	TruncateFn               func(ctx context.Context) error
	CreateFn                 func(ctx context.Context, rec store.Record) (store.Record, error)
	FindOrCreateByUsernameFn func(ctx context.Context, username string) (store.Record, error)
	SaveFn                   func(ctx context.Context, rec store.Record) error
	FindByFn                 func(ctx context.Context, field store.Field, value string) (store.Record, bool, error)

	mu       sync.Mutex
	calls    []string
	fallback *memory.Store
}

// NewMockRecordStore creates a new mock store with an empty fallback.
func NewMockRecordStore() *MockRecordStore {
	return &MockRecordStore{fallback: memory.New()}
}

// Calls returns the names of the methods invoked so far, in order.
func (m *MockRecordStore) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

func (m *MockRecordStore) record(name string) {
	m.mu.Lock()
	m.calls = append(m.calls, name)
	if m.fallback == nil {
		m.fallback = memory.New()
	}
	m.mu.Unlock()
}

// All implements the RecordStore interface
func (m *MockRecordStore) All(ctx context.Context) ([]store.Record, error) {
	m.record("All")
	if m.AllFn != nil {
		return m.AllFn(ctx)
	}
	return m.fallback.All(ctx)
}

// Truncate implements the RecordStore interface
func (m *MockRecordStore) Truncate(ctx context.Context) error {
	m.record("Truncate")
	if m.TruncateFn != nil {
		return m.TruncateFn(ctx)
	}
	return m.fallback.Truncate(ctx)
}

// Create implements the RecordStore interface
func (m *MockRecordStore) Create(ctx context.Context, rec store.Record) (store.Record, error) {
	m.record("Create")
	if m.CreateFn != nil {
		return m.CreateFn(ctx, rec)
	}
	return m.fallback.Create(ctx, rec)
}

// FindOrCreateByUsername implements the RecordStore interface
func (m *MockRecordStore) FindOrCreateByUsername(ctx context.Context, username string) (store.Record, error) {
	m.record("FindOrCreateByUsername")
	if m.FindOrCreateByUsernameFn != nil {
		return m.FindOrCreateByUsernameFn(ctx, username)
	}
	return m.fallback.FindOrCreateByUsername(ctx, username)
}

// Save implements the RecordStore interface
func (m *MockRecordStore) Save(ctx context.Context, rec store.Record) error {
	m.record("Save")
	if m.SaveFn != nil {
		return m.SaveFn(ctx, rec)
	}
	return m.fallback.Save(ctx, rec)
}

// FindBy implements the RecordStore interface
func (m *MockRecordStore) FindBy(ctx context.Context, field store.Field, value string) (store.Record, bool, error) {
	m.record("FindBy")
	if m.FindByFn != nil {
		return m.FindByFn(ctx, field, value)
	}
	return m.fallback.FindBy(ctx, field, value)
}
