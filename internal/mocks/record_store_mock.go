package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/phrazzld/twitter-persistence/internal/store"
)

var _ store.RecordStore = (*TestifyMockRecordStore)(nil)

// TestifyMockRecordStore is a mock of store.RecordStore for use with testify/mock
type TestifyMockRecordStore struct {
	mock.Mock
}

// All is a mock implementation of store.RecordStore.All
func (m *TestifyMockRecordStore) All(ctx context.Context) ([]store.Record, error) {
	args := m.Called(ctx)
	if recs, ok := args.Get(0).([]store.Record); ok {
		return recs, args.Error(1)
	}
	return nil, args.Error(1)
}

// Truncate is a mock implementation of store.RecordStore.Truncate
func (m *TestifyMockRecordStore) Truncate(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// Create is a mock implementation of store.RecordStore.Create
func (m *TestifyMockRecordStore) Create(ctx context.Context, rec store.Record) (store.Record, error) {
	args := m.Called(ctx, rec)
	return args.Get(0).(store.Record), args.Error(1)
}

// FindOrCreateByUsername is a mock implementation of store.RecordStore.FindOrCreateByUsername
func (m *TestifyMockRecordStore) FindOrCreateByUsername(ctx context.Context, username string) (store.Record, error) {
	args := m.Called(ctx, username)
	return args.Get(0).(store.Record), args.Error(1)
}

// Save is a mock implementation of store.RecordStore.Save
func (m *TestifyMockRecordStore) Save(ctx context.Context, rec store.Record) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

// FindBy is a mock implementation of store.RecordStore.FindBy
func (m *TestifyMockRecordStore) FindBy(ctx context.Context, field store.Field, value string) (store.Record, bool, error) {
	args := m.Called(ctx, field, value)
	return args.Get(0).(store.Record), args.Bool(1), args.Error(2)
}
