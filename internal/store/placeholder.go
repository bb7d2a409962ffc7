package store

import "context"

// Placeholder is the abstract backend used when nothing has been configured.
// Every operation fails with ErrNoBackend.
type Placeholder struct{}

var _ RecordStore = Placeholder{}

// All implements RecordStore.All.
func (Placeholder) All(context.Context) ([]Record, error) { return nil, ErrNoBackend }

// Truncate implements RecordStore.Truncate.
func (Placeholder) Truncate(context.Context) error { return ErrNoBackend }

// Create implements RecordStore.Create.
func (Placeholder) Create(context.Context, Record) (Record, error) { return Record{}, ErrNoBackend }

// FindOrCreateByUsername implements RecordStore.FindOrCreateByUsername.
func (Placeholder) FindOrCreateByUsername(context.Context, string) (Record, error) {
	return Record{}, ErrNoBackend
}

// Save implements RecordStore.Save.
func (Placeholder) Save(context.Context, Record) error { return ErrNoBackend }

// FindBy implements RecordStore.FindBy.
func (Placeholder) FindBy(context.Context, Field, string) (Record, bool, error) {
	return Record{}, false, ErrNoBackend
}
