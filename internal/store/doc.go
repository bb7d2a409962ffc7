// Package store defines the record store contract shared by every persistence
// backend. Domain code (the Active Record model and the Data Mapper) depends only
// on RecordStore, so an in-memory, relational or Redis backend can be swapped in
// at construction time without changing the domain logic.
package store
