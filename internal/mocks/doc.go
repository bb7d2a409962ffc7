// Package mocks provides centralized mock implementations for testing.
//
// Two styles are offered. MockRecordStore uses function fields and falls back
// to a working in-memory store, so a test overrides only the call it cares
// about. TestifyMockRecordStore is built on testify/mock for tests that assert
// on call sequences.
//
// Usage:
//
//	import "github.com/phrazzld/twitter-persistence/internal/mocks"
//
//	func TestSomething(t *testing.T) {
//	    backend := mocks.NewMockRecordStore()
//	    backend.SaveFn = func(ctx context.Context, rec store.Record) error {
//	        return errors.New("disk full")
//	    }
//
//	    // Use the mock in your test...
//	}
package mocks
