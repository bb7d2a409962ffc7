// Package storetest holds the behavioural suite every store.RecordStore
// implementation must pass. Backend packages call Run from their own tests.
package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/phrazzld/twitter-persistence/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Factory returns an empty record store for one subtest.
type Factory func(t *testing.T) store.RecordStore

// Options tunes the suite for a backend.
type Options struct {
	// WithoutName skips assertions that read the Name column back.
	WithoutName bool
}

// Run executes the suite. Subtests run sequentially because a backend
// may share one table between them.
func Run(t *testing.T, newStore Factory, opts Options) {
	t.Helper()

	t.Run("all defaults to empty", func(t *testing.T) {
		s := newStore(t)
		ctx := testContext(t)

		recs, err := s.All(ctx)
		require.NoError(t, err)
		assert.Empty(t, recs)
	})

	t.Run("truncate deletes every record", func(t *testing.T) {
		s := newStore(t)
		ctx := testContext(t)

		_, err := s.Create(ctx, store.Record{Username: "foo"})
		require.NoError(t, err)
		_, err = s.Create(ctx, store.Record{Username: "bar"})
		require.NoError(t, err)

		require.NoError(t, s.Truncate(ctx))

		recs, err := s.All(ctx)
		require.NoError(t, err)
		assert.Empty(t, recs)
	})

	t.Run("truncate on an empty store is not an error", func(t *testing.T) {
		s := newStore(t)
		ctx := testContext(t)

		require.NoError(t, s.Truncate(ctx))
		require.NoError(t, s.Truncate(ctx))
	})

	t.Run("create assigns increasing ids and never deduplicates", func(t *testing.T) {
		s := newStore(t)
		ctx := testContext(t)

		first, err := s.Create(ctx, store.Record{Username: "foo", Name: "First"})
		require.NoError(t, err)
		second, err := s.Create(ctx, store.Record{Username: "foo", Name: "Second"})
		require.NoError(t, err)

		assert.NotZero(t, first.ID)
		assert.Greater(t, second.ID, first.ID)

		recs, err := s.All(ctx)
		require.NoError(t, err)
		require.Len(t, recs, 2)
		assert.Equal(t, first.ID, recs[0].ID)
		assert.Equal(t, second.ID, recs[1].ID)
		assert.Equal(t, "foo", recs[1].Username)
	})

	t.Run("find by returns the first match", func(t *testing.T) {
		s := newStore(t)
		ctx := testContext(t)

		first, err := s.Create(ctx, store.Record{Username: "foo", Name: "Foo"})
		require.NoError(t, err)
		_, err = s.Create(ctx, store.Record{Username: "foo", Name: "Foo again"})
		require.NoError(t, err)

		rec, found, err := s.FindBy(ctx, store.FieldUsername, "foo")
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, first.ID, rec.ID)
		if !opts.WithoutName {
			assert.Equal(t, "Foo", rec.Name)
		}
	})

	t.Run("find by reports absence without an error", func(t *testing.T) {
		s := newStore(t)
		ctx := testContext(t)

		rec, found, err := s.FindBy(ctx, store.FieldUsername, "oops")
		require.NoError(t, err)
		assert.False(t, found)
		assert.Zero(t, rec)
	})

	t.Run("find by rejects unknown fields", func(t *testing.T) {
		s := newStore(t)
		ctx := testContext(t)

		_, _, err := s.FindBy(ctx, store.Field("password"), "x")
		assert.ErrorIs(t, err, store.ErrInvalidField)
	})

	if !opts.WithoutName {
		t.Run("find by name", func(t *testing.T) {
			s := newStore(t)
			ctx := testContext(t)

			_, err := s.Create(ctx, store.Record{Username: "foo", Name: "Foo Bar"})
			require.NoError(t, err)

			rec, found, err := s.FindBy(ctx, store.FieldName, "Foo Bar")
			require.NoError(t, err)
			require.True(t, found)
			assert.Equal(t, "foo", rec.Username)
		})
	}

	t.Run("find or create returns the existing record", func(t *testing.T) {
		s := newStore(t)
		ctx := testContext(t)

		created, err := s.FindOrCreateByUsername(ctx, "foobar")
		require.NoError(t, err)
		assert.NotZero(t, created.ID)
		assert.Equal(t, "foobar", created.Username)

		again, err := s.FindOrCreateByUsername(ctx, "foobar")
		require.NoError(t, err)
		assert.Equal(t, created.ID, again.ID)

		recs, err := s.All(ctx)
		require.NoError(t, err)
		assert.Len(t, recs, 1)
	})

	t.Run("save overwrites fields in place", func(t *testing.T) {
		s := newStore(t)
		ctx := testContext(t)

		rec, err := s.FindOrCreateByUsername(ctx, "foobar")
		require.NoError(t, err)

		rec.Name = "Foo YAR"
		require.NoError(t, s.Save(ctx, rec))

		recs, err := s.All(ctx)
		require.NoError(t, err)
		require.Len(t, recs, 1)
		assert.Equal(t, rec.ID, recs[0].ID)
		if !opts.WithoutName {
			assert.Equal(t, "Foo YAR", recs[0].Name)
		}
	})

	t.Run("save of an unknown id reports not found", func(t *testing.T) {
		s := newStore(t)
		ctx := testContext(t)

		err := s.Save(ctx, store.Record{ID: 987654, Username: "ghost"})
		assert.ErrorIs(t, err, store.ErrNotFound)
	})
}

func testContext(t *testing.T) context.Context {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}
