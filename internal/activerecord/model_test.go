package activerecord_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/twitter-persistence/internal/activerecord"
	"github.com/phrazzld/twitter-persistence/internal/mocks"
	"github.com/phrazzld/twitter-persistence/internal/store"
	"github.com/phrazzld/twitter-persistence/internal/store/memory"
)

func TestModel_Memory(t *testing.T) {
	runModelSuite(t, func(t *testing.T) store.RecordStore { return memory.New() })
}

// runModelSuite exercises the Active Record model against a backend.
func runModelSuite(t *testing.T, newBackend func(t *testing.T) store.RecordStore) {
	t.Helper()
	ctx := context.Background()

	t.Run("defaults to empty", func(t *testing.T) {
		m := activerecord.NewModel(newBackend(t))
		users, err := m.All(ctx)
		require.NoError(t, err)
		assert.Empty(t, users)
	})

	t.Run("save adds the user to all", func(t *testing.T) {
		m := activerecord.NewModel(newBackend(t))
		u := m.Build("foobar")
		assert.False(t, u.Persisted())

		require.NoError(t, u.Save(ctx))
		assert.True(t, u.Persisted())
		assert.NotZero(t, u.ID())

		users, err := m.All(ctx)
		require.NoError(t, err)
		assert.True(t, activerecord.ContainsUser(users, u))
	})

	t.Run("blank user can be saved and truncated", func(t *testing.T) {
		m := activerecord.NewModel(newBackend(t))
		u := m.New()
		require.NoError(t, u.Save(ctx))
		assert.True(t, u.Persisted())

		users, err := m.All(ctx)
		require.NoError(t, err)
		require.Len(t, users, 1)
		assert.Empty(t, users[0].Username)

		require.NoError(t, m.Truncate(ctx))
		users, err = m.All(ctx)
		require.NoError(t, err)
		assert.Empty(t, users)
	})

	t.Run("save always inserts", func(t *testing.T) {
		m := activerecord.NewModel(newBackend(t))
		u := m.Build("foobar")
		require.NoError(t, u.Save(ctx))
		first := u.ID()
		require.NoError(t, u.Save(ctx))

		assert.Greater(t, u.ID(), first)

		users, err := m.All(ctx)
		require.NoError(t, err)
		require.Len(t, users, 2)
		assert.Equal(t, "foobar", users[0].Username)
		assert.Equal(t, "foobar", users[1].Username)
	})

	t.Run("truncate", func(t *testing.T) {
		m := activerecord.NewModel(newBackend(t))
		require.NoError(t, m.Build("foobar").Save(ctx))

		require.NoError(t, m.Truncate(ctx))
		require.NoError(t, m.Truncate(ctx))

		users, err := m.All(ctx)
		require.NoError(t, err)
		assert.Empty(t, users)
	})

	t.Run("find by username", func(t *testing.T) {
		m := activerecord.NewModel(newBackend(t))
		u := m.New()
		u.Username = "grace"
		require.NoError(t, u.Save(ctx))

		found, err := m.FindByUsername(ctx, "grace")
		require.NoError(t, err)
		assert.True(t, found.Equal(u))
		assert.Equal(t, u.ID(), found.ID())
	})

	t.Run("find on empty store is not found", func(t *testing.T) {
		m := activerecord.NewModel(newBackend(t))
		_, err := m.FindByUsername(ctx, "foobar")
		assert.ErrorIs(t, err, store.ErrRecordNotFound)
	})
}

func TestModel_Placeholder(t *testing.T) {
	ctx := context.Background()
	m := activerecord.NewModel(nil)

	_, err := m.All(ctx)
	assert.ErrorIs(t, err, store.ErrNoBackend)
	assert.ErrorIs(t, m.Truncate(ctx), store.ErrNoBackend)
	assert.ErrorIs(t, m.Build("x").Save(ctx), store.ErrNoBackend)

	_, err = m.FindByUsername(ctx, "x")
	assert.ErrorIs(t, err, store.ErrNoBackend)
	assert.NotErrorIs(t, err, store.ErrRecordNotFound)
}

func TestUser_SaveWithoutModel(t *testing.T) {
	u := &activerecord.User{Username: "orphan"}
	assert.ErrorIs(t, u.Save(context.Background()), store.ErrNoBackend)
}

func TestUser_SaveBlankReachesBackend(t *testing.T) {
	backend := mocks.NewMockRecordStore()
	m := activerecord.NewModel(backend)

	require.NoError(t, m.New().Save(context.Background()))
	assert.Equal(t, []string{"Create"}, backend.Calls())

	users, err := m.All(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestUser_SaveBackendError(t *testing.T) {
	boom := errors.New("connection refused")
	backend := &mocks.MockRecordStore{
		CreateFn: func(ctx context.Context, rec store.Record) (store.Record, error) {
			return store.Record{}, boom
		},
	}

	u := activerecord.NewModel(backend).Build("foobar")
	assert.ErrorIs(t, u.Save(context.Background()), boom)
	assert.False(t, u.Persisted())
}

func TestUser_Equal(t *testing.T) {
	m := activerecord.NewModel(memory.New())
	a := m.Build("same")
	b := m.Build("same")
	c := m.Build("other")

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(nil))
}
