package mapper_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/twitter-persistence/internal/domain"
	"github.com/phrazzld/twitter-persistence/internal/mapper"
	"github.com/phrazzld/twitter-persistence/internal/mocks"
	"github.com/phrazzld/twitter-persistence/internal/store"
	"github.com/phrazzld/twitter-persistence/internal/store/memory"
)

func TestUserMapper_Memory(t *testing.T) {
	runMapperSuite(t, func(t *testing.T) store.RecordStore { return memory.New() })
}

// runMapperSuite exercises the mapper against a backend. Every backend must
// pass it unchanged.
func runMapperSuite(t *testing.T, newBackend func(t *testing.T) store.RecordStore) {
	t.Helper()
	ctx := context.Background()

	t.Run("truncate leaves nothing", func(t *testing.T) {
		m := mapper.New(newBackend(t))
		require.NoError(t, m.Persist(ctx, domain.NewUser("Foo Bar", "foobar", nil)))

		require.NoError(t, m.Truncate(ctx))

		users, err := m.All(ctx)
		require.NoError(t, err)
		assert.Empty(t, users)
	})

	t.Run("any field contents persist", func(t *testing.T) {
		m := mapper.New(newBackend(t))
		long := domain.NewUser(strings.Repeat("n", 256), strings.Repeat("u", 65), nil)
		blank := domain.NewUser("", "", nil)
		require.NoError(t, m.Persist(ctx, long))
		require.NoError(t, m.Persist(ctx, blank))

		users, err := m.All(ctx)
		require.NoError(t, err)
		require.Len(t, users, 2)
		assert.Equal(t, long.Name, users[0].Name)

		found, err := m.FindByUsername(ctx, long.Username)
		require.NoError(t, err)
		assert.Equal(t, long.Name, found.Name)
	})

	t.Run("persisted user is listed", func(t *testing.T) {
		m := mapper.New(newBackend(t))
		u := domain.NewUser("Ada Lovelace", "ada", nil)
		require.NoError(t, m.Persist(ctx, u))

		users, err := m.All(ctx)
		require.NoError(t, err)
		assert.True(t, domain.ContainsUser(users, u))
	})

	t.Run("persist twice updates in place", func(t *testing.T) {
		m := mapper.New(newBackend(t))
		u := domain.NewUser("Ada", "ada", nil)
		require.NoError(t, m.Persist(ctx, u))

		u.Name = "Ada Lovelace"
		require.NoError(t, m.Persist(ctx, u))

		users, err := m.All(ctx)
		require.NoError(t, err)
		require.Len(t, users, 1)
		assert.Equal(t, "Ada Lovelace", users[0].Name)
	})

	t.Run("distinct values with one username collapse", func(t *testing.T) {
		m := mapper.New(newBackend(t))
		require.NoError(t, m.Persist(ctx, domain.NewUser("A", "x", nil)))
		require.NoError(t, m.Persist(ctx, domain.NewUser("B", "x", nil)))

		users, err := m.All(ctx)
		require.NoError(t, err)
		require.Len(t, users, 1)
		assert.Equal(t, "B", users[0].Name)
	})

	t.Run("find on empty store is not found", func(t *testing.T) {
		m := mapper.New(newBackend(t))
		require.NoError(t, m.Truncate(ctx))

		for _, username := range []string{"foobar", "", "nobody"} {
			u, err := m.FindByUsername(ctx, username)
			assert.Nil(t, u)
			assert.ErrorIs(t, err, store.ErrRecordNotFound)
			assert.ErrorIs(t, err, store.ErrNotFound)
			assert.True(t, store.IsNotFoundError(err))
		}
	})

	t.Run("find after persist", func(t *testing.T) {
		m := mapper.New(newBackend(t))
		u := domain.NewUser("Grace Hopper", "grace", nil)
		require.NoError(t, m.Persist(ctx, u))

		found, err := m.FindByUsername(ctx, "grace")
		require.NoError(t, err)
		assert.True(t, found.Equal(u))
		assert.Equal(t, "Grace Hopper", found.Name)
	})

	t.Run("full lifecycle", func(t *testing.T) {
		m := mapper.New(newBackend(t))
		require.NoError(t, m.Truncate(ctx))
		require.NoError(t, m.Persist(ctx, domain.NewUser("Foo Bar", "foobar", nil)))

		users, err := m.All(ctx)
		require.NoError(t, err)
		assert.Len(t, users, 1)

		found, err := m.FindByUsername(ctx, "foobar")
		require.NoError(t, err)
		assert.Equal(t, "Foo Bar", found.Name)

		require.NoError(t, m.Truncate(ctx))
		users, err = m.All(ctx)
		require.NoError(t, err)
		assert.Empty(t, users)

		// In-memory values survive truncation.
		assert.Equal(t, "Foo Bar", found.Name)
	})

	t.Run("loaded users tweet", func(t *testing.T) {
		m := mapper.New(newBackend(t))
		require.NoError(t, m.Persist(ctx, domain.NewUser("Foo Bar", "foobar", nil)))

		found, err := m.FindByUsername(ctx, "foobar")
		require.NoError(t, err)

		tw, err := found.Tweet("hello")
		require.NoError(t, err)
		post := tw.(*domain.Post)
		assert.Equal(t, "hello", post.Content)
		assert.Same(t, found, post.User)
	})
}

func TestUserMapper_WithTweetFactory(t *testing.T) {
	ctx := context.Background()
	calls := 0
	factory := func() domain.Tweet {
		calls++
		return &domain.Post{}
	}

	m := mapper.New(memory.New(), mapper.WithTweetFactory(factory))
	require.NoError(t, m.Persist(ctx, domain.NewUser("", "foobar", nil)))

	found, err := m.FindByUsername(ctx, "foobar")
	require.NoError(t, err)

	_, err = found.Tweet("one")
	require.NoError(t, err)
	_, err = found.Tweet("two")
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestUserMapper_PersistNil(t *testing.T) {
	backend := mocks.NewMockRecordStore()
	m := mapper.New(backend)

	assert.ErrorIs(t, m.Persist(context.Background(), nil), store.ErrInvalidEntity)
	assert.Empty(t, backend.Calls())
}

func TestUserMapper_PersistBlankUser(t *testing.T) {
	ctx := context.Background()
	backend := mocks.NewMockRecordStore()
	m := mapper.New(backend)

	require.NoError(t, m.Persist(ctx, domain.NewUser("", "", nil)))
	assert.Equal(t, []string{"FindOrCreateByUsername", "Save"}, backend.Calls())

	users, err := m.All(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestUserMapper_BackendErrors(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("connection refused")

	t.Run("all", func(t *testing.T) {
		backend := &mocks.MockRecordStore{
			AllFn: func(ctx context.Context) ([]store.Record, error) { return nil, boom },
		}
		_, err := mapper.New(backend).All(ctx)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("truncate", func(t *testing.T) {
		backend := &mocks.MockRecordStore{
			TruncateFn: func(ctx context.Context) error { return boom },
		}
		assert.ErrorIs(t, mapper.New(backend).Truncate(ctx), boom)
	})

	t.Run("persist save", func(t *testing.T) {
		backend := mocks.NewMockRecordStore()
		backend.SaveFn = func(ctx context.Context, rec store.Record) error { return boom }

		err := mapper.New(backend).Persist(ctx, domain.NewUser("A", "x", nil))
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, []string{"FindOrCreateByUsername", "Save"}, backend.Calls())
	})

	t.Run("find is not reported as not found", func(t *testing.T) {
		backend := &mocks.MockRecordStore{
			FindByFn: func(ctx context.Context, field store.Field, value string) (store.Record, bool, error) {
				return store.Record{}, false, boom
			},
		}
		_, err := mapper.New(backend).FindByUsername(ctx, "x")
		assert.ErrorIs(t, err, boom)
		assert.NotErrorIs(t, err, store.ErrRecordNotFound)
	})
}

func TestUserMapper_PersistCallSequence(t *testing.T) {
	ctx := context.Background()
	backend := new(mocks.TestifyMockRecordStore)

	backend.On("FindOrCreateByUsername", mock.Anything, "ada").
		Return(store.Record{ID: 7, Username: "ada"}, nil).Once()
	backend.On("Save", mock.Anything, store.Record{ID: 7, Username: "ada", Name: "Ada"}).
		Return(nil).Once()

	require.NoError(t, mapper.New(backend).Persist(ctx, domain.NewUser("Ada", "ada", nil)))
	backend.AssertExpectations(t)
}

func TestNew_NilBackendPanics(t *testing.T) {
	assert.Panics(t, func() { mapper.New(nil) })
}
