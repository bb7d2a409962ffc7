package backend

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/twitter-persistence/internal/config"
	"github.com/phrazzld/twitter-persistence/internal/store"
	"github.com/phrazzld/twitter-persistence/internal/store/memory"
)

func TestOpen_Memory(t *testing.T) {
	ctx := context.Background()

	set, err := Open(ctx, config.StorageConfig{Backend: config.BackendMemory}, nil)
	require.NoError(t, err)
	defer func() { assert.NoError(t, set.Close()) }()

	assert.IsType(t, &memory.Store{}, set.ActiveRecord)
	assert.IsType(t, &memory.Store{}, set.DataMapper)
	assert.Nil(t, set.DB)
	assert.NoError(t, set.Ping(ctx))

	// The two sides never share records.
	_, err = set.ActiveRecord.Create(ctx, store.Record{Username: "ada"})
	require.NoError(t, err)
	records, err := set.DataMapper.All(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestOpen_Unknown(t *testing.T) {
	set, err := Open(context.Background(), config.StorageConfig{Backend: "sqlite"}, nil)
	assert.Nil(t, set)
	assert.ErrorIs(t, err, ErrUnknownBackend)
}

func TestOpen_BadRedisURL(t *testing.T) {
	set, err := Open(context.Background(), config.StorageConfig{
		Backend:  config.BackendRedis,
		RedisURL: "not-a-url",
	}, nil)
	assert.Nil(t, set)
	assert.Error(t, err)
}

func TestSet_CloseNil(t *testing.T) {
	var set *Set
	assert.NoError(t, set.Close())
	assert.NoError(t, (&Set{}).Close())
}
