package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/twitter-persistence/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockStore(t *testing.T, opts ...Option) (*RecordStore, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})

	return NewRecordStore(db, nil, opts...), mock
}

func TestNewRecordStore(t *testing.T) {
	t.Run("defaults to user_metadata with a name column", func(t *testing.T) {
		s, _ := newMockStore(t)
		assert.Equal(t, UserMetadataTable, s.Table())
		assert.True(t, s.hasName)
	})

	t.Run("nil db panics", func(t *testing.T) {
		assert.Panics(t, func() { NewRecordStore(nil, nil) })
	})

	t.Run("invalid table name panics", func(t *testing.T) {
		db, _, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		assert.Panics(t, func() { NewRecordStore(db, nil, WithTable("users; DROP TABLE users")) })
		assert.Panics(t, func() { NewRecordStore(db, nil, WithTable("")) })
	})
}

func TestRecordStore_All(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery("SELECT id, username, name FROM user_metadata ORDER BY id").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "name"}).
			AddRow(int64(1), "foobar", "Foo Bar").
			AddRow(int64(2), "nameless", nil))

	recs, err := s.All(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []store.Record{
		{ID: 1, Username: "foobar", Name: "Foo Bar"},
		{ID: 2, Username: "nameless"},
	}, recs)
}

func TestRecordStore_AllEmpty(t *testing.T) {
	s, mock := newMockStore(t, WithTable(UsersTable), WithoutNameColumn())

	mock.ExpectQuery("SELECT id, username FROM users ORDER BY id").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username"}))

	recs, err := s.All(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, recs)
	assert.Empty(t, recs)
}

func TestRecordStore_Truncate(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec("DELETE FROM user_metadata").
		WillReturnResult(sqlmock.NewResult(0, 3))

	require.NoError(t, s.Truncate(context.Background()))
}

func TestRecordStore_Create(t *testing.T) {
	t.Run("with name column", func(t *testing.T) {
		s, mock := newMockStore(t)

		mock.ExpectQuery("INSERT INTO user_metadata (username, name) VALUES ($1, $2) RETURNING id").
			WithArgs("foobar", "Foo Bar").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

		rec, err := s.Create(context.Background(), store.Record{Username: "foobar", Name: "Foo Bar"})
		require.NoError(t, err)
		assert.Equal(t, store.Record{ID: 7, Username: "foobar", Name: "Foo Bar"}, rec)
	})

	t.Run("without name column", func(t *testing.T) {
		s, mock := newMockStore(t, WithTable(UsersTable), WithoutNameColumn())

		mock.ExpectQuery("INSERT INTO users (username) VALUES ($1) RETURNING id").
			WithArgs("foo").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))

		rec, err := s.Create(context.Background(), store.Record{Username: "foo", Name: "dropped"})
		require.NoError(t, err)
		assert.Equal(t, store.Record{ID: 1, Username: "foo"}, rec)
	})

	t.Run("missing table is reported", func(t *testing.T) {
		s, mock := newMockStore(t)

		pgErr := &pgconn.PgError{Code: undefinedTableCode, Message: `relation "user_metadata" does not exist`}
		mock.ExpectQuery("INSERT INTO user_metadata (username, name) VALUES ($1, $2) RETURNING id").
			WithArgs("foobar", "").
			WillReturnError(pgErr)

		_, err := s.Create(context.Background(), store.Record{Username: "foobar"})
		require.Error(t, err)
		assert.True(t, IsUndefinedTable(err))

		var storeErr *store.StoreError
		require.ErrorAs(t, err, &storeErr)
		assert.Equal(t, "create", storeErr.Operation)
		assert.Equal(t, UserMetadataTable, storeErr.Entity)
	})
}

func TestRecordStore_Save(t *testing.T) {
	t.Run("updates the row", func(t *testing.T) {
		s, mock := newMockStore(t)

		mock.ExpectExec("UPDATE user_metadata SET username = $1, name = $2 WHERE id = $3").
			WithArgs("foobar", "Foo YAR", int64(3)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := s.Save(context.Background(), store.Record{ID: 3, Username: "foobar", Name: "Foo YAR"})
		require.NoError(t, err)
	})

	t.Run("unknown id", func(t *testing.T) {
		s, mock := newMockStore(t, WithTable(UsersTable), WithoutNameColumn())

		mock.ExpectExec("UPDATE users SET username = $1 WHERE id = $2").
			WithArgs("ghost", int64(99)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := s.Save(context.Background(), store.Record{ID: 99, Username: "ghost"})
		assert.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestRecordStore_FindBy(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		s, mock := newMockStore(t)

		mock.ExpectQuery("SELECT id, username, name FROM user_metadata WHERE username = $1 ORDER BY id LIMIT 1").
			WithArgs("foobar").
			WillReturnRows(sqlmock.NewRows([]string{"id", "username", "name"}).
				AddRow(int64(1), "foobar", "Foo Bar"))

		rec, found, err := s.FindBy(context.Background(), store.FieldUsername, "foobar")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, store.Record{ID: 1, Username: "foobar", Name: "Foo Bar"}, rec)
	})

	t.Run("absent is not an error", func(t *testing.T) {
		s, mock := newMockStore(t)

		mock.ExpectQuery("SELECT id, username, name FROM user_metadata WHERE name = $1 ORDER BY id LIMIT 1").
			WithArgs("Nobody").
			WillReturnRows(sqlmock.NewRows([]string{"id", "username", "name"}))

		_, found, err := s.FindBy(context.Background(), store.FieldName, "Nobody")
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("name lookup without name column", func(t *testing.T) {
		s, _ := newMockStore(t, WithTable(UsersTable), WithoutNameColumn())

		_, _, err := s.FindBy(context.Background(), store.FieldName, "Foo")
		assert.ErrorIs(t, err, store.ErrInvalidField)
	})

	t.Run("driver failure", func(t *testing.T) {
		s, mock := newMockStore(t)

		mock.ExpectQuery("SELECT id, username, name FROM user_metadata WHERE username = $1 ORDER BY id LIMIT 1").
			WithArgs("foobar").
			WillReturnError(errors.New("connection refused"))

		_, found, err := s.FindBy(context.Background(), store.FieldUsername, "foobar")
		assert.False(t, found)
		assert.ErrorContains(t, err, "connection refused")
	})
}

func TestRecordStore_FindOrCreateByUsername(t *testing.T) {
	const selectQuery = "SELECT id, username, name FROM user_metadata WHERE username = $1 ORDER BY id LIMIT 1"

	t.Run("existing", func(t *testing.T) {
		s, mock := newMockStore(t)

		mock.ExpectQuery(selectQuery).
			WithArgs("foobar").
			WillReturnRows(sqlmock.NewRows([]string{"id", "username", "name"}).
				AddRow(int64(4), "foobar", "Foo Bar"))

		rec, err := s.FindOrCreateByUsername(context.Background(), "foobar")
		require.NoError(t, err)
		assert.Equal(t, int64(4), rec.ID)
	})

	t.Run("missing", func(t *testing.T) {
		s, mock := newMockStore(t)

		mock.ExpectQuery(selectQuery).
			WithArgs("foobar").
			WillReturnRows(sqlmock.NewRows([]string{"id", "username", "name"}))
		mock.ExpectQuery("INSERT INTO user_metadata (username, name) VALUES ($1, $2) RETURNING id").
			WithArgs("foobar", "").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(5)))

		rec, err := s.FindOrCreateByUsername(context.Background(), "foobar")
		require.NoError(t, err)
		assert.Equal(t, store.Record{ID: 5, Username: "foobar"}, rec)
	})
}

func TestRecordStore_WithTx(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	s := NewRecordStore(db, nil)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM user_metadata").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	tx, err := db.Begin()
	require.NoError(t, err)

	txStore := s.WithTx(tx)
	assert.Equal(t, s.Table(), txStore.Table())
	require.NoError(t, txStore.Truncate(context.Background()))
	require.NoError(t, tx.Commit())

	assert.Same(t, db, s.db, "WithTx must not rebind the original store")
	assert.NoError(t, mock.ExpectationsWereMet())
}
