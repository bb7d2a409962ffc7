//go:build integration

package activerecord_test

import (
	"testing"

	"github.com/phrazzld/twitter-persistence/internal/platform/postgres"
	"github.com/phrazzld/twitter-persistence/internal/store"
	"github.com/phrazzld/twitter-persistence/internal/testdb"
)

func TestModel_Postgres(t *testing.T) {
	db := testdb.GetTestDBWithT(t)

	runModelSuite(t, func(t *testing.T) store.RecordStore {
		return postgres.NewRecordStore(testdb.BeginTx(t, db), nil,
			postgres.WithTable(postgres.UsersTable),
			postgres.WithoutNameColumn())
	})
}
