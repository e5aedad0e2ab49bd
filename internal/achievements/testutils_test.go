package achievements_test

import (
	"gilmoremanor/internal/catalog"
	"gilmoremanor/internal/db"
	"github.com/stretchr/testify/require"
	"testing"
)

// newTestDB creates a new in-memory database for testing purposes.
func newTestDB(t *testing.T) *db.DBs {
	t.Helper()
	dbs, err := db.NewDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, dbs.Close())
	})
	return dbs
}

func newTestCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.Load()
	require.NoError(t, err)
	return cat
}
