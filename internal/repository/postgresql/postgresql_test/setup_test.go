package postgresql_test

import (
	"testing"

	"github.com/cmlabs-hris/leave-analyzer/internal/pkg/database"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/require"
)

// newMockDB returns a database backed by a pgxmock pool. Unmet expectations
// fail the test on cleanup.
func newMockDB(t *testing.T) (*database.DB, pgxmock.PgxPoolIface) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		mock.Close()
	})

	return database.NewDB(mock), mock
}
