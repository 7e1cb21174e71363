package postgresql_test

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/cmlabs-hris/hrm-backend-go/internal/pkg/database"
	"github.com/stretchr/testify/require"
)

var (
	testDB      *database.DB
	testDBErr   error
	testDBSetup sync.Once
)

var truncatedTables = []string{
	"operation_logs",
	"salaries",
	"leave_applications",
	"attendances",
	"employees",
	"departments",
	"refresh_tokens",
	"users",
}

// newTestDB connects to TEST_DATABASE_URL, applies migrations once and empties
// every table. The test is skipped when the variable is unset.
func newTestDB(t *testing.T) *database.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping repository integration test")
	}

	testDBSetup.Do(func() {
		testDB, testDBErr = database.NewPostgreSQLDB(context.Background(), dsn, database.PoolOptions{MaxConns: 5})
		if testDBErr != nil {
			return
		}
		testDBErr = database.RunMigrations(testDB)
	})
	require.NoError(t, testDBErr)

	ctx := context.Background()
	_, err := testDB.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", strings.Join(truncatedTables, ", ")))
	require.NoError(t, err)

	return testDB
}
