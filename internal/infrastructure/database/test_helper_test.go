package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/martijn/roster/internal/core/domain"
	"github.com/martijn/roster/internal/core/repository"
)

// testEnv holds all test dependencies
type testEnv struct {
	db        *DB
	clients   repository.ClientRepository
	employees repository.EmployeeRepository
}

// setupTestEnv creates a test environment with in-memory SQLite database
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := New(DriverSQLite, ":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return &testEnv{
		db:        db,
		clients:   NewClientRepository(db),
		employees: NewEmployeeRepository(db),
	}
}

func (env *testEnv) seedClient(t *testing.T, organization, project string) *domain.Client {
	t.Helper()

	client := domain.NewClient(organization, project)
	require.NoError(t, env.clients.Insert(context.Background(), client))
	return client
}

func (env *testEnv) countRows(t *testing.T, table string) int {
	t.Helper()

	var n int
	require.NoError(t, env.db.Get(&n, "SELECT COUNT(*) FROM "+table))
	return n
}

// ptr is a helper to create a pointer to a value
func ptr[T any](v T) *T {
	return &v
}
