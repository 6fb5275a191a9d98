package testutil

import (
	"database/sql"
	"testing"

	"github.com/calebmorris/pacer/internal/db"
)

// NewTestDB opens a fresh in-memory SQLite database with the pacer schema
// applied. It is closed automatically when the test finishes, so each test
// gets isolated tasks, logs, plans and settings.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}

// NewTestUoW wraps a test database in the real transactional UnitOfWork,
// for exercising the log and plan services end to end.
func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}
