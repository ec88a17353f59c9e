package testutil

import (
	"database/sql"
	"io"
	"log/slog"
	"testing"

	"github.com/alexanderramin/punchclock/internal/db"
	"github.com/alexanderramin/punchclock/internal/store"
)

// NewTestDB creates an in-memory SQLite database with all migrations applied.
// The database is closed when the test completes.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(db.MemoryPath)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		database.Close()
	})
	return database
}

// DiscardLogger returns a logger that drops everything.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// NewTestStore creates a Store over a fresh in-memory database. Options left
// empty get a discarding logger.
func NewTestStore(t *testing.T, opts store.Options) *store.Store {
	t.Helper()
	if opts.Logger == nil {
		opts.Logger = DiscardLogger()
	}
	return store.New(store.NewSQLiteBackend(NewTestDB(t), 0), opts)
}
