// Package testutil opens migrated scratch databases for tests.
package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/codr1/Fixturely/internal/db"
)

// NewTestDB returns a migrated SQLite database that is closed on cleanup.
func NewTestDB(t *testing.T) *db.DB {
	t.Helper()

	database, err := db.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("create test db: %v", err)
	}
	t.Cleanup(func() {
		_ = database.Close()
	})

	return database
}

// MustExec runs each seed statement in order and fails the test on the first error.
func MustExec(t *testing.T, database *db.DB, statements ...string) {
	t.Helper()

	for _, stmt := range statements {
		if _, err := database.ExecContext(context.Background(), stmt); err != nil {
			t.Fatalf("exec %q: %v", stmt, err)
		}
	}
}
