package db

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"

	dbgen "github.com/codr1/Fixturely/internal/db/generated"
)

func TestSQLiteDSN(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "data/app.db", want: "data/app.db?_fk=1&_busy_timeout=5000&_txlock=immediate"},
		{in: "data/app.db?cache=shared", want: "data/app.db?cache=shared&_fk=1&_busy_timeout=5000&_txlock=immediate"},
		{in: "data/app.db?_fk=0", want: "data/app.db?_fk=0&_busy_timeout=5000&_txlock=immediate"},
		{in: "data/app.db?_txlock=deferred&_busy_timeout=100", want: "data/app.db?_txlock=deferred&_busy_timeout=100&_fk=1"},
	}
	for _, tt := range tests {
		if got := sqliteDSN(tt.in); got != tt.want {
			t.Fatalf("sqliteDSN(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNewCreatesDatabaseDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "app.db")
	database, err := New(path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer database.Close()

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected database file at %s: %v", path, err)
	}
}

func TestRunInTxRollsBackOnError(t *testing.T) {
	database, err := New(filepath.Join(t.TempDir(), "tx.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer database.Close()

	ctx := context.Background()
	boom := errors.New("boom")
	err = database.RunInTx(ctx, func(tx *DB) error {
		if _, err := tx.Queries.CreateLeague(ctx, dbgen.CreateLeagueParams{
			Name:   "Rolled Back League",
			Season: sql.NullString{String: "2025", Valid: true},
		}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected original error, got %v", err)
	}

	count, err := database.Queries.CountActiveLeagues(ctx)
	if err != nil {
		t.Fatalf("count leagues: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected rollback to leave no leagues, got %d", count)
	}
}

func TestForeignKeysEnforced(t *testing.T) {
	database, err := New(filepath.Join(t.TempDir(), "fk.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer database.Close()

	var enabled int
	if err := database.QueryRow("PRAGMA foreign_keys").Scan(&enabled); err != nil {
		t.Fatalf("read pragma: %v", err)
	}
	if enabled != 1 {
		t.Fatalf("expected foreign keys enabled, got %d", enabled)
	}
}
