package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"
)

const createPreferencesTableSQL = `
	CREATE TABLE IF NOT EXISTS preferences (
		key TEXT PRIMARY KEY,
		value TEXT
	)`

// CreateInMemoryDB creates an in-memory SQLite database with the preferences table
func CreateInMemoryDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to create in-memory database: %v", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(createPreferencesTableSQL); err != nil {
		db.Close()
		t.Fatalf("Failed to create preferences table: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	return db
}
