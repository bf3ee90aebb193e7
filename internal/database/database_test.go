package database

import (
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

// setupTestDB points the package-level connection at a fresh in-memory
// SQLite database for one test
func setupTestDB(t *testing.T) {
	t.Helper()

	db, err := sqlx.Connect("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)

	DB = db
	require.NoError(t, initializeSchema())

	t.Cleanup(func() {
		db.Close()
		DB = nil
	})
}
