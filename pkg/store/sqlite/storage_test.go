package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDB_CreatesSchema(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := NewDB(Settings{DbPath: dbPath})
	require.NoError(t, err)
	require.NotNil(t, db)

	defer func() {
		if err := db.Close(); err != nil {
			t.Errorf("failed to close database connection: %v", err)
		}
	}()

	_, err = db.Exec(
		`INSERT INTO line_items (statement, period, position, account_id, account_name, value) VALUES (?, ?, ?, ?, ?, ?)`,
		"PL", "2024-Q1", 0, "REV", "Revenue", 1000000.0,
	)
	require.NoError(t, err)

	var count int
	err = db.Get(&count, "SELECT COUNT(*) FROM line_items WHERE statement = ?", "PL")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestNewDB_ReopenIsIdempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	first, err := NewDB(Settings{DbPath: dbPath})
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := NewDB(Settings{DbPath: dbPath})
	require.NoError(t, err)
	defer second.Close()
}

func TestTransactionContext(t *testing.T) {
	ctx := context.Background()
	assert.Nil(t, GetTransaction(ctx))

	db, err := NewDB(Settings{DbPath: ":memory:"})
	require.NoError(t, err)
	defer db.Close()

	tx, err := db.Beginx()
	require.NoError(t, err)
	defer tx.Rollback()

	assert.Same(t, tx, GetTransaction(WithTransaction(ctx, tx)))
}
