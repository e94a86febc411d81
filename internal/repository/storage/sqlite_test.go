package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSQLiteStorage(t *testing.T) {
	ctx := context.Background()

	t.Run("Creates the snapshots table", func(t *testing.T) {
		// Given: a fresh database file
		path := filepath.Join(t.TempDir(), "boardgames.db")

		// When
		storage, err := NewSQLiteStorage(ctx, path)

		// Then: the table is there and the storage closes cleanly
		require.NoError(t, err)

		var count int
		err = storage.Connection.QueryRowContext(ctx, "SELECT COUNT(*) FROM snapshots").Scan(&count)
		require.NoError(t, err)
		assert.Zero(t, count)

		require.NoError(t, storage.Close())
	})

	t.Run("Unreachable path returns error", func(t *testing.T) {
		// Given: a file inside a directory that does not exist
		path := filepath.Join(t.TempDir(), "missing", "boardgames.db")

		// When
		storage, err := NewSQLiteStorage(ctx, path)

		// Then: no storage is handed out
		require.Error(t, err)
		assert.Nil(t, storage)
	})
}
