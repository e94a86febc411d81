package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/boardgames/internal/apperror"
	"github.com/rocketscienceinc/boardgames/testing/suite"
)

func TestSQLiteSnapshotRepository(t *testing.T) {
	t.Run("Save_and_GetByID", func(t *testing.T) {
		ctx, db := suite.NewSQLite(t)

		snapshotRepo := NewSQLiteSnapshotRepository(db.Connection)

		// Given: a saved snapshot
		snapshot := newSnapshot("savegame")
		require.NoError(t, snapshotRepo.Save(ctx, snapshot))

		// When: GetByID is called with its ID
		stored, err := snapshotRepo.GetByID(ctx, snapshot.ID)

		// Then: the stored snapshot matches
		require.NoError(t, err)
		assert.Equal(t, snapshot, stored)
	})

	t.Run("Save_overwrites", func(t *testing.T) {
		ctx, db := suite.NewSQLite(t)

		snapshotRepo := NewSQLiteSnapshotRepository(db.Connection)

		snapshot := newSnapshot("savegame")
		require.NoError(t, snapshotRepo.Save(ctx, snapshot))
		snapshot.History = nil
		snapshot.SavedAt = snapshot.SavedAt.Add(time.Minute)
		require.NoError(t, snapshotRepo.Save(ctx, snapshot))

		stored, err := snapshotRepo.GetByID(ctx, snapshot.ID)

		require.NoError(t, err)
		assert.Empty(t, stored.History)

		ids, err := snapshotRepo.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"savegame"}, ids)
	})

	t.Run("GetByID_NotFound", func(t *testing.T) {
		ctx, db := suite.NewSQLite(t)

		snapshotRepo := NewSQLiteSnapshotRepository(db.Connection)

		_, err := snapshotRepo.GetByID(ctx, "missing")

		require.ErrorIs(t, err, apperror.ErrSnapshotNotFound)
	})

	t.Run("GetByID_ChecksumMismatch", func(t *testing.T) {
		ctx, db := suite.NewSQLite(t)

		snapshotRepo := NewSQLiteSnapshotRepository(db.Connection)

		// Given: a stored row whose body was edited by hand
		require.NoError(t, snapshotRepo.Save(ctx, newSnapshot("savegame")))
		_, err := db.Connection.ExecContext(ctx,
			`UPDATE snapshots SET body = replace(body, '"turn":1', '"turn":0') WHERE id = ?`, "savegame")
		require.NoError(t, err)

		// When: it is loaded
		_, err = snapshotRepo.GetByID(ctx, "savegame")

		// Then: ErrCorruptSnapshot is returned
		require.ErrorIs(t, err, apperror.ErrCorruptSnapshot)
	})

	t.Run("List_newest_first", func(t *testing.T) {
		ctx, db := suite.NewSQLite(t)

		snapshotRepo := NewSQLiteSnapshotRepository(db.Connection)

		older := newSnapshot("older")
		newer := newSnapshot("newer")
		newer.SavedAt = older.SavedAt.Add(time.Hour)
		require.NoError(t, snapshotRepo.Save(ctx, older))
		require.NoError(t, snapshotRepo.Save(ctx, newer))
		require.NoError(t, snapshotRepo.DeleteByID(ctx, "missing"))

		ids, err := snapshotRepo.List(ctx)

		require.NoError(t, err)
		assert.Equal(t, []string{"newer", "older"}, ids)
	})
}
