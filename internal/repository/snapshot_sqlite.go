package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/boardgames/internal/apperror"
	"github.com/rocketscienceinc/boardgames/internal/entity"
)

type sqliteSnapshot struct {
	db *sql.DB
}

// NewSQLiteSnapshotRepository - expects the snapshots table created by storage.SQLiteStorage.Init.
func NewSQLiteSnapshotRepository(db *sql.DB) SnapshotRepository {
	return &sqliteSnapshot{
		db: db,
	}
}

func (that *sqliteSnapshot) Save(ctx context.Context, snapshot *entity.Snapshot) error {
	data, err := encode(snapshot)
	if err != nil {
		return err
	}

	query := `INSERT INTO snapshots (id, variant, saved_at, body) VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET variant = excluded.variant, saved_at = excluded.saved_at, body = excluded.body`

	if _, err = that.db.ExecContext(ctx, query, snapshot.ID, string(snapshot.Variant), snapshot.SavedAt, data); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	return nil
}

func (that *sqliteSnapshot) GetByID(ctx context.Context, id string) (*entity.Snapshot, error) {
	var data []byte

	err := that.db.QueryRowContext(ctx, `SELECT body FROM snapshots WHERE id = ?`, id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.ErrSnapshotNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot by id: %w", err)
	}

	return decode(data)
}

func (that *sqliteSnapshot) DeleteByID(ctx context.Context, id string) error {
	if _, err := that.db.ExecContext(ctx, `DELETE FROM snapshots WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete snapshot by id: %w", err)
	}

	return nil
}

func (that *sqliteSnapshot) List(ctx context.Context) ([]string, error) {
	rows, err := that.db.QueryContext(ctx, `SELECT id FROM snapshots ORDER BY saved_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err = rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot id: %w", err)
		}
		ids = append(ids, id)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}

	return ids, nil
}
