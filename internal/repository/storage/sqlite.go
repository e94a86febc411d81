package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	// import the pure Go SQLite driver to register it with the database/sql package.
	_ "modernc.org/sqlite"
)

type SQLiteStorage struct {
	Connection *sql.DB
}

func NewSQLiteStorage(ctx context.Context, path string) (*SQLiteStorage, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("can't open database: %w", err)
	}

	// SQLite allows a single writer.
	conn.SetMaxOpenConns(1)

	if err = conn.PingContext(ctx); err != nil {
		return nil, errors.Join(fmt.Errorf("can't connect to database: %w", err), conn.Close())
	}

	storage := &SQLiteStorage{Connection: conn}
	if err = storage.Init(ctx); err != nil {
		return nil, errors.Join(err, conn.Close())
	}

	return storage, nil
}

func (that *SQLiteStorage) Init(ctx context.Context) error {
	query := `CREATE TABLE IF NOT EXISTS snapshots (
		id       TEXT PRIMARY KEY,
		variant  TEXT NOT NULL,
		saved_at TIMESTAMP NOT NULL,
		body     BLOB NOT NULL
	)`

	_, err := that.Connection.ExecContext(ctx, query)
	if err != nil {
		return fmt.Errorf("can't create table: %w", err)
	}

	return nil
}

func (that *SQLiteStorage) Close() error {
	if err := that.Connection.Close(); err != nil {
		return fmt.Errorf("can't close database: %w", err)
	}

	return nil
}
