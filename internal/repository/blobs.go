package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// BlobRepository is the persistence backend the event store writes
// through: opaque blobs addressed by a fixed key.
type BlobRepository interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
}

type SQLiteBlobRepository struct {
	database *sql.DB
}

func NewBlobRepository(database *sql.DB) *SQLiteBlobRepository {
	return &SQLiteBlobRepository{database: database}
}

func (repository *SQLiteBlobRepository) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := repository.database.QueryRowContext(ctx,
		"SELECT value FROM blobs WHERE key = ?", key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading blob %q: %w", key, err)
	}
	return value, true, nil
}

func (repository *SQLiteBlobRepository) Set(ctx context.Context, key string, value []byte) error {
	_, err := repository.database.ExecContext(ctx,
		`INSERT INTO blobs (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("writing blob %q: %w", key, err)
	}
	return nil
}
