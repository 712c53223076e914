package metadata

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/distincto/internal/common"
	"github.com/dmitrijs2005/distincto/internal/dbx"
)

type SQLiteRepository struct {
	src dbx.Source
}

func NewSQLiteRepository(src dbx.Source) *SQLiteRepository {
	return &SQLiteRepository{src: src}
}

func (r *SQLiteRepository) Get(ctx context.Context, key string) ([]byte, error) {
	db, err := r.src.DB(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get metadata[%s]: %w", key, err)
	}

	var value []byte
	err = db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get metadata[%s]: %w: %w", key, common.ErrStorageReadFailed, err)
	}
	return value, nil
}

func (r *SQLiteRepository) Set(ctx context.Context, key string, value []byte) error {
	db, err := r.src.DB(ctx)
	if err != nil {
		return fmt.Errorf("failed to set metadata[%s]: %w", key, err)
	}

	if value == nil {
		value = []byte{}
	}
	_, err = db.ExecContext(ctx, `
		INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set metadata[%s]: %w: %w", key, common.ErrStorageWriteFailed, err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, key string) error {
	db, err := r.src.DB(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete metadata[%s]: %w", key, err)
	}

	if _, err := db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete metadata[%s]: %w: %w", key, common.ErrStorageWriteFailed, err)
	}
	return nil
}

func (r *SQLiteRepository) List(ctx context.Context) (map[string][]byte, error) {
	db, err := r.src.DB(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list metadata: %w", err)
	}

	rows, err := db.QueryContext(ctx, `SELECT key, value FROM kv`)
	if err != nil {
		return nil, fmt.Errorf("failed to list metadata: %w: %w", common.ErrStorageReadFailed, err)
	}
	defer rows.Close()

	result := make(map[string][]byte)
	for rows.Next() {
		var key string
		var value []byte
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan metadata row: %w: %w", common.ErrStorageReadFailed, err)
		}
		result[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate metadata rows: %w: %w", common.ErrStorageReadFailed, err)
	}
	return result, nil
}
