package blobs

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dmitrijs2005/distincto/internal/client/models"
	"github.com/dmitrijs2005/distincto/internal/common"
	"github.com/dmitrijs2005/distincto/internal/dbx"
)

type SQLiteRepository struct {
	src dbx.Source
	now func() int64
}

func NewSQLiteRepository(src dbx.Source) *SQLiteRepository {
	return &SQLiteRepository{src: src, now: models.NowMillis}
}

func (r *SQLiteRepository) Put(ctx context.Context, path string, data []byte, mimeType string) error {
	if path == "" {
		return failure("put", path, common.ErrMissingPath)
	}

	db, err := r.src.DB(ctx)
	if err != nil {
		return failure("put", path, err)
	}

	if data == nil {
		data = []byte{}
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO images (path, data, mime_type, timestamp) VALUES (?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			data = excluded.data,
			mime_type = excluded.mime_type,
			timestamp = excluded.timestamp
	`, path, data, resolveMIME(data, mimeType), r.now())
	if err != nil {
		return failure("put", path, err)
	}
	return nil
}

func (r *SQLiteRepository) Get(ctx context.Context, path string) (*models.Blob, error) {
	db, err := r.src.DB(ctx)
	if err != nil {
		return nil, failure("get", path, err)
	}

	b := &models.Blob{Path: path}
	err = db.QueryRowContext(ctx, `SELECT data, mime_type, timestamp FROM images WHERE path = ?`, path).
		Scan(&b.Data, &b.MimeType, &b.Timestamp)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, failure("get", path, err)
	}
	return b, nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, path string) error {
	db, err := r.src.DB(ctx)
	if err != nil {
		return failure("delete", path, err)
	}

	if _, err := db.ExecContext(ctx, `DELETE FROM images WHERE path = ?`, path); err != nil {
		return failure("delete", path, err)
	}
	return nil
}
