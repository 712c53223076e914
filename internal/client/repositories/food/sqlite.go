package food

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/distincto/internal/client/models"
	"github.com/dmitrijs2005/distincto/internal/common"
	"github.com/dmitrijs2005/distincto/internal/dbx"
)

const columns = `id, child_name, name, category, image_file, image_url, notes, timestamp, synced`

type SQLiteRepository struct {
	src dbx.Source
}

func NewSQLiteRepository(src dbx.Source) *SQLiteRepository {
	return &SQLiteRepository{src: src}
}

func (r *SQLiteRepository) Put(ctx context.Context, item *models.FoodItem) error {
	if err := validate(item); err != nil {
		return fmt.Errorf("failed to upsert food item: %w: %w", common.ErrStorageWriteFailed, err)
	}

	db, err := r.src.DB(ctx)
	if err != nil {
		return fmt.Errorf("failed to upsert food item: %w", err)
	}

	if err := upsert(ctx, db, item); err != nil {
		return fmt.Errorf("failed to upsert food item: %w: %w", common.ErrStorageWriteFailed, err)
	}
	return nil
}

func (r *SQLiteRepository) Get(ctx context.Context, id string) (*models.FoodItem, error) {
	db, err := r.src.DB(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get food item: %w", err)
	}

	item, err := get(ctx, db, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get food item: %w: %w", common.ErrStorageReadFailed, err)
	}
	return item, nil
}

func (r *SQLiteRepository) GetAll(ctx context.Context) ([]*models.FoodItem, error) {
	return r.query(ctx, `SELECT `+columns+` FROM food_items`)
}

func (r *SQLiteRepository) GetByChild(ctx context.Context, childName string) ([]*models.FoodItem, error) {
	if childName == "" {
		return r.GetAll(ctx)
	}
	return r.query(ctx, `SELECT `+columns+` FROM food_items WHERE child_name = ?`, childName)
}

func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	db, err := r.src.DB(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete food item: %w", err)
	}

	if _, err := db.ExecContext(ctx, `DELETE FROM food_items WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete food item: %w: %w", common.ErrStorageWriteFailed, err)
	}
	return nil
}

func (r *SQLiteRepository) GetUnsynced(ctx context.Context) ([]*models.FoodItem, error) {
	all, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	unsynced := make([]*models.FoodItem, 0, len(all))
	for _, item := range all {
		if !item.Synced {
			unsynced = append(unsynced, item)
		}
	}
	return unsynced, nil
}

func (r *SQLiteRepository) Recategorize(ctx context.Context, id string, category models.FoodCategory) (*models.FoodItem, error) {
	if !category.Valid() {
		return nil, fmt.Errorf("failed to recategorize food item: %w: %w", common.ErrStorageWriteFailed, common.ErrInvalidCategory)
	}

	db, err := r.src.DB(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to recategorize food item: %w", err)
	}

	var updated *models.FoodItem
	err = dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		item, err := get(ctx, tx, id)
		if err != nil || item == nil {
			return err
		}
		item.Category = category
		item.Synced = false
		if err := upsert(ctx, tx, item); err != nil {
			return err
		}
		updated = item
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to recategorize food item: %w: %w", common.ErrStorageWriteFailed, err)
	}
	return updated, nil
}

func (r *SQLiteRepository) MarkSynced(ctx context.Context, item *models.FoodItem) (bool, error) {
	db, err := r.src.DB(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to mark food item synced: %w", err)
	}

	res, err := db.ExecContext(ctx, `UPDATE food_items SET synced = 1
		WHERE id = ? AND child_name = ? AND name = ? AND category = ? AND image_file = ?
			AND image_url = ? AND notes = ? AND timestamp = ? AND synced = 0`,
		item.ID, item.ChildName, item.Name, string(item.Category), item.ImageFile,
		item.ImageURL, item.Notes, item.Timestamp)
	if err != nil {
		return false, fmt.Errorf("failed to mark food item synced: %w: %w", common.ErrStorageWriteFailed, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to mark food item synced: %w: %w", common.ErrStorageWriteFailed, err)
	}
	return n == 1, nil
}

func (r *SQLiteRepository) query(ctx context.Context, query string, args ...any) ([]*models.FoodItem, error) {
	db, err := r.src.DB(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to select food items: %w", err)
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select food items: %w: %w", common.ErrStorageReadFailed, err)
	}
	defer rows.Close()

	result := make([]*models.FoodItem, 0)
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan food item: %w: %w", common.ErrStorageReadFailed, err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate food items: %w: %w", common.ErrStorageReadFailed, err)
	}
	return result, nil
}

func validate(item *models.FoodItem) error {
	if item == nil || item.ID == "" {
		return common.ErrMissingID
	}
	if !item.Category.Valid() {
		return common.ErrInvalidCategory
	}
	return nil
}

func upsert(ctx context.Context, db dbx.DBTX, item *models.FoodItem) error {
	query := `INSERT INTO food_items (` + columns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			child_name = excluded.child_name,
			name = excluded.name,
			category = excluded.category,
			image_file = excluded.image_file,
			image_url = excluded.image_url,
			notes = excluded.notes,
			timestamp = excluded.timestamp,
			synced = excluded.synced`

	_, err := db.ExecContext(ctx, query,
		item.ID, item.ChildName, item.Name, string(item.Category), item.ImageFile,
		item.ImageURL, item.Notes, item.Timestamp, item.Synced)
	return err
}

func get(ctx context.Context, db dbx.DBTX, id string) (*models.FoodItem, error) {
	row := db.QueryRowContext(ctx, `SELECT `+columns+` FROM food_items WHERE id = ?`, id)
	item, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return item, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanItem(s scanner) (*models.FoodItem, error) {
	item := &models.FoodItem{}
	var category string
	err := s.Scan(&item.ID, &item.ChildName, &item.Name, &category, &item.ImageFile,
		&item.ImageURL, &item.Notes, &item.Timestamp, &item.Synced)
	if err != nil {
		return nil, err
	}
	item.Category = models.FoodCategory(category)
	return item, nil
}
