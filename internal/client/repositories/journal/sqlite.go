package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/distincto/internal/client/models"
	"github.com/dmitrijs2005/distincto/internal/common"
	"github.com/dmitrijs2005/distincto/internal/dbx"
)

const columns = `id, child_name, timestamp, medication_notes, education_notes,
	social_engagement_notes, sensory_profile_notes, food_nutrition_notes,
	behavioral_notes, magic_moments, synced`

// SQLiteRepository implements Repository on top of a dbx.Source.
type SQLiteRepository struct {
	src dbx.Source
}

func NewSQLiteRepository(src dbx.Source) *SQLiteRepository {
	return &SQLiteRepository{src: src}
}

func (r *SQLiteRepository) Put(ctx context.Context, e *models.JournalEntry) error {
	if e == nil || e.ID == "" {
		return fmt.Errorf("failed to upsert journal entry: %w: %w", common.ErrStorageWriteFailed, common.ErrMissingID)
	}

	db, err := r.src.DB(ctx)
	if err != nil {
		return fmt.Errorf("failed to upsert journal entry: %w", err)
	}

	query := `INSERT INTO journal_entries (` + columns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			child_name = excluded.child_name,
			timestamp = excluded.timestamp,
			medication_notes = excluded.medication_notes,
			education_notes = excluded.education_notes,
			social_engagement_notes = excluded.social_engagement_notes,
			sensory_profile_notes = excluded.sensory_profile_notes,
			food_nutrition_notes = excluded.food_nutrition_notes,
			behavioral_notes = excluded.behavioral_notes,
			magic_moments = excluded.magic_moments,
			synced = excluded.synced`

	_, err = db.ExecContext(ctx, query,
		e.ID, e.ChildName, e.Timestamp, e.MedicationNotes, e.EducationNotes,
		e.SocialEngagementNotes, e.SensoryProfileNotes, e.FoodNutritionNotes,
		e.BehavioralNotes, e.MagicMoments, e.Synced)
	if err != nil {
		return fmt.Errorf("failed to upsert journal entry: %w: %w", common.ErrStorageWriteFailed, err)
	}
	return nil
}

func (r *SQLiteRepository) Get(ctx context.Context, id string) (*models.JournalEntry, error) {
	db, err := r.src.DB(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get journal entry: %w", err)
	}

	row := db.QueryRowContext(ctx, `SELECT `+columns+` FROM journal_entries WHERE id = ?`, id)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get journal entry: %w: %w", common.ErrStorageReadFailed, err)
	}
	return e, nil
}

func (r *SQLiteRepository) GetAll(ctx context.Context) ([]*models.JournalEntry, error) {
	return r.query(ctx, `SELECT `+columns+` FROM journal_entries`)
}

func (r *SQLiteRepository) GetByChild(ctx context.Context, childName string) ([]*models.JournalEntry, error) {
	if childName == "" {
		return r.GetAll(ctx)
	}
	return r.query(ctx, `SELECT `+columns+` FROM journal_entries WHERE child_name = ?`, childName)
}

func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	db, err := r.src.DB(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete journal entry: %w", err)
	}

	if _, err := db.ExecContext(ctx, `DELETE FROM journal_entries WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete journal entry: %w: %w", common.ErrStorageWriteFailed, err)
	}
	return nil
}

func (r *SQLiteRepository) GetUnsynced(ctx context.Context) ([]*models.JournalEntry, error) {
	all, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	unsynced := make([]*models.JournalEntry, 0, len(all))
	for _, e := range all {
		if !e.Synced {
			unsynced = append(unsynced, e)
		}
	}
	return unsynced, nil
}

func (r *SQLiteRepository) MarkSynced(ctx context.Context, e *models.JournalEntry) (bool, error) {
	db, err := r.src.DB(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to mark journal entry synced: %w", err)
	}

	res, err := db.ExecContext(ctx, `UPDATE journal_entries SET synced = 1
		WHERE id = ? AND child_name = ? AND timestamp = ? AND medication_notes = ?
			AND education_notes = ? AND social_engagement_notes = ?
			AND sensory_profile_notes = ? AND food_nutrition_notes = ?
			AND behavioral_notes = ? AND magic_moments = ? AND synced = 0`,
		e.ID, e.ChildName, e.Timestamp, e.MedicationNotes, e.EducationNotes,
		e.SocialEngagementNotes, e.SensoryProfileNotes, e.FoodNutritionNotes,
		e.BehavioralNotes, e.MagicMoments)
	if err != nil {
		return false, fmt.Errorf("failed to mark journal entry synced: %w: %w", common.ErrStorageWriteFailed, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to mark journal entry synced: %w: %w", common.ErrStorageWriteFailed, err)
	}
	return n == 1, nil
}

func (r *SQLiteRepository) query(ctx context.Context, query string, args ...any) ([]*models.JournalEntry, error) {
	db, err := r.src.DB(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to select journal entries: %w", err)
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select journal entries: %w: %w", common.ErrStorageReadFailed, err)
	}
	defer rows.Close()

	result := make([]*models.JournalEntry, 0)
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan journal entry: %w: %w", common.ErrStorageReadFailed, err)
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate journal entries: %w: %w", common.ErrStorageReadFailed, err)
	}
	return result, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(s scanner) (*models.JournalEntry, error) {
	e := &models.JournalEntry{}
	err := s.Scan(&e.ID, &e.ChildName, &e.Timestamp, &e.MedicationNotes, &e.EducationNotes,
		&e.SocialEngagementNotes, &e.SensoryProfileNotes, &e.FoodNutritionNotes,
		&e.BehavioralNotes, &e.MagicMoments, &e.Synced)
	if err != nil {
		return nil, err
	}
	return e, nil
}
