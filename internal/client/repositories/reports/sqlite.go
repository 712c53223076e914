package reports

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/distincto/internal/client/models"
	"github.com/dmitrijs2005/distincto/internal/common"
	"github.com/dmitrijs2005/distincto/internal/dbx"
)

const columns = `id, type, content, timestamp, child_name, generated_from`

type SQLiteRepository struct {
	src dbx.Source
}

func NewSQLiteRepository(src dbx.Source) *SQLiteRepository {
	return &SQLiteRepository{src: src}
}

func (r *SQLiteRepository) Put(ctx context.Context, rep *models.Report) error {
	if rep == nil || rep.ID == "" {
		return fmt.Errorf("failed to save report: %w: %w", common.ErrStorageWriteFailed, common.ErrMissingID)
	}
	if !rep.Type.Valid() {
		return fmt.Errorf("failed to save report: %w: %w", common.ErrStorageWriteFailed, common.ErrInvalidReportType)
	}

	from := rep.GeneratedFrom
	if from == nil {
		from = []string{}
	}
	generatedFrom, err := json.Marshal(from)
	if err != nil {
		return fmt.Errorf("failed to save report: %w: %w", common.ErrStorageWriteFailed, err)
	}

	db, err := r.src.DB(ctx)
	if err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}

	_, err = db.ExecContext(ctx, `INSERT INTO reports (`+columns+`) VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			type = excluded.type,
			content = excluded.content,
			timestamp = excluded.timestamp,
			child_name = excluded.child_name,
			generated_from = excluded.generated_from`,
		rep.ID, string(rep.Type), rep.Content, rep.Timestamp, rep.ChildName, string(generatedFrom))
	if err != nil {
		return fmt.Errorf("failed to save report: %w: %w", common.ErrStorageWriteFailed, err)
	}
	return nil
}

func (r *SQLiteRepository) Get(ctx context.Context, id string) (*models.Report, error) {
	db, err := r.src.DB(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get report: %w", err)
	}

	rep, err := scanReport(db.QueryRowContext(ctx, `SELECT `+columns+` FROM reports WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get report: %w: %w", common.ErrStorageReadFailed, err)
	}
	return rep, nil
}

func (r *SQLiteRepository) GetAll(ctx context.Context) ([]*models.Report, error) {
	return r.query(ctx, `SELECT `+columns+` FROM reports`)
}

func (r *SQLiteRepository) GetByChild(ctx context.Context, childName string) ([]*models.Report, error) {
	if childName == "" || childName == common.AllChildren {
		return r.GetAll(ctx)
	}
	return r.query(ctx, `SELECT `+columns+` FROM reports WHERE child_name IN (?, ?)`, childName, common.AllChildren)
}

func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	db, err := r.src.DB(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete report: %w", err)
	}
	if _, err := db.ExecContext(ctx, `DELETE FROM reports WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete report: %w: %w", common.ErrStorageWriteFailed, err)
	}
	return nil
}

func (r *SQLiteRepository) query(ctx context.Context, query string, args ...any) ([]*models.Report, error) {
	db, err := r.src.DB(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to select reports: %w", err)
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select reports: %w: %w", common.ErrStorageReadFailed, err)
	}
	defer rows.Close()

	result := make([]*models.Report, 0)
	for rows.Next() {
		rep, err := scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan report: %w: %w", common.ErrStorageReadFailed, err)
		}
		result = append(result, rep)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate reports: %w: %w", common.ErrStorageReadFailed, err)
	}
	return result, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanReport(s scanner) (*models.Report, error) {
	rep := &models.Report{}
	var typ, generatedFrom string
	if err := s.Scan(&rep.ID, &typ, &rep.Content, &rep.Timestamp, &rep.ChildName, &generatedFrom); err != nil {
		return nil, err
	}
	rep.Type = models.ReportType(typ)
	if err := json.Unmarshal([]byte(generatedFrom), &rep.GeneratedFrom); err != nil {
		return nil, fmt.Errorf("decode generated_from: %w", err)
	}
	return rep, nil
}
