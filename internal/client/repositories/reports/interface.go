// Package reports stores generated narrative reports. Reports are written
// once and never edited; Delete exists so the collection can be pruned.
package reports

import (
	"context"

	"github.com/dmitrijs2005/distincto/internal/client/models"
)

type Repository interface {
	Put(ctx context.Context, r *models.Report) error
	Get(ctx context.Context, id string) (*models.Report, error)
	GetAll(ctx context.Context) ([]*models.Report, error)
	// GetByChild returns reports for childName plus those covering all children.
	GetByChild(ctx context.Context, childName string) ([]*models.Report, error)
	Delete(ctx context.Context, id string) error
}
