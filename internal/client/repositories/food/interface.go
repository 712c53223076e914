package food

import (
	"context"

	"github.com/dmitrijs2005/distincto/internal/client/models"
)

type Repository interface {
	Put(ctx context.Context, item *models.FoodItem) error
	Get(ctx context.Context, id string) (*models.FoodItem, error)
	GetAll(ctx context.Context) ([]*models.FoodItem, error)
	// GetByChild returns items for one child; an empty name means all.
	GetByChild(ctx context.Context, childName string) ([]*models.FoodItem, error)
	Delete(ctx context.Context, id string) error
	GetUnsynced(ctx context.Context) ([]*models.FoodItem, error)
	// Recategorize returns the updated item, or nil if id is unknown.
	Recategorize(ctx context.Context, id string, category models.FoodCategory) (*models.FoodItem, error)
	// MarkSynced sets the synced flag only if the stored row still equals
	// item, and reports whether it did.
	MarkSynced(ctx context.Context, item *models.FoodItem) (bool, error)
}
