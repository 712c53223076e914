package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/dmitrijs2005/distincto/internal/client/models"
	"github.com/dmitrijs2005/distincto/internal/client/repositories/blobs"
	"github.com/dmitrijs2005/distincto/internal/client/repositories/food"
	"github.com/dmitrijs2005/distincto/internal/common"
	"github.com/dmitrijs2005/distincto/internal/logging"
	"github.com/google/uuid"
)

// Image is a picture attached to a new food item.
type Image struct {
	Name     string
	Data     []byte
	MimeType string // sniffed by the blob store when empty
}

// FoodService manages food items and their images.
type FoodService struct {
	repo   food.Repository
	blobs  blobs.Repository
	notify ChangeNotifier
	log    logging.Logger
	now    func() time.Time
}

func NewFoodService(repo food.Repository, blobRepo blobs.Repository, notify ChangeNotifier, log logging.Logger) *FoodService {
	return &FoodService{
		repo:   repo,
		blobs:  blobRepo,
		notify: notifierOrNoop(notify),
		log:    log.With("component", "food"),
		now:    time.Now,
	}
}

// Add creates a food item. An empty category means new. When img is not
// nil it is stored first; if that fails nothing is saved.
func (s *FoodService) Add(ctx context.Context, item models.FoodItem, img *Image) (*models.FoodItem, error) {
	if err := common.CheckChildName(item.ChildName); err != nil {
		return nil, err
	}
	if item.Category == "" {
		item.Category = models.FoodCategoryNew
	}
	if !item.Category.Valid() {
		return nil, fmt.Errorf("%w: %q", common.ErrInvalidCategory, item.Category)
	}

	now := s.now()
	item.ID = uuid.NewString()
	item.Timestamp = now.UnixMilli()
	item.Synced = false

	if img != nil {
		path := models.ImagePath(item.ChildName, img.Name, now)
		if err := s.blobs.Put(ctx, path, img.Data, img.MimeType); err != nil {
			return nil, fmt.Errorf("failed to attach image: %w", err)
		}
		item.ImageFile = path
	}

	if err := s.repo.Put(ctx, &item); err != nil {
		if item.ImageFile != "" {
			s.dropImage(ctx, item.ImageFile)
		}
		return nil, err
	}

	s.notify.Changed(models.ChangeFood)
	return &item, nil
}

// Update replaces name, notes and image URL of an existing item. Category
// changes go through Move.
func (s *FoodService) Update(ctx context.Context, item models.FoodItem) (*models.FoodItem, error) {
	existing, err := s.repo.Get(ctx, item.ID)
	if err != nil || existing == nil {
		return nil, err
	}

	existing.Name = item.Name
	existing.Notes = item.Notes
	existing.ImageURL = item.ImageURL
	existing.Synced = false

	if err := s.repo.Put(ctx, existing); err != nil {
		return nil, err
	}
	s.notify.Changed(models.ChangeFood)
	return existing, nil
}

func (s *FoodService) Get(ctx context.Context, id string) (*models.FoodItem, error) {
	return s.repo.Get(ctx, id)
}

// List returns the items of childName (all children when empty), newest
// first.
func (s *FoodService) List(ctx context.Context, childName string) ([]*models.FoodItem, error) {
	items, err := s.repo.GetByChild(ctx, childName)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Timestamp > items[j].Timestamp
	})
	return items, nil
}

// Board groups items of childName by category.
func (s *FoodService) Board(ctx context.Context, childName string) (map[models.FoodCategory][]*models.FoodItem, error) {
	items, err := s.List(ctx, childName)
	if err != nil {
		return nil, err
	}
	board := make(map[models.FoodCategory][]*models.FoodItem, len(models.FoodCategories))
	for _, it := range items {
		board[it.Category] = append(board[it.Category], it)
	}
	return board, nil
}

// Move recategorizes an item. It returns nil when the item does not exist.
func (s *FoodService) Move(ctx context.Context, id string, category models.FoodCategory) (*models.FoodItem, error) {
	if !category.Valid() {
		return nil, fmt.Errorf("%w: %q", common.ErrInvalidCategory, category)
	}
	item, err := s.repo.Recategorize(ctx, id, category)
	if err != nil || item == nil {
		return nil, err
	}
	s.notify.Changed(models.ChangeFood)
	return item, nil
}

// Delete removes the item and its image. The image goes first; failing to
// delete it is logged and the record is removed anyway.
func (s *FoodService) Delete(ctx context.Context, id string) error {
	item, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if item == nil {
		return nil
	}

	if item.ImageFile != "" {
		s.dropImage(ctx, item.ImageFile)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.notify.Changed(models.ChangeFood)
	return nil
}

// Image returns the picture attached to item id, or nil if there is none.
func (s *FoodService) Image(ctx context.Context, id string) (*models.Blob, error) {
	item, err := s.repo.Get(ctx, id)
	if err != nil || item == nil || item.ImageFile == "" {
		return nil, err
	}
	return s.blobs.Get(ctx, item.ImageFile)
}

func (s *FoodService) dropImage(ctx context.Context, path string) {
	if err := s.blobs.Delete(ctx, path); err != nil {
		s.log.Warn(ctx, "image not deleted", "path", path, "error", err)
	}
}
