package metadata

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/distincto/internal/client/models"
)

// SyncStatusStore persists the SyncStatus singleton as JSON under
// KeySyncStatus.
type SyncStatusStore struct {
	repo Repository
}

func NewSyncStatusStore(repo Repository) *SyncStatusStore {
	return &SyncStatusStore{repo: repo}
}

// Load returns the saved status, or the zero status if none was saved.
func (s *SyncStatusStore) Load(ctx context.Context) (models.SyncStatus, error) {
	var st models.SyncStatus

	raw, err := s.repo.Get(ctx, KeySyncStatus)
	if err != nil || raw == nil {
		return st, err
	}
	if err := json.Unmarshal(raw, &st); err != nil {
		return models.SyncStatus{}, fmt.Errorf("failed to decode sync status: %w", err)
	}
	return st, nil
}

func (s *SyncStatusStore) Save(ctx context.Context, st models.SyncStatus) error {
	raw, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("failed to encode sync status: %w", err)
	}
	return s.repo.Set(ctx, KeySyncStatus, raw)
}
