package journal

import (
	"context"

	"github.com/dmitrijs2005/distincto/internal/client/models"
)

// Repository describes the journal-entry collection.
type Repository interface {
	// Put inserts the entry or fully replaces the stored one with the same ID.
	Put(ctx context.Context, e *models.JournalEntry) error

	// Get returns the entry, or nil without error when it does not exist.
	Get(ctx context.Context, id string) (*models.JournalEntry, error)

	// GetAll returns every entry, unordered.
	GetAll(ctx context.Context) ([]*models.JournalEntry, error)

	// GetByChild returns entries for one child; an empty name means all.
	GetByChild(ctx context.Context, childName string) ([]*models.JournalEntry, error)

	// Delete removes the entry. Unknown ids are not an error.
	Delete(ctx context.Context, id string) error

	// GetUnsynced returns entries with Synced == false.
	GetUnsynced(ctx context.Context) ([]*models.JournalEntry, error)

	// MarkSynced sets the synced flag only if the stored row still equals e.
	// It reports false when the entry was changed or deleted since e was read.
	MarkSynced(ctx context.Context, e *models.JournalEntry) (bool, error)
}
