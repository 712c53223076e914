package syncer

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/distincto/internal/client/models"
)

// Remote acknowledges one record. A nil error lets the drain mark the
// record synced.
type Remote interface {
	Acknowledge(ctx context.Context, rec models.PendingRecord) error
}

// NoopRemote acknowledges every record without any network transfer.
type NoopRemote struct{}

func (NoopRemote) Acknowledge(context.Context, models.PendingRecord) error { return nil }

// ErrRegistrationUnsupported is returned by a Registrar that cannot schedule
// deferred wake-ups.
var ErrRegistrationUnsupported = errors.New("background sync registration unsupported")

// Registrar asks the host for a deferred wake-up under tag once
// connectivity returns.
type Registrar interface {
	Register(ctx context.Context, tag string) error
}

// StatusStore persists the SyncStatus singleton.
// metadata.SyncStatusStore implements it.
type StatusStore interface {
	Load(ctx context.Context) (models.SyncStatus, error)
	Save(ctx context.Context, st models.SyncStatus) error
}
