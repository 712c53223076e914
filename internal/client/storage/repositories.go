package storage

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/dmitrijs2005/distincto/internal/client/config"
	"github.com/dmitrijs2005/distincto/internal/client/migrations"
	"github.com/dmitrijs2005/distincto/internal/client/repositories/blobs"
	"github.com/dmitrijs2005/distincto/internal/client/repositories/food"
	"github.com/dmitrijs2005/distincto/internal/client/repositories/journal"
	"github.com/dmitrijs2005/distincto/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/distincto/internal/client/repositories/reports"
	"github.com/dmitrijs2005/distincto/internal/logging"
	"golang.org/x/sync/errgroup"
)

// File names inside the data directory.
const (
	RecordsFile = "records.db"
	BlobsFile   = "blobs.db"
	StateFile   = "state.db"
)

// Repositories is the process-wide set of store handles and the repositories
// built on them. Build it once and pass it by reference.
type Repositories struct {
	stores []*Store

	Journal    journal.Repository
	Food       food.Repository
	Reports    reports.Repository
	Blobs      blobs.Repository
	Metadata   metadata.Repository
	SyncStatus *metadata.SyncStatusStore
}

var newS3Client = blobs.NewS3Client

// NewRepositories wires the record, blob and state stores under
// cfg.DataDir. No database is opened here.
func NewRepositories(ctx context.Context, cfg *config.Config, log logging.Logger) (*Repositories, error) {
	records := NewStore("records", filepath.Join(cfg.DataDir, RecordsFile), migrations.Records, log)
	state := NewStore("state", filepath.Join(cfg.DataDir, StateFile), migrations.State, log)

	r := &Repositories{
		stores:  []*Store{records, state},
		Journal: journal.NewSQLiteRepository(records),
		Food:    food.NewSQLiteRepository(records),
		Reports: reports.NewSQLiteRepository(records),
	}
	r.Metadata = metadata.NewSQLiteRepository(state)
	r.SyncStatus = metadata.NewSyncStatusStore(r.Metadata)

	switch cfg.BlobBackend {
	case config.BlobBackendSQLite, "":
		blobStore := NewStore("blobs", filepath.Join(cfg.DataDir, BlobsFile), migrations.Blobs, log)
		r.stores = append(r.stores, blobStore)
		r.Blobs = blobs.NewSQLiteRepository(blobStore)
	case config.BlobBackendS3:
		client, err := newS3Client(ctx, blobs.S3Options{
			Region:       cfg.S3Region,
			BaseEndpoint: cfg.S3BaseEndpoint,
			AccessKey:    cfg.S3AccessKey,
			SecretKey:    cfg.S3SecretKey,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to configure s3 blob backend: %w", err)
		}
		r.Blobs = blobs.NewS3Repository(client, cfg.S3Bucket, cfg.S3Prefix)
	default:
		return nil, fmt.Errorf("unknown blob backend %q", cfg.BlobBackend)
	}

	return r, nil
}

// Initialize opens every local store concurrently. Stores that fail stay
// closed and are retried on their next use.
func (r *Repositories) Initialize(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, s := range r.stores {
		g.Go(func() error { return s.Initialize(ctx) })
	}
	return g.Wait()
}

func (r *Repositories) Close() error {
	var errs []error
	for _, s := range r.stores {
		if err := s.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s: %w", s.Name(), err))
		}
	}
	return errors.Join(errs...)
}
