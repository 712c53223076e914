package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/distincto/internal/client/config"
	"github.com/dmitrijs2005/distincto/internal/client/models"
	"github.com/dmitrijs2005/distincto/internal/client/repositories/blobs"
	"github.com/dmitrijs2005/distincto/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.DataDir = t.TempDir()
	return cfg
}

func TestRepositories_InitializeCreatesThreeFiles(t *testing.T) {
	cfg := testConfig(t)
	ctx := context.Background()

	repos, err := NewRepositories(ctx, cfg, logging.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { _ = repos.Close() })

	require.NoError(t, repos.Initialize(ctx))

	for _, name := range []string{RecordsFile, BlobsFile, StateFile} {
		_, err := os.Stat(filepath.Join(cfg.DataDir, name))
		assert.NoError(t, err, name)
	}
}

func TestRepositories_UseBeforeInitializeOpensLazily(t *testing.T) {
	cfg := testConfig(t)
	ctx := context.Background()

	repos, err := NewRepositories(ctx, cfg, logging.Discard())
	require.NoError(t, err)

	entry := &models.JournalEntry{ID: "j1", ChildName: "Emma", Timestamp: 1}
	require.NoError(t, repos.Journal.Put(ctx, entry))
	require.NoError(t, repos.Blobs.Put(ctx, "Emma/1-a.txt", []byte("hi"), "text/plain"))
	require.NoError(t, repos.SyncStatus.Save(ctx, models.SyncStatus{LastSync: 9}))
	require.NoError(t, repos.Close())

	reopened, err := NewRepositories(ctx, cfg, logging.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { _ = reopened.Close() })

	got, err := reopened.Journal.Get(ctx, "j1")
	require.NoError(t, err)
	assert.Equal(t, entry, got)

	b, err := reopened.Blobs.Get(ctx, "Emma/1-a.txt")
	require.NoError(t, err)
	assert.Equal(t, []byte("hi"), b.Data)

	st, err := reopened.SyncStatus.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(9), st.LastSync)
}

func TestRepositories_S3Backend(t *testing.T) {
	cfg := testConfig(t)
	cfg.BlobBackend = config.BlobBackendS3
	cfg.S3AccessKey = "minio"

	var got blobs.S3Options
	orig := newS3Client
	newS3Client = func(ctx context.Context, o blobs.S3Options) (*s3.Client, error) {
		got = o
		return s3.New(s3.Options{Region: o.Region}), nil
	}
	t.Cleanup(func() { newS3Client = orig })

	repos, err := NewRepositories(context.Background(), cfg, logging.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { _ = repos.Close() })

	assert.IsType(t, &blobs.S3Repository{}, repos.Blobs)
	assert.Equal(t, "minio", got.AccessKey)
	assert.Len(t, repos.stores, 2, "no local blob database with the s3 backend")
}

func TestRepositories_S3BackendConfigError(t *testing.T) {
	cfg := testConfig(t)
	cfg.BlobBackend = config.BlobBackendS3

	orig := newS3Client
	newS3Client = func(ctx context.Context, o blobs.S3Options) (*s3.Client, error) {
		return nil, errors.New("no region")
	}
	t.Cleanup(func() { newS3Client = orig })

	_, err := NewRepositories(context.Background(), cfg, logging.Discard())
	require.ErrorContains(t, err, "failed to configure s3 blob backend")
}

func TestRepositories_UnknownBackend(t *testing.T) {
	cfg := testConfig(t)
	cfg.BlobBackend = "floppy"

	_, err := NewRepositories(context.Background(), cfg, logging.Discard())
	require.ErrorContains(t, err, `unknown blob backend "floppy"`)
}
