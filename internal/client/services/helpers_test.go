package services

import (
	"context"
	"database/sql"
	"errors"
	"io/fs"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/distincto/internal/client/migrations"
	"github.com/dmitrijs2005/distincto/internal/client/models"
	"github.com/dmitrijs2005/distincto/internal/client/repositories/blobs"
	"github.com/dmitrijs2005/distincto/internal/client/repositories/food"
	"github.com/dmitrijs2005/distincto/internal/client/repositories/journal"
	"github.com/dmitrijs2005/distincto/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/distincto/internal/client/repositories/reports"
	"github.com/dmitrijs2005/distincto/internal/common"
	"github.com/dmitrijs2005/distincto/internal/cryptox"
	"github.com/dmitrijs2005/distincto/internal/dbx"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func openDB(t *testing.T, fsys fs.FS) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, migrations.Up(context.Background(), db, fsys))
	return db
}

type env struct {
	records *sql.DB
	journal journal.Repository
	food    food.Repository
	reports reports.Repository
	blobs   blobs.Repository
	meta    metadata.Repository
	notify  *recordingNotifier
	cipher  *cryptox.Cipher
}

func newEnv(t *testing.T) *env {
	t.Helper()
	records := dbx.Fixed(openDB(t, migrations.Records))

	key := make([]byte, 32)
	for i := range key {
		key[i] = byte(i)
	}
	c, err := cryptox.NewCipher(key)
	require.NoError(t, err)

	db, _ := records.DB(context.Background())
	return &env{
		records: db,
		journal: journal.NewSQLiteRepository(records),
		food:    food.NewSQLiteRepository(records),
		reports: reports.NewSQLiteRepository(records),
		blobs:   blobs.NewSQLiteRepository(dbx.Fixed(openDB(t, migrations.Blobs))),
		meta:    metadata.NewSQLiteRepository(dbx.Fixed(openDB(t, migrations.State))),
		notify:  &recordingNotifier{},
		cipher:  c,
	}
}

type recordingNotifier struct {
	mu    sync.Mutex
	kinds []models.ChangeKind
}

func (n *recordingNotifier) Changed(kind models.ChangeKind) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.kinds = append(n.kinds, kind)
}

func (n *recordingNotifier) Kinds() []models.ChangeKind {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]models.ChangeKind(nil), n.kinds...)
}

// flakyBlobs wraps a blob repository and fails selected operations.
type flakyBlobs struct {
	blobs.Repository
	failPut    bool
	failDelete bool
}

var errFlaky = errors.New("disk on fire")

func (f *flakyBlobs) Put(ctx context.Context, path string, data []byte, mime string) error {
	if f.failPut {
		return errors.Join(common.ErrBlobStoreFailure, errFlaky)
	}
	return f.Repository.Put(ctx, path, data, mime)
}

func (f *flakyBlobs) Delete(ctx context.Context, path string) error {
	if f.failDelete {
		return errors.Join(common.ErrBlobStoreFailure, errFlaky)
	}
	return f.Repository.Delete(ctx, path)
}

// ticker returns a clock that advances by one second per call.
func ticker(start time.Time) func() time.Time {
	var mu sync.Mutex
	cur := start
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		cur = cur.Add(time.Second)
		return cur
	}
}
