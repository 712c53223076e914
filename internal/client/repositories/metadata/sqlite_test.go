package metadata

import (
	"context"
	"database/sql"
	"testing"

	"github.com/dmitrijs2005/distincto/internal/client/migrations"
	"github.com/dmitrijs2005/distincto/internal/client/models"
	"github.com/dmitrijs2005/distincto/internal/common"
	"github.com/dmitrijs2005/distincto/internal/dbx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, migrations.Up(context.Background(), db, migrations.State))
	return db
}

func TestSetAndGet(t *testing.T) {
	r := NewSQLiteRepository(dbx.Fixed(setupDB(t)))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "k1", []byte{0x01, 0x02}))

	v, err := r.Get(ctx, "k1")
	require.NoError(t, err)
	require.Equal(t, []byte{0x01, 0x02}, v)
}

func TestGet_Missing_ReturnsNilNil(t *testing.T) {
	r := NewSQLiteRepository(dbx.Fixed(setupDB(t)))

	v, err := r.Get(context.Background(), "absent")
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestSet_Overwrites(t *testing.T) {
	r := NewSQLiteRepository(dbx.Fixed(setupDB(t)))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "k", []byte("old")))
	require.NoError(t, r.Set(ctx, "k", []byte("new")))

	v, err := r.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, []byte("new"), v)

	m, err := r.List(ctx)
	require.NoError(t, err)
	assert.Len(t, m, 1)
}

func TestDelete_Idempotent(t *testing.T) {
	r := NewSQLiteRepository(dbx.Fixed(setupDB(t)))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "x", []byte{0x01}))
	require.NoError(t, r.Delete(ctx, "x"))
	require.NoError(t, r.Delete(ctx, "x"))

	v, err := r.Get(ctx, "x")
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestErrorsWrapped_AfterClose(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(dbx.Fixed(db))
	ctx := context.Background()
	require.NoError(t, db.Close())

	_, err := r.Get(ctx, "k")
	require.ErrorIs(t, err, common.ErrStorageReadFailed)
	require.Contains(t, err.Error(), "failed to get metadata[k]")

	err = r.Set(ctx, "k", []byte("v"))
	require.ErrorIs(t, err, common.ErrStorageWriteFailed)
	require.Contains(t, err.Error(), "failed to set metadata[k]")

	require.ErrorIs(t, r.Delete(ctx, "k"), common.ErrStorageWriteFailed)

	_, err = r.List(ctx)
	require.ErrorIs(t, err, common.ErrStorageReadFailed)
}

func TestSyncStatusStore_LoadDefaultsThenRoundTrip(t *testing.T) {
	s := NewSyncStatusStore(NewSQLiteRepository(dbx.Fixed(setupDB(t))))
	ctx := context.Background()

	st, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.SyncStatus{}, st)

	want := models.SyncStatus{LastSync: 1700000000000, PendingSync: 3, IsOnline: true}
	require.NoError(t, s.Save(ctx, want))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSyncStatusStore_ReadsStoredJSONShape(t *testing.T) {
	repo := NewSQLiteRepository(dbx.Fixed(setupDB(t)))
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, KeySyncStatus, []byte(`{"lastSync":5,"pendingSync":1,"isOnline":false}`)))

	got, err := NewSyncStatusStore(repo).Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.SyncStatus{LastSync: 5, PendingSync: 1}, got)
}

func TestSyncStatusStore_CorruptValue(t *testing.T) {
	repo := NewSQLiteRepository(dbx.Fixed(setupDB(t)))
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, KeySyncStatus, []byte(`{not json`)))

	_, err := NewSyncStatusStore(repo).Load(ctx)
	require.ErrorContains(t, err, "failed to decode sync status")
}
