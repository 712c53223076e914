package migrations

import (
	"context"
	"database/sql"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func TestRoots_ContainOnlyTheirOwnMigrations(t *testing.T) {
	tests := []struct {
		name string
		fsys fs.FS
		want []string
	}{
		{"records", Records, []string{"00001_init.sql", "00002_food_image_url.sql"}},
		{"blobs", Blobs, []string{"00001_init.sql"}},
		{"state", State, []string{"00001_init.sql"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := fs.Glob(tt.fsys, "*.sql")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func openMemory(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()
	var n int
	err := db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?`, name).Scan(&n)
	require.NoError(t, err)
	return n > 0
}

func TestUp_CreatesTablesPerStore(t *testing.T) {
	tests := []struct {
		name   string
		fsys   fs.FS
		tables []string
		absent []string
	}{
		{"records", Records, []string{"journal_entries", "food_items", "reports"}, []string{"images", "kv"}},
		{"blobs", Blobs, []string{"images"}, []string{"journal_entries", "kv"}},
		{"state", State, []string{"kv"}, []string{"images", "reports"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := openMemory(t)
			require.NoError(t, Up(context.Background(), db, tt.fsys))

			assert.True(t, tableExists(t, db, "goose_db_version"))
			for _, name := range tt.tables {
				assert.True(t, tableExists(t, db, name), name)
			}
			for _, name := range tt.absent {
				assert.False(t, tableExists(t, db, name), name)
			}
		})
	}
}

func TestUp_IsIdempotent(t *testing.T) {
	db := openMemory(t)
	ctx := context.Background()

	require.NoError(t, Up(ctx, db, Records))
	_, err := db.Exec(`INSERT INTO journal_entries (id, child_name, timestamp) VALUES ('j1', 'Emma', 1)`)
	require.NoError(t, err)

	require.NoError(t, Up(ctx, db, Records))

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM journal_entries`).Scan(&n))
	assert.Equal(t, 1, n, "re-running migrations must keep existing rows")
}

func TestUp_AddsImageURLColumn(t *testing.T) {
	db := openMemory(t)
	require.NoError(t, Up(context.Background(), db, Records))

	_, err := db.Exec(`INSERT INTO food_items (id, child_name, name, category, timestamp, image_url)
		VALUES ('f1', 'Emma', 'Apple', 'new', 1, 'https://img/apple.png')`)
	require.NoError(t, err)
}
