// Package migrations embeds the goose SQL migrations of the three local
// stores. Each store has its own directory and version history; migrations
// only ever add tables or columns.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
)

//go:embed records/*.sql blobs/*.sql state/*.sql
var all embed.FS

// Records, Blobs and State are the migration roots handed to goose.
var (
	Records = mustSub("records")
	Blobs   = mustSub("blobs")
	State   = mustSub("state")
)

func mustSub(dir string) fs.FS {
	sub, err := fs.Sub(all, dir)
	if err != nil {
		panic(err)
	}
	return sub
}

// Up applies every pending migration found at the root of fsys.
// Applying the same set twice is a no-op.
func Up(ctx context.Context, db *sql.DB, fsys fs.FS) error {
	provider, err := goose.NewProvider(goose.DialectSQLite3, db, fsys)
	if err != nil {
		return fmt.Errorf("failed to create migration provider: %w", err)
	}

	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}
