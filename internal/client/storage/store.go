package storage

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"sync"

	"github.com/dmitrijs2005/distincto/internal/client/migrations"
	"github.com/dmitrijs2005/distincto/internal/common"
	"github.com/dmitrijs2005/distincto/internal/logging"
	"golang.org/x/sync/singleflight"

	_ "modernc.org/sqlite"
)

// Store is a lazily opened SQLite database with its own migration history.
// It satisfies dbx.Source, so repositories can be built before the database
// is opened; the first repository call opens it.
type Store struct {
	name       string
	dsn        string
	migrations fs.FS
	log        logging.Logger

	group singleflight.Group

	mu sync.RWMutex
	db *sql.DB
}

// NewStore prepares a Store. Nothing touches the disk until Initialize or DB.
func NewStore(name, dsn string, migrations fs.FS, log logging.Logger) *Store {
	return &Store{
		name:       name,
		dsn:        dsn,
		migrations: migrations,
		log:        log.With("store", name),
	}
}

func (s *Store) Name() string { return s.name }

// Initialize opens the store if it is not open yet.
func (s *Store) Initialize(ctx context.Context) error {
	_, err := s.DB(ctx)
	return err
}

// DB returns the open handle, opening and migrating the database on first
// use. Concurrent first callers share one in-flight open. A failed open is
// not cached: the next call tries again.
func (s *Store) DB(ctx context.Context) (*sql.DB, error) {
	if db := s.current(); db != nil {
		return db, nil
	}

	v, err, _ := s.group.Do("open", func() (any, error) {
		if db := s.current(); db != nil {
			return db, nil
		}

		// one caller giving up must not fail the others waiting on this open
		db, err := s.open(context.WithoutCancel(ctx))
		if err != nil {
			s.log.Error(ctx, "store open failed", "error", err)
			return nil, fmt.Errorf("%w: %s: %w", common.ErrStorageInitFailed, s.name, err)
		}

		s.mu.Lock()
		s.db = db
		s.mu.Unlock()

		s.log.Info(ctx, "store opened")
		return db, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*sql.DB), nil
}

// Close releases the handle. A later DB call opens the store again.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *Store) current() *sql.DB {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.db
}

func (s *Store) open(ctx context.Context) (*sql.DB, error) {
	db, err := sql.Open("sqlite", s.dsn)
	if err != nil {
		return nil, err
	}

	// a single connection keeps pragmas and :memory: databases consistent
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA foreign_keys=ON",
	} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("%s: %w", pragma, err)
		}
	}

	if err := migrations.Up(ctx, db, s.migrations); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}
