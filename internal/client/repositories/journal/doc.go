// Package journal persists caregiver journal entries in the local record store.
//
// # Overview
//
// The package defines a Repository interface for the journal-entry collection
// and a SQLite implementation (SQLiteRepository) that obtains its handle from a
// dbx.Source, so the record store is opened on first use rather than at
// construction.
//
// # Semantics
//
//   - Put is a full replace keyed by id (last write wins, no merge).
//   - Get returns (nil, nil) when the id is unknown.
//   - GetAll and GetByChild return records in no particular order.
//   - Delete of an unknown id succeeds.
//   - GetUnsynced filters GetAll in memory.
//
// MedicationNotes is stored exactly as given; encryption happens above this
// layer.
//
// # Errors
//
// Failures wrap common.ErrStorageWriteFailed or common.ErrStorageReadFailed
// (or common.ErrStorageInitFailed when the store could not be opened).
//
// Typical Usage
//
//	repo := journal.NewSQLiteRepository(store)
//	_ = repo.Put(ctx, entry)
//	e, _ := repo.Get(ctx, id)
//	pending, _ := repo.GetUnsynced(ctx)
package journal
