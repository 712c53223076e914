// Package storage owns the local databases of the journal client.
//
// # Overview
//
// Three independent SQLite files live in the data directory:
//
//   - records.db: journal entries, food items and reports
//   - blobs.db:   binary attachments (unless blobs go to S3)
//   - state.db:   key/value state such as the persisted sync status
//
// Each file is wrapped in a Store: a handle that opens, tunes and migrates
// its database the first time anyone asks for it. Concurrent first callers
// wait on the same open; a failed open is reported as
// common.ErrStorageInitFailed and retried on the next call.
//
// Repositories bundles every store and repository. The CLI builds exactly
// one and hands it to services and the sync coordinator.
//
// Typical Usage
//
//	repos, err := storage.NewRepositories(ctx, cfg, log)
//	if err != nil { ... }
//	defer repos.Close()
//	if err := repos.Initialize(ctx); err != nil { ... }
//	_ = repos.Journal.Put(ctx, entry)
package storage
