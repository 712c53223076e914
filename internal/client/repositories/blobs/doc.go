// Package blobs is the binary attachment store (food photos, voice
// recordings). Blobs are addressed by a caller-built path; a Put on an
// existing path overwrites it.
//
// # Backends
//
//   - SQLiteRepository keeps blobs in their own SQLite database, separate
//     from the record store so large payloads never slow record queries.
//   - S3Repository keeps blobs in an S3-compatible bucket (AWS S3, MinIO).
//
// Both return (nil, nil) from Get on a miss, treat Delete of a missing path
// as success, and wrap every failure in common.ErrBlobStoreFailure. An empty
// MIME type on Put is replaced by one sniffed from the payload.
package blobs
