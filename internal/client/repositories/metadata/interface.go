// Package metadata is the small key/value state store kept apart from the
// record and blob stores. It holds the persisted sync status and the
// passphrase salt and verifier.
package metadata

import (
	"context"
)

// Well-known keys.
const (
	KeySyncStatus     = "syncStatus"
	KeyEncryptionSalt = "encryptionSalt"
	KeyKeyVerifier    = "keyVerifier"
)

type Repository interface {
	// Get returns (nil, nil) when key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
}
