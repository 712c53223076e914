// Package common defines shared constants and sentinel errors used across
// the storage, sync and service layers. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Storage lifecycle errors.
	ErrStorageInitFailed  = errors.New("storage init failed")
	ErrStorageWriteFailed = errors.New("storage write failed")
	ErrStorageReadFailed  = errors.New("storage read failed")

	// Blob storage errors.
	ErrBlobStoreFailure = errors.New("blob store failure")

	// Validation errors.
	ErrMissingID         = errors.New("missing record id")
	ErrMissingPath       = errors.New("missing blob path")
	ErrInvalidCategory   = errors.New("invalid food category")
	ErrInvalidReportType = errors.New("invalid report type")
	ErrMissingChildName  = errors.New("missing child name")
	ErrReservedChildName = errors.New("child name is reserved")
)
