package storage

import "errors"

var (
	// ErrStoreUnavailable indicates the storage backend cannot be reached
	ErrStoreUnavailable = errors.New("storage service not available")

	// ErrObjectNotFound indicates the requested object does not exist
	ErrObjectNotFound = errors.New("object not found")
)
