package domain

import "errors"

// ErrBlobNotFound is returned by a BlobRepository when nothing is stored under a key.
var ErrBlobNotFound = errors.New("no blob stored under key")

// BlobRepository defines the durable key-value slot the ledger is persisted to.
// The whole ledger is stored as one opaque blob, so implementations only need whole-value reads
// and writes.
type BlobRepository interface {
	// GetBlob retrieves the blob stored under key.
	// It returns ErrBlobNotFound if the key has never been written.
	GetBlob(key string) ([]byte, error)

	// PutBlob stores blob under key, replacing any previous value unconditionally.
	PutBlob(key string, blob []byte) error
}
