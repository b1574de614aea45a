package persist

import (
	"bytes"
	"sync"

	"github.com/tfkr-ae/avisha/domain"
)

var _ domain.BlobRepository = (*MemoryRepository)(nil)

// MemoryRepository keeps blobs in memory. It backs tests and sessions that do not need to survive
// the process.
type MemoryRepository struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

// NewMemoryRepository returns an empty MemoryRepository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{blobs: make(map[string][]byte)}
}

// GetBlob returns a copy of the blob stored under key.
func (m *MemoryRepository) GetBlob(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	blob, ok := m.blobs[key]
	if !ok {
		return nil, domain.ErrBlobNotFound
	}
	return bytes.Clone(blob), nil
}

// PutBlob stores a copy of blob under key.
func (m *MemoryRepository) PutBlob(key string, blob []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.blobs[key] = bytes.Clone(blob)
	return nil
}
