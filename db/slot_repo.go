package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/tfkr-ae/avisha/domain"
)

var _ domain.BlobRepository = (*Repository)(nil)

// dbSlot represents a slot as stored in the database.
type dbSlot struct {
	Key       string    `db:"name"`       // The slot key.
	Value     []byte    `db:"value"`      // The stored blob.
	Size      int       `db:"size"`       // Length of the blob in bytes.
	UpdatedAt time.Time `db:"updated_at"` // Time of the last write.
}

// SlotInfo describes a stored slot without its contents.
type SlotInfo struct {
	Key       string
	Size      int
	UpdatedAt time.Time
}

// GetBlob retrieves the blob stored under key.
func (repo *Repository) GetBlob(key string) ([]byte, error) {
	var value []byte
	query := `SELECT value FROM slot WHERE name = ?`

	err := repo.dbConn.Get(&value, query, key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrBlobNotFound
		}
		return nil, fmt.Errorf("getting slot %s: %w", key, err)
	}

	return value, nil
}

// PutBlob creates the slot or replaces its value.
func (repo *Repository) PutBlob(key string, blob []byte) error {
	if blob == nil {
		blob = []byte{}
	}

	slot := dbSlot{
		Key:       key,
		Value:     blob,
		Size:      len(blob),
		UpdatedAt: time.Now().UTC(),
	}

	query := `INSERT INTO slot(name, value, size, updated_at)
		      VALUES (:name, :value, :size, :updated_at)
		      ON CONFLICT(name) DO UPDATE SET value=excluded.value, size=excluded.size, updated_at=excluded.updated_at`

	_, err := repo.dbConn.NamedExec(query, slot)
	if err != nil {
		return fmt.Errorf("putting slot %s: %w", key, err)
	}

	return nil
}

// SlotInfo returns the size and last write time of the slot under key.
func (repo *Repository) SlotInfo(key string) (*SlotInfo, error) {
	var slot dbSlot
	query := `SELECT name, size, updated_at FROM slot WHERE name = ?`

	err := repo.dbConn.Get(&slot, query, key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrBlobNotFound
		}
		return nil, fmt.Errorf("getting slot info %s: %w", key, err)
	}

	return &SlotInfo{Key: slot.Key, Size: slot.Size, UpdatedAt: slot.UpdatedAt}, nil
}
