package migrations

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

func init() {
	goose.AddMigrationContext(upSlotSize, downSlotSize)
}

// upSlotSize adds the size column and fills it for slots written before it existed.
func upSlotSize(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `ALTER TABLE slot ADD COLUMN size INTEGER NOT NULL DEFAULT 0`)
	if err != nil {
		return fmt.Errorf("adding size column : %w", err)
	}

	rows, err := tx.QueryContext(ctx, "SELECT name, value FROM slot")
	if err != nil {
		return fmt.Errorf("getting all slots: %w", err)
	}
	defer rows.Close()

	sizes := make(map[string]int)
	for rows.Next() {
		var key string
		var value []byte
		if err := rows.Scan(&key, &value); err != nil {
			return fmt.Errorf("scanning slot: %w", err)
		}
		sizes[key] = len(value)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating slots: %w", err)
	}
	rows.Close()

	for key, size := range sizes {
		_, err := tx.ExecContext(ctx, "UPDATE slot SET size = ? WHERE name = ?", size, key)
		if err != nil {
			return fmt.Errorf("updating slot %s : %w", key, err)
		}
	}
	return nil
}

func downSlotSize(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `ALTER TABLE slot DROP COLUMN size`)
	if err != nil {
		return fmt.Errorf("dropping size column : %w", err)
	}
	return nil
}
