package store

import (
	"context"
	"fmt"

	"github.com/adforge-dev/adforge-admin/internal/taxonomy"
)

// Migrate copies every taxonomy's records from src to dst. It is how a real
// backend gets seeded from the demo snapshot, and how data moves between
// backends (file -> postgres, remote -> file for a backup, and so on).
func Migrate(ctx context.Context, src, dst Store) error {
	for _, kind := range taxonomy.Kinds() {
		records, err := src.List(ctx, kind)
		if err != nil {
			return fmt.Errorf("failed to list %s: %w", kind, err)
		}
		for _, rec := range records {
			if _, err := dst.Insert(ctx, kind, rec); err != nil {
				return fmt.Errorf("failed to insert %s record %s: %w", kind, DocID(rec), err)
			}
		}
	}
	return nil
}
