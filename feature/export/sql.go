package export

import (
	"context"
	"fmt"

	"ebook-indexer/core/catalog"

	"gorm.io/gorm"
)

const batchSize = 500

// ToDatabase mirrors the live view of c into the books table, replacing its
// previous contents in one transaction. It returns the number of rows written.
func ToDatabase(ctx context.Context, db *gorm.DB, c *catalog.Catalog) (int, error) {
	db = db.WithContext(ctx)
	if err := db.AutoMigrate(&BookRow{}); err != nil {
		return 0, fmt.Errorf("failed to migrate books table: %w", err)
	}

	rows := Rows(c)
	if err := replaceRows(db, rows); err != nil {
		return 0, err
	}
	return len(rows), nil
}

func replaceRows(db *gorm.DB, rows []BookRow) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&BookRow{}).Error; err != nil {
			return fmt.Errorf("failed to clear books table: %w", err)
		}
		if len(rows) == 0 {
			return nil
		}
		if err := tx.CreateInBatches(rows, batchSize).Error; err != nil {
			return fmt.Errorf("failed to insert books: %w", err)
		}
		return nil
	})
}
