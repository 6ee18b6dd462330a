package database

import (
	"fmt"

	"gorm.io/gorm"
)

// AddIndexes adds composite indexes that AutoMigrate's per-column tags
// do not cover. Safe to run repeatedly.
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Role-scoped task listings
		{"tasks", "idx_tasks_status_designer_id", "status, designer_id"},
		{"tasks", "idx_tasks_status_created_at", "status, created_at"},
		// Attachment lookups by task
		{"attachments", "idx_attachments_task_created", "task_id, created_at"},
	}

	for _, idx := range indexes {
		if db.Migrator().HasIndex(idx.table, idx.name) {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
	}

	return nil
}
