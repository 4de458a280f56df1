package database

import (
	"fmt"

	"gorm.io/gorm"
)

// AddIndexes adds performance-critical indexes to the database
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Task indexes for listing and sorting
		{"tasks", "idx_tasks_author_id", "author_id"},
		{"tasks", "idx_tasks_status", "status"},
		{"tasks", "idx_tasks_deadline", "deadline"},
		{"tasks", "idx_tasks_creation_date", "creation_date"},

		// Performer join table indexes
		{"task_performers", "idx_task_performers_task_id", "task_id"},
		{"task_performers", "idx_task_performers_user_id", "user_id"},

		// Comment lookup by task
		{"task_comments", "idx_task_comments_task_id", "task_id"},

		// Token lookup by owner (lookup by value is covered by the unique index)
		{"confirmation_tokens", "idx_confirmation_tokens_user_id", "user_id"},
	}

	for _, idx := range indexes {
		var count int64
		err := db.Raw(`
			SELECT COUNT(*)
			FROM pg_indexes
			WHERE tablename = ? AND indexname = ?
		`, idx.table, idx.name).Count(&count).Error

		if err != nil {
			return fmt.Errorf("failed to check index %s: %w", idx.name, err)
		}

		if count > 0 {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
	}

	return nil
}
