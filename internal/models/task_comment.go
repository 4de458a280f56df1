package models

import "time"

// TaskComment is owned exclusively by its task and is deleted with it.
type TaskComment struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	Text         string    `gorm:"type:text;not null" json:"text"`
	CreationDate time.Time `gorm:"not null" json:"creation_date"`
	AuthorID     uint64    `gorm:"not null" json:"author_id"`
	TaskID       uint64    `gorm:"not null;index" json:"task_id"`

	// Relations
	Author User `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
}
