package models

import (
	"time"
)

type TaskStatus string

const (
	TaskStatusNew        TaskStatus = "NEW"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusCompleted  TaskStatus = "COMPLETED"
)

// ValidTaskStatus reports whether s is one of the three known status values.
func ValidTaskStatus(s TaskStatus) bool {
	switch s {
	case TaskStatusNew, TaskStatusInProgress, TaskStatusCompleted:
		return true
	}
	return false
}

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "LOW"
	TaskPriorityMedium TaskPriority = "MEDIUM"
	TaskPriorityHigh   TaskPriority = "HIGH"
)

// ValidTaskPriority reports whether p is one of the three known priority values.
func ValidTaskPriority(p TaskPriority) bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	}
	return false
}

type Task struct {
	ID           uint64       `gorm:"primarykey" json:"id"`
	Title        string       `gorm:"not null" json:"title"`
	Description  string       `gorm:"type:text;not null" json:"description"`
	Status       TaskStatus   `gorm:"type:varchar(20);not null;default:'NEW'" json:"status"`
	Priority     TaskPriority `gorm:"type:varchar(20);not null" json:"priority"`
	CreationDate time.Time    `gorm:"not null" json:"creation_date"`
	Deadline     time.Time    `gorm:"not null" json:"deadline"`
	AuthorID     uint64       `gorm:"not null" json:"author_id"`
	Version      int          `gorm:"not null;default:0" json:"-"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`

	// Relations
	Author     User            `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Performers []TaskPerformer `gorm:"foreignKey:TaskID" json:"performers,omitempty"`
	Comments   []TaskComment   `gorm:"foreignKey:TaskID" json:"comments,omitempty"`
}

// IsAssignedTo reports whether the user is a current performer of the task.
// Performers must be preloaded.
func (t *Task) IsAssignedTo(userID uint64) bool {
	for _, p := range t.Performers {
		if p.UserID == userID {
			return true
		}
	}
	return false
}
