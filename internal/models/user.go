package models

import (
	"time"
)

type UserRole string

const (
	RoleUser UserRole = "USER"
)

type User struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	Name         string    `gorm:"type:varchar(255);not null" json:"name"`
	Enabled      bool      `gorm:"not null;default:false" json:"enabled"`
	Locked       bool      `gorm:"not null;default:false" json:"-"`
	Role         UserRole  `gorm:"type:varchar(20);not null" json:"role"`
	Version      int       `gorm:"not null;default:0" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	CreatedTasks       []Task              `gorm:"foreignKey:AuthorID" json:"-"`
	Assignments        []TaskPerformer     `gorm:"foreignKey:UserID" json:"-"`
	ConfirmationTokens []ConfirmationToken `gorm:"foreignKey:UserID" json:"-"`
}
