package models

import "time"

// ConfirmationToken proves control of an email address. It is pending until
// ConfirmedAt is set, and is confirmed at most once. Expiry is checked lazily
// at confirmation time; there is no background sweep.
type ConfirmationToken struct {
	ID          uint64     `gorm:"primarykey" json:"id"`
	Token       string     `gorm:"type:varchar(64);uniqueIndex;not null" json:"token"`
	CreatedAt   time.Time  `gorm:"not null" json:"created_at"`
	ExpiresAt   time.Time  `gorm:"not null" json:"expires_at"`
	ConfirmedAt *time.Time `json:"confirmed_at"`
	UserID      uint64     `gorm:"not null;index" json:"user_id"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// Expired reports whether the token's expiry has passed at the given instant,
// regardless of confirmation state.
func (t *ConfirmationToken) Expired(now time.Time) bool {
	return t.ExpiresAt.Before(now)
}

// Confirmed reports whether the token has already been exchanged.
func (t *ConfirmationToken) Confirmed() bool {
	return t.ConfirmedAt != nil
}
