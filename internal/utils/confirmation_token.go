package utils

import (
	"time"

	"github.com/google/uuid"

	"github.com/yukikurage/task-management-api/internal/constants"
	"github.com/yukikurage/task-management-api/internal/models"
)

// NewConfirmationToken builds a pending confirmation token for the user with a
// random opaque value and a fixed expiry window. Persistence is the caller's
// responsibility.
func NewConfirmationToken(userID uint64, now time.Time) models.ConfirmationToken {
	return models.ConfirmationToken{
		Token:     uuid.NewString(),
		CreatedAt: now,
		ExpiresAt: now.Add(constants.ConfirmationTokenTTL),
		UserID:    userID,
	}
}
