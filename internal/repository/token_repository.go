package repository

import (
	"gorm.io/gorm"

	"github.com/yukikurage/task-management-api/internal/models"
)

// GormTokenRepository is a GORM implementation of TokenRepository
type GormTokenRepository struct {
	db *gorm.DB
}

// NewTokenRepository creates a new TokenRepository
func NewTokenRepository(db *gorm.DB) TokenRepository {
	return &GormTokenRepository{db: db}
}

// Save persists a confirmation token
func (r *GormTokenRepository) Save(token *models.ConfirmationToken) error {
	return r.db.Save(token).Error
}

// FindByValue finds a token by its opaque value
func (r *GormTokenRepository) FindByValue(value string) (*models.ConfirmationToken, error) {
	var token models.ConfirmationToken
	if err := r.db.Where("token = ?", value).First(&token).Error; err != nil {
		return nil, err
	}
	return &token, nil
}

// ConfirmAndEnableUser stamps the token as confirmed and enables the owning
// user atomically. The token's ConfirmedAt must already be set by the caller.
func (r *GormTokenRepository) ConfirmAndEnableUser(token *models.ConfirmationToken) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(token).Error; err != nil {
			return err
		}

		return tx.Model(&models.User{}).
			Where("id = ?", token.UserID).
			Update("enabled", true).Error
	})
}
