package repository

import (
	"gorm.io/gorm"

	"github.com/yukikurage/task-management-api/internal/models"
	"github.com/yukikurage/task-management-api/internal/utils"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// CreateWithToken creates a user and their pending confirmation token atomically
func (r *GormUserRepository) CreateWithToken(user *models.User, token *models.ConfirmationToken) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}

		token.UserID = user.ID
		return tx.Create(token).Error
	})
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(id uint64) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a user by email
func (r *GormUserRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ExistsByEmail reports whether a user with the email exists
func (r *GormUserRepository) ExistsByEmail(email string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Update saves the user and bumps its version counter
func (r *GormUserRepository) Update(user *models.User) error {
	user.Version++
	return r.db.Save(user).Error
}

// UpdateWithToken saves the user and persists a fresh confirmation token atomically
func (r *GormUserRepository) UpdateWithToken(user *models.User, token *models.ConfirmationToken) error {
	user.Version++
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(user).Error; err != nil {
			return err
		}
		return tx.Create(token).Error
	})
}

// List retrieves users with pagination and optional sorting
func (r *GormUserRepository) List(query utils.PageQuery) ([]models.User, int64, error) {
	var total int64
	if err := r.db.Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := r.db.Model(&models.User{})
	if query.Sorted() {
		listQuery = listQuery.Order(query.OrderClause())
	}

	var users []models.User
	if err := listQuery.Offset(query.Offset()).Limit(query.PageSize).Find(&users).Error; err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

// DeleteWithRelations removes the user and detaches them from the task graph
// atomically. Tasks they authored survive with their performer links removed.
func (r *GormUserRepository) DeleteWithRelations(userID uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		// Links where the user is a performer on someone's task.
		if err := tx.Where("user_id = ?", userID).Delete(&models.TaskPerformer{}).Error; err != nil {
			return err
		}

		// Links of every performer on tasks the user authored.
		authoredTasks := tx.Model(&models.Task{}).Select("id").Where("author_id = ?", userID)
		if err := tx.Where("task_id IN (?)", authoredTasks).Delete(&models.TaskPerformer{}).Error; err != nil {
			return err
		}

		if err := tx.Where("user_id = ?", userID).Delete(&models.ConfirmationToken{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.User{}, userID).Error
	})
}
