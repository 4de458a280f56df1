package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/yukikurage/task-management-api/internal/models"
	"github.com/yukikurage/task-management-api/internal/repository"
	"github.com/yukikurage/task-management-api/internal/utils"
)

var ErrUserNotFound = errors.New("user not found")

// UserService handles user lifecycle operations.
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

// GetUserByID retrieves a user by ID.
func (s *UserService) GetUserByID(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}

// GetUserByEmail retrieves a user by email.
func (s *UserService) GetUserByEmail(email string) (*models.User, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}

// ListUsers returns a page of users.
func (s *UserService) ListUsers(query utils.PageQuery) ([]models.User, int64, error) {
	users, total, err := s.userRepo.List(query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}

	return users, total, nil
}

// EnableUser marks the user with the given email as enabled.
func (s *UserService) EnableUser(email string) error {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	user.Enabled = true
	if err := s.userRepo.Update(user); err != nil {
		return fmt.Errorf("failed to enable user: %w", err)
	}

	return nil
}

// DeleteUser removes the acting user. They are detached from every task they
// perform, every performer is detached from the tasks they authored, and all
// their confirmation tokens are deleted. Authored tasks survive. The whole
// operation is atomic.
func (s *UserService) DeleteUser(actor *models.User) error {
	if err := s.userRepo.DeleteWithRelations(actor.ID); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	return nil
}
