package repository

import (
	"github.com/yukikurage/task-management-api/internal/models"
	"github.com/yukikurage/task-management-api/internal/utils"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// CreateWithToken creates a user and their pending confirmation token
	// within a single transaction.
	CreateWithToken(user *models.User, token *models.ConfirmationToken) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// ExistsByEmail reports whether a user with the email exists
	ExistsByEmail(email string) (bool, error)

	// Update saves the user and bumps its version counter
	Update(user *models.User) error

	// UpdateWithToken saves the user and persists a fresh confirmation token
	// within a single transaction.
	UpdateWithToken(user *models.User, token *models.ConfirmationToken) error

	// List retrieves users with pagination and optional sorting
	List(query utils.PageQuery) ([]models.User, int64, error)

	// DeleteWithRelations removes the user, their performer links, the
	// performer links of every task they authored, and their confirmation
	// tokens, all atomically. Authored tasks themselves are kept.
	DeleteWithRelations(userID uint64) error
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// CreateWithPerformers creates a task and its performer links atomically
	CreateWithPerformers(task *models.Task, performerIDs []uint64) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// Update saves the task and bumps its version counter
	Update(task *models.Task) error

	// UpdateWithPerformers saves the task and replaces its performer links
	// atomically
	UpdateWithPerformers(task *models.Task, performerIDs []uint64) error

	// Delete removes the task, its performer links and its comments atomically
	Delete(id uint64) error

	// AssignPerformer adds a performer link; adding an existing link is a no-op
	AssignPerformer(taskID, userID uint64) error

	// AddComment attaches a comment to a task
	AddComment(comment *models.TaskComment) error

	// List retrieves tasks with pagination and optional sorting
	List(query utils.PageQuery) ([]models.Task, int64, error)

	// ListByAuthor retrieves tasks authored by the user
	ListByAuthor(authorID uint64, query utils.PageQuery) ([]models.Task, int64, error)

	// ListByPerformer retrieves tasks the user is assigned to
	ListByPerformer(performerID uint64, query utils.PageQuery) ([]models.Task, int64, error)
}

// TokenRepository defines the interface for confirmation token data access
type TokenRepository interface {
	// Save persists a confirmation token
	Save(token *models.ConfirmationToken) error

	// FindByValue finds a token by its opaque value
	FindByValue(value string) (*models.ConfirmationToken, error)

	// ConfirmAndEnableUser stamps the token as confirmed and enables the
	// owning user within a single transaction.
	ConfirmAndEnableUser(token *models.ConfirmationToken) error
}
