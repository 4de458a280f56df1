package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yukikurage/task-management-api/internal/models"
	"github.com/yukikurage/task-management-api/internal/repository"
	"github.com/yukikurage/task-management-api/internal/utils"
)

func setupUserServiceTest(t *testing.T) (*gorm.DB, *UserService) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Task{},
		&models.TaskPerformer{},
		&models.TaskComment{},
		&models.ConfirmationToken{},
	)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return db, NewUserService(repository.NewUserRepository(db))
}

func createUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	user := &models.User{
		Email:        email,
		PasswordHash: "hashedpassword",
		Name:         "Test User",
		Enabled:      true,
		Role:         models.RoleUser,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func TestUserService_GetUserByID(t *testing.T) {
	db, service := setupUserServiceTest(t)

	user := createUser(t, db, "test@example.com")

	found, err := service.GetUserByID(user.ID)
	require.NoError(t, err)
	require.Equal(t, user.Email, found.Email)

	_, err = service.GetUserByID(9999)
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserService_GetUserByEmail(t *testing.T) {
	db, service := setupUserServiceTest(t)

	createUser(t, db, "test@example.com")

	found, err := service.GetUserByEmail("test@example.com")
	require.NoError(t, err)
	require.Equal(t, "test@example.com", found.Email)

	_, err = service.GetUserByEmail("nobody@example.com")
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserService_ListUsers(t *testing.T) {
	db, service := setupUserServiceTest(t)

	for _, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		createUser(t, db, email)
	}

	field := "email"
	direction := "Desc"
	users, total, err := service.ListUsers(utils.PageQuery{
		PageNumber: 0,
		PageSize:   2,
		Field:      &field,
		Direction:  &direction,
	})
	require.NoError(t, err)
	require.EqualValues(t, 3, total)
	require.Len(t, users, 2)
	require.Equal(t, "c@example.com", users[0].Email)
}

func TestUserService_EnableUser(t *testing.T) {
	db, service := setupUserServiceTest(t)

	user := createUser(t, db, "pending@example.com")
	require.NoError(t, db.Model(user).Update("enabled", false).Error)

	require.NoError(t, service.EnableUser("pending@example.com"))

	var updated models.User
	require.NoError(t, db.First(&updated, user.ID).Error)
	require.True(t, updated.Enabled)

	require.ErrorIs(t, service.EnableUser("nobody@example.com"), ErrUserNotFound)
}

func TestUserService_DeleteUser_DetachesTaskGraph(t *testing.T) {
	db, service := setupUserServiceTest(t)

	actor := createUser(t, db, "leaving@example.com")
	other := createUser(t, db, "staying@example.com")

	// Task authored by the leaving user, performed by the other user.
	authored := &models.Task{
		Title:        "authored",
		Status:       models.TaskStatusNew,
		Priority:     models.TaskPriorityLow,
		CreationDate: time.Now(),
		Deadline:     time.Now().Add(time.Hour),
		AuthorID:     actor.ID,
	}
	require.NoError(t, db.Create(authored).Error)
	require.NoError(t, db.Create(&models.TaskPerformer{TaskID: authored.ID, UserID: other.ID}).Error)

	// Task authored by the other user, performed by the leaving user.
	foreign := &models.Task{
		Title:        "foreign",
		Status:       models.TaskStatusNew,
		Priority:     models.TaskPriorityLow,
		CreationDate: time.Now(),
		Deadline:     time.Now().Add(time.Hour),
		AuthorID:     other.ID,
	}
	require.NoError(t, db.Create(foreign).Error)
	require.NoError(t, db.Create(&models.TaskPerformer{TaskID: foreign.ID, UserID: actor.ID}).Error)

	token := utils.NewConfirmationToken(actor.ID, time.Now())
	require.NoError(t, db.Create(&token).Error)

	require.NoError(t, service.DeleteUser(actor))

	var userCount int64
	db.Model(&models.User{}).Where("id = ?", actor.ID).Count(&userCount)
	require.Zero(t, userCount)

	// Authored tasks survive, stripped of their performer links.
	var taskCount int64
	db.Model(&models.Task{}).Count(&taskCount)
	require.EqualValues(t, 2, taskCount)

	var linkCount int64
	db.Model(&models.TaskPerformer{}).Count(&linkCount)
	require.Zero(t, linkCount)

	var tokenCount int64
	db.Model(&models.ConfirmationToken{}).Where("user_id = ?", actor.ID).Count(&tokenCount)
	require.Zero(t, tokenCount)
}
