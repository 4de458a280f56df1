package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yukikurage/task-management-api/internal/models"
	"github.com/yukikurage/task-management-api/internal/utils"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// CreateWithPerformers creates a task and its performer links atomically
func (r *GormTaskRepository) CreateWithPerformers(task *models.Task, performerIDs []uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(task).Error; err != nil {
			return err
		}
		return createPerformerLinks(tx, task.ID, performerIDs)
	})
}

// FindByID finds a task by ID with optional preloading
func (r *GormTaskRepository) FindByID(id uint64, preload ...string) (*models.Task, error) {
	var task models.Task
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&task, id).Error; err != nil {
		return nil, err
	}

	return &task, nil
}

// Update saves the task and bumps its version counter
func (r *GormTaskRepository) Update(task *models.Task) error {
	task.Version++
	return r.db.Save(task).Error
}

// UpdateWithPerformers saves the task and replaces its performer links atomically
func (r *GormTaskRepository) UpdateWithPerformers(task *models.Task, performerIDs []uint64) error {
	task.Version++
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(task).Error; err != nil {
			return err
		}

		if err := tx.Where("task_id = ?", task.ID).Delete(&models.TaskPerformer{}).Error; err != nil {
			return err
		}

		return createPerformerLinks(tx, task.ID, performerIDs)
	})
}

// Delete removes the task, its performer links and its comments atomically
func (r *GormTaskRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", id).Delete(&models.TaskPerformer{}).Error; err != nil {
			return err
		}

		if err := tx.Where("task_id = ?", id).Delete(&models.TaskComment{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Task{}, id).Error
	})
}

// AssignPerformer adds a performer link; adding an existing link is a no-op
func (r *GormTaskRepository) AssignPerformer(taskID, userID uint64) error {
	link := models.TaskPerformer{
		TaskID: taskID,
		UserID: userID,
	}

	return r.db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "task_id"}, {Name: "user_id"}},
			DoNothing: true,
		}).
		Create(&link).Error
}

// AddComment attaches a comment to a task
func (r *GormTaskRepository) AddComment(comment *models.TaskComment) error {
	return r.db.Create(comment).Error
}

// List retrieves tasks with pagination and optional sorting
func (r *GormTaskRepository) List(query utils.PageQuery) ([]models.Task, int64, error) {
	return r.list(r.db.Model(&models.Task{}), query)
}

// ListByAuthor retrieves tasks authored by the user
func (r *GormTaskRepository) ListByAuthor(authorID uint64, query utils.PageQuery) ([]models.Task, int64, error) {
	return r.list(r.db.Model(&models.Task{}).Where("tasks.author_id = ?", authorID), query)
}

// ListByPerformer retrieves tasks the user is assigned to
func (r *GormTaskRepository) ListByPerformer(performerID uint64, query utils.PageQuery) ([]models.Task, int64, error) {
	performerSubQuery := r.db.Model(&models.TaskPerformer{}).
		Select("1").
		Where("task_performers.task_id = tasks.id").
		Where("task_performers.user_id = ?", performerID)

	return r.list(r.db.Model(&models.Task{}).Where("EXISTS (?)", performerSubQuery), query)
}

func (r *GormTaskRepository) list(base *gorm.DB, query utils.PageQuery) ([]models.Task, int64, error) {
	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := base
	if query.Sorted() {
		listQuery = listQuery.Order(query.OrderClause())
	}

	var tasks []models.Task
	if err := listQuery.
		Offset(query.Offset()).
		Limit(query.PageSize).
		Preload("Author").
		Preload("Performers").
		Find(&tasks).Error; err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

func createPerformerLinks(tx *gorm.DB, taskID uint64, performerIDs []uint64) error {
	if len(performerIDs) == 0 {
		return nil
	}

	links := make([]models.TaskPerformer, len(performerIDs))
	for i, userID := range performerIDs {
		links[i] = models.TaskPerformer{
			TaskID: taskID,
			UserID: userID,
		}
	}

	return tx.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "task_id"}, {Name: "user_id"}},
			DoNothing: true,
		}).
		Create(&links).Error
}
