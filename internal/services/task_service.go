package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/yukikurage/task-management-api/internal/models"
	"github.com/yukikurage/task-management-api/internal/repository"
	"github.com/yukikurage/task-management-api/internal/utils"
)

var (
	ErrTaskNotFound        = errors.New("task not found")
	ErrNotTaskAuthor       = errors.New("only the task author can perform this action")
	ErrNoTaskRights        = errors.New("user has no rights to modify this task")
	ErrTitleRequired       = errors.New("title is required")
	ErrDeadlineNotInFuture = errors.New("deadline must be in the future")
	ErrInvalidTaskStatus   = errors.New("unknown task status value")
	ErrInvalidTaskPriority = errors.New("unknown task priority value")
	ErrCommentTextRequired = errors.New("comment text cannot be blank")
)

// TaskService handles task lifecycle and the per-operation authorization
// rules: reads and comments are open to any authenticated user, full updates
// and deletion are author-only, status changes and performer assignment are
// open to the author and current performers.
type TaskService struct {
	taskRepo repository.TaskRepository
	userRepo repository.UserRepository

	// resetCreationDateOnUpdate keeps the historical behavior of stamping a
	// fresh creation date on every full update.
	resetCreationDateOnUpdate bool
}

// NewTaskService creates a new TaskService.
func NewTaskService(taskRepo repository.TaskRepository, userRepo repository.UserRepository, resetCreationDateOnUpdate bool) *TaskService {
	return &TaskService{
		taskRepo:                  taskRepo,
		userRepo:                  userRepo,
		resetCreationDateOnUpdate: resetCreationDateOnUpdate,
	}
}

// CreateTaskInput represents input for creating or fully updating a task.
type CreateTaskInput struct {
	Title        string
	Description  string
	Priority     models.TaskPriority
	Deadline     time.Time
	PerformerIDs []uint64
}

// CreateTask creates a new task authored by the actor and returns its id.
// The deadline must be strictly in the future; every performer id must
// resolve to an existing user.
func (s *TaskService) CreateTask(actor *models.User, input CreateTaskInput) (uint64, error) {
	if strings.TrimSpace(input.Title) == "" {
		return 0, ErrTitleRequired
	}
	if !models.ValidTaskPriority(input.Priority) {
		return 0, ErrInvalidTaskPriority
	}
	if !input.Deadline.After(time.Now()) {
		return 0, ErrDeadlineNotInFuture
	}

	performerIDs, err := s.resolvePerformers(input.PerformerIDs)
	if err != nil {
		return 0, err
	}

	task := &models.Task{
		Title:        input.Title,
		Description:  input.Description,
		Priority:     input.Priority,
		Status:       models.TaskStatusNew,
		CreationDate: time.Now(),
		Deadline:     input.Deadline,
		AuthorID:     actor.ID,
	}

	if err := s.taskRepo.CreateWithPerformers(task, performerIDs); err != nil {
		return 0, fmt.Errorf("failed to create task: %w", err)
	}

	return task.ID, nil
}

// UpdateTask fully overwrites the task through the same copy routine as
// create: title, description, priority, deadline and performer set are
// replaced, and the status drops back to NEW. Author only.
func (s *TaskService) UpdateTask(actor *models.User, taskID uint64, input CreateTaskInput) error {
	task, err := s.getTask(taskID)
	if err != nil {
		return err
	}

	if task.AuthorID != actor.ID {
		return ErrNotTaskAuthor
	}

	if strings.TrimSpace(input.Title) == "" {
		return ErrTitleRequired
	}
	if !models.ValidTaskPriority(input.Priority) {
		return ErrInvalidTaskPriority
	}

	performerIDs, err := s.resolvePerformers(input.PerformerIDs)
	if err != nil {
		return err
	}

	task.Title = input.Title
	task.Description = input.Description
	task.Priority = input.Priority
	task.Status = models.TaskStatusNew
	task.Deadline = input.Deadline
	if s.resetCreationDateOnUpdate {
		task.CreationDate = time.Now()
	}

	if err := s.taskRepo.UpdateWithPerformers(task, performerIDs); err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}

	return nil
}

// DeleteTask removes the task along with its performer links and comments.
// Author only.
func (s *TaskService) DeleteTask(actor *models.User, taskID uint64) error {
	task, err := s.getTask(taskID)
	if err != nil {
		return err
	}

	if task.AuthorID != actor.ID {
		return ErrNotTaskAuthor
	}

	if err := s.taskRepo.Delete(taskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}

// UpdateTaskStatus sets the task status. Author or current performer. Any of
// the three status values may follow any other.
func (s *TaskService) UpdateTaskStatus(actor *models.User, taskID uint64, status models.TaskStatus) error {
	if !models.ValidTaskStatus(status) {
		return ErrInvalidTaskStatus
	}

	task, err := s.getTask(taskID, "Performers")
	if err != nil {
		return err
	}

	if task.AuthorID != actor.ID && !task.IsAssignedTo(actor.ID) {
		return ErrNoTaskRights
	}

	task.Status = status
	if err := s.taskRepo.Update(task); err != nil {
		return fmt.Errorf("failed to update task status: %w", err)
	}

	return nil
}

// AssignPerformer adds the user as a performer of the task. Author or current
// performer. Assigning an existing performer again has no effect.
func (s *TaskService) AssignPerformer(actor *models.User, taskID, performerID uint64) error {
	task, err := s.getTask(taskID, "Performers")
	if err != nil {
		return err
	}

	if task.AuthorID != actor.ID && !task.IsAssignedTo(actor.ID) {
		return ErrNoTaskRights
	}

	if _, err := s.userRepo.FindByID(performerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("performer %d: %w", performerID, ErrUserNotFound)
		}
		return fmt.Errorf("failed to find performer: %w", err)
	}

	if err := s.taskRepo.AssignPerformer(taskID, performerID); err != nil {
		return fmt.Errorf("failed to assign performer: %w", err)
	}

	return nil
}

// CommentTask attaches a comment authored by the actor to the task. Any
// authenticated user may comment.
func (s *TaskService) CommentTask(actor *models.User, taskID uint64, text string) (*models.TaskComment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrCommentTextRequired
	}

	if _, err := s.getTask(taskID); err != nil {
		return nil, err
	}

	comment := &models.TaskComment{
		Text:         text,
		CreationDate: time.Now(),
		AuthorID:     actor.ID,
		TaskID:       taskID,
	}

	if err := s.taskRepo.AddComment(comment); err != nil {
		return nil, fmt.Errorf("failed to comment task: %w", err)
	}

	return comment, nil
}

// GetTaskByID returns a task with its relations.
func (s *TaskService) GetTaskByID(taskID uint64) (*models.Task, error) {
	return s.getTask(taskID, "Author", "Performers", "Performers.User", "Comments")
}

// ListTasks returns a page of all tasks.
func (s *TaskService) ListTasks(query utils.PageQuery) ([]models.Task, int64, error) {
	tasks, total, err := s.taskRepo.List(query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, total, nil
}

// ListTasksByAuthor returns a page of tasks authored by the user.
func (s *TaskService) ListTasksByAuthor(authorID uint64, query utils.PageQuery) ([]models.Task, int64, error) {
	tasks, total, err := s.taskRepo.ListByAuthor(authorID, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks by author: %w", err)
	}
	return tasks, total, nil
}

// ListTasksByPerformer returns a page of tasks the user is assigned to.
func (s *TaskService) ListTasksByPerformer(performerID uint64, query utils.PageQuery) ([]models.Task, int64, error) {
	tasks, total, err := s.taskRepo.ListByPerformer(performerID, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks by performer: %w", err)
	}
	return tasks, total, nil
}

func (s *TaskService) getTask(taskID uint64, preload ...string) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID, preload...)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// resolvePerformers deduplicates the ids and verifies each resolves to an
// existing user.
func (s *TaskService) resolvePerformers(ids []uint64) ([]uint64, error) {
	unique := uniqueUint64(ids)
	for _, id := range unique {
		if _, err := s.userRepo.FindByID(id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("performer %d: %w", id, ErrUserNotFound)
			}
			return nil, fmt.Errorf("failed to find performer: %w", err)
		}
	}
	return unique, nil
}

// uniqueUint64 removes duplicate values from a slice of uint64
func uniqueUint64(values []uint64) []uint64 {
	seen := make(map[uint64]struct{}, len(values))
	result := make([]uint64, 0, len(values))

	for _, v := range values {
		if _, exists := seen[v]; exists {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}

	return result
}
