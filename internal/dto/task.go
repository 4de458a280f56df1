package dto

import (
	"time"

	"github.com/yukikurage/task-management-api/internal/models"
)

// TaskCreationRequest carries the full task form, used for both creation and
// full update.
type TaskCreationRequest struct {
	Title        string              `json:"title" binding:"required"`
	Description  string              `json:"description"`
	Priority     models.TaskPriority `json:"priority" binding:"required,oneof=LOW MEDIUM HIGH"`
	Deadline     time.Time           `json:"deadline" binding:"required"`
	PerformerIDs []uint64            `json:"performerIds"`
}

// CommentCreationRequest carries a new task comment.
type CommentCreationRequest struct {
	Text string `json:"text" binding:"required"`
}

// CommentViewDTO represents a task comment in API responses
type CommentViewDTO struct {
	ID           uint64    `json:"id"`
	Text         string    `json:"text"`
	CreationDate time.Time `json:"creation_date"`
	AuthorID     uint64    `json:"author_id"`
}

// TaskViewDTO represents a task in API responses
type TaskViewDTO struct {
	ID           uint64              `json:"id"`
	Title        string              `json:"title"`
	Description  string              `json:"description"`
	Status       models.TaskStatus   `json:"status"`
	Priority     models.TaskPriority `json:"priority"`
	CreationDate time.Time           `json:"creation_date"`
	Deadline     time.Time           `json:"deadline"`
	AuthorID     uint64              `json:"author_id"`
	Author       *UserViewDTO        `json:"author,omitempty"`
	PerformerIDs []uint64            `json:"performer_ids"`
	Comments     []CommentViewDTO    `json:"comments,omitempty"`
}

// TaskListResponse represents a paginated list of tasks
type TaskListResponse struct {
	Content       []TaskViewDTO `json:"content"`
	TotalElements int64         `json:"total_elements"`
	PageSize      int           `json:"page_size"`
	PageNumber    int           `json:"page_number"`
	TotalPages    int           `json:"total_pages"`
}

// ToCommentViewDTO converts a TaskComment model to CommentViewDTO
func ToCommentViewDTO(comment models.TaskComment) CommentViewDTO {
	return CommentViewDTO{
		ID:           comment.ID,
		Text:         comment.Text,
		CreationDate: comment.CreationDate,
		AuthorID:     comment.AuthorID,
	}
}

// ToTaskViewDTO converts a Task model to TaskViewDTO
func ToTaskViewDTO(task models.Task) TaskViewDTO {
	dto := TaskViewDTO{
		ID:           task.ID,
		Title:        task.Title,
		Description:  task.Description,
		Status:       task.Status,
		Priority:     task.Priority,
		CreationDate: task.CreationDate,
		Deadline:     task.Deadline,
		AuthorID:     task.AuthorID,
		PerformerIDs: make([]uint64, 0, len(task.Performers)),
	}

	// Include author if preloaded
	if task.Author.ID != 0 {
		author := ToUserViewDTO(task.Author)
		dto.Author = &author
	}

	for _, performer := range task.Performers {
		dto.PerformerIDs = append(dto.PerformerIDs, performer.UserID)
	}

	if len(task.Comments) > 0 {
		dto.Comments = make([]CommentViewDTO, len(task.Comments))
		for i, comment := range task.Comments {
			dto.Comments[i] = ToCommentViewDTO(comment)
		}
	}

	return dto
}

// ToTaskListResponse converts a page of tasks to TaskListResponse
func ToTaskListResponse(tasks []models.Task, pageNumber, pageSize int, totalElements int64) TaskListResponse {
	content := make([]TaskViewDTO, len(tasks))
	for i, task := range tasks {
		content[i] = ToTaskViewDTO(task)
	}

	return TaskListResponse{
		Content:       content,
		TotalElements: totalElements,
		PageSize:      pageSize,
		PageNumber:    pageNumber + 1,
		TotalPages:    totalPages(totalElements, pageSize),
	}
}
