package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/task-management-api/internal/dto"
	apierrors "github.com/yukikurage/task-management-api/internal/errors"
	"github.com/yukikurage/task-management-api/internal/middleware"
	"github.com/yukikurage/task-management-api/internal/models"
	"github.com/yukikurage/task-management-api/internal/services"
	"github.com/yukikurage/task-management-api/internal/utils"
)

// TaskHandler coordinates task-related HTTP handlers.
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// ListTasks returns a page of all tasks.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	query, ok := getPageQuery(c, utils.TaskSortFields)
	if !ok {
		return
	}

	tasks, total, err := h.taskService.ListTasks(query)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskListResponse(tasks, query.PageNumber, query.PageSize, total))
}

// ListMyAuthoredTasks returns a page of tasks authored by the caller.
func (h *TaskHandler) ListMyAuthoredTasks(c *gin.Context) {
	actor, ok := middleware.GetCurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	h.listByAuthor(c, actor.ID)
}

// ListMyAssignedTasks returns a page of tasks the caller performs.
func (h *TaskHandler) ListMyAssignedTasks(c *gin.Context) {
	actor, ok := middleware.GetCurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	h.listByPerformer(c, actor.ID)
}

// ListTasksByAuthor returns a page of tasks authored by the given user.
func (h *TaskHandler) ListTasksByAuthor(c *gin.Context) {
	authorID, ok := parseIDParam(c, "authorId")
	if !ok {
		return
	}

	h.listByAuthor(c, authorID)
}

// ListTasksByPerformer returns a page of tasks the given user performs.
func (h *TaskHandler) ListTasksByPerformer(c *gin.Context) {
	performerID, ok := parseIDParam(c, "performerId")
	if !ok {
		return
	}

	h.listByPerformer(c, performerID)
}

// GetTask returns a single task with its relations.
func (h *TaskHandler) GetTask(c *gin.Context) {
	taskID, ok := parseIDParam(c, "taskId")
	if !ok {
		return
	}

	task, err := h.taskService.GetTaskByID(taskID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskViewDTO(*task))
}

// CreateTask creates a task authored by the caller and returns its id.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	actor, ok := middleware.GetCurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	var req dto.TaskCreationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	taskID, err := h.taskService.CreateTask(actor, services.CreateTaskInput{
		Title:        req.Title,
		Description:  req.Description,
		Priority:     req.Priority,
		Deadline:     req.Deadline,
		PerformerIDs: req.PerformerIDs,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": taskID})
}

// UpdateTask fully overwrites a task. Author only.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	actor, ok := middleware.GetCurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	taskID, ok := parseIDParam(c, "taskId")
	if !ok {
		return
	}

	var req dto.TaskCreationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	err := h.taskService.UpdateTask(actor, taskID, services.CreateTaskInput{
		Title:        req.Title,
		Description:  req.Description,
		Priority:     req.Priority,
		Deadline:     req.Deadline,
		PerformerIDs: req.PerformerIDs,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "task updated"})
}

// DeleteTask removes a task. Author only.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	actor, ok := middleware.GetCurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	taskID, ok := parseIDParam(c, "taskId")
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(actor, taskID); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "task deleted"})
}

// UpdateTaskStatus sets the task status. Author or performer.
func (h *TaskHandler) UpdateTaskStatus(c *gin.Context) {
	actor, ok := middleware.GetCurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	taskID, ok := parseIDParam(c, "taskId")
	if !ok {
		return
	}

	status, ok := c.GetQuery("status")
	if !ok || status == "" {
		apierrors.BadRequest(c, "status query parameter is required")
		return
	}

	if err := h.taskService.UpdateTaskStatus(actor, taskID, models.TaskStatus(status)); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "task status updated"})
}

// AssignPerformer adds a performer to the task. Author or performer.
func (h *TaskHandler) AssignPerformer(c *gin.Context) {
	actor, ok := middleware.GetCurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	taskID, ok := parseIDParam(c, "taskId")
	if !ok {
		return
	}

	performerID, ok := parseIDParam(c, "performerId")
	if !ok {
		return
	}

	if err := h.taskService.AssignPerformer(actor, taskID, performerID); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "performer assigned"})
}

// CommentTask attaches a comment authored by the caller.
func (h *TaskHandler) CommentTask(c *gin.Context) {
	actor, ok := middleware.GetCurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	taskID, ok := parseIDParam(c, "taskId")
	if !ok {
		return
	}

	var req dto.CommentCreationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	comment, err := h.taskService.CommentTask(actor, taskID, req.Text)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCommentViewDTO(*comment))
}

func (h *TaskHandler) listByAuthor(c *gin.Context, authorID uint64) {
	query, ok := getPageQuery(c, utils.TaskSortFields)
	if !ok {
		return
	}

	tasks, total, err := h.taskService.ListTasksByAuthor(authorID, query)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskListResponse(tasks, query.PageNumber, query.PageSize, total))
}

func (h *TaskHandler) listByPerformer(c *gin.Context, performerID uint64) {
	query, ok := getPageQuery(c, utils.TaskSortFields)
	if !ok {
		return
	}

	tasks, total, err := h.taskService.ListTasksByPerformer(performerID, query)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskListResponse(tasks, query.PageNumber, query.PageSize, total))
}

func parseIDParam(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "invalid "+name)
		return 0, false
	}
	return id, true
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskNotFound),
		errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrNotTaskAuthor),
		errors.Is(err, services.ErrNoTaskRights):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrDeadlineNotInFuture),
		errors.Is(err, services.ErrInvalidTaskStatus),
		errors.Is(err, services.ErrInvalidTaskPriority),
		errors.Is(err, services.ErrCommentTextRequired):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
