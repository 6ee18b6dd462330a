package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/cvassist/task-api/internal/dto"
	apierrors "github.com/cvassist/task-api/internal/errors"
	"github.com/cvassist/task-api/internal/middleware"
	"github.com/cvassist/task-api/internal/models"
	"github.com/cvassist/task-api/internal/services"
	"github.com/cvassist/task-api/internal/utils"
	"github.com/gin-gonic/gin"
)

// TaskHandler coordinates task lifecycle HTTP handlers.
type TaskHandler struct {
	taskService    *services.TaskService
	suggestService *services.SuggestService
}

// NewTaskHandler creates a new TaskHandler. suggestService may be nil
// when no API key is configured.
func NewTaskHandler(taskService *services.TaskService, suggestService *services.SuggestService) *TaskHandler {
	return &TaskHandler{
		taskService:    taskService,
		suggestService: suggestService,
	}
}

// respondTaskError translates service errors into API responses.
// Unexpected errors are logged in full and surfaced as a generic
// internal error so storage details never leak to the caller.
func respondTaskError(c *gin.Context, err error) {
	var permErr *services.PermissionError
	var validationErr *services.ValidationError
	var transitionErr *services.TransitionError

	switch {
	case errors.As(err, &permErr):
		if permErr.Unauthenticated() {
			apierrors.Unauthenticated(c, permErr.Error())
			return
		}
		apierrors.PermissionDenied(c, permErr.Error())
	case errors.As(err, &validationErr):
		apierrors.InvalidArgumentWithDetails(c, validationErr.Error(), gin.H{
			"missing_fields": validationErr.MissingFields,
			"invalid_fields": validationErr.InvalidFields,
		})
	case errors.As(err, &transitionErr):
		apierrors.InvalidTransition(c, transitionErr.Error())
	case errors.Is(err, services.ErrStaleTask):
		apierrors.StaleState(c, "")
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, "Task not found")
	case errors.Is(err, services.ErrTaskNotCompleted),
		errors.Is(err, services.ErrReviewerAssignState):
		apierrors.FailedPrecondition(c, err.Error())
	case errors.Is(err, services.ErrAssigneeNotFound):
		apierrors.InvalidArgument(c, err.Error())
	default:
		log.Printf("task handler: internal error: %v", err)
		apierrors.InternalError(c, "")
	}
}

func taskIDParam(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.InvalidArgument(c, "Invalid task ID")
		return 0, false
	}
	return id, true
}

// ListTasks returns the tasks visible to the caller. Admin and manager
// see everything, designers their assigned tasks, reviewers the review
// queue.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		apierrors.Unauthenticated(c, "")
		return
	}

	params := utils.GetPaginationParams(c)

	input := services.ListTasksInput{
		ActorID:   user.ID,
		ActorRole: user.Role,
		Page:      params.Page,
		PageSize:  params.Limit,
	}

	if statusStr := c.Query("status"); statusStr != "" {
		status, ok := models.ParseTaskStatus(statusStr)
		if !ok {
			apierrors.InvalidArgument(c, "Invalid status filter")
			return
		}
		input.Status = &status
	}

	tasks, total, err := h.taskService.ListTasks(input)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskListResponse(tasks, params.Page, params.Limit, total))
}

// GetTask returns a specific task by ID
func (h *TaskHandler) GetTask(c *gin.Context) {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		apierrors.Unauthenticated(c, "")
		return
	}

	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(taskID, user.ID, user.Role)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// CreateTask is the creation endpoint. The payload is accepted as a raw
// object because the boundary is lenient (skills as list or
// comma-separated string, experienceYears as number or text); the
// service normalizes it. Success mirrors the callable contract:
// {"status": "success", "taskId": ...}.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		apierrors.Unauthenticated(c, "")
		return
	}

	var payload map[string]interface{}
	if err := c.ShouldBindJSON(&payload); err != nil {
		apierrors.InvalidArgument(c, "Invalid request body")
		return
	}

	task, err := h.taskService.CreateTask(services.CreateTaskInput{
		Payload:     payload,
		CreatorID:   user.ID,
		CreatorRole: user.Role,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status": "success",
		"taskId": strconv.FormatUint(task.ID, 10),
		"task":   dto.ToTaskDTO(*task),
	})
}

// Transition moves a task along the lifecycle state machine
func (h *TaskHandler) Transition(c *gin.Context) {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		apierrors.Unauthenticated(c, "")
		return
	}

	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	type TransitionRequest struct {
		Status string `json:"status" binding:"required"`
	}

	var req TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.InvalidArgument(c, "Invalid request body")
		return
	}

	target, valid := models.ParseTaskStatus(req.Status)
	if !valid {
		apierrors.InvalidArgument(c, "Unknown status: "+req.Status)
		return
	}

	task, err := h.taskService.Transition(services.TransitionInput{
		TaskID:    taskID,
		Target:    target,
		ActorID:   user.ID,
		ActorRole: user.Role,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// AssignDesigner assigns a designer to a task
func (h *TaskHandler) AssignDesigner(c *gin.Context) {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		apierrors.Unauthenticated(c, "")
		return
	}

	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	type AssignRequest struct {
		DesignerID uint64 `json:"designer_id" binding:"required"`
	}

	var req AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.InvalidArgument(c, "Invalid request body")
		return
	}

	task, err := h.taskService.AssignDesigner(services.AssignDesignerInput{
		TaskID:     taskID,
		DesignerID: req.DesignerID,
		ActorID:    user.ID,
		ActorRole:  user.Role,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// AssignReviewer assigns a reviewer to a task
func (h *TaskHandler) AssignReviewer(c *gin.Context) {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		apierrors.Unauthenticated(c, "")
		return
	}

	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	type AssignRequest struct {
		ReviewerID uint64 `json:"reviewer_id" binding:"required"`
	}

	var req AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.InvalidArgument(c, "Invalid request body")
		return
	}

	task, err := h.taskService.AssignReviewer(services.AssignReviewerInput{
		TaskID:     taskID,
		ReviewerID: req.ReviewerID,
		ActorID:    user.ID,
		ActorRole:  user.Role,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// Rate records a designer or reviewer rating on a completed task
func (h *TaskHandler) Rate(c *gin.Context) {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		apierrors.Unauthenticated(c, "")
		return
	}

	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	type RateRequest struct {
		Target   string `json:"target"`
		Rating   int    `json:"rating" binding:"required"`
		Feedback string `json:"feedback"`
	}

	var req RateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.InvalidArgument(c, "Invalid request body")
		return
	}

	target := services.RatingTarget(req.Target)
	if req.Target == "" {
		target = services.RateDesigner
	}

	task, err := h.taskService.Rate(services.RateInput{
		TaskID:    taskID,
		Target:    target,
		Rating:    req.Rating,
		Feedback:  req.Feedback,
		ActorID:   user.ID,
		ActorRole: user.Role,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// AddAttachment records attachment metadata on a task
func (h *TaskHandler) AddAttachment(c *gin.Context) {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		apierrors.Unauthenticated(c, "")
		return
	}

	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	type AttachmentRequest struct {
		Name     string `json:"name" binding:"required"`
		URL      string `json:"url" binding:"required"`
		MimeType string `json:"mime_type"`
		Size     int64  `json:"size"`
	}

	var req AttachmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.InvalidArgument(c, "Invalid request body")
		return
	}

	attachment, err := h.taskService.AddAttachment(services.AttachmentInput{
		TaskID:    taskID,
		Name:      req.Name,
		URL:       req.URL,
		MimeType:  req.MimeType,
		Size:      req.Size,
		ActorID:   user.ID,
		ActorRole: user.Role,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToAttachmentDTO(*attachment))
}

// UpdateNotes edits the designer/reviewer notes on a task
func (h *TaskHandler) UpdateNotes(c *gin.Context) {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		apierrors.Unauthenticated(c, "")
		return
	}

	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	type NotesRequest struct {
		DesignerNotes *string `json:"designer_notes"`
		ReviewerNotes *string `json:"reviewer_notes"`
	}

	var req NotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.InvalidArgument(c, "Invalid request body")
		return
	}

	task, err := h.taskService.UpdateNotes(services.NotesInput{
		TaskID:        taskID,
		DesignerNotes: req.DesignerNotes,
		ReviewerNotes: req.ReviewerNotes,
		ActorID:       user.ID,
		ActorRole:     user.Role,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// Stats returns dashboard counts per lifecycle state
func (h *TaskHandler) Stats(c *gin.Context) {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		apierrors.Unauthenticated(c, "")
		return
	}

	stats, err := h.taskService.Stats(user.Role)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// SuggestSummary drafts a professional summary for the task's client
func (h *TaskHandler) SuggestSummary(c *gin.Context) {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		apierrors.Unauthenticated(c, "")
		return
	}

	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(taskID, user.ID, user.Role)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	if err := h.taskService.CanSuggestSummary(task, user.ID, user.Role); err != nil {
		respondTaskError(c, err)
		return
	}

	if h.suggestService == nil {
		apierrors.ServiceUnavailable(c, "Summary suggestions are not configured")
		return
	}

	summary, err := h.suggestService.SuggestSummary(c.Request.Context(), task)
	if err != nil {
		log.Printf("task handler: summary suggestion failed: %v", err)
		apierrors.InternalError(c, "Failed to draft summary")
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary})
}
