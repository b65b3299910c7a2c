package handler

import (
	"net/http"
	"time"

	"agencyhub/internal/models"
	"agencyhub/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TaskHandler interface {
	Create(c *gin.Context)
	ListByCampaign(c *gin.Context)
	Update(c *gin.Context)
	MoveStage(c *gin.Context)
	Delete(c *gin.Context)
}

type taskHandler struct {
	tasks  repository.TaskRepository
	logger *zap.Logger
}

func NewTaskHandler(tasks repository.TaskRepository, logger *zap.Logger) TaskHandler {
	return &taskHandler{tasks: tasks, logger: logger}
}

type TaskRequest struct {
	CampaignID uuid.UUID  `json:"campaign_id" binding:"required"`
	Title      string     `json:"title" binding:"required"`
	Stage      string     `json:"stage"`
	Assignee   string     `json:"assignee"`
	DueDate    *time.Time `json:"due_date"`
}

func (h *taskHandler) Create(c *gin.Context) {
	var req TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Stage == "" {
		req.Stage = models.TaskStageBacklog
	}
	if !models.ValidTaskStage(req.Stage) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown task stage"})
		return
	}

	task := &models.Task{
		CampaignID: req.CampaignID,
		Title:      req.Title,
		Stage:      req.Stage,
		Assignee:   req.Assignee,
		DueDate:    req.DueDate,
	}
	if err := h.tasks.Create(task); err != nil {
		h.logger.Error("Failed to create task", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create task"})
		return
	}

	c.JSON(http.StatusCreated, task)
}

// ListByCampaign handles GET /api/campaigns/:id/tasks, returning tasks grouped
// by kanban stage.
func (h *taskHandler) ListByCampaign(c *gin.Context) {
	campaignID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid campaign id"})
		return
	}

	tasks, err := h.tasks.ListByCampaign(campaignID)
	if err != nil {
		h.logger.Error("Failed to list tasks", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list tasks"})
		return
	}

	board := map[string][]*models.Task{
		models.TaskStageBacklog:    {},
		models.TaskStageInProgress: {},
		models.TaskStageReview:     {},
		models.TaskStageDone:       {},
	}
	for _, t := range tasks {
		board[t.Stage] = append(board[t.Stage], t)
	}
	c.JSON(http.StatusOK, gin.H{"board": board})
}

func (h *taskHandler) Update(c *gin.Context) {
	task, ok := h.lookup(c)
	if !ok {
		return
	}

	var req TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Stage != "" && !models.ValidTaskStage(req.Stage) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown task stage"})
		return
	}

	task.Title = req.Title
	if req.Stage != "" {
		task.Stage = req.Stage
	}
	task.Assignee = req.Assignee
	task.DueDate = req.DueDate

	if err := h.tasks.Update(task); err != nil {
		h.logger.Error("Failed to update task", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update task"})
		return
	}
	c.JSON(http.StatusOK, task)
}

// MoveStage handles PATCH /api/tasks/:id/stage, the drag-and-drop move on the
// kanban board.
func (h *taskHandler) MoveStage(c *gin.Context) {
	task, ok := h.lookup(c)
	if !ok {
		return
	}

	var req struct {
		Stage string `json:"stage" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !models.ValidTaskStage(req.Stage) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown task stage"})
		return
	}

	if err := h.tasks.UpdateStage(task.ID, req.Stage); err != nil {
		h.logger.Error("Failed to move task", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to move task"})
		return
	}
	task.Stage = req.Stage
	c.JSON(http.StatusOK, task)
}

func (h *taskHandler) Delete(c *gin.Context) {
	task, ok := h.lookup(c)
	if !ok {
		return
	}

	if err := h.tasks.Delete(task.ID); err != nil {
		h.logger.Error("Failed to delete task", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete task"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Task deleted"})
}

func (h *taskHandler) lookup(c *gin.Context) (*models.Task, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task id"})
		return nil, false
	}

	task, err := h.tasks.GetByID(id)
	if err != nil {
		h.logger.Error("Failed to get task", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get task"})
		return nil, false
	}
	if task == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		return nil, false
	}
	return task, true
}
