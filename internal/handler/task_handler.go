package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Sreekanth-25/Project-Tracker-Application/internal/model"
	"github.com/Sreekanth-25/Project-Tracker-Application/internal/service"
	"github.com/Sreekanth-25/Project-Tracker-Application/pkg/metrics"
)

type TaskHandler struct {
	projects *service.ProjectService
	logger   *zap.Logger
}

func NewTaskHandler(projects *service.ProjectService, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{projects: projects, logger: logger}
}

// Create handles POST /projects/:id/tasks.
func (h *TaskHandler) Create(c *gin.Context) {
	var req model.TaskCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	ownerID := c.GetString("user_id")
	t, err := h.projects.AddTask(c.Request.Context(), ownerID, c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	metrics.IncrementEntityCreate("task")
	c.JSON(http.StatusOK, t)
}

// Update handles PUT /projects/:id/tasks/:taskId.
func (h *TaskHandler) Update(c *gin.Context) {
	var patch model.TaskUpdate
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	ownerID := c.GetString("user_id")
	t, err := h.projects.UpdateTask(c.Request.Context(), ownerID, c.Param("id"), c.Param("taskId"), patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// Delete handles DELETE /projects/:id/tasks/:taskId.
func (h *TaskHandler) Delete(c *gin.Context) {
	ownerID := c.GetString("user_id")

	if err := h.projects.DeleteTask(c.Request.Context(), ownerID, c.Param("id"), c.Param("taskId")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Task deleted"})
}

// AddTimeEntry handles POST /projects/:id/tasks/:taskId/time.
func (h *TaskHandler) AddTimeEntry(c *gin.Context) {
	var req model.TimeEntryCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	ownerID := c.GetString("user_id")
	entry, err := h.projects.AddTimeEntry(c.Request.Context(), ownerID, c.Param("id"), c.Param("taskId"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	metrics.IncrementEntityCreate("time_entry")
	c.JSON(http.StatusOK, entry)
}

// DeleteTimeEntry handles DELETE /projects/:id/tasks/:taskId/time/:timeId.
func (h *TaskHandler) DeleteTimeEntry(c *gin.Context) {
	ownerID := c.GetString("user_id")

	err := h.projects.DeleteTimeEntry(c.Request.Context(), ownerID, c.Param("id"), c.Param("taskId"), c.Param("timeId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Time entry deleted"})
}
