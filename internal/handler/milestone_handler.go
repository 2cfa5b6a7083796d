package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Sreekanth-25/Project-Tracker-Application/internal/model"
	"github.com/Sreekanth-25/Project-Tracker-Application/internal/service"
	"github.com/Sreekanth-25/Project-Tracker-Application/pkg/metrics"
)

type MilestoneHandler struct {
	projects *service.ProjectService
	logger   *zap.Logger
}

func NewMilestoneHandler(projects *service.ProjectService, logger *zap.Logger) *MilestoneHandler {
	return &MilestoneHandler{projects: projects, logger: logger}
}

// Create handles POST /projects/:id/milestones.
func (h *MilestoneHandler) Create(c *gin.Context) {
	var req model.MilestoneCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	ownerID := c.GetString("user_id")
	m, err := h.projects.AddMilestone(c.Request.Context(), ownerID, c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	metrics.IncrementEntityCreate("milestone")
	c.JSON(http.StatusOK, m)
}

// SetCompleted handles PUT /projects/:id/milestones/:milestoneId?completed=<bool>.
func (h *MilestoneHandler) SetCompleted(c *gin.Context) {
	completed, err := strconv.ParseBool(c.Query("completed"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "completed query parameter required"})
		return
	}

	ownerID := c.GetString("user_id")
	m, err := h.projects.SetMilestoneCompleted(c.Request.Context(), ownerID, c.Param("id"), c.Param("milestoneId"), completed)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

// Delete handles DELETE /projects/:id/milestones/:milestoneId.
func (h *MilestoneHandler) Delete(c *gin.Context) {
	ownerID := c.GetString("user_id")

	err := h.projects.DeleteMilestone(c.Request.Context(), ownerID, c.Param("id"), c.Param("milestoneId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Milestone deleted"})
}
