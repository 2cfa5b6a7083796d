package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Sreekanth-25/Project-Tracker-Application/internal/model"
	"github.com/Sreekanth-25/Project-Tracker-Application/internal/service"
	"github.com/Sreekanth-25/Project-Tracker-Application/pkg/metrics"
)

type ProjectHandler struct {
	projects *service.ProjectService
	logger   *zap.Logger
}

func NewProjectHandler(projects *service.ProjectService, logger *zap.Logger) *ProjectHandler {
	return &ProjectHandler{projects: projects, logger: logger}
}

// List handles GET /projects.
func (h *ProjectHandler) List(c *gin.Context) {
	ownerID := c.GetString("user_id")

	projects, err := h.projects.List(c.Request.Context(), ownerID)
	if err != nil {
		h.logger.Error("Failed to list projects", zap.String("owner_id", ownerID), zap.Error(err))
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, projects)
}

// Create handles POST /projects.
func (h *ProjectHandler) Create(c *gin.Context) {
	var req model.ProjectCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	ownerID := c.GetString("user_id")
	p, err := h.projects.Create(c.Request.Context(), ownerID, req)
	if err != nil {
		h.logger.Error("Failed to create project", zap.String("owner_id", ownerID), zap.Error(err))
		respondError(c, err)
		return
	}

	metrics.IncrementEntityCreate("project")
	c.JSON(http.StatusOK, p)
}

// Get handles GET /projects/:id.
func (h *ProjectHandler) Get(c *gin.Context) {
	ownerID := c.GetString("user_id")

	p, err := h.projects.Get(c.Request.Context(), ownerID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// Update handles PUT /projects/:id.
func (h *ProjectHandler) Update(c *gin.Context) {
	var patch model.ProjectUpdate
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	ownerID := c.GetString("user_id")
	p, err := h.projects.Update(c.Request.Context(), ownerID, c.Param("id"), patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// Delete handles DELETE /projects/:id.
func (h *ProjectHandler) Delete(c *gin.Context) {
	ownerID := c.GetString("user_id")

	if err := h.projects.Delete(c.Request.Context(), ownerID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Project deleted"})
}
