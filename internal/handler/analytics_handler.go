package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Sreekanth-25/Project-Tracker-Application/internal/service"
)

type AnalyticsHandler struct {
	analytics *service.AnalyticsService
	logger    *zap.Logger
}

func NewAnalyticsHandler(analytics *service.AnalyticsService, logger *zap.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics, logger: logger}
}

// Overview handles GET /analytics/overview.
func (h *AnalyticsHandler) Overview(c *gin.Context) {
	ownerID := c.GetString("user_id")

	overview, err := h.analytics.Overview(c.Request.Context(), ownerID)
	if err != nil {
		h.logger.Error("Failed to build overview", zap.String("owner_id", ownerID), zap.Error(err))
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, overview)
}

// TimeTracking handles GET /analytics/time-tracking.
func (h *AnalyticsHandler) TimeTracking(c *gin.Context) {
	ownerID := c.GetString("user_id")

	tracking, err := h.analytics.TimeTracking(c.Request.Context(), ownerID)
	if err != nil {
		h.logger.Error("Failed to build time tracking", zap.String("owner_id", ownerID), zap.Error(err))
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tracking)
}
