package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"talentdash/internal/api/middleware"
	"talentdash/internal/store"
)

// DashboardHandler serves the headline stats and the activity feed.
type DashboardHandler struct {
	store store.Store
}

// NewDashboardHandler builds the dashboard handler.
func NewDashboardHandler(st store.Store) *DashboardHandler {
	return &DashboardHandler{store: st}
}

// Stats returns the aggregate counters shown on the dashboard.
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.store.Stats(c.Request.Context())
	if err != nil {
		middleware.LoggerFromContext(c).Error("load stats failed", slog.Any("error", err))
		Internal(c, "failed to load stats")
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Activities returns the most recent activity entries, newest first.
func (h *DashboardHandler) Activities(c *gin.Context) {
	limitStr := c.DefaultQuery("limit", "10")
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	activities, err := h.store.ListActivities(c.Request.Context(), limit)
	if err != nil {
		middleware.LoggerFromContext(c).Error("list activities failed", slog.Any("error", err))
		Internal(c, "failed to list activities")
		return
	}
	c.JSON(http.StatusOK, activities)
}
