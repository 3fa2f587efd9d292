package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/talentflow/internal/services"
)

type DashboardHandler struct {
	DashboardService *services.DashboardService
}

func NewDashboardHandler(d *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{DashboardService: d}
}

func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.DashboardService.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Pipeline serves per-stage application counts, optionally for one job.
func (h *DashboardHandler) Pipeline(c *gin.Context) {
	counts, err := h.DashboardService.PipelineCounts(c.Request.Context(), c.Query("jobId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, counts)
}

func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
