package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/habitloop/habitloop-backend/internal/analytics"
	"github.com/habitloop/habitloop-backend/internal/logger"
	"github.com/habitloop/habitloop-backend/internal/services"
)

type HeatmapHandler struct {
	log        *logger.Logger
	heatmapSvc services.HeatmapService
}

func NewHeatmapHandler(log *logger.Logger, heatmapSvc services.HeatmapService) *HeatmapHandler {
	return &HeatmapHandler{
		log:        log.With("handler", "HeatmapHandler"),
		heatmapSvc: heatmapSvc,
	}
}

// GET /api/heatmap?type=mood|activity|sentiment&range=30
func (h *HeatmapHandler) Get(c *gin.Context) {
	heatmapType := c.DefaultQuery("type", analytics.HeatmapMood)
	switch heatmapType {
	case analytics.HeatmapMood, analytics.HeatmapActivity, analytics.HeatmapSentiment:
	default:
		RespondError(c, http.StatusBadRequest, "invalid_query", fmt.Errorf("type must be mood, activity or sentiment"))
		return
	}
	rangeDays := 30
	if raw := c.Query("range"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > 365 {
			RespondError(c, http.StatusBadRequest, "invalid_query", fmt.Errorf("range must be between 1 and 365"))
			return
		}
		rangeDays = n
	}
	result, err := h.heatmapSvc.Get(c.Request.Context(), heatmapType, rangeDays)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "heatmap_failed", err)
		return
	}
	RespondOK(c, gin.H{"type": heatmapType, "range": rangeDays, "data": result})
}
