package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/habitloop/habitloop-backend/internal/analytics"
	"github.com/habitloop/habitloop-backend/internal/logger"
	"github.com/habitloop/habitloop-backend/internal/services"
)

type StatsHandler struct {
	log      *logger.Logger
	statsSvc services.StatsService
}

func NewStatsHandler(log *logger.Logger, statsSvc services.StatsService) *StatsHandler {
	return &StatsHandler{
		log:      log.With("handler", "StatsHandler"),
		statsSvc: statsSvc,
	}
}

// GET /api/stats
func (h *StatsHandler) Get(c *gin.Context) {
	filter, err := entryFilterFromQuery(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_query", err)
		return
	}
	groupBy := c.DefaultQuery("group_by", analytics.GroupByDay)
	switch groupBy {
	case analytics.GroupByDay, analytics.GroupByWeek, analytics.GroupByMonth:
	default:
		RespondError(c, http.StatusBadRequest, "invalid_query", fmt.Errorf("group_by must be day, week or month"))
		return
	}
	result, err := h.statsSvc.Get(c.Request.Context(), filter, groupBy)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "stats_failed", err)
		return
	}
	RespondOK(c, result)
}
