package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/habitloop/habitloop-backend/internal/logger"
	"github.com/habitloop/habitloop-backend/internal/services"
)

type InsightHandler struct {
	log        *logger.Logger
	insightSvc services.InsightService
}

func NewInsightHandler(log *logger.Logger, insightSvc services.InsightService) *InsightHandler {
	return &InsightHandler{
		log:        log.With("handler", "InsightHandler"),
		insightSvc: insightSvc,
	}
}

// GET /api/insights
func (h *InsightHandler) Get(c *gin.Context) {
	insights, err := h.insightSvc.Get(c.Request.Context())
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "insights_failed", err)
		return
	}
	RespondOK(c, gin.H{"insights": insights})
}
