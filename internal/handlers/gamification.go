package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/habitloop/habitloop-backend/internal/logger"
	"github.com/habitloop/habitloop-backend/internal/services"
)

type GamificationHandler struct {
	log     *logger.Logger
	gameSvc services.GamificationService
}

func NewGamificationHandler(log *logger.Logger, gameSvc services.GamificationService) *GamificationHandler {
	return &GamificationHandler{
		log:     log.With("handler", "GamificationHandler"),
		gameSvc: gameSvc,
	}
}

// GET /api/gamification
// Recompute the full snapshot; any newly earned badges come back in
// new_badges so the client can announce them.
func (h *GamificationHandler) Get(c *gin.Context) {
	snapshot, err := h.gameSvc.Snapshot(c.Request.Context())
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "snapshot_failed", err)
		return
	}
	RespondOK(c, snapshot)
}
