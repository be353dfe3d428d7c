package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/habitloop/habitloop-backend/internal/logger"
	"github.com/habitloop/habitloop-backend/internal/services"
)

type GoalHandler struct {
	log     *logger.Logger
	goalSvc services.GoalService
}

func NewGoalHandler(log *logger.Logger, goalSvc services.GoalService) *GoalHandler {
	return &GoalHandler{
		log:     log.With("handler", "GoalHandler"),
		goalSvc: goalSvc,
	}
}

// GET /api/goals?active=true
func (h *GoalHandler) List(c *gin.Context) {
	activeOnly := c.Query("active") == "true"
	goals, err := h.goalSvc.List(c.Request.Context(), activeOnly)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "list_failed", err)
		return
	}
	RespondOK(c, gin.H{"goals": goals})
}

// POST /api/goals
func (h *GoalHandler) Create(c *gin.Context) {
	var input services.CreateGoalInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	goal, err := h.goalSvc.Create(c.Request.Context(), input)
	if err != nil {
		RespondServiceError(c, "create_failed", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"goal": goal})
}

// PUT /api/goals/:id
func (h *GoalHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", fmt.Errorf("invalid goal id"))
		return
	}
	var input services.UpdateGoalInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	goal, err := h.goalSvc.Update(c.Request.Context(), id, input)
	if err != nil {
		RespondServiceError(c, "update_failed", err)
		return
	}
	RespondOK(c, gin.H{"goal": goal})
}

// DELETE /api/goals/:id
func (h *GoalHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", fmt.Errorf("invalid goal id"))
		return
	}
	if err := h.goalSvc.Delete(c.Request.Context(), id); err != nil {
		RespondError(c, http.StatusInternalServerError, "delete_failed", err)
		return
	}
	c.Status(http.StatusNoContent)
}
