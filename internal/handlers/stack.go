package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/habitloop/habitloop-backend/internal/logger"
	"github.com/habitloop/habitloop-backend/internal/services"
)

type StackHandler struct {
	log      *logger.Logger
	stackSvc services.StackService
}

func NewStackHandler(log *logger.Logger, stackSvc services.StackService) *StackHandler {
	return &StackHandler{
		log:      log.With("handler", "StackHandler"),
		stackSvc: stackSvc,
	}
}

// GET /api/stacks/suggestions
func (h *StackHandler) Suggestions(c *gin.Context) {
	suggestions, err := h.stackSvc.Suggestions(c.Request.Context())
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "suggestions_failed", err)
		return
	}
	RespondOK(c, gin.H{"suggestions": suggestions})
}

// GET /api/stacks
func (h *StackHandler) List(c *gin.Context) {
	stacks, err := h.stackSvc.ListActive(c.Request.Context())
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "list_failed", err)
		return
	}
	RespondOK(c, gin.H{"stacks": stacks})
}

// POST /api/stacks
func (h *StackHandler) Create(c *gin.Context) {
	var input services.CreateStackInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	stack, err := h.stackSvc.Create(c.Request.Context(), input)
	if err != nil {
		RespondServiceError(c, "create_failed", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"stack": stack})
}

// DELETE /api/stacks/:id
func (h *StackHandler) Deactivate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", fmt.Errorf("invalid stack id"))
		return
	}
	if err := h.stackSvc.Deactivate(c.Request.Context(), id); err != nil {
		RespondError(c, http.StatusInternalServerError, "deactivate_failed", err)
		return
	}
	c.Status(http.StatusNoContent)
}
