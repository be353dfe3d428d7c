package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/habitloop/habitloop-backend/internal/logger"
	"github.com/habitloop/habitloop-backend/internal/repos"
	"github.com/habitloop/habitloop-backend/internal/services"
)

type EntryHandler struct {
	log      *logger.Logger
	entrySvc services.EntryService
}

func NewEntryHandler(log *logger.Logger, entrySvc services.EntryService) *EntryHandler {
	return &EntryHandler{
		log:      log.With("handler", "EntryHandler"),
		entrySvc: entrySvc,
	}
}

type parseRequest struct {
	Text string `json:"text"`
}

// POST /api/entries/parse
// Classify free text without persisting anything.
func (h *EntryHandler) Parse(c *gin.Context) {
	var req parseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	if req.Text == "" {
		RespondError(c, http.StatusBadRequest, "invalid_body", fmt.Errorf("text is required"))
		return
	}
	record := h.entrySvc.Parse(c.Request.Context(), req.Text)
	RespondOK(c, gin.H{"record": record})
}

// POST /api/entries
func (h *EntryHandler) Create(c *gin.Context) {
	var input services.CreateEntryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	entry, err := h.entrySvc.Create(c.Request.Context(), input)
	if err != nil {
		RespondServiceError(c, "create_failed", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"entry": entry})
}

func entryFilterFromQuery(c *gin.Context) (repos.EntryFilter, error) {
	filter := repos.EntryFilter{
		Activity: c.Query("activity"),
		Category: c.Query("category"),
		Mood:     c.Query("mood"),
	}
	if raw := c.Query("start_date"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return filter, fmt.Errorf("invalid start_date: %w", err)
		}
		filter.StartDate = &t
	}
	if raw := c.Query("end_date"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return filter, fmt.Errorf("invalid end_date: %w", err)
		}
		filter.EndDate = &t
	}
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return filter, fmt.Errorf("invalid limit")
		}
		filter.Limit = n
	}
	if raw := c.Query("offset"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return filter, fmt.Errorf("invalid offset")
		}
		filter.Offset = n
	}
	return filter, nil
}

// GET /api/entries
func (h *EntryHandler) List(c *gin.Context) {
	filter, err := entryFilterFromQuery(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_query", err)
		return
	}
	page, err := h.entrySvc.List(c.Request.Context(), filter)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "list_failed", err)
		return
	}
	RespondOK(c, page)
}

// GET /api/entries/export
// Stream the filtered entry history as a CSV download.
func (h *EntryHandler) Export(c *gin.Context) {
	filter, err := entryFilterFromQuery(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_query", err)
		return
	}
	data, err := h.entrySvc.ExportCSV(c.Request.Context(), filter)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "export_failed", err)
		return
	}
	filename := fmt.Sprintf("habit-entries-%s.csv", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv", data)
}
