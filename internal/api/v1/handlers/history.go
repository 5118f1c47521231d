package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apierrors "scamshield/internal/api/errors"
	"scamshield/internal/api/middleware"
	"scamshield/internal/api/v1/dto"
	"scamshield/internal/app/analyzer"
	"scamshield/internal/app/repository"
)

// HistoryHandler serves the bounded in-memory history and the persisted
// report archive.
type HistoryHandler struct {
	history *analyzer.History
	store   repository.VerdictDAO
}

// NewHistoryHandler creates a new history handler
func NewHistoryHandler(history *analyzer.History, store repository.VerdictDAO) *HistoryHandler {
	return &HistoryHandler{history: history, store: store}
}

// Recent handles GET /api/v1/history
func (h *HistoryHandler) Recent(c *gin.Context) {
	entries := h.history.List()
	out := make([]dto.HistoryEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.FromHistoryEntry(e))
	}
	c.JSON(http.StatusOK, gin.H{
		"entries":  out,
		"capacity": h.history.Capacity(),
	})
}

// Archive handles GET /api/v1/history/archive, reading from the persistent
// store instead of the in-memory ring.
func (h *HistoryHandler) Archive(c *gin.Context) {
	limit := 50
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 || parsed > 500 {
			middleware.HandleError(c, apierrors.NewBadRequestError("limit must be between 1 and 500"))
			return
		}
		limit = parsed
	}

	entries, err := h.store.ListRecent(limit)
	if err != nil {
		middleware.HandleError(c, apierrors.NewInternalError("failed to read history archive"))
		return
	}

	out := make([]dto.HistoryEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.FromHistoryEntry(e))
	}
	c.JSON(http.StatusOK, gin.H{"entries": out})
}
