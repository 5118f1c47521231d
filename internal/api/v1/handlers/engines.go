package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"scamshield/internal/api/v1/dto"
	"scamshield/internal/app/engine"
)

// EnginesHandler reports configured engines and their probed availability
type EnginesHandler struct {
	orchestrator *engine.Orchestrator
}

// NewEnginesHandler creates a new engines handler
func NewEnginesHandler(orchestrator *engine.Orchestrator) *EnginesHandler {
	return &EnginesHandler{orchestrator: orchestrator}
}

// List handles GET /api/v1/engines
func (h *EnginesHandler) List(c *gin.Context) {
	statuses := h.orchestrator.ProbeAll(c.Request.Context())

	out := make([]dto.EngineStatusResponse, 0, len(statuses))
	for _, name := range h.orchestrator.EngineNames() {
		status, ok := statuses[name]
		if !ok {
			continue
		}
		out = append(out, dto.EngineStatusResponse{
			Name:        name,
			Available:   status.Available,
			Accelerated: status.Accelerated,
			Detail:      status.Detail,
			CheckedAt:   status.CheckedAt,
		})
	}

	c.JSON(http.StatusOK, gin.H{"engines": out})
}
