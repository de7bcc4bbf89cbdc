package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/chronoline/backend/internal/ingest"
	"github.com/chronoline/backend/internal/loader"
	"github.com/chronoline/backend/internal/pkg/logger"
)

type IngestHandler struct {
	runner *ingest.Runner
	log    *logger.Logger
}

func NewIngestHandler(runner *ingest.Runner, baseLog *logger.Logger) *IngestHandler {
	return &IngestHandler{runner: runner, log: baseLog.With("handler", "IngestHandler")}
}

// Ingest accepts a JSON array of candidate events or an {"events": [...]}
// envelope, runs the batch and returns the statistics record. The optional
// actor_id query parameter attributes created rows to a user.
func (h *IngestHandler) Ingest(c *gin.Context) {
	events, err := loader.LoadJSON(c.Request.Body)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_payload", err)
		return
	}

	var actorID *uuid.UUID
	if raw := c.Query("actor_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "invalid_actor_id", err)
			return
		}
		actorID = &id
	}

	stats := h.runner.IngestAll(c.Request.Context(), events, actorID)
	RespondOK(c, stats)
}
