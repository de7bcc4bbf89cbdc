package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/chronoline/backend/internal/pkg/logger"
	"github.com/chronoline/backend/internal/repos"
	"github.com/chronoline/backend/internal/types"
)

type eventQueryParams struct {
	StartSeconds  *int64  `form:"start"`
	EndSeconds    *int64  `form:"end"`
	Category      *string `form:"category"`
	MinImportance *int    `form:"min_importance"`
	Search        *string `form:"search"`
	Limit         int     `form:"limit,default=1000" binding:"omitempty,min=1,max=100000"`
	Offset        int     `form:"offset" binding:"omitempty,min=0"`
}

// EventResponse is an event joined with its citations and primary location.
type EventResponse struct {
	types.Event
	Sources  []*types.EventSource `json:"sources"`
	Location *types.EventLocation `json:"location,omitempty"`
}

type EventHandler struct {
	events    repos.EventRepo
	sources   repos.EventSourceRepo
	locations repos.EventLocationRepo
	log       *logger.Logger
}

func NewEventHandler(
	events repos.EventRepo,
	sources repos.EventSourceRepo,
	locations repos.EventLocationRepo,
	baseLog *logger.Logger,
) *EventHandler {
	return &EventHandler{
		events:    events,
		sources:   sources,
		locations: locations,
		log:       baseLog.With("handler", "EventHandler"),
	}
}

func (h *EventHandler) List(c *gin.Context) {
	var params eventQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_query", err)
		return
	}

	rows, err := h.events.List(c.Request.Context(), nil, repos.EventQuery{
		StartSeconds:  params.StartSeconds,
		EndSeconds:    params.EndSeconds,
		Category:      params.Category,
		MinImportance: params.MinImportance,
		Search:        params.Search,
		Limit:         params.Limit,
		Offset:        params.Offset,
	})
	if err != nil {
		h.log.Error("Failed to list events", "error", err)
		RespondError(c, http.StatusInternalServerError, "events_list_failed", err)
		return
	}
	RespondOK(c, gin.H{"events": rows, "count": len(rows)})
}

func (h *EventHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_event_id", err)
		return
	}

	ctx := c.Request.Context()
	event, err := h.events.GetByID(ctx, nil, id)
	if err != nil {
		h.log.Error("Failed to get event", "id", id, "error", err)
		RespondError(c, http.StatusInternalServerError, "event_get_failed", err)
		return
	}
	if event == nil {
		RespondError(c, http.StatusNotFound, "event_not_found", errors.New("event not found"))
		return
	}

	sources, err := h.sources.GetByEventID(ctx, nil, id)
	if err != nil {
		h.log.Error("Failed to get event sources", "id", id, "error", err)
		RespondError(c, http.StatusInternalServerError, "event_sources_failed", err)
		return
	}
	location, err := h.locations.GetPrimaryByEventID(ctx, nil, id)
	if err != nil {
		h.log.Error("Failed to get event location", "id", id, "error", err)
		RespondError(c, http.StatusInternalServerError, "event_location_failed", err)
		return
	}

	RespondOK(c, EventResponse{Event: *event, Sources: sources, Location: location})
}
