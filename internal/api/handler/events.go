package handler

import (
	"net/http"

	"github.com/mcoot/pongarena-go/internal/api/middleware"
	"github.com/mcoot/pongarena-go/internal/push"
)

// EventsHandler attaches a player's event stream
type EventsHandler struct {
	hubManager *push.HubManager
}

// NewEventsHandler creates a new events handler
func NewEventsHandler(hubManager *push.HubManager) *EventsHandler {
	return &EventsHandler{hubManager: hubManager}
}

// Stream handles GET /api/v1/events: the long-lived SSE stream carrying
// all outbound events for the requesting player.
func (h *EventsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	playerID := middleware.GetPlayer(r.Context())
	hub := h.hubManager.GetOrCreateHub(playerID)
	push.ServeSSE(w, r, hub, playerID)
}
