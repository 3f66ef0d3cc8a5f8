package handler

import (
	"net/http"

	"github.com/mcoot/classquiz/internal/live"
)

// EventsHandler streams live dashboard events
type EventsHandler struct {
	hubManager *live.HubManager
}

// NewEventsHandler creates a new events handler
func NewEventsHandler(hubManager *live.HubManager) *EventsHandler {
	return &EventsHandler{
		hubManager: hubManager,
	}
}

// Stream handles GET /api/v1/students/events
func (h *EventsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	key := live.GroupKey(r.URL.Query().Get("classroom"))
	hub := h.hubManager.GetOrCreateHub(key)
	live.ServeSSE(w, r, hub, r.RemoteAddr)
}
