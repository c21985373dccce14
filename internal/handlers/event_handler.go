package handlers

import (
	"net/http"
	"strconv"

	"family-backend/internal/auth"
	"family-backend/internal/models"
	"family-backend/internal/services"

	"github.com/gorilla/mux"
)

type EventHandler struct {
	Events *services.EventService
}

func NewEventHandler(events *services.EventService) *EventHandler {
	return &EventHandler{Events: events}
}

func eventIDVar(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid event ID"})
		return 0, false
	}
	return id, true
}

// List returns all calendar events
func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	events, err := h.Events.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if events == nil {
		events = []models.Event{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"events": events,
		"types":  models.EventTypes,
	})
}

// Create adds a calendar event owned by the caller
func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateEventRequest
	if !decodeBody(w, r, &req) {
		return
	}

	identity := auth.FromContext(r.Context())
	e, err := h.Events.Create(r.Context(), identity.UserID, &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, e)
}

// Update edits an event; only its creator or an admin may
func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := eventIDVar(w, r)
	if !ok {
		return
	}

	existing, err := h.Events.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	identity := auth.FromContext(r.Context())
	if !identity.Admin() && existing.CreatedBy != identity.UserID {
		writeJSON(w, http.StatusForbidden, errorResponse{Error: "not the event owner"})
		return
	}

	var req models.UpdateEventRequest
	if !decodeBody(w, r, &req) {
		return
	}

	e, err := h.Events.Update(r.Context(), id, &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

// Delete removes an event; only its creator or an admin may
func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := eventIDVar(w, r)
	if !ok {
		return
	}

	existing, err := h.Events.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	identity := auth.FromContext(r.Context())
	if !identity.Admin() && existing.CreatedBy != identity.UserID {
		writeJSON(w, http.StatusForbidden, errorResponse{Error: "not the event owner"})
		return
	}

	if err := h.Events.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}
