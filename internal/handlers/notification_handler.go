package handlers

import (
	"net/http"
	"strconv"

	"family-backend/internal/auth"
	"family-backend/internal/models"
	"family-backend/internal/services"

	"github.com/gorilla/mux"
)

type NotificationHandler struct {
	Notifications *services.NotificationService
}

func NewNotificationHandler(notifications *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{Notifications: notifications}
}

// List returns the caller's notifications with the unread count
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	memberID, ok := requireMember(w, r)
	if !ok {
		return
	}

	list, err := h.Notifications.List(r.Context(), memberID)
	if err != nil {
		writeError(w, err)
		return
	}
	if list == nil {
		list = []models.Notification{}
	}

	unread, err := h.Notifications.UnreadCount(r.Context(), memberID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"notifications": list,
		"unread":        unread,
	})
}

// MarkRead flips one notification to read
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	memberID, ok := requireMember(w, r)
	if !ok {
		return
	}

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid notification ID"})
		return
	}

	if err := h.Notifications.MarkRead(r.Context(), id, memberID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

// MarkAllRead flips every unread notification for the caller
func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	memberID, ok := requireMember(w, r)
	if !ok {
		return
	}

	n, err := h.Notifications.MarkAllRead(r.Context(), memberID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "updated": n})
}

// Delete removes a notification (owner, or any as admin)
func (h *NotificationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	memberID, ok := requireMember(w, r)
	if !ok {
		return
	}

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid notification ID"})
		return
	}

	identity := auth.FromContext(r.Context())
	if err := h.Notifications.Delete(r.Context(), id, memberID, identity.Admin()); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

// Broadcast sends an admin message to every living member
func (h *NotificationHandler) Broadcast(w http.ResponseWriter, r *http.Request) {
	var req models.BroadcastRequest
	if !decodeBody(w, r, &req) {
		return
	}

	identity := auth.FromContext(r.Context())
	n, err := h.Notifications.Broadcast(r.Context(), identity.MemberID, req.Message)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{"success": true, "recipients": n})
}
