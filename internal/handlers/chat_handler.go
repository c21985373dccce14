package handlers

import (
	"net/http"
	"strconv"

	"family-backend/internal/auth"
	"family-backend/internal/models"
	"family-backend/internal/services"
	"family-backend/internal/ws"
)

type ChatHandler struct {
	Chat *services.ChatService
	Hub  *ws.Hub
}

func NewChatHandler(chat *services.ChatService, hub *ws.Hub) *ChatHandler {
	return &ChatHandler{Chat: chat, Hub: hub}
}

// requireMember resolves the caller's linked family member, which chat
// needs as the sender identity.
func requireMember(w http.ResponseWriter, r *http.Request) (models.MemberID, bool) {
	identity := auth.FromContext(r.Context())
	if identity.MemberID == nil {
		writeJSON(w, http.StatusForbidden, errorResponse{Error: "account is not linked to a family member"})
		return 0, false
	}
	return *identity.MemberID, true
}

// List returns the caller's visible unexpired messages
func (h *ChatHandler) List(w http.ResponseWriter, r *http.Request) {
	memberID, ok := requireMember(w, r)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	messages, err := h.Chat.List(r.Context(), memberID, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	if messages == nil {
		messages = []models.ChatMessage{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"messages": messages})
}

// Post stores a message and fans it out to connected clients
func (h *ChatHandler) Post(w http.ResponseWriter, r *http.Request) {
	memberID, ok := requireMember(w, r)
	if !ok {
		return
	}

	var req models.SendChatMessageRequest
	if !decodeBody(w, r, &req) {
		return
	}

	msg, err := h.Chat.Post(r.Context(), memberID, &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, msg)
}

// Websocket upgrades the connection for realtime message delivery
func (h *ChatHandler) Websocket(w http.ResponseWriter, r *http.Request) {
	memberID, ok := requireMember(w, r)
	if !ok {
		return
	}
	h.Hub.Serve(w, r, memberID)
}
