package handlers

import (
	"net/http"

	"family-backend/internal/models"
	"family-backend/internal/services"
)

type WishHandler struct {
	Wishes *services.WishService
}

func NewWishHandler(wishes *services.WishService) *WishHandler {
	return &WishHandler{Wishes: wishes}
}

// Send creates this year's birthday wish from the caller
func (h *WishHandler) Send(w http.ResponseWriter, r *http.Request) {
	memberID, ok := requireMember(w, r)
	if !ok {
		return
	}

	var req models.CreateWishRequest
	if !decodeBody(w, r, &req) {
		return
	}

	wish, err := h.Wishes.Send(r.Context(), memberID, &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, wish)
}

// Received lists the caller's wishes for the current year
func (h *WishHandler) Received(w http.ResponseWriter, r *http.Request) {
	memberID, ok := requireMember(w, r)
	if !ok {
		return
	}

	wishes, err := h.Wishes.Received(r.Context(), memberID)
	if err != nil {
		writeError(w, err)
		return
	}
	if wishes == nil {
		wishes = []models.Wish{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"wishes": wishes})
}

// Sent lists wishes the caller has sent
func (h *WishHandler) Sent(w http.ResponseWriter, r *http.Request) {
	memberID, ok := requireMember(w, r)
	if !ok {
		return
	}

	wishes, err := h.Wishes.Sent(r.Context(), memberID)
	if err != nil {
		writeError(w, err)
		return
	}
	if wishes == nil {
		wishes = []models.Wish{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"wishes": wishes})
}
