package handlers

import (
	"context"
	"net/http"
	"strconv"

	"family-backend/internal/services"

	"github.com/gorilla/mux"
)

type UserHandler struct {
	Users *services.UserService
}

func NewUserHandler(users *services.UserService) *UserHandler {
	return &UserHandler{Users: users}
}

// List returns all accounts
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.Users.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"users": users})
}

// Approve moves a pending account to approved
func (h *UserHandler) Approve(w http.ResponseWriter, r *http.Request) {
	h.moderate(w, r, h.Users.Approve)
}

// Reject moves a pending account to rejected
func (h *UserHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.moderate(w, r, h.Users.Reject)
}

func (h *UserHandler) moderate(w http.ResponseWriter, r *http.Request, decide func(ctx context.Context, id int) error) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid user ID"})
		return
	}

	if err := decide(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	u, err := h.Users.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}
