package handlers

import (
	"net/http"
	"strconv"

	"family-backend/internal/models"
	"family-backend/internal/services"

	"github.com/gorilla/mux"
)

type FamilyMemberHandler struct {
	Members *services.FamilyMemberService
}

func NewFamilyMemberHandler(members *services.FamilyMemberService) *FamilyMemberHandler {
	return &FamilyMemberHandler{Members: members}
}

func memberIDVar(w http.ResponseWriter, r *http.Request) (models.MemberID, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid member ID"})
		return 0, false
	}
	return models.MemberID(id), true
}

// List returns the whole family registry
func (h *FamilyMemberHandler) List(w http.ResponseWriter, r *http.Request) {
	members, err := h.Members.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if members == nil {
		members = []models.FamilyMember{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"members": members,
		"genders": models.Genders,
	})
}

// Get returns one member
func (h *FamilyMemberHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := memberIDVar(w, r)
	if !ok {
		return
	}

	m, err := h.Members.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

// Create registers a new family member
func (h *FamilyMemberHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateFamilyMemberRequest
	if !decodeBody(w, r, &req) {
		return
	}

	m, err := h.Members.Create(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, m)
}

// Update edits a family member
func (h *FamilyMemberHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := memberIDVar(w, r)
	if !ok {
		return
	}

	var req models.UpdateFamilyMemberRequest
	if !decodeBody(w, r, &req) {
		return
	}

	m, err := h.Members.Update(r.Context(), id, &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

// Delete removes a family member
func (h *FamilyMemberHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := memberIDVar(w, r)
	if !ok {
		return
	}

	if err := h.Members.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

// Avatar replaces a member's profile image
func (h *FamilyMemberHandler) Avatar(w http.ResponseWriter, r *http.Request) {
	id, ok := memberIDVar(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid multipart form"})
		return
	}

	file, header, err := r.FormFile("avatar")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "avatar file is required"})
		return
	}
	defer file.Close()

	m, err := h.Members.SetAvatar(r.Context(), id,
		header.Filename, header.Header.Get("Content-Type"), file, header.Size)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

// Relations returns the immediate family of one member
func (h *FamilyMemberHandler) Relations(w http.ResponseWriter, r *http.Request) {
	id, ok := memberIDVar(w, r)
	if !ok {
		return
	}

	rel, err := h.Members.Relations(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rel)
}
