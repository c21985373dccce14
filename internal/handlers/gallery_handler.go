package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"family-backend/internal/auth"
	"family-backend/internal/models"
	"family-backend/internal/services"

	"github.com/gorilla/mux"
)

// 10 MB upload cap
const maxUploadSize = 10 << 20

type GalleryHandler struct {
	Gallery *services.GalleryService
}

func NewGalleryHandler(gallery *services.GalleryService) *GalleryHandler {
	return &GalleryHandler{Gallery: gallery}
}

// ListApproved returns the public gallery
func (h *GalleryHandler) ListApproved(w http.ResponseWriter, r *http.Request) {
	images, err := h.Gallery.ListApproved(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if images == nil {
		images = []models.GalleryImage{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"images": images})
}

// ListPending returns the moderation queue (admin)
func (h *GalleryHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	images, err := h.Gallery.ListPending(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if images == nil {
		images = []models.GalleryImage{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"images": images})
}

// Upload accepts a multipart image plus an optional JSON "meta" part with
// caption and tagged member. The record is created pending.
func (h *GalleryHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid multipart form"})
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "image file is required"})
		return
	}
	defer file.Close()

	var req models.CreateGalleryImageRequest
	if meta := r.FormValue("meta"); meta != "" {
		if err := json.Unmarshal([]byte(meta), &req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid meta"})
			return
		}
	}

	identity := auth.FromContext(r.Context())
	img, err := h.Gallery.Upload(r.Context(), identity.UserID,
		header.Filename, header.Header.Get("Content-Type"), file, header.Size, &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, img)
}

// Approve publishes a pending image (admin)
func (h *GalleryHandler) Approve(w http.ResponseWriter, r *http.Request) {
	h.moderate(w, r, h.Gallery.Approve)
}

// Reject declines a pending image (admin)
func (h *GalleryHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.moderate(w, r, h.Gallery.Reject)
}

func (h *GalleryHandler) moderate(w http.ResponseWriter, r *http.Request,
	decide func(ctx context.Context, id, moderatorID int) (*models.GalleryImage, error)) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid image ID"})
		return
	}

	identity := auth.FromContext(r.Context())
	img, err := decide(r.Context(), id, identity.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, img)
}

// Delete removes an image; only the uploader or an admin may
func (h *GalleryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid image ID"})
		return
	}

	img, err := h.Gallery.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	identity := auth.FromContext(r.Context())
	if !identity.Admin() && img.UploadedBy != identity.UserID {
		writeJSON(w, http.StatusForbidden, errorResponse{Error: "not the image owner"})
		return
	}

	if err := h.Gallery.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}
