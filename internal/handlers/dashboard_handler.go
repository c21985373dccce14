package handlers

import (
	"net/http"

	"family-backend/internal/auth"
	"family-backend/internal/services"
)

type DashboardHandler struct {
	Dashboard *services.DashboardService
}

func NewDashboardHandler(dashboard *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{Dashboard: dashboard}
}

// Stats returns the aggregate dashboard counters
func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	identity := auth.FromContext(r.Context())

	stats, err := h.Dashboard.Stats(r.Context(), identity.MemberID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
