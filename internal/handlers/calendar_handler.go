package handlers

import (
	"net/http"

	"family-backend/internal/services"
)

type CalendarHandler struct {
	Occasions *services.OccasionService
}

func NewCalendarHandler(occasions *services.OccasionService) *CalendarHandler {
	return &CalendarHandler{Occasions: occasions}
}

// Feed returns the unified calendar: events plus projected birthdays and
// anniversaries.
func (h *CalendarHandler) Feed(w http.ResponseWriter, r *http.Request) {
	feed, err := h.Occasions.CalendarFeed(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"calendar": feed})
}

// Birthdays returns upcoming birthdays only
func (h *CalendarHandler) Birthdays(w http.ResponseWriter, r *http.Request) {
	entries, err := h.Occasions.UpcomingBirthdays(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"birthdays": entries})
}

// Anniversaries returns upcoming anniversaries only
func (h *CalendarHandler) Anniversaries(w http.ResponseWriter, r *http.Request) {
	entries, err := h.Occasions.UpcomingAnniversaries(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"anniversaries": entries})
}
