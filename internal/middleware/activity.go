package middleware

import (
	"log"
	"net/http"

	"family-backend/internal/auth"
	"family-backend/internal/services"
)

// ActivityMiddleware feeds each authenticated request into the session-time
// aggregator. Tracking failures never fail the request.
type ActivityMiddleware struct {
	Activity *services.ActivityService
}

func NewActivityMiddleware(activity *services.ActivityService) *ActivityMiddleware {
	return &ActivityMiddleware{Activity: activity}
}

func (m *ActivityMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity := auth.FromContext(r.Context())
		if identity.MemberID != nil {
			if err := m.Activity.Track(r.Context(), *identity.MemberID, r.URL.Path); err != nil {
				log.Printf("Activity tracking failed for member %d: %v", *identity.MemberID, err)
			}
		}
		next.ServeHTTP(w, r)
	})
}
