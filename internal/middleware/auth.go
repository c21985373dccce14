package middleware

import (
	"context"
	"net/http"
	"strings"

	"family-backend/internal/auth"
	"family-backend/internal/models"
)

type userGetter interface {
	Get(ctx context.Context, id int) (*models.User, error)
}

// AuthMiddleware resolves a per-request identity from the Authorization
// header. There is no ambient admin; every request carries its own identity.
type AuthMiddleware struct {
	JWT   *auth.JWTManager
	Users userGetter
}

func NewAuthMiddleware(jwtManager *auth.JWTManager, users userGetter) *AuthMiddleware {
	return &AuthMiddleware{JWT: jwtManager, Users: users}
}

// Resolve attaches the caller's identity to the request context. Requests
// without a valid token proceed as anonymous; route guards decide access.
func (m *AuthMiddleware) Resolve(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity := auth.Anonymous()

		header := r.Header.Get("Authorization")
		if token, ok := strings.CutPrefix(header, "Bearer "); ok {
			if claims, err := m.JWT.Verify(token); err == nil {
				if u, err := m.Users.Get(r.Context(), claims.UserID); err == nil && u.Status == models.UserStatusApproved {
					role := auth.RoleUser
					if u.IsAdmin {
						role = auth.RoleAdmin
					}
					identity = auth.Identity{Role: role, UserID: u.ID, MemberID: u.LinkedMemberID}
				}
			}
		}

		next.ServeHTTP(w, r.WithContext(auth.WithIdentity(r.Context(), identity)))
	})
}

// RequireAuth rejects anonymous requests
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !auth.FromContext(r.Context()).Authenticated() {
			http.Error(w, "Authentication required", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin rejects non-admin requests
func (m *AuthMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := auth.FromContext(r.Context())
		if !id.Authenticated() {
			http.Error(w, "Authentication required", http.StatusUnauthorized)
			return
		}
		if !id.Admin() {
			http.Error(w, "Admin access required", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
