package auth

import (
	"context"

	"family-backend/internal/models"
)

// Role is the caller's access level for a request. There is no global
// mutable identity; every request carries its own.
type Role int

const (
	RoleAnonymous Role = iota
	RoleUser
	RoleAdmin
)

// Identity is what the auth middleware resolves for each request.
type Identity struct {
	Role     Role
	UserID   int
	MemberID *models.MemberID // set when the account is linked to a family member
}

func Anonymous() Identity { return Identity{Role: RoleAnonymous} }

func (id Identity) Authenticated() bool { return id.Role != RoleAnonymous }
func (id Identity) Admin() bool         { return id.Role == RoleAdmin }

type contextKey struct{}

// WithIdentity attaches the resolved identity to a request context
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// FromContext returns the request identity, or anonymous when none was set
func FromContext(ctx context.Context) Identity {
	if id, ok := ctx.Value(contextKey{}).(Identity); ok {
		return id
	}
	return Anonymous()
}
