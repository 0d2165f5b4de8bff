// Package auth carries the token service, bearer-token middleware, and the
// coarse role gate. Per-record ownership scoping lives with the domain
// services; this package only establishes who the caller is and which roles
// an endpoint admits.
package auth

import (
	"context"

	"github.com/google/uuid"
)

// Role is the fixed role assigned to a user at registration.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleDoctor  Role = "doctor"
	RolePatient Role = "patient"
)

// ValidRole reports whether r is one of the three known roles.
func ValidRole(r Role) bool {
	return r == RoleAdmin || r == RoleDoctor || r == RolePatient
}

// Identity is the authenticated principal decoded from a bearer token.
type Identity struct {
	ID       uuid.UUID
	Username string
	Role     Role
}

type contextKey string

const identityKey contextKey = "identity"

// WithIdentity returns a context carrying the authenticated identity.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFromContext extracts the authenticated identity set by the bearer
// middleware. ok is false on unauthenticated requests.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}
