// Package identity is the credential store: user accounts keyed by username
// with a fixed role and a bcrypt credential hash, plus the register/login
// operations that anchor the token service.
package identity

import (
	"time"

	"github.com/google/uuid"

	"github.com/patientdesk/patientdesk/internal/platform/auth"
)

// User maps to the users table. The password hash never serializes.
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	Role         auth.Role `db:"role" json:"role"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// Identity returns the auth principal this user authenticates as.
func (u *User) Identity() auth.Identity {
	return auth.Identity{ID: u.ID, Username: u.Username, Role: u.Role}
}
