package identity

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/patientdesk/patientdesk/internal/platform/apperr"
	"github.com/patientdesk/patientdesk/internal/platform/auth"
)

type Service struct {
	users  UserRepository
	tokens *auth.TokenService
}

func NewService(users UserRepository, tokens *auth.TokenService) *Service {
	return &Service{users: users, tokens: tokens}
}

type RegisterParams struct {
	Username string    `json:"username"`
	Password string    `json:"password"`
	Role     auth.Role `json:"role"`
}

// Register creates a user with a fixed role and a bcrypt-hashed credential.
// A duplicate username surfaces as ErrDuplicate.
func (s *Service) Register(ctx context.Context, p RegisterParams) (*User, error) {
	if p.Username == "" || p.Password == "" || p.Role == "" {
		return nil, fmt.Errorf("%w: username, password and role are required", apperr.ErrValidation)
	}
	if !auth.ValidRole(p.Role) {
		return nil, fmt.Errorf("%w: invalid role %q", apperr.ErrValidation, p.Role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(p.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &User{Username: p.Username, Role: p.Role, PasswordHash: string(hash)}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Login checks the credential and issues a bearer token. Unknown usernames
// and wrong passwords fail identically so the response does not leak which
// accounts exist.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", fmt.Errorf("%w: username and password are required", apperr.ErrValidation)
	}

	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return "", fmt.Errorf("%w: invalid credentials", apperr.ErrValidation)
		}
		return "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return "", fmt.Errorf("%w: invalid credentials", apperr.ErrValidation)
	}

	return s.tokens.Issue(u.Identity())
}
