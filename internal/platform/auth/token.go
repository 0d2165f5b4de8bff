package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/patientdesk/patientdesk/internal/platform/apperr"
)

// TokenTTL is how long an issued token stays valid. There is no refresh;
// expired tokens require a full re-login.
const TokenTTL = time.Hour

// Claims is the token payload: the user id rides in the registered Subject.
type Claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256 bearer tokens. The signing secret
// is injected once at construction and never rotated at runtime.
type TokenService struct {
	secret []byte
	now    func() time.Time
}

func NewTokenService(secret []byte) *TokenService {
	return &TokenService{secret: secret, now: time.Now}
}

// Issue produces a signed token embedding the identity with a one-hour expiry.
func (s *TokenService) Issue(id Identity) (string, error) {
	now := s.now()
	c := Claims{
		Username: id.Username,
		Role:     string(id.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(s.secret)
}

// Verify validates the signature and expiry and decodes the identity.
// Any failure surfaces as ErrUnauthenticated.
func (s *TokenService) Verify(raw string) (Identity, error) {
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		// block alg confusion
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !tok.Valid {
		return Identity{}, fmt.Errorf("%w: invalid or expired token", apperr.ErrUnauthenticated)
	}

	uid, err := uuid.Parse(claims.Subject)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: malformed subject", apperr.ErrUnauthenticated)
	}
	role := Role(claims.Role)
	if !ValidRole(role) {
		return Identity{}, fmt.Errorf("%w: unknown role", apperr.ErrUnauthenticated)
	}
	return Identity{ID: uid, Username: claims.Username, Role: role}, nil
}
