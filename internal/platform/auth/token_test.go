package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/patientdesk/patientdesk/internal/platform/apperr"
)

func testIdentity() Identity {
	return Identity{ID: uuid.New(), Username: "drA", Role: RoleDoctor}
}

func TestIssueAndVerify(t *testing.T) {
	svc := NewTokenService([]byte("test-secret"))
	id := testIdentity()

	raw, err := svc.Issue(id)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	got, err := svc.Verify(raw)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if got.ID != id.ID || got.Username != id.Username || got.Role != id.Role {
		t.Errorf("decoded identity %+v, want %+v", got, id)
	}
}

func TestVerify_Expired(t *testing.T) {
	svc := NewTokenService([]byte("test-secret"))
	raw, err := svc.Issue(testIdentity())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	// Move the clock past the one-hour expiry.
	svc.now = func() time.Time { return time.Now().Add(TokenTTL + time.Minute) }

	_, err = svc.Verify(raw)
	if !errors.Is(err, apperr.ErrUnauthenticated) {
		t.Errorf("expected ErrUnauthenticated for expired token, got %v", err)
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	raw, err := NewTokenService([]byte("secret-a")).Issue(testIdentity())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	_, err = NewTokenService([]byte("secret-b")).Verify(raw)
	if !errors.Is(err, apperr.ErrUnauthenticated) {
		t.Errorf("expected ErrUnauthenticated for wrong secret, got %v", err)
	}
}

func TestVerify_Garbage(t *testing.T) {
	svc := NewTokenService([]byte("test-secret"))
	for _, raw := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := svc.Verify(raw); !errors.Is(err, apperr.ErrUnauthenticated) {
			t.Errorf("Verify(%q): expected ErrUnauthenticated, got %v", raw, err)
		}
	}
}

func TestVerify_UnknownRole(t *testing.T) {
	svc := NewTokenService([]byte("test-secret"))
	raw, err := svc.Issue(Identity{ID: uuid.New(), Username: "x", Role: Role("superuser")})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := svc.Verify(raw); !errors.Is(err, apperr.ErrUnauthenticated) {
		t.Errorf("expected ErrUnauthenticated for unknown role, got %v", err)
	}
}
