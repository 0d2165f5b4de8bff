package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{ErrValidation, http.StatusBadRequest},
		{ErrDuplicate, http.StatusBadRequest},
		{ErrUnauthenticated, http.StatusUnauthorized},
		{ErrForbidden, http.StatusForbidden},
		{ErrNotFound, http.StatusNotFound},
		{ErrStorage, http.StatusInternalServerError},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := Status(tc.err); got != tc.want {
			t.Errorf("Status(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}

func TestStatus_WrappedError(t *testing.T) {
	err := fmt.Errorf("%w: name and age are required", ErrValidation)
	if got := Status(err); got != http.StatusBadRequest {
		t.Errorf("expected 400 for wrapped validation error, got %d", got)
	}
}

func TestHTTP(t *testing.T) {
	he := HTTP(fmt.Errorf("%w: appointment", ErrNotFound))
	if he.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", he.Code)
	}
	msg, ok := he.Message.(string)
	if !ok || msg == "" {
		t.Errorf("expected non-empty message, got %v", he.Message)
	}
}
