package db

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/patientdesk/patientdesk/internal/platform/apperr"
)

func TestMapError_Nil(t *testing.T) {
	if err := MapError(nil); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
}

func TestMapError_NoRows(t *testing.T) {
	if err := MapError(pgx.ErrNoRows); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestMapError_UniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "users_username_key"}
	err := MapError(pgErr)
	if !errors.Is(err, apperr.ErrDuplicate) {
		t.Errorf("expected ErrDuplicate, got %v", err)
	}
}

func TestMapError_Other(t *testing.T) {
	err := MapError(errors.New("connection refused"))
	if !errors.Is(err, apperr.ErrStorage) {
		t.Errorf("expected ErrStorage, got %v", err)
	}
}
