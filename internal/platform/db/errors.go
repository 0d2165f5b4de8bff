package db

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/patientdesk/patientdesk/internal/platform/apperr"
)

// pgUniqueViolation is the PostgreSQL error code for a unique constraint hit.
const pgUniqueViolation = "23505"

// MapError translates a pgx error into the shared taxonomy: no rows becomes
// NotFound, unique violations become Duplicate, everything else surfaces as
// StorageUnavailable. Repositories call this on every storage failure so
// nothing is silently swallowed.
func MapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return fmt.Errorf("%w: %s", apperr.ErrDuplicate, pgErr.ConstraintName)
	}
	return fmt.Errorf("%w: %v", apperr.ErrStorage, err)
}
