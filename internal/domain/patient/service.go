package patient

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/patientdesk/patientdesk/internal/platform/apperr"
	"github.com/patientdesk/patientdesk/internal/platform/auth"
)

type Service struct {
	records RecordRepository
}

func NewService(records RecordRepository) *Service {
	return &Service{records: records}
}

// reservedKeys are extension keys that would shadow trusted columns. They
// are dropped rather than trusted; created_by in particular is always
// server-assigned.
var reservedKeys = []string{"id", "name", "age", "condition", "created_by", "createdBy", "created_at", "updated_at"}

func stripReserved(ext map[string]interface{}) {
	for _, k := range reservedKeys {
		delete(ext, k)
	}
}

type CreateParams struct {
	Name       string
	Age        int
	Condition  string
	Extensions map[string]interface{}
}

func (s *Service) Create(ctx context.Context, ident auth.Identity, p CreateParams) (*Record, error) {
	if p.Name == "" || p.Age <= 0 {
		return nil, fmt.Errorf("%w: name and age are required", apperr.ErrValidation)
	}
	stripReserved(p.Extensions)

	rec := &Record{
		Name:       p.Name,
		Age:        p.Age,
		Condition:  p.Condition,
		CreatedBy:  ident.ID,
		Extensions: p.Extensions,
	}
	if err := s.records.Create(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// scopeRead narrows a search filter to the caller's visibility: admins see
// everything, doctors only records they created, patients only their own
// record. A patient supplying any other id, or any name filter, is a scope
// violation rather than an empty result.
func scopeRead(ident auth.Identity, f Filter) (Filter, error) {
	switch ident.Role {
	case auth.RoleAdmin:
		return f, nil
	case auth.RoleDoctor:
		f.CreatedBy = ident.ID
		return f, nil
	case auth.RolePatient:
		if f.ID != uuid.Nil && f.ID != ident.ID {
			return Filter{}, fmt.Errorf("%w: patients can only view their own record", apperr.ErrForbidden)
		}
		if f.Name != "" {
			return Filter{}, fmt.Errorf("%w: patients cannot search records", apperr.ErrForbidden)
		}
		return Filter{ID: ident.ID}, nil
	default:
		return Filter{}, fmt.Errorf("%w: unknown role %q", apperr.ErrForbidden, ident.Role)
	}
}

func (s *Service) List(ctx context.Context, ident auth.Identity, f Filter, limit, offset int) ([]*Record, int, error) {
	scoped, err := scopeRead(ident, f)
	if err != nil {
		return nil, 0, err
	}
	return s.records.Search(ctx, scoped, limit, offset)
}

func (s *Service) Get(ctx context.Context, ident auth.Identity, id uuid.UUID) (*Record, error) {
	scoped, err := scopeRead(ident, Filter{ID: id})
	if err != nil {
		return nil, err
	}
	rec, err := s.records.GetByID(ctx, scoped.ID)
	if err != nil {
		return nil, err
	}
	// Out-of-scope lookups read as absent, same as the list path.
	if scoped.CreatedBy != uuid.Nil && rec.CreatedBy != scoped.CreatedBy {
		return nil, fmt.Errorf("%w: patient record", apperr.ErrNotFound)
	}
	return rec, nil
}

// scopeWrite enforces the ownership rule on a single target before a
// mutation proceeds.
func (s *Service) scopeWrite(ctx context.Context, ident auth.Identity, id uuid.UUID) (*Record, error) {
	rec, err := s.records.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	switch ident.Role {
	case auth.RoleAdmin:
		return rec, nil
	case auth.RoleDoctor:
		if rec.CreatedBy != ident.ID {
			return nil, fmt.Errorf("%w: record belongs to another doctor", apperr.ErrForbidden)
		}
		return rec, nil
	default:
		return nil, fmt.Errorf("%w: role %q cannot modify patient records", apperr.ErrForbidden, ident.Role)
	}
}

func (s *Service) Update(ctx context.Context, ident auth.Identity, id uuid.UUID, upd Update) (*Record, error) {
	if _, err := s.scopeWrite(ctx, ident, id); err != nil {
		return nil, err
	}
	if upd.Name != nil && *upd.Name == "" {
		return nil, fmt.Errorf("%w: name cannot be empty", apperr.ErrValidation)
	}
	if upd.Age != nil && *upd.Age <= 0 {
		return nil, fmt.Errorf("%w: age must be positive", apperr.ErrValidation)
	}
	stripReserved(upd.Extensions)

	if err := s.records.Update(ctx, id, upd); err != nil {
		return nil, err
	}
	return s.records.GetByID(ctx, id)
}

func (s *Service) Delete(ctx context.Context, ident auth.Identity, id uuid.UUID) error {
	if ident.Role != auth.RoleAdmin {
		return fmt.Errorf("%w: only admins can delete patient records", apperr.ErrForbidden)
	}
	return s.records.Delete(ctx, id)
}
