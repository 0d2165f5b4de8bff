package scheduling

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/patientdesk/patientdesk/internal/platform/apperr"
	"github.com/patientdesk/patientdesk/internal/platform/auth"
)

type Service struct {
	appointments AppointmentRepository
}

func NewService(appointments AppointmentRepository) *Service {
	return &Service{appointments: appointments}
}

type RequestParams struct {
	DoctorID  uuid.UUID
	PatientID uuid.UUID
	Date      string
	Notes     *string
}

// Request books a slot or re-requests an existing one. The upsert is keyed
// by the (doctor, patient, date) triple: a collision resets the existing
// record to pending and refreshes modified_at rather than inserting a
// duplicate. The find-then-write pair is not atomic; concurrent identical
// requests are caught by the unique index and surface as a duplicate error
// instead of a second row.
func (s *Service) Request(ctx context.Context, ident auth.Identity, p RequestParams) (*Appointment, bool, error) {
	// Patients always book for themselves, whatever the body claims.
	if ident.Role == auth.RolePatient {
		p.PatientID = ident.ID
	}
	if p.DoctorID == uuid.Nil {
		return nil, false, fmt.Errorf("%w: doctor_id is required", apperr.ErrValidation)
	}
	if p.PatientID == uuid.Nil {
		return nil, false, fmt.Errorf("%w: patient_id is required", apperr.ErrValidation)
	}
	if _, err := time.Parse(DateLayout, p.Date); err != nil {
		return nil, false, fmt.Errorf("%w: date must be %s", apperr.ErrValidation, DateLayout)
	}

	existing, err := s.appointments.GetByKey(ctx, p.DoctorID, p.PatientID, p.Date)
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		appt := &Appointment{
			DoctorID:  p.DoctorID,
			PatientID: p.PatientID,
			Date:      p.Date,
			Status:    StatusPending,
			Notes:     p.Notes,
		}
		if err := s.appointments.Create(ctx, appt); err != nil {
			return nil, false, err
		}
		return appt, true, nil
	case err != nil:
		return nil, false, err
	}

	pending := StatusPending
	if err := s.appointments.Update(ctx, existing.ID, Update{Status: &pending, Notes: p.Notes}); err != nil {
		return nil, false, err
	}
	appt, err := s.appointments.GetByID(ctx, existing.ID)
	if err != nil {
		return nil, false, err
	}
	return appt, false, nil
}

// scopeRead narrows an appointment search to the caller's visibility:
// admins see everything, doctors their own schedule, patients their own
// bookings.
func scopeRead(ident auth.Identity, f Filter) (Filter, error) {
	switch ident.Role {
	case auth.RoleAdmin:
		return f, nil
	case auth.RoleDoctor:
		f.DoctorID = ident.ID
		return f, nil
	case auth.RolePatient:
		f.PatientID = ident.ID
		return f, nil
	default:
		return Filter{}, fmt.Errorf("%w: unknown role %q", apperr.ErrForbidden, ident.Role)
	}
}

func (s *Service) List(ctx context.Context, ident auth.Identity, f Filter, limit, offset int) ([]*Appointment, int, error) {
	scoped, err := scopeRead(ident, f)
	if err != nil {
		return nil, 0, err
	}
	return s.appointments.Search(ctx, scoped, limit, offset)
}

// inScope reports whether the caller may see this appointment at all.
func inScope(ident auth.Identity, a *Appointment) bool {
	switch ident.Role {
	case auth.RoleAdmin:
		return true
	case auth.RoleDoctor:
		return a.DoctorID == ident.ID
	case auth.RolePatient:
		return a.PatientID == ident.ID
	}
	return false
}

func (s *Service) Get(ctx context.Context, ident auth.Identity, id uuid.UUID) (*Appointment, error) {
	appt, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	// Out-of-scope lookups read as absent.
	if !inScope(ident, appt) {
		return nil, fmt.Errorf("%w: appointment", apperr.ErrNotFound)
	}
	return appt, nil
}

func (s *Service) Update(ctx context.Context, ident auth.Identity, id uuid.UUID, upd Update) (*Appointment, error) {
	if _, err := s.Get(ctx, ident, id); err != nil {
		return nil, err
	}
	if upd.Status != nil && !ValidStatus(*upd.Status) {
		return nil, fmt.Errorf("%w: status must be pending, confirmed or cancelled", apperr.ErrValidation)
	}
	if upd.Date != nil {
		if _, err := time.Parse(DateLayout, *upd.Date); err != nil {
			return nil, fmt.Errorf("%w: date must be %s", apperr.ErrValidation, DateLayout)
		}
	}

	if err := s.appointments.Update(ctx, id, upd); err != nil {
		return nil, err
	}
	return s.appointments.GetByID(ctx, id)
}

// Delete is allowed for admins and for the appointment's own patient.
// Doctors never delete; they cancel via an update instead.
func (s *Service) Delete(ctx context.Context, ident auth.Identity, id uuid.UUID) error {
	appt, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		return err
	}
	switch ident.Role {
	case auth.RoleAdmin:
	case auth.RolePatient:
		if appt.PatientID != ident.ID {
			return fmt.Errorf("%w: appointment", apperr.ErrNotFound)
		}
	default:
		return fmt.Errorf("%w: role %q cannot delete appointments", apperr.ErrForbidden, ident.Role)
	}
	return s.appointments.Delete(ctx, id)
}
