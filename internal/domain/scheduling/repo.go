package scheduling

import (
	"context"

	"github.com/google/uuid"
)

type AppointmentRepository interface {
	Create(ctx context.Context, a *Appointment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error)
	// GetByKey looks up the appointment for an exact (doctor, patient, date)
	// triple, the natural key the upsert pivots on.
	GetByKey(ctx context.Context, doctorID, patientID uuid.UUID, date string) (*Appointment, error)
	Search(ctx context.Context, f Filter, limit, offset int) ([]*Appointment, int, error)
	Update(ctx context.Context, id uuid.UUID, upd Update) error
	Delete(ctx context.Context, id uuid.UUID) error
}
