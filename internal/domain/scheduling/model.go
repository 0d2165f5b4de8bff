// Package scheduling manages appointment requests between doctors and
// patients. An appointment is keyed by its (doctor, patient, date) triple:
// re-requesting the same slot resets the existing record to pending instead
// of inserting a duplicate.
package scheduling

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return true
	}
	return false
}

// DateLayout is the wire and storage format for appointment dates. No
// time-of-day component is tracked.
const DateLayout = "2006-01-02"

// Appointment maps to the appointments table.
type Appointment struct {
	ID         uuid.UUID `db:"id" json:"id"`
	DoctorID   uuid.UUID `db:"doctor_id" json:"doctor_id"`
	PatientID  uuid.UUID `db:"patient_id" json:"patient_id"`
	Date       string    `db:"date" json:"date"`
	Status     Status    `db:"status" json:"status"`
	Notes      *string   `db:"notes" json:"notes,omitempty"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	ModifiedAt time.Time `db:"modified_at" json:"modified_at"`
}

// Filter narrows an appointment search. Zero values mean "no constraint";
// the scoper fills DoctorID for doctors and PatientID for patients.
type Filter struct {
	DoctorID  uuid.UUID
	PatientID uuid.UUID
	Date      string
}

// Update is a partial patch; nil fields are left untouched. ModifiedAt is
// always refreshed, whether or not any field changed.
type Update struct {
	Date   *string `json:"date"`
	Status *Status `json:"status"`
	Notes  *string `json:"notes"`
}
