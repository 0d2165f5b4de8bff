// Package patient holds patient records and the query scoper that narrows
// every read and write to what the caller's role permits.
package patient

import (
	"time"

	"github.com/google/uuid"
)

// Record maps to the patient_records table. Core fields are explicit
// columns; anything else the creator supplied lives in the extensions JSONB
// and never feeds a trusted field.
type Record struct {
	ID         uuid.UUID              `db:"id" json:"id"`
	Name       string                 `db:"name" json:"name"`
	Age        int                    `db:"age" json:"age"`
	Condition  string                 `db:"condition" json:"condition"`
	CreatedBy  uuid.UUID              `db:"created_by" json:"created_by"`
	Extensions map[string]interface{} `db:"extensions" json:"extensions,omitempty"`
	CreatedAt  time.Time              `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time              `db:"updated_at" json:"updated_at"`
}

// Filter narrows a record search. Zero values mean "no constraint"; the
// scoper fills CreatedBy for doctors and pins ID for patients.
type Filter struct {
	ID        uuid.UUID
	Name      string
	CreatedBy uuid.UUID
}

// Update is a partial patch; nil fields are left untouched.
type Update struct {
	Name       *string                `json:"name"`
	Age        *int                   `json:"age"`
	Condition  *string                `json:"condition"`
	Extensions map[string]interface{} `json:"extensions"`
}
