package scheduling

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/patientdesk/patientdesk/internal/platform/apperr"
	"github.com/patientdesk/patientdesk/internal/platform/db"
)

type appointmentRepoPG struct{ pool *pgxpool.Pool }

func NewAppointmentRepoPG(pool *pgxpool.Pool) AppointmentRepository {
	return &appointmentRepoPG{pool: pool}
}

const appointmentCols = `id, doctor_id, patient_id, date::text, status, notes, created_at, modified_at`

func scanAppointment(row pgx.Row) (*Appointment, error) {
	var a Appointment
	err := row.Scan(&a.ID, &a.DoctorID, &a.PatientID, &a.Date, &a.Status,
		&a.Notes, &a.CreatedAt, &a.ModifiedAt)
	if err != nil {
		return nil, db.MapError(err)
	}
	return &a, nil
}

func (r *appointmentRepoPG) Create(ctx context.Context, a *Appointment) error {
	a.ID = uuid.New()
	err := r.pool.QueryRow(ctx, `
		INSERT INTO appointments (id, doctor_id, patient_id, date, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, modified_at`,
		a.ID, a.DoctorID, a.PatientID, a.Date, a.Status, a.Notes).
		Scan(&a.CreatedAt, &a.ModifiedAt)
	return db.MapError(err)
}

func (r *appointmentRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return scanAppointment(r.pool.QueryRow(ctx,
		`SELECT `+appointmentCols+` FROM appointments WHERE id = $1`, id))
}

func (r *appointmentRepoPG) GetByKey(ctx context.Context, doctorID, patientID uuid.UUID, date string) (*Appointment, error) {
	return scanAppointment(r.pool.QueryRow(ctx,
		`SELECT `+appointmentCols+` FROM appointments
		 WHERE doctor_id = $1 AND patient_id = $2 AND date = $3`,
		doctorID, patientID, date))
}

func (r *appointmentRepoPG) Search(ctx context.Context, f Filter, limit, offset int) ([]*Appointment, int, error) {
	query := `SELECT ` + appointmentCols + ` FROM appointments WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM appointments WHERE 1=1`
	var args []interface{}
	idx := 1

	if f.DoctorID != uuid.Nil {
		query += fmt.Sprintf(` AND doctor_id = $%d`, idx)
		countQuery += fmt.Sprintf(` AND doctor_id = $%d`, idx)
		args = append(args, f.DoctorID)
		idx++
	}
	if f.PatientID != uuid.Nil {
		query += fmt.Sprintf(` AND patient_id = $%d`, idx)
		countQuery += fmt.Sprintf(` AND patient_id = $%d`, idx)
		args = append(args, f.PatientID)
		idx++
	}
	if f.Date != "" {
		query += fmt.Sprintf(` AND date = $%d`, idx)
		countQuery += fmt.Sprintf(` AND date = $%d`, idx)
		args = append(args, f.Date)
		idx++
	}

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, db.MapError(err)
	}

	query += fmt.Sprintf(` ORDER BY date ASC, created_at DESC LIMIT $%d OFFSET $%d`, idx, idx+1)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, db.MapError(err)
	}
	defer rows.Close()

	var items []*Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, a)
	}
	return items, total, db.MapError(rows.Err())
}

func (r *appointmentRepoPG) Update(ctx context.Context, id uuid.UUID, upd Update) error {
	query := `UPDATE appointments SET modified_at = NOW()`
	var args []interface{}
	idx := 1

	if upd.Date != nil {
		query += fmt.Sprintf(`, date = $%d`, idx)
		args = append(args, *upd.Date)
		idx++
	}
	if upd.Status != nil {
		query += fmt.Sprintf(`, status = $%d`, idx)
		args = append(args, *upd.Status)
		idx++
	}
	if upd.Notes != nil {
		query += fmt.Sprintf(`, notes = $%d`, idx)
		args = append(args, *upd.Notes)
		idx++
	}

	query += fmt.Sprintf(` WHERE id = $%d`, idx)
	args = append(args, id)

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return db.MapError(err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (r *appointmentRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return db.MapError(err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.ErrNotFound
	}
	return nil
}
