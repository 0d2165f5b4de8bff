package patient

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/patientdesk/patientdesk/internal/platform/apperr"
	"github.com/patientdesk/patientdesk/internal/platform/db"
)

type recordRepoPG struct{ pool *pgxpool.Pool }

func NewRecordRepoPG(pool *pgxpool.Pool) RecordRepository { return &recordRepoPG{pool: pool} }

const recordCols = `id, name, age, condition, created_by, extensions, created_at, updated_at`

func scanRecord(row pgx.Row) (*Record, error) {
	var r Record
	err := row.Scan(&r.ID, &r.Name, &r.Age, &r.Condition, &r.CreatedBy,
		&r.Extensions, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, db.MapError(err)
	}
	return &r, nil
}

func (r *recordRepoPG) Create(ctx context.Context, rec *Record) error {
	rec.ID = uuid.New()
	err := r.pool.QueryRow(ctx, `
		INSERT INTO patient_records (id, name, age, condition, created_by, extensions)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`,
		rec.ID, rec.Name, rec.Age, rec.Condition, rec.CreatedBy, rec.Extensions).
		Scan(&rec.CreatedAt, &rec.UpdatedAt)
	return db.MapError(err)
}

func (r *recordRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Record, error) {
	return scanRecord(r.pool.QueryRow(ctx,
		`SELECT `+recordCols+` FROM patient_records WHERE id = $1`, id))
}

func (r *recordRepoPG) Search(ctx context.Context, f Filter, limit, offset int) ([]*Record, int, error) {
	query := `SELECT ` + recordCols + ` FROM patient_records WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM patient_records WHERE 1=1`
	var args []interface{}
	idx := 1

	if f.ID != uuid.Nil {
		query += fmt.Sprintf(` AND id = $%d`, idx)
		countQuery += fmt.Sprintf(` AND id = $%d`, idx)
		args = append(args, f.ID)
		idx++
	}
	if f.Name != "" {
		query += fmt.Sprintf(` AND name ILIKE '%%' || $%d || '%%'`, idx)
		countQuery += fmt.Sprintf(` AND name ILIKE '%%' || $%d || '%%'`, idx)
		args = append(args, f.Name)
		idx++
	}
	if f.CreatedBy != uuid.Nil {
		query += fmt.Sprintf(` AND created_by = $%d`, idx)
		countQuery += fmt.Sprintf(` AND created_by = $%d`, idx)
		args = append(args, f.CreatedBy)
		idx++
	}

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, db.MapError(err)
	}

	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, idx, idx+1)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, db.MapError(err)
	}
	defer rows.Close()

	var items []*Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, rec)
	}
	return items, total, db.MapError(rows.Err())
}

func (r *recordRepoPG) Update(ctx context.Context, id uuid.UUID, upd Update) error {
	query := `UPDATE patient_records SET updated_at = NOW()`
	var args []interface{}
	idx := 1

	if upd.Name != nil {
		query += fmt.Sprintf(`, name = $%d`, idx)
		args = append(args, *upd.Name)
		idx++
	}
	if upd.Age != nil {
		query += fmt.Sprintf(`, age = $%d`, idx)
		args = append(args, *upd.Age)
		idx++
	}
	if upd.Condition != nil {
		query += fmt.Sprintf(`, condition = $%d`, idx)
		args = append(args, *upd.Condition)
		idx++
	}
	if upd.Extensions != nil {
		query += fmt.Sprintf(`, extensions = extensions || $%d`, idx)
		args = append(args, upd.Extensions)
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

func (r *recordRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM patient_records WHERE id = $1`, id)
	if err != nil {
		return db.MapError(err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.ErrNotFound
	}
	return nil
}
