package appointment

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/smartclinic/clinic/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

func (r *repoPG) conn(ctx context.Context) queryable {
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const apptCols = `id, doctor_id, patient_id, scheduled_at, status, created_at, updated_at`

func scanAppt(row pgx.Row) (*Appointment, error) {
	var a Appointment
	err := row.Scan(&a.ID, &a.DoctorID, &a.PatientID, &a.Time, &a.Status, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return &a, err
}

func collectAppts(rows pgx.Rows) ([]*Appointment, error) {
	defer rows.Close()
	var items []*Appointment
	for rows.Next() {
		a, err := scanAppt(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	return items, rows.Err()
}

func (r *repoPG) Create(ctx context.Context, a *Appointment) error {
	a.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO appointment (id, doctor_id, patient_id, scheduled_at, status)
		VALUES ($1,$2,$3,$4,$5)`,
		a.ID, a.DoctorID, a.PatientID, a.Time, a.Status)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return scanAppt(r.conn(ctx).QueryRow(ctx, `SELECT `+apptCols+` FROM appointment WHERE id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, a *Appointment) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE appointment SET doctor_id=$2, scheduled_at=$3, status=$4, updated_at=NOW()
		WHERE id = $1`,
		a.ID, a.DoctorID, a.Time, a.Status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM appointment WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repoPG) UpdateStatus(ctx context.Context, id uuid.UUID, status int) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE appointment SET status=$2, updated_at=NOW() WHERE id = $1`, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// LockDoctor takes pg_advisory_xact_lock keyed on the doctor id. FOR UPDATE
// on the conflict window locks no rows when the window is empty, so the
// conflict check serializes on this lock instead.
func (r *repoPG) LockDoctor(ctx context.Context, doctorID uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx,
		`SELECT pg_advisory_xact_lock(hashtext($1::text))`, doctorID.String())
	return err
}

func (r *repoPG) InWindow(ctx context.Context, doctorID uuid.UUID, from, to time.Time) ([]*Appointment, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+apptCols+` FROM appointment
		WHERE doctor_id = $1 AND scheduled_at > $2 AND scheduled_at < $3`,
		doctorID, from, to)
	if err != nil {
		return nil, err
	}
	return collectAppts(rows)
}

func (r *repoPG) ForDoctorDay(ctx context.Context, doctorID uuid.UUID, from, to time.Time, patientName string) ([]*Appointment, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT a.id, a.doctor_id, a.patient_id, a.scheduled_at, a.status, a.created_at, a.updated_at
		FROM appointment a
		JOIN patient p ON p.id = a.patient_id
		WHERE a.doctor_id = $1 AND a.scheduled_at >= $2 AND a.scheduled_at < $3
		  AND ($4 = '' OR p.name ILIKE '%' || $4 || '%')
		ORDER BY a.scheduled_at`,
		doctorID, from, to, patientName)
	if err != nil {
		return nil, err
	}
	return collectAppts(rows)
}

const summaryCols = `a.id, a.doctor_id, d.name, d.specialty, a.scheduled_at, a.status`

func collectSummaries(rows pgx.Rows) ([]*Summary, error) {
	defer rows.Close()
	var items []*Summary
	for rows.Next() {
		var s Summary
		if err := rows.Scan(&s.ID, &s.DoctorID, &s.DoctorName, &s.Specialty, &s.Time, &s.Status); err != nil {
			return nil, err
		}
		items = append(items, &s)
	}
	return items, rows.Err()
}

func (r *repoPG) SummariesForPatient(ctx context.Context, patientID uuid.UUID) ([]*Summary, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+summaryCols+` FROM appointment a
		JOIN doctor d ON d.id = a.doctor_id
		WHERE a.patient_id = $1`,
		patientID)
	if err != nil {
		return nil, err
	}
	return collectSummaries(rows)
}

func (r *repoPG) SummariesForPatientByStatus(ctx context.Context, patientID uuid.UUID, status int) ([]*Summary, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+summaryCols+` FROM appointment a
		JOIN doctor d ON d.id = a.doctor_id
		WHERE a.patient_id = $1 AND a.status = $2
		ORDER BY a.scheduled_at ASC`,
		patientID, status)
	if err != nil {
		return nil, err
	}
	return collectSummaries(rows)
}

func (r *repoPG) SummariesForPatientByDoctorName(ctx context.Context, patientID uuid.UUID, doctorName string) ([]*Summary, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+summaryCols+` FROM appointment a
		JOIN doctor d ON d.id = a.doctor_id
		WHERE a.patient_id = $1 AND d.name ILIKE '%' || $2 || '%'`,
		patientID, doctorName)
	if err != nil {
		return nil, err
	}
	return collectSummaries(rows)
}

func (r *repoPG) SummariesForPatientByDoctorNameAndStatus(ctx context.Context, patientID uuid.UUID, doctorName string, status int) ([]*Summary, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+summaryCols+` FROM appointment a
		JOIN doctor d ON d.id = a.doctor_id
		WHERE a.patient_id = $1 AND d.name ILIKE '%' || $2 || '%' AND a.status = $3
		ORDER BY a.scheduled_at ASC`,
		patientID, doctorName, status)
	if err != nil {
		return nil, err
	}
	return collectSummaries(rows)
}

func (r *repoPG) TimesForDoctorBetween(ctx context.Context, doctorID uuid.UUID, from, to time.Time) ([]time.Time, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT scheduled_at FROM appointment
		WHERE doctor_id = $1 AND scheduled_at >= $2 AND scheduled_at < $3`,
		doctorID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var times []time.Time
	for rows.Next() {
		var t time.Time
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		times = append(times, t)
	}
	return times, rows.Err()
}
