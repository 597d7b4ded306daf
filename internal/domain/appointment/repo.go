package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, a *Appointment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error)
	Update(ctx context.Context, a *Appointment) error
	Delete(ctx context.Context, id uuid.UUID) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status int) error

	// LockDoctor takes a transaction-scoped lock on the doctor's calendar,
	// released at commit. Booking and update transactions take it before
	// their conflict query so check-then-insert races serialize.
	LockDoctor(ctx context.Context, doctorID uuid.UUID) error

	// InWindow returns the doctor's appointments with scheduled_at strictly
	// inside (from, to). Callers that go on to write must hold the doctor's
	// calendar lock.
	InWindow(ctx context.Context, doctorID uuid.UUID, from, to time.Time) ([]*Appointment, error)

	// ForDoctorDay returns the doctor's appointments in [from, to), ordered by
	// time, optionally narrowed by a case-insensitive patient name substring.
	ForDoctorDay(ctx context.Context, doctorID uuid.UUID, from, to time.Time, patientName string) ([]*Appointment, error)

	SummariesForPatient(ctx context.Context, patientID uuid.UUID) ([]*Summary, error)
	SummariesForPatientByStatus(ctx context.Context, patientID uuid.UUID, status int) ([]*Summary, error)
	SummariesForPatientByDoctorName(ctx context.Context, patientID uuid.UUID, doctorName string) ([]*Summary, error)
	SummariesForPatientByDoctorNameAndStatus(ctx context.Context, patientID uuid.UUID, doctorName string, status int) ([]*Summary, error)

	// TimesForDoctorBetween feeds the slot calendar.
	TimesForDoctorBetween(ctx context.Context, doctorID uuid.UUID, from, to time.Time) ([]time.Time, error)
}
