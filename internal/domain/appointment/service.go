package appointment

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/smartclinic/clinic/internal/domain/doctor"
)

var (
	ErrNotFound         = errors.New("appointment not found")
	ErrForbidden        = errors.New("appointment belongs to another patient")
	ErrDoctorNotFound   = errors.New("doctor not found")
	ErrSlotUnavailable  = errors.New("doctor is not available at the requested time")
	ErrTimeConflict     = errors.New("another appointment occupies the requested time")
	ErrInvalidCondition = errors.New("condition must be past or future")
)

// DoctorDirectory is the slice of the doctor repository the booking engine
// needs. doctor.Repository satisfies it.
type DoctorDirectory interface {
	GetByID(ctx context.Context, id uuid.UUID) (*doctor.Doctor, error)
}

// TxRunner executes fn atomically; repository calls made with the context fn
// receives run inside the same transaction.
type TxRunner func(ctx context.Context, fn func(ctx context.Context) error) error

type Service struct {
	repo    Repository
	doctors DoctorDirectory
	tx      TxRunner
}

func NewService(repo Repository, doctors DoctorDirectory, tx TxRunner) *Service {
	return &Service{repo: repo, doctors: doctors, tx: tx}
}

// ValidateBooking checks that the doctor exists and has no appointment
// within an hour of the requested time, exclusive at both ends. A 09:30
// request collides with an existing 09:00 booking even though 09:30 never
// appears in the slot list; a 10:00 request is the first instant clear of it.
func (s *Service) ValidateBooking(ctx context.Context, a *Appointment) error {
	if _, err := s.doctors.GetByID(ctx, a.DoctorID); err != nil {
		if errors.Is(err, doctor.ErrNotFound) {
			return ErrDoctorNotFound
		}
		return err
	}
	conflicts, err := s.repo.InWindow(ctx, a.DoctorID, a.Time.Add(-time.Hour), a.Time.Add(time.Hour))
	if err != nil {
		return err
	}
	if len(conflicts) > 0 {
		return ErrSlotUnavailable
	}
	return nil
}

// Book validates and inserts in one transaction. The per-doctor advisory
// lock serializes concurrent bookings for the same doctor, so only one
// transaction at a time can pass the conflict check and insert.
func (s *Service) Book(ctx context.Context, a *Appointment) error {
	a.Status = StatusScheduled
	return s.tx(ctx, func(ctx context.Context) error {
		if err := s.repo.LockDoctor(ctx, a.DoctorID); err != nil {
			return err
		}
		if err := s.ValidateBooking(ctx, a); err != nil {
			return err
		}
		return s.repo.Create(ctx, a)
	})
}

// Update moves an appointment to a new doctor, time, or status. Only the
// owning patient may update; the appointment being moved does not conflict
// with itself.
func (s *Service) Update(ctx context.Context, requesterPatientID uuid.UUID, updated *Appointment) error {
	return s.tx(ctx, func(ctx context.Context) error {
		if err := s.repo.LockDoctor(ctx, updated.DoctorID); err != nil {
			return err
		}
		existing, err := s.repo.GetByID(ctx, updated.ID)
		if err != nil {
			return err
		}
		if existing.PatientID != requesterPatientID {
			return ErrForbidden
		}
		if _, err := s.doctors.GetByID(ctx, updated.DoctorID); err != nil {
			if errors.Is(err, doctor.ErrNotFound) {
				return ErrDoctorNotFound
			}
			return err
		}
		conflicts, err := s.repo.InWindow(ctx, updated.DoctorID, updated.Time.Add(-time.Hour), updated.Time.Add(time.Hour))
		if err != nil {
			return err
		}
		for _, c := range conflicts {
			if c.ID != existing.ID {
				return ErrTimeConflict
			}
		}
		existing.DoctorID = updated.DoctorID
		existing.Time = updated.Time
		existing.Status = updated.Status
		return s.repo.Update(ctx, existing)
	})
}

// Cancel removes an appointment. Only the owning patient may cancel; the slot
// is free again the moment the row is gone.
func (s *Service) Cancel(ctx context.Context, requesterPatientID, apptID uuid.UUID) error {
	a, err := s.repo.GetByID(ctx, apptID)
	if err != nil {
		return err
	}
	if a.PatientID != requesterPatientID {
		return ErrForbidden
	}
	return s.repo.Delete(ctx, apptID)
}

// MarkCompleted flips the status from scheduled to completed.
func (s *Service) MarkCompleted(ctx context.Context, apptID uuid.UUID) error {
	return s.repo.UpdateStatus(ctx, apptID, StatusCompleted)
}

// DoctorDay lists the doctor's appointments on the given date, ordered by
// time, optionally narrowed by a case-insensitive patient name substring.
func (s *Service) DoctorDay(ctx context.Context, doctorID uuid.UUID, date time.Time, patientName string) ([]*Appointment, error) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	return s.repo.ForDoctorDay(ctx, doctorID, dayStart, dayStart.Add(24*time.Hour), patientName)
}

// PatientAppointments returns the patient's own appointment summaries.
func (s *Service) PatientAppointments(ctx context.Context, patientID uuid.UUID) ([]*Summary, error) {
	return s.repo.SummariesForPatient(ctx, patientID)
}

// FilterForPatient dispatches on which of condition and doctorName are set.
// Condition-filtered results come back ascending by time; a condition other
// than past or future is rejected.
func (s *Service) FilterForPatient(ctx context.Context, patientID uuid.UUID, condition, doctorName string) ([]*Summary, error) {
	switch {
	case condition != "" && doctorName != "":
		status, err := statusFor(condition)
		if err != nil {
			return nil, err
		}
		return s.repo.SummariesForPatientByDoctorNameAndStatus(ctx, patientID, doctorName, status)
	case condition != "":
		status, err := statusFor(condition)
		if err != nil {
			return nil, err
		}
		return s.repo.SummariesForPatientByStatus(ctx, patientID, status)
	case doctorName != "":
		return s.repo.SummariesForPatientByDoctorName(ctx, patientID, doctorName)
	}
	return s.repo.SummariesForPatient(ctx, patientID)
}

func statusFor(condition string) (int, error) {
	switch strings.ToLower(condition) {
	case "past":
		return StatusCompleted, nil
	case "future":
		return StatusScheduled, nil
	}
	return 0, ErrInvalidCondition
}
