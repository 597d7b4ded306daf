package prescription

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrNotFound      = errors.New("prescription not found")
	ErrAlreadyExists = errors.New("prescription already exists for this appointment")
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create stores a prescription for an appointment. A second prescription for
// the same appointment is rejected.
func (s *Service) Create(ctx context.Context, p *Prescription) error {
	if p.AppointmentID == uuid.Nil {
		return fmt.Errorf("appointment_id is required")
	}
	if p.Medication == "" {
		return fmt.Errorf("medication is required")
	}
	exists, err := s.repo.ExistsForAppointment(ctx, p.AppointmentID)
	if err != nil {
		return err
	}
	if exists {
		return ErrAlreadyExists
	}
	return s.repo.Create(ctx, p)
}

func (s *Service) ByAppointment(ctx context.Context, appointmentID uuid.UUID) (*Prescription, error) {
	return s.repo.GetByAppointment(ctx, appointmentID)
}
