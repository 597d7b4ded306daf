package doctor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/smartclinic/clinic/internal/platform/auth"
)

var (
	ErrNotFound       = errors.New("doctor not found")
	ErrDuplicateEmail = errors.New("doctor email already registered")
)

// AppointmentSource exposes the booked times a slot calendar needs without
// importing the appointment package.
type AppointmentSource interface {
	TimesForDoctorBetween(ctx context.Context, doctorID uuid.UUID, from, to time.Time) ([]time.Time, error)
}

type Service struct {
	repo    Repository
	appts   AppointmentSource
	tokens  *auth.TokenService
	workday Workday
}

func NewService(repo Repository, appts AppointmentSource, tokens *auth.TokenService, workday Workday) *Service {
	return &Service{repo: repo, appts: appts, tokens: tokens, workday: workday}
}

// Create registers a new doctor. The email must not already be in use.
func (s *Service) Create(ctx context.Context, d *Doctor, password string) error {
	if d.Name == "" {
		return fmt.Errorf("name is required")
	}
	if d.Email == "" {
		return fmt.Errorf("email is required")
	}
	if _, err := s.repo.GetByEmail(ctx, d.Email); err == nil {
		return ErrDuplicateEmail
	} else if !errors.Is(err, ErrNotFound) {
		return err
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	d.PasswordHash = hash
	return s.repo.Create(ctx, d)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Doctor, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Doctor, int, error) {
	return s.repo.List(ctx, limit, offset)
}

func (s *Service) Update(ctx context.Context, d *Doctor) error {
	existing, err := s.repo.GetByID(ctx, d.ID)
	if err != nil {
		return err
	}
	if d.Email != existing.Email {
		if _, err := s.repo.GetByEmail(ctx, d.Email); err == nil {
			return ErrDuplicateEmail
		} else if !errors.Is(err, ErrNotFound) {
			return err
		}
	}
	return s.repo.Update(ctx, d)
}

// Delete removes the doctor record; the storage layer drops the doctor's
// appointments with it.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// Login checks the credentials and mints a doctor-role token. Unknown email
// and wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	d, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", auth.ErrUnauthorized
		}
		return "", err
	}
	if err := auth.CheckPassword(d.PasswordHash, password); err != nil {
		return "", auth.ErrUnauthorized
	}
	return s.tokens.Issue(d.ID.String(), auth.RoleDoctor)
}

// FreeSlots returns the bookable ticks of the doctor's workday on the given
// date, minus every tick an appointment starts at exactly. Ordered ascending.
func (s *Service) FreeSlots(ctx context.Context, doctorID uuid.UUID, date time.Time) ([]time.Duration, error) {
	if _, err := s.repo.GetByID(ctx, doctorID); err != nil {
		return nil, err
	}

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	booked, err := s.appts.TimesForDoctorBetween(ctx, doctorID, dayStart, dayStart.Add(24*time.Hour))
	if err != nil {
		return nil, err
	}

	taken := make(map[time.Duration]bool, len(booked))
	for _, t := range booked {
		taken[t.Sub(time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location()))] = true
	}

	var free []time.Duration
	for _, tick := range s.workday.Ticks() {
		if !taken[tick] {
			free = append(free, tick)
		}
	}
	return free, nil
}

// Filter narrows the doctor list by name substring, specialty, and AM/PM
// availability. Every doctor shares the configured workday, so the period
// check classifies against its ticks.
func (s *Service) Filter(ctx context.Context, name, specialty, period string) ([]*Doctor, error) {
	doctors, err := s.repo.Search(ctx, name, specialty)
	if err != nil {
		return nil, err
	}
	if !s.workday.MatchesPeriod(period) {
		return []*Doctor{}, nil
	}
	return doctors, nil
}
