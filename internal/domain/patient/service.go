package patient

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/smartclinic/clinic/internal/platform/auth"
)

var (
	ErrNotFound          = errors.New("patient not found")
	ErrDuplicateIdentity = errors.New("email or phone already registered")
)

type Service struct {
	repo   Repository
	tokens *auth.TokenService
}

func NewService(repo Repository, tokens *auth.TokenService) *Service {
	return &Service{repo: repo, tokens: tokens}
}

// Register creates a patient account. Both email and phone must be unused.
func (s *Service) Register(ctx context.Context, p *Patient, password string) error {
	if p.Name == "" {
		return fmt.Errorf("name is required")
	}
	if p.Email == "" {
		return fmt.Errorf("email is required")
	}
	if p.Phone == "" {
		return fmt.Errorf("phone is required")
	}
	taken, err := s.repo.ExistsByEmailOrPhone(ctx, p.Email, p.Phone)
	if err != nil {
		return err
	}
	if taken {
		return ErrDuplicateIdentity
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	p.PasswordHash = hash
	return s.repo.Create(ctx, p)
}

// Login checks the credentials and mints a patient-role token.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	p, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", auth.ErrUnauthorized
		}
		return "", err
	}
	if err := auth.CheckPassword(p.PasswordHash, password); err != nil {
		return "", auth.ErrUnauthorized
	}
	return s.tokens.Issue(p.ID.String(), auth.RolePatient)
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return s.repo.GetByID(ctx, id)
}
