package patient

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, p *Patient) error
	GetByID(ctx context.Context, id uuid.UUID) (*Patient, error)
	GetByEmail(ctx context.Context, email string) (*Patient, error)
	// ExistsByEmailOrPhone reports whether any patient already uses the email
	// or the phone number.
	ExistsByEmailOrPhone(ctx context.Context, email, phone string) (bool, error)
}
