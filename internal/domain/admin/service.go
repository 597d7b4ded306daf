package admin

import (
	"context"
	"errors"

	"github.com/smartclinic/clinic/internal/platform/auth"
)

var ErrNotFound = errors.New("admin not found")

type Service struct {
	repo   Repository
	tokens *auth.TokenService
}

func NewService(repo Repository, tokens *auth.TokenService) *Service {
	return &Service{repo: repo, tokens: tokens}
}

// Login checks the credentials and mints an admin-role token.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	a, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", auth.ErrUnauthorized
		}
		return "", err
	}
	if err := auth.CheckPassword(a.PasswordHash, password); err != nil {
		return "", auth.ErrUnauthorized
	}
	// The admin subject is the username; admins have no UUID-keyed records
	// to resolve against.
	return s.tokens.Issue(a.Username, auth.RoleAdmin)
}
