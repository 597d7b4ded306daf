package patient

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/smartclinic/clinic/internal/platform/auth"
)

type mockRepo struct {
	patients map[uuid.UUID]*Patient
}

func newMockRepo() *mockRepo {
	return &mockRepo{patients: make(map[uuid.UUID]*Patient)}
}

func (m *mockRepo) Create(_ context.Context, p *Patient) error {
	p.ID = uuid.New()
	p.CreatedAt = time.Now()
	p.UpdatedAt = time.Now()
	m.patients[p.ID] = p
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Patient, error) {
	p, ok := m.patients[id]
	if !ok {
		return nil, ErrNotFound
	}
	return p, nil
}

func (m *mockRepo) GetByEmail(_ context.Context, email string) (*Patient, error) {
	for _, p := range m.patients {
		if strings.EqualFold(p.Email, email) {
			return p, nil
		}
	}
	return nil, ErrNotFound
}

func (m *mockRepo) ExistsByEmailOrPhone(_ context.Context, email, phone string) (bool, error) {
	for _, p := range m.patients {
		if strings.EqualFold(p.Email, email) || p.Phone == phone {
			return true, nil
		}
	}
	return false, nil
}

func newTestService(repo *mockRepo) *Service {
	return NewService(repo, auth.NewTokenService([]byte("test-secret"), 24*time.Hour))
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc := newTestService(newMockRepo())
	first := &Patient{Name: "Paula", Email: "paula@clinic.test", Phone: "555-0001"}
	if err := svc.Register(context.Background(), first, "pw"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := svc.Register(context.Background(), &Patient{Name: "Other", Email: "paula@clinic.test", Phone: "555-0002"}, "pw")
	if err != ErrDuplicateIdentity {
		t.Errorf("expected ErrDuplicateIdentity for reused email, got %v", err)
	}
}

func TestRegister_DuplicatePhone(t *testing.T) {
	svc := newTestService(newMockRepo())
	first := &Patient{Name: "Paula", Email: "paula@clinic.test", Phone: "555-0001"}
	if err := svc.Register(context.Background(), first, "pw"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := svc.Register(context.Background(), &Patient{Name: "Other", Email: "other@clinic.test", Phone: "555-0001"}, "pw")
	if err != ErrDuplicateIdentity {
		t.Errorf("expected ErrDuplicateIdentity for reused phone, got %v", err)
	}
}

func TestRegister_RequiredFields(t *testing.T) {
	svc := newTestService(newMockRepo())
	if err := svc.Register(context.Background(), &Patient{Email: "a@b.test", Phone: "555"}, "pw"); err == nil {
		t.Error("expected error for missing name")
	}
	if err := svc.Register(context.Background(), &Patient{Name: "A", Phone: "555"}, "pw"); err == nil {
		t.Error("expected error for missing email")
	}
	if err := svc.Register(context.Background(), &Patient{Name: "A", Email: "a@b.test"}, "pw"); err == nil {
		t.Error("expected error for missing phone")
	}
}

func TestLogin_IssuesPatientToken(t *testing.T) {
	svc := newTestService(newMockRepo())
	p := &Patient{Name: "Paula", Email: "paula@clinic.test", Phone: "555-0001"}
	if err := svc.Register(context.Background(), p, "pw"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	token, err := svc.Login(context.Background(), "paula@clinic.test", "pw")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tokens := auth.NewTokenService([]byte("test-secret"), 24*time.Hour)
	sub, err := tokens.Verify(token, auth.RolePatient)
	if err != nil {
		t.Fatalf("token did not verify as patient: %v", err)
	}
	if sub != p.ID.String() {
		t.Errorf("expected subject %s, got %s", p.ID, sub)
	}
}

func TestLogin_BadCredentials(t *testing.T) {
	svc := newTestService(newMockRepo())
	p := &Patient{Name: "Paula", Email: "paula@clinic.test", Phone: "555-0001"}
	if err := svc.Register(context.Background(), p, "pw"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := svc.Login(context.Background(), "paula@clinic.test", "nope"); err != auth.ErrUnauthorized {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "ghost@clinic.test", "pw"); err != auth.ErrUnauthorized {
		t.Errorf("expected ErrUnauthorized for unknown email, got %v", err)
	}
}
