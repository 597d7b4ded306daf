package prescription

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

type mockRepo struct {
	byAppointment map[uuid.UUID]*Prescription
}

func newMockRepo() *mockRepo {
	return &mockRepo{byAppointment: make(map[uuid.UUID]*Prescription)}
}

func (m *mockRepo) Create(_ context.Context, p *Prescription) error {
	p.ID = uuid.New()
	m.byAppointment[p.AppointmentID] = p
	return nil
}

func (m *mockRepo) GetByAppointment(_ context.Context, appointmentID uuid.UUID) (*Prescription, error) {
	p, ok := m.byAppointment[appointmentID]
	if !ok {
		return nil, ErrNotFound
	}
	return p, nil
}

func (m *mockRepo) ExistsForAppointment(_ context.Context, appointmentID uuid.UUID) (bool, error) {
	_, ok := m.byAppointment[appointmentID]
	return ok, nil
}

func TestCreate_OnePerAppointment(t *testing.T) {
	svc := NewService(newMockRepo())
	apptID := uuid.New()

	first := &Prescription{AppointmentID: apptID, PatientName: "Paula", Medication: "amoxicillin", Dosage: "500mg"}
	if err := svc.Create(context.Background(), first); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second := &Prescription{AppointmentID: apptID, PatientName: "Paula", Medication: "ibuprofen", Dosage: "200mg"}
	if err := svc.Create(context.Background(), second); err != ErrAlreadyExists {
		t.Errorf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestCreate_RequiredFields(t *testing.T) {
	svc := NewService(newMockRepo())
	if err := svc.Create(context.Background(), &Prescription{Medication: "amoxicillin"}); err == nil {
		t.Error("expected error for missing appointment id")
	}
	if err := svc.Create(context.Background(), &Prescription{AppointmentID: uuid.New()}); err == nil {
		t.Error("expected error for missing medication")
	}
}

func TestByAppointment(t *testing.T) {
	svc := NewService(newMockRepo())
	apptID := uuid.New()
	p := &Prescription{AppointmentID: apptID, PatientName: "Paula", Medication: "amoxicillin", Dosage: "500mg"}
	if err := svc.Create(context.Background(), p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := svc.ByAppointment(context.Background(), apptID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Medication != "amoxicillin" {
		t.Errorf("unexpected prescription: %+v", got)
	}

	if _, err := svc.ByAppointment(context.Background(), uuid.New()); err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
