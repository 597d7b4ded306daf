package prescription

import (
	"time"

	"github.com/google/uuid"
)

// Prescription maps to the prescription table. At most one prescription
// exists per appointment.
type Prescription struct {
	ID            uuid.UUID `db:"id" json:"id"`
	AppointmentID uuid.UUID `db:"appointment_id" json:"appointment_id"`
	PatientName   string    `db:"patient_name" json:"patient_name"`
	Medication    string    `db:"medication" json:"medication"`
	Dosage        string    `db:"dosage" json:"dosage"`
	DoctorNotes   *string   `db:"doctor_notes" json:"doctor_notes,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}
