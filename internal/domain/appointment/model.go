package appointment

import (
	"time"

	"github.com/google/uuid"
)

// Appointment status codes. Integer coding is part of the API contract.
const (
	StatusScheduled = 0
	StatusCompleted = 1
)

// Appointment maps to the appointment table. Cancellation removes the row
// outright; there is no cancelled status.
type Appointment struct {
	ID        uuid.UUID `db:"id" json:"id"`
	DoctorID  uuid.UUID `db:"doctor_id" json:"doctor_id"`
	PatientID uuid.UUID `db:"patient_id" json:"patient_id"`
	Time      time.Time `db:"scheduled_at" json:"time"`
	Status    int       `db:"status" json:"status"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Summary joins doctor identity onto an appointment for patient-facing lists.
type Summary struct {
	ID         uuid.UUID `db:"id" json:"id"`
	DoctorID   uuid.UUID `db:"doctor_id" json:"doctor_id"`
	DoctorName string    `db:"doctor_name" json:"doctor_name"`
	Specialty  string    `db:"specialty" json:"specialty"`
	Time       time.Time `db:"scheduled_at" json:"time"`
	Status     int       `db:"status" json:"status"`
}
