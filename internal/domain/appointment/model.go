package appointment

import (
	"time"

	"github.com/google/uuid"
)

type Appointment struct {
	ID         uuid.UUID `db:"id" json:"id"`
	ClinicID   uuid.UUID `db:"clinic_id" json:"clinic_id"`
	DoctorID   uuid.UUID `db:"doctor_id" json:"doctor_id"`
	PatientID  uuid.UUID `db:"patient_id" json:"patient_id"`
	Date       time.Time `db:"date" json:"date"`
	PriceCents int64     `db:"appointment_price_in_cents" json:"appointment_price_in_cents"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}
