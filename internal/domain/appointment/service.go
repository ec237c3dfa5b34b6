package appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/clinicdash/clinicdash/internal/domain/doctor"
	"github.com/clinicdash/clinicdash/internal/domain/patient"
)

var (
	ErrNotFound = errors.New("appointment not found")
	// ErrOutsideAvailability rejects booking instants that fall outside
	// the doctor's recurring weekly window.
	ErrOutsideAvailability = errors.New("appointment is outside the doctor's availability")
)

// DoctorDirectory is the slice of the doctor service the booking flow
// needs.
type DoctorDirectory interface {
	Get(ctx context.Context, clinicID, id uuid.UUID) (*doctor.Doctor, error)
}

// PatientDirectory is the slice of the patient service the booking flow
// needs.
type PatientDirectory interface {
	Get(ctx context.Context, clinicID, id uuid.UUID) (*patient.Patient, error)
}

type CreateInput struct {
	DoctorID   uuid.UUID `json:"doctor_id" validate:"required"`
	PatientID  uuid.UUID `json:"patient_id" validate:"required"`
	Date       time.Time `json:"date" validate:"required"`
	PriceCents int64     `json:"appointment_price_in_cents" validate:"gte=0"`
}

type Service struct {
	appointments Repository
	doctors      DoctorDirectory
	patients     PatientDirectory
	validate     *validator.Validate
}

func NewService(appointments Repository, doctors DoctorDirectory, patients PatientDirectory) *Service {
	return &Service{
		appointments: appointments,
		doctors:      doctors,
		patients:     patients,
		validate:     validator.New(),
	}
}

// Create books an appointment. The doctor and patient must belong to
// the caller's clinic, and the instant must fall inside the doctor's
// availability window. A zero price inherits the doctor's current
// price.
func (s *Service) Create(ctx context.Context, clinicID uuid.UUID, in CreateInput) (*Appointment, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, fmt.Errorf("invalid appointment: %w", err)
	}

	d, err := s.doctors.Get(ctx, clinicID, in.DoctorID)
	if err != nil {
		return nil, err
	}
	if _, err := s.patients.Get(ctx, clinicID, in.PatientID); err != nil {
		return nil, err
	}

	if !d.AvailabilityWindow().ContainsInstant(in.Date) {
		return nil, ErrOutsideAvailability
	}

	price := in.PriceCents
	if price == 0 {
		price = d.AppointmentPriceCents
	}

	a := &Appointment{
		ClinicID:   clinicID,
		DoctorID:   in.DoctorID,
		PatientID:  in.PatientID,
		Date:       in.Date,
		PriceCents: price,
	}
	if err := s.appointments.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Get fetches an appointment, scoped to the caller's clinic.
func (s *Service) Get(ctx context.Context, clinicID, id uuid.UUID) (*Appointment, error) {
	a, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.ClinicID != clinicID {
		return nil, ErrNotFound
	}
	return a, nil
}

// List returns the clinic's appointments inside the inclusive range.
func (s *Service) List(ctx context.Context, clinicID uuid.UUID, from, to time.Time) ([]*Appointment, error) {
	return s.appointments.ListByClinicAndRange(ctx, clinicID, from, to)
}

func (s *Service) Delete(ctx context.Context, clinicID, id uuid.UUID) error {
	if _, err := s.Get(ctx, clinicID, id); err != nil {
		return err
	}
	return s.appointments.Delete(ctx, id)
}
