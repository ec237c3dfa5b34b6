package doctor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/clinicdash/clinicdash/internal/domain/availability"
)

var (
	ErrNotFound = errors.New("doctor not found")
	// ErrTimeOrder is the cross-field rule the weekday fields cannot
	// excuse: the daily window must end after it starts.
	ErrTimeOrder = errors.New("available_to_time must be after available_from_time")
)

// UpsertInput is the single validation contract for creating or
// replacing a doctor. An absent id creates; a present id replaces.
type UpsertInput struct {
	ID                    *uuid.UUID `json:"id,omitempty"`
	Name                  string     `json:"name" validate:"required,min=2"`
	Specialty             string     `json:"specialty" validate:"required,min=2"`
	AvatarImageURL        *string    `json:"avatar_image_url,omitempty" validate:"omitempty,url"`
	AvailableFromWeekDay  int        `json:"available_from_week_day" validate:"gte=0,lte=6"`
	AvailableToWeekDay    int        `json:"available_to_week_day" validate:"gte=0,lte=6"`
	AvailableFromTime     string     `json:"available_from_time" validate:"required"`
	AvailableToTime       string     `json:"available_to_time" validate:"required"`
	AppointmentPriceCents int64      `json:"appointment_price_in_cents" validate:"gte=1"`
}

type Service struct {
	doctors  Repository
	validate *validator.Validate
}

func NewService(doctors Repository) *Service {
	return &Service{doctors: doctors, validate: validator.New()}
}

// Upsert validates the input and creates or replaces the doctor inside
// the given clinic. Replacing a doctor belonging to another clinic is
// reported as not found.
func (s *Service) Upsert(ctx context.Context, clinicID uuid.UUID, in UpsertInput) (*Doctor, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Specialty = strings.TrimSpace(in.Specialty)

	if err := s.validate.Struct(in); err != nil {
		return nil, fmt.Errorf("invalid doctor: %w", err)
	}

	from, err := availability.ParseTimeOfDay(in.AvailableFromTime)
	if err != nil {
		return nil, err
	}
	to, err := availability.ParseTimeOfDay(in.AvailableToTime)
	if err != nil {
		return nil, err
	}
	if from >= to {
		return nil, ErrTimeOrder
	}

	d := &Doctor{
		ClinicID:              clinicID,
		Name:                  in.Name,
		Specialty:             in.Specialty,
		AvatarImageURL:        in.AvatarImageURL,
		AvailableFromWeekDay:  in.AvailableFromWeekDay,
		AvailableToWeekDay:    in.AvailableToWeekDay,
		AvailableFromTime:     from,
		AvailableToTime:       to,
		AppointmentPriceCents: in.AppointmentPriceCents,
	}

	if in.ID != nil {
		existing, err := s.Get(ctx, clinicID, *in.ID)
		if err != nil {
			return nil, err
		}
		d.ID = existing.ID
	}

	if err := s.doctors.Upsert(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// Get fetches a doctor, scoped to the caller's clinic. Doctors of
// other clinics are indistinguishable from absent ones.
func (s *Service) Get(ctx context.Context, clinicID, id uuid.UUID) (*Doctor, error) {
	d, err := s.doctors.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d.ClinicID != clinicID {
		return nil, ErrNotFound
	}
	return d, nil
}

func (s *Service) List(ctx context.Context, clinicID uuid.UUID) ([]*Doctor, error) {
	return s.doctors.ListByClinic(ctx, clinicID)
}

// Delete removes a doctor and, through the store, all of its
// appointments.
func (s *Service) Delete(ctx context.Context, clinicID, id uuid.UUID) error {
	if _, err := s.Get(ctx, clinicID, id); err != nil {
		return err
	}
	return s.doctors.Delete(ctx, id)
}

// Availability resolves the doctor's recurring window to concrete
// instants for display.
func (s *Service) Availability(ctx context.Context, clinicID, id uuid.UUID) (*Doctor, availability.Window, error) {
	d, err := s.Get(ctx, clinicID, id)
	if err != nil {
		return nil, availability.Window{}, err
	}
	return d, d.AvailabilityWindow(), nil
}
