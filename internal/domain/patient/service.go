package patient

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/clinicdash/clinicdash/pkg/pagination"
)

var ErrNotFound = errors.New("patient not found")

type UpsertInput struct {
	ID          *uuid.UUID `json:"id,omitempty"`
	Name        string     `json:"name" validate:"required,min=2"`
	Email       string     `json:"email" validate:"required,email"`
	PhoneNumber string     `json:"phone_number" validate:"required,min=8"`
	Sex         Sex        `json:"sex" validate:"required,oneof=male female"`
}

type Service struct {
	patients Repository
	validate *validator.Validate
}

func NewService(patients Repository) *Service {
	return &Service{patients: patients, validate: validator.New()}
}

// Upsert creates the patient when no id is given, or replaces an
// existing one in the caller's clinic.
func (s *Service) Upsert(ctx context.Context, clinicID uuid.UUID, in UpsertInput) (*Patient, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)

	if err := s.validate.Struct(in); err != nil {
		return nil, fmt.Errorf("invalid patient: %w", err)
	}

	if in.ID != nil {
		existing, err := s.Get(ctx, clinicID, *in.ID)
		if err != nil {
			return nil, err
		}
		existing.Name = in.Name
		existing.Email = in.Email
		existing.PhoneNumber = in.PhoneNumber
		existing.Sex = in.Sex
		if err := s.patients.Update(ctx, existing); err != nil {
			return nil, err
		}
		return existing, nil
	}

	p := &Patient{
		ClinicID:    clinicID,
		Name:        in.Name,
		Email:       in.Email,
		PhoneNumber: in.PhoneNumber,
		Sex:         in.Sex,
	}
	if err := s.patients.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Get fetches a patient, scoped to the caller's clinic.
func (s *Service) Get(ctx context.Context, clinicID, id uuid.UUID) (*Patient, error) {
	p, err := s.patients.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.ClinicID != clinicID {
		return nil, ErrNotFound
	}
	return p, nil
}

func (s *Service) List(ctx context.Context, clinicID uuid.UUID, page pagination.Params) ([]*Patient, int, error) {
	return s.patients.ListByClinic(ctx, clinicID, page)
}

// Delete removes a patient and, through the store, all of its
// appointments.
func (s *Service) Delete(ctx context.Context, clinicID, id uuid.UUID) error {
	if _, err := s.Get(ctx, clinicID, id); err != nil {
		return err
	}
	return s.patients.Delete(ctx, id)
}
