package clinic

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrNotFound     = errors.New("clinic not found")
	ErrNameTooShort = errors.New("clinic name must be at least 2 characters")
)

type Service struct {
	clinics Repository
}

func NewService(clinics Repository) *Service {
	return &Service{clinics: clinics}
}

func (s *Service) Create(ctx context.Context, name string) (*Clinic, error) {
	name = strings.TrimSpace(name)
	if len(name) < 2 {
		return nil, ErrNameTooShort
	}
	cl := &Clinic{Name: name}
	if err := s.clinics.Create(ctx, cl); err != nil {
		return nil, err
	}
	return cl, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Clinic, error) {
	return s.clinics.GetByID(ctx, id)
}
