package patient

import (
	"context"

	"github.com/google/uuid"

	"github.com/clinicdash/clinicdash/pkg/pagination"
)

type Repository interface {
	Create(ctx context.Context, p *Patient) error
	Update(ctx context.Context, p *Patient) error
	GetByID(ctx context.Context, id uuid.UUID) (*Patient, error)
	ListByClinic(ctx context.Context, clinicID uuid.UUID, page pagination.Params) ([]*Patient, int, error)
	CountByClinic(ctx context.Context, clinicID uuid.UUID) (int, error)
	// Delete removes the patient; associated appointments cascade at
	// the store level.
	Delete(ctx context.Context, id uuid.UUID) error
}
