package doctor

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	// Upsert inserts the doctor, or fully replaces the existing row
	// when a doctor with the same id exists.
	Upsert(ctx context.Context, d *Doctor) error
	GetByID(ctx context.Context, id uuid.UUID) (*Doctor, error)
	ListByClinic(ctx context.Context, clinicID uuid.UUID) ([]*Doctor, error)
	CountByClinic(ctx context.Context, clinicID uuid.UUID) (int, error)
	// Delete removes the doctor; associated appointments cascade at
	// the store level.
	Delete(ctx context.Context, id uuid.UUID) error
}
