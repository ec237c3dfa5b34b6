package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, a *Appointment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error)
	// ListByClinicAndRange returns the clinic's appointments with
	// from <= date <= to, ordered by date.
	ListByClinicAndRange(ctx context.Context, clinicID uuid.UUID, from, to time.Time) ([]*Appointment, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
