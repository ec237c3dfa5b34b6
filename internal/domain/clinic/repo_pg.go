package clinic

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

func (r *repoPG) Create(ctx context.Context, cl *Clinic) error {
	cl.ID = uuid.New()
	return r.pool.QueryRow(ctx, `
		INSERT INTO clinics (id, name)
		VALUES ($1, $2)
		RETURNING created_at, updated_at`,
		cl.ID, cl.Name).Scan(&cl.CreatedAt, &cl.UpdatedAt)
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Clinic, error) {
	var cl Clinic
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, created_at, updated_at FROM clinics WHERE id = $1`,
		id).Scan(&cl.ID, &cl.Name, &cl.CreatedAt, &cl.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &cl, nil
}
