package doctor

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

const doctorCols = `id, clinic_id, name, specialty, avatar_image_url,
	available_from_week_day, available_to_week_day,
	available_from_time, available_to_time,
	appointment_price_in_cents, created_at, updated_at`

func scanDoctor(row pgx.Row) (*Doctor, error) {
	var d Doctor
	err := row.Scan(&d.ID, &d.ClinicID, &d.Name, &d.Specialty, &d.AvatarImageURL,
		&d.AvailableFromWeekDay, &d.AvailableToWeekDay,
		&d.AvailableFromTime, &d.AvailableToTime,
		&d.AppointmentPriceCents, &d.CreatedAt, &d.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *repoPG) Upsert(ctx context.Context, d *Doctor) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return r.pool.QueryRow(ctx, `
		INSERT INTO doctors (id, clinic_id, name, specialty, avatar_image_url,
			available_from_week_day, available_to_week_day,
			available_from_time, available_to_time,
			appointment_price_in_cents)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			specialty = EXCLUDED.specialty,
			avatar_image_url = EXCLUDED.avatar_image_url,
			available_from_week_day = EXCLUDED.available_from_week_day,
			available_to_week_day = EXCLUDED.available_to_week_day,
			available_from_time = EXCLUDED.available_from_time,
			available_to_time = EXCLUDED.available_to_time,
			appointment_price_in_cents = EXCLUDED.appointment_price_in_cents,
			updated_at = NOW()
		RETURNING created_at, updated_at`,
		d.ID, d.ClinicID, d.Name, d.Specialty, d.AvatarImageURL,
		d.AvailableFromWeekDay, d.AvailableToWeekDay,
		d.AvailableFromTime, d.AvailableToTime,
		d.AppointmentPriceCents).Scan(&d.CreatedAt, &d.UpdatedAt)
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Doctor, error) {
	return scanDoctor(r.pool.QueryRow(ctx,
		`SELECT `+doctorCols+` FROM doctors WHERE id = $1`, id))
}

func (r *repoPG) ListByClinic(ctx context.Context, clinicID uuid.UUID) ([]*Doctor, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+doctorCols+` FROM doctors WHERE clinic_id = $1 ORDER BY name`, clinicID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Doctor
	for rows.Next() {
		d, err := scanDoctor(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, d)
	}
	return items, rows.Err()
}

func (r *repoPG) CountByClinic(ctx context.Context, clinicID uuid.UUID) (int, error) {
	var total int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM doctors WHERE clinic_id = $1`, clinicID).Scan(&total)
	return total, err
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM doctors WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
