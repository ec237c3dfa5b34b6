package doctor

import (
	"time"

	"github.com/google/uuid"

	"github.com/clinicdash/clinicdash/internal/domain/availability"
)

// Doctor maps to the doctors table. The availability columns describe a
// recurring weekly window: a weekday range that may wrap across the
// week boundary and a same-day time range.
type Doctor struct {
	ID                    uuid.UUID              `db:"id" json:"id"`
	ClinicID              uuid.UUID              `db:"clinic_id" json:"clinic_id"`
	Name                  string                 `db:"name" json:"name"`
	Specialty             string                 `db:"specialty" json:"specialty"`
	AvatarImageURL        *string                `db:"avatar_image_url" json:"avatar_image_url,omitempty"`
	AvailableFromWeekDay  int                    `db:"available_from_week_day" json:"available_from_week_day"`
	AvailableToWeekDay    int                    `db:"available_to_week_day" json:"available_to_week_day"`
	AvailableFromTime     availability.TimeOfDay `db:"available_from_time" json:"available_from_time"`
	AvailableToTime       availability.TimeOfDay `db:"available_to_time" json:"available_to_time"`
	AppointmentPriceCents int64                  `db:"appointment_price_in_cents" json:"appointment_price_in_cents"`
	CreatedAt             time.Time              `db:"created_at" json:"created_at"`
	UpdatedAt             time.Time              `db:"updated_at" json:"updated_at"`
}

// AvailabilityWindow assembles the doctor's recurring weekly window.
func (d *Doctor) AvailabilityWindow() availability.Window {
	return availability.Window{
		FromWeekDay: time.Weekday(d.AvailableFromWeekDay),
		ToWeekDay:   time.Weekday(d.AvailableToWeekDay),
		From:        d.AvailableFromTime,
		To:          d.AvailableToTime,
	}
}
