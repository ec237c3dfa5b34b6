package clinic

import (
	"time"

	"github.com/google/uuid"
)

// Clinic is the aggregate root every doctor, patient and appointment
// belongs to.
type Clinic struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
