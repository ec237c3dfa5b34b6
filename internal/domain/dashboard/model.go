package dashboard

import (
	"time"

	"github.com/google/uuid"
)

// Query bounds a snapshot: which clinic and which inclusive reporting
// window the scalar totals and rankings cover.
type Query struct {
	ClinicID uuid.UUID
	From     time.Time
	To       time.Time
}

// TopDoctor is one row of the ranking, carrying enough of the doctor
// for display.
type TopDoctor struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	AvatarImageURL *string   `json:"avatar_image_url,omitempty"`
	Specialty      string    `json:"specialty"`
	Appointments   int       `json:"appointments"`
}

// TopSpecialty counts reporting-window appointments per specialty.
type TopSpecialty struct {
	Specialty    string `json:"specialty"`
	Appointments int    `json:"appointments"`
}

// DailyPoint is one day of the chart series. Date is day-granular,
// formatted YYYY-MM-DD.
type DailyPoint struct {
	Date         string `json:"date"`
	Appointments int    `json:"appointments"`
	RevenueCents int64  `json:"revenue_in_cents"`
}

// Snapshot is the full dashboard payload assembled from one query.
type Snapshot struct {
	TotalRevenueCents int64          `json:"total_revenue_in_cents"`
	TotalAppointments int            `json:"total_appointments"`
	TotalPatients     int            `json:"total_patients"`
	TotalDoctors      int            `json:"total_doctors"`
	TopDoctors        []TopDoctor    `json:"top_doctors"`
	TopSpecialties    []TopSpecialty `json:"top_specialties"`
	DailySeries       []DailyPoint   `json:"daily_series"`
}
