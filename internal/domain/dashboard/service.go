package dashboard

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/clinicdash/clinicdash/internal/domain/appointment"
	"github.com/clinicdash/clinicdash/internal/domain/doctor"
)

const (
	topDoctorsLimit = 10
	chartDaysAround = 10
	dateKey         = "2006-01-02"
)

// AppointmentSource is the slice of the appointment store the
// aggregator reads from.
type AppointmentSource interface {
	ListByClinicAndRange(ctx context.Context, clinicID uuid.UUID, from, to time.Time) ([]*appointment.Appointment, error)
}

// DoctorSource supplies the clinic's full roster.
type DoctorSource interface {
	ListByClinic(ctx context.Context, clinicID uuid.UUID) ([]*doctor.Doctor, error)
}

// PatientSource supplies the clinic's patient headcount.
type PatientSource interface {
	CountByClinic(ctx context.Context, clinicID uuid.UUID) (int, error)
}

type Service struct {
	appointments AppointmentSource
	doctors      DoctorSource
	patients     PatientSource
	now          func() time.Time
}

func NewService(appointments AppointmentSource, doctors DoctorSource, patients PatientSource) *Service {
	return &Service{
		appointments: appointments,
		doctors:      doctors,
		patients:     patients,
		now:          time.Now,
	}
}

// Snapshot runs the four reads concurrently and reduces them in memory.
// Any failed read fails the whole snapshot.
func (s *Service) Snapshot(ctx context.Context, q Query) (*Snapshot, error) {
	var (
		windowAppts []*appointment.Appointment
		chartAppts  []*appointment.Appointment
		roster      []*doctor.Doctor
		patients    int
	)

	chartFrom, chartTo := s.chartRange()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		windowAppts, err = s.appointments.ListByClinicAndRange(gctx, q.ClinicID, q.From, q.To)
		return err
	})
	g.Go(func() error {
		var err error
		chartAppts, err = s.appointments.ListByClinicAndRange(gctx, q.ClinicID, chartFrom, chartTo)
		return err
	})
	g.Go(func() error {
		var err error
		roster, err = s.doctors.ListByClinic(gctx, q.ClinicID)
		return err
	})
	g.Go(func() error {
		var err error
		patients, err = s.patients.CountByClinic(gctx, q.ClinicID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	snap := &Snapshot{
		TotalAppointments: len(windowAppts),
		TotalPatients:     patients,
		TotalDoctors:      len(roster),
		TopDoctors:        topDoctors(roster, windowAppts),
		TopSpecialties:    topSpecialties(roster, windowAppts),
		DailySeries:       dailySeries(chartAppts, chartFrom),
	}
	for _, a := range windowAppts {
		snap.TotalRevenueCents += a.PriceCents
	}
	return snap, nil
}

// chartRange is the rolling chart window: ten days before today through
// the last instant ten days after today.
func (s *Service) chartRange() (time.Time, time.Time) {
	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	from := today.AddDate(0, 0, -chartDaysAround)
	to := today.AddDate(0, 0, chartDaysAround+1).Add(-time.Nanosecond)
	return from, to
}

// topDoctors ranks the full roster by reporting-window appointment
// count. Doctors without appointments stay in with a zero count. Ties
// break on id so the ranking is stable across runs.
func topDoctors(roster []*doctor.Doctor, appts []*appointment.Appointment) []TopDoctor {
	counts := make(map[uuid.UUID]int, len(roster))
	for _, a := range appts {
		counts[a.DoctorID]++
	}

	ranked := make([]TopDoctor, 0, len(roster))
	for _, d := range roster {
		ranked = append(ranked, TopDoctor{
			ID:             d.ID,
			Name:           d.Name,
			AvatarImageURL: d.AvatarImageURL,
			Specialty:      d.Specialty,
			Appointments:   counts[d.ID],
		})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Appointments != ranked[j].Appointments {
			return ranked[i].Appointments > ranked[j].Appointments
		}
		return ranked[i].ID.String() < ranked[j].ID.String()
	})
	if len(ranked) > topDoctorsLimit {
		ranked = ranked[:topDoctorsLimit]
	}
	return ranked
}

// topSpecialties counts reporting-window appointments per specialty of
// the booked doctor. Specialties with no appointments do not appear.
func topSpecialties(roster []*doctor.Doctor, appts []*appointment.Appointment) []TopSpecialty {
	specialtyOf := make(map[uuid.UUID]string, len(roster))
	for _, d := range roster {
		specialtyOf[d.ID] = d.Specialty
	}

	counts := make(map[string]int)
	for _, a := range appts {
		if sp, ok := specialtyOf[a.DoctorID]; ok {
			counts[sp]++
		}
	}

	ranked := make([]TopSpecialty, 0, len(counts))
	for sp, n := range counts {
		ranked = append(ranked, TopSpecialty{Specialty: sp, Appointments: n})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Appointments != ranked[j].Appointments {
			return ranked[i].Appointments > ranked[j].Appointments
		}
		return ranked[i].Specialty < ranked[j].Specialty
	})
	return ranked
}

// dailySeries buckets the chart appointments by calendar day and emits
// one point per day of the rolling window, zero-filled where nothing
// happened.
func dailySeries(appts []*appointment.Appointment, chartFrom time.Time) []DailyPoint {
	type bucket struct {
		appointments int
		revenue      int64
	}
	buckets := make(map[string]bucket)
	for _, a := range appts {
		key := a.Date.Format(dateKey)
		b := buckets[key]
		b.appointments++
		b.revenue += a.PriceCents
		buckets[key] = b
	}

	days := 2*chartDaysAround + 1
	series := make([]DailyPoint, 0, days)
	for i := 0; i < days; i++ {
		key := chartFrom.AddDate(0, 0, i).Format(dateKey)
		b := buckets[key]
		series = append(series, DailyPoint{
			Date:         key,
			Appointments: b.appointments,
			RevenueCents: b.revenue,
		})
	}
	return series
}
