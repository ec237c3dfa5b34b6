// Package seed generates reproducible synthetic clinic data for local
// development and demos: one clinic, a doctor roster with realistic
// availability windows, a patient base, and appointments spread around
// the current date so the dashboard has something to show.
package seed

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"github.com/clinicdash/clinicdash/internal/domain/appointment"
	"github.com/clinicdash/clinicdash/internal/domain/availability"
	"github.com/clinicdash/clinicdash/internal/domain/clinic"
	"github.com/clinicdash/clinicdash/internal/domain/doctor"
	"github.com/clinicdash/clinicdash/internal/domain/patient"
)

// Config controls the volume of generated data. The Seed value makes
// runs reproducible.
type Config struct {
	ClinicName   string
	Doctors      int
	Patients     int
	Appointments int
	Seed         int64
}

func DefaultConfig() Config {
	return Config{
		ClinicName:   "Demo Clinic",
		Doctors:      6,
		Patients:     40,
		Appointments: 120,
		Seed:         1,
	}
}

type Seeder struct {
	clinics      clinic.Repository
	doctors      doctor.Repository
	patients     patient.Repository
	appointments appointment.Repository
	log          zerolog.Logger
}

func NewSeeder(clinics clinic.Repository, doctors doctor.Repository,
	patients patient.Repository, appointments appointment.Repository,
	log zerolog.Logger) *Seeder {
	return &Seeder{
		clinics:      clinics,
		doctors:      doctors,
		patients:     patients,
		appointments: appointments,
		log:          log,
	}
}

var specialties = []string{
	"Cardiology", "Dermatology", "Pediatrics", "Orthopedics",
	"Neurology", "Gynecology", "Psychiatry", "Ophthalmology",
}

var firstNames = []string{
	"Ana", "Bruno", "Carla", "Diego", "Elena", "Felipe", "Gabriela",
	"Hugo", "Isabela", "Joao", "Karina", "Lucas", "Mariana", "Nicolas",
	"Olivia", "Pedro", "Rafaela", "Sofia", "Thiago", "Valentina",
}

var lastNames = []string{
	"Silva", "Santos", "Oliveira", "Souza", "Costa", "Pereira",
	"Almeida", "Ferreira", "Rodrigues", "Lima",
}

// Run seeds one clinic and returns it so callers can print the id or
// mint a token for it.
func (s *Seeder) Run(ctx context.Context, cfg Config) (*clinic.Clinic, error) {
	rng := rand.New(rand.NewSource(cfg.Seed))

	cl := &clinic.Clinic{Name: cfg.ClinicName}
	if err := s.clinics.Create(ctx, cl); err != nil {
		return nil, fmt.Errorf("seed clinic: %w", err)
	}
	s.log.Info().Str("clinic_id", cl.ID.String()).Str("name", cl.Name).Msg("seeded clinic")

	doctors := make([]*doctor.Doctor, 0, cfg.Doctors)
	for i := 0; i < cfg.Doctors; i++ {
		d := s.makeDoctor(rng, cl, i)
		if err := s.doctors.Upsert(ctx, d); err != nil {
			return nil, fmt.Errorf("seed doctor %d: %w", i, err)
		}
		doctors = append(doctors, d)
	}

	patients := make([]*patient.Patient, 0, cfg.Patients)
	for i := 0; i < cfg.Patients; i++ {
		p := s.makePatient(rng, cl, i)
		if err := s.patients.Create(ctx, p); err != nil {
			return nil, fmt.Errorf("seed patient %d: %w", i, err)
		}
		patients = append(patients, p)
	}

	booked := 0
	for booked < cfg.Appointments {
		d := doctors[rng.Intn(len(doctors))]
		p := patients[rng.Intn(len(patients))]
		date, ok := s.bookableInstant(rng, d)
		if !ok {
			continue
		}
		a := &appointment.Appointment{
			ClinicID:   cl.ID,
			DoctorID:   d.ID,
			PatientID:  p.ID,
			Date:       date,
			PriceCents: d.AppointmentPriceCents,
		}
		if err := s.appointments.Create(ctx, a); err != nil {
			return nil, fmt.Errorf("seed appointment %d: %w", booked, err)
		}
		booked++
	}

	s.log.Info().
		Int("doctors", len(doctors)).
		Int("patients", len(patients)).
		Int("appointments", booked).
		Msg("seed complete")
	return cl, nil
}

func (s *Seeder) makeDoctor(rng *rand.Rand, cl *clinic.Clinic, i int) *doctor.Doctor {
	name := "Dr. " + pick(rng, firstNames) + " " + pick(rng, lastNames)
	fromDay := rng.Intn(7)
	spanDays := 2 + rng.Intn(5)
	fromHour := 7 + rng.Intn(4)
	spanHours := 6 + rng.Intn(4)
	return &doctor.Doctor{
		ClinicID:              cl.ID,
		Name:                  name,
		Specialty:             specialties[i%len(specialties)],
		AvailableFromWeekDay:  fromDay,
		AvailableToWeekDay:    (fromDay + spanDays) % 7,
		AvailableFromTime:     availability.FromClock(fromHour, 0, 0),
		AvailableToTime:       availability.FromClock(fromHour+spanHours, 0, 0),
		AppointmentPriceCents: int64(10000 + rng.Intn(40)*500),
	}
}

func (s *Seeder) makePatient(rng *rand.Rand, cl *clinic.Clinic, i int) *patient.Patient {
	first := pick(rng, firstNames)
	last := pick(rng, lastNames)
	sex := patient.SexFemale
	if rng.Intn(2) == 0 {
		sex = patient.SexMale
	}
	return &patient.Patient{
		ClinicID:    cl.ID,
		Name:        first + " " + last,
		Email:       fmt.Sprintf("%s.%s.%d@example.com", first, last, i),
		PhoneNumber: fmt.Sprintf("119%08d", rng.Intn(100000000)),
		Sex:         sex,
	}
}

// bookableInstant picks a day within two weeks of now and an hour
// inside the doctor's daily window, and keeps only instants the
// doctor's weekly window accepts.
func (s *Seeder) bookableInstant(rng *rand.Rand, d *doctor.Doctor) (time.Time, bool) {
	now := time.Now()
	day := now.AddDate(0, 0, rng.Intn(29)-14)
	fromHour, _, _ := d.AvailableFromTime.Clock()
	toHour, _, _ := d.AvailableToTime.Clock()
	hour := fromHour + rng.Intn(toHour-fromHour)
	at := time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, time.UTC)
	if !d.AvailabilityWindow().ContainsInstant(at) {
		return time.Time{}, false
	}
	return at, true
}

func pick(rng *rand.Rand, list []string) string {
	return list[rng.Intn(len(list))]
}
