package dashboard

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/clinicdash/clinicdash/internal/domain/appointment"
	"github.com/clinicdash/clinicdash/internal/domain/doctor"
)

type memStore struct {
	appointments []*appointment.Appointment
	doctors      []*doctor.Doctor
	patients     map[uuid.UUID]int

	apptErr    error
	doctorErr  error
	patientErr error
}

func (m *memStore) ListByClinicAndRange(_ context.Context, clinicID uuid.UUID, from, to time.Time) ([]*appointment.Appointment, error) {
	if m.apptErr != nil {
		return nil, m.apptErr
	}
	var out []*appointment.Appointment
	for _, a := range m.appointments {
		if a.ClinicID != clinicID {
			continue
		}
		if a.Date.Before(from) || a.Date.After(to) {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (m *memStore) ListByClinic(_ context.Context, clinicID uuid.UUID) ([]*doctor.Doctor, error) {
	if m.doctorErr != nil {
		return nil, m.doctorErr
	}
	var out []*doctor.Doctor
	for _, d := range m.doctors {
		if d.ClinicID == clinicID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (m *memStore) CountByClinic(_ context.Context, clinicID uuid.UUID) (int, error) {
	if m.patientErr != nil {
		return 0, m.patientErr
	}
	return m.patients[clinicID], nil
}

// 2024-01-10 is a Wednesday; the chart window runs 2023-12-31 through
// 2024-01-20.
var fixedNow = time.Date(2024, 1, 10, 15, 30, 0, 0, time.UTC)

func newService(store *memStore) *Service {
	svc := NewService(store, store, store)
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func addDoctor(store *memStore, clinicID uuid.UUID, name, specialty string) *doctor.Doctor {
	d := &doctor.Doctor{
		ID:        uuid.New(),
		ClinicID:  clinicID,
		Name:      name,
		Specialty: specialty,
	}
	store.doctors = append(store.doctors, d)
	return d
}

func addAppointment(store *memStore, clinicID, doctorID uuid.UUID, date time.Time, priceCents int64) {
	store.appointments = append(store.appointments, &appointment.Appointment{
		ID:         uuid.New(),
		ClinicID:   clinicID,
		DoctorID:   doctorID,
		PatientID:  uuid.New(),
		Date:       date,
		PriceCents: priceCents,
	})
}

func monthQuery(clinicID uuid.UUID) Query {
	return Query{
		ClinicID: clinicID,
		From:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		To:       time.Date(2024, 1, 31, 23, 59, 59, 0, time.UTC),
	}
}

func TestSnapshotTotals(t *testing.T) {
	store := &memStore{patients: map[uuid.UUID]int{}}
	clinicID := uuid.New()
	store.patients[clinicID] = 7

	d := addDoctor(store, clinicID, "Dr. Alice Silva", "Cardiology")
	for i := 0; i < 3; i++ {
		addAppointment(store, clinicID, d.ID,
			time.Date(2024, 1, 8+i, 10, 0, 0, 0, time.UTC), 10000)
	}

	snap, err := newService(store).Snapshot(context.Background(), monthQuery(clinicID))
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if snap.TotalRevenueCents != 30000 {
		t.Fatalf("revenue = %d, want 30000", snap.TotalRevenueCents)
	}
	if snap.TotalAppointments != 3 {
		t.Fatalf("appointments = %d, want 3", snap.TotalAppointments)
	}
	if snap.TotalPatients != 7 {
		t.Fatalf("patients = %d, want 7", snap.TotalPatients)
	}
	if snap.TotalDoctors != 1 {
		t.Fatalf("doctors = %d, want 1", snap.TotalDoctors)
	}
	if len(snap.TopDoctors) != 1 || snap.TopDoctors[0].ID != d.ID || snap.TopDoctors[0].Appointments != 3 {
		t.Fatalf("TopDoctors = %+v, want the single doctor with 3 appointments", snap.TopDoctors)
	}
}

func TestSnapshotIgnoresOtherClinics(t *testing.T) {
	store := &memStore{patients: map[uuid.UUID]int{}}
	clinicA := uuid.New()
	clinicB := uuid.New()
	store.patients[clinicA] = 2
	store.patients[clinicB] = 9

	da := addDoctor(store, clinicA, "Dr. Alice Silva", "Cardiology")
	db := addDoctor(store, clinicB, "Dr. Bruno Costa", "Dermatology")

	date := time.Date(2024, 1, 10, 10, 0, 0, 0, time.UTC)
	addAppointment(store, clinicA, da.ID, date, 10000)
	addAppointment(store, clinicB, db.ID, date, 99999)
	addAppointment(store, clinicB, db.ID, date, 99999)

	snap, err := newService(store).Snapshot(context.Background(), monthQuery(clinicA))
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if snap.TotalRevenueCents != 10000 {
		t.Fatalf("revenue = %d, want 10000 (clinic A only)", snap.TotalRevenueCents)
	}
	if snap.TotalAppointments != 1 {
		t.Fatalf("appointments = %d, want 1", snap.TotalAppointments)
	}
	if snap.TotalPatients != 2 {
		t.Fatalf("patients = %d, want 2", snap.TotalPatients)
	}
	if snap.TotalDoctors != 1 {
		t.Fatalf("doctors = %d, want 1", snap.TotalDoctors)
	}
	for _, td := range snap.TopDoctors {
		if td.ID == db.ID {
			t.Fatal("clinic B doctor leaked into clinic A ranking")
		}
	}
}

func TestSnapshotRespectsReportingWindow(t *testing.T) {
	store := &memStore{patients: map[uuid.UUID]int{}}
	clinicID := uuid.New()
	d := addDoctor(store, clinicID, "Dr. Alice Silva", "Cardiology")

	addAppointment(store, clinicID, d.ID, time.Date(2024, 1, 10, 10, 0, 0, 0, time.UTC), 10000)
	addAppointment(store, clinicID, d.ID, time.Date(2023, 12, 15, 10, 0, 0, 0, time.UTC), 50000)
	addAppointment(store, clinicID, d.ID, time.Date(2024, 2, 15, 10, 0, 0, 0, time.UTC), 50000)

	snap, err := newService(store).Snapshot(context.Background(), monthQuery(clinicID))
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if snap.TotalAppointments != 1 || snap.TotalRevenueCents != 10000 {
		t.Fatalf("got %d appts / %d cents, want 1 / 10000",
			snap.TotalAppointments, snap.TotalRevenueCents)
	}
}

func TestTopDoctorsRankingAndLimit(t *testing.T) {
	store := &memStore{patients: map[uuid.UUID]int{}}
	clinicID := uuid.New()

	date := time.Date(2024, 1, 10, 10, 0, 0, 0, time.UTC)
	var doctors []*doctor.Doctor
	for i := 0; i < 12; i++ {
		d := addDoctor(store, clinicID, fmt.Sprintf("Doctor %02d", i), "Cardiology")
		doctors = append(doctors, d)
		for j := 0; j < i; j++ {
			addAppointment(store, clinicID, d.ID, date, 10000)
		}
	}

	snap, err := newService(store).Snapshot(context.Background(), monthQuery(clinicID))
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if len(snap.TopDoctors) != 10 {
		t.Fatalf("len(TopDoctors) = %d, want 10", len(snap.TopDoctors))
	}
	if snap.TopDoctors[0].ID != doctors[11].ID || snap.TopDoctors[0].Appointments != 11 {
		t.Fatalf("rank 1 = %s (%d), want busiest doctor with 11",
			snap.TopDoctors[0].Name, snap.TopDoctors[0].Appointments)
	}
	for i := 1; i < len(snap.TopDoctors); i++ {
		if snap.TopDoctors[i].Appointments > snap.TopDoctors[i-1].Appointments {
			t.Fatalf("ranking not descending at %d", i)
		}
	}
}

func TestTopDoctorsIncludesZeroCounts(t *testing.T) {
	store := &memStore{patients: map[uuid.UUID]int{}}
	clinicID := uuid.New()

	busy := addDoctor(store, clinicID, "Dr. Busy", "Cardiology")
	idle := addDoctor(store, clinicID, "Dr. Idle", "Dermatology")
	addAppointment(store, clinicID, busy.ID,
		time.Date(2024, 1, 10, 10, 0, 0, 0, time.UTC), 10000)

	snap, err := newService(store).Snapshot(context.Background(), monthQuery(clinicID))
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if len(snap.TopDoctors) != 2 {
		t.Fatalf("len(TopDoctors) = %d, want 2", len(snap.TopDoctors))
	}
	if snap.TopDoctors[1].ID != idle.ID || snap.TopDoctors[1].Appointments != 0 {
		t.Fatalf("expected idle doctor ranked last with 0, got %s (%d)",
			snap.TopDoctors[1].Name, snap.TopDoctors[1].Appointments)
	}
}

func TestTopDoctorsTieBreakOnID(t *testing.T) {
	store := &memStore{patients: map[uuid.UUID]int{}}
	clinicID := uuid.New()

	a := addDoctor(store, clinicID, "Dr. A", "Cardiology")
	b := addDoctor(store, clinicID, "Dr. B", "Cardiology")
	date := time.Date(2024, 1, 10, 10, 0, 0, 0, time.UTC)
	addAppointment(store, clinicID, a.ID, date, 10000)
	addAppointment(store, clinicID, b.ID, date, 10000)

	first, second := a.ID, b.ID
	if second.String() < first.String() {
		first, second = second, first
	}

	snap, err := newService(store).Snapshot(context.Background(), monthQuery(clinicID))
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if snap.TopDoctors[0].ID != first || snap.TopDoctors[1].ID != second {
		t.Fatal("tie not broken by ascending id")
	}
}

func TestTopSpecialties(t *testing.T) {
	store := &memStore{patients: map[uuid.UUID]int{}}
	clinicID := uuid.New()

	cardio := addDoctor(store, clinicID, "Dr. A", "Cardiology")
	derma := addDoctor(store, clinicID, "Dr. B", "Dermatology")
	addDoctor(store, clinicID, "Dr. C", "Neurology")

	date := time.Date(2024, 1, 10, 10, 0, 0, 0, time.UTC)
	addAppointment(store, clinicID, cardio.ID, date, 10000)
	addAppointment(store, clinicID, cardio.ID, date, 10000)
	addAppointment(store, clinicID, derma.ID, date, 10000)

	snap, err := newService(store).Snapshot(context.Background(), monthQuery(clinicID))
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	want := []TopSpecialty{
		{Specialty: "Cardiology", Appointments: 2},
		{Specialty: "Dermatology", Appointments: 1},
	}
	if len(snap.TopSpecialties) != len(want) {
		t.Fatalf("len(TopSpecialties) = %d, want %d (no zero-count specialties)",
			len(snap.TopSpecialties), len(want))
	}
	for i := range want {
		if snap.TopSpecialties[i] != want[i] {
			t.Fatalf("specialty[%d] = %+v, want %+v", i, snap.TopSpecialties[i], want[i])
		}
	}
}

func TestTopSpecialtiesTieBreakOnName(t *testing.T) {
	store := &memStore{patients: map[uuid.UUID]int{}}
	clinicID := uuid.New()

	derma := addDoctor(store, clinicID, "Dr. A", "Dermatology")
	cardio := addDoctor(store, clinicID, "Dr. B", "Cardiology")
	date := time.Date(2024, 1, 10, 10, 0, 0, 0, time.UTC)
	addAppointment(store, clinicID, derma.ID, date, 10000)
	addAppointment(store, clinicID, cardio.ID, date, 10000)

	snap, err := newService(store).Snapshot(context.Background(), monthQuery(clinicID))
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if snap.TopSpecialties[0].Specialty != "Cardiology" {
		t.Fatalf("tie not broken by name: got %s first", snap.TopSpecialties[0].Specialty)
	}
}

func TestDailySeriesShape(t *testing.T) {
	store := &memStore{patients: map[uuid.UUID]int{}}
	clinicID := uuid.New()
	d := addDoctor(store, clinicID, "Dr. Alice Silva", "Cardiology")

	addAppointment(store, clinicID, d.ID, time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC), 10000)
	addAppointment(store, clinicID, d.ID, time.Date(2024, 1, 10, 16, 0, 0, 0, time.UTC), 15000)
	addAppointment(store, clinicID, d.ID, time.Date(2023, 12, 31, 10, 0, 0, 0, time.UTC), 20000)
	// Outside the rolling window on both sides.
	addAppointment(store, clinicID, d.ID, time.Date(2023, 12, 30, 10, 0, 0, 0, time.UTC), 50000)
	addAppointment(store, clinicID, d.ID, time.Date(2024, 1, 21, 10, 0, 0, 0, time.UTC), 50000)

	snap, err := newService(store).Snapshot(context.Background(), monthQuery(clinicID))
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}

	if len(snap.DailySeries) != 21 {
		t.Fatalf("len(DailySeries) = %d, want 21", len(snap.DailySeries))
	}
	if snap.DailySeries[0].Date != "2023-12-31" {
		t.Fatalf("first day = %s, want 2023-12-31", snap.DailySeries[0].Date)
	}
	if snap.DailySeries[20].Date != "2024-01-20" {
		t.Fatalf("last day = %s, want 2024-01-20", snap.DailySeries[20].Date)
	}

	byDate := make(map[string]DailyPoint, len(snap.DailySeries))
	for _, p := range snap.DailySeries {
		byDate[p.Date] = p
	}
	if p := byDate["2024-01-10"]; p.Appointments != 2 || p.RevenueCents != 25000 {
		t.Fatalf("2024-01-10 = %+v, want 2 appts / 25000 cents", p)
	}
	if p := byDate["2023-12-31"]; p.Appointments != 1 || p.RevenueCents != 20000 {
		t.Fatalf("2023-12-31 = %+v, want 1 appt / 20000 cents", p)
	}
	if p := byDate["2024-01-15"]; p.Appointments != 0 || p.RevenueCents != 0 {
		t.Fatalf("empty day not zero-filled: %+v", p)
	}
}

func TestDailySeriesMatchesScalarsWhenWindowsAlign(t *testing.T) {
	store := &memStore{patients: map[uuid.UUID]int{}}
	clinicID := uuid.New()
	d := addDoctor(store, clinicID, "Dr. Alice Silva", "Cardiology")

	for i := 0; i < 5; i++ {
		addAppointment(store, clinicID, d.ID,
			time.Date(2024, 1, 5+i, 10, 0, 0, 0, time.UTC), 10000)
	}

	q := Query{
		ClinicID: clinicID,
		From:     time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC),
		To:       time.Date(2024, 1, 20, 23, 59, 59, 0, time.UTC),
	}
	snap, err := newService(store).Snapshot(context.Background(), q)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}

	var seriesAppts int
	var seriesRevenue int64
	for _, p := range snap.DailySeries {
		seriesAppts += p.Appointments
		seriesRevenue += p.RevenueCents
	}
	if seriesAppts != snap.TotalAppointments {
		t.Fatalf("series sum = %d, scalar = %d", seriesAppts, snap.TotalAppointments)
	}
	if seriesRevenue != snap.TotalRevenueCents {
		t.Fatalf("series revenue = %d, scalar = %d", seriesRevenue, snap.TotalRevenueCents)
	}
}

func TestSnapshotFailsWhenAnyReadFails(t *testing.T) {
	boom := errors.New("storage down")
	tests := []struct {
		name  string
		wound func(*memStore)
	}{
		{"appointments", func(s *memStore) { s.apptErr = boom }},
		{"doctors", func(s *memStore) { s.doctorErr = boom }},
		{"patients", func(s *memStore) { s.patientErr = boom }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &memStore{patients: map[uuid.UUID]int{}}
			clinicID := uuid.New()
			d := addDoctor(store, clinicID, "Dr. Alice Silva", "Cardiology")
			addAppointment(store, clinicID, d.ID,
				time.Date(2024, 1, 10, 10, 0, 0, 0, time.UTC), 10000)
			tt.wound(store)

			snap, err := newService(store).Snapshot(context.Background(), monthQuery(clinicID))
			if !errors.Is(err, boom) {
				t.Fatalf("err = %v, want wrapped storage error", err)
			}
			if snap != nil {
				t.Fatal("expected nil snapshot on failure")
			}
		})
	}
}

func TestSnapshotEmptyClinic(t *testing.T) {
	store := &memStore{patients: map[uuid.UUID]int{}}
	clinicID := uuid.New()

	snap, err := newService(store).Snapshot(context.Background(), monthQuery(clinicID))
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if snap.TotalRevenueCents != 0 || snap.TotalAppointments != 0 ||
		snap.TotalPatients != 0 || snap.TotalDoctors != 0 {
		t.Fatalf("expected zero totals, got %+v", snap)
	}
	if len(snap.TopDoctors) != 0 || len(snap.TopSpecialties) != 0 {
		t.Fatal("expected empty rankings")
	}
	if len(snap.DailySeries) != 21 {
		t.Fatalf("len(DailySeries) = %d, want 21 even when empty", len(snap.DailySeries))
	}
}
