package booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/careops/hospital-booking/internal/config"
	redisclient "github.com/careops/hospital-booking/internal/redis"
)

// -- Mock repository --

type mockRepo struct {
	mu       sync.Mutex
	patients map[uuid.UUID]*Patient
	doctors  map[uuid.UUID]*Doctor
	rooms    map[uuid.UUID]*Room
	appts    map[uuid.UUID]*Appointment
	events   []AuditEvent
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		patients: make(map[uuid.UUID]*Patient),
		doctors:  make(map[uuid.UUID]*Doctor),
		rooms:    make(map[uuid.UUID]*Room),
		appts:    make(map[uuid.UUID]*Appointment),
	}
}

func (m *mockRepo) addPatient(name string) uuid.UUID {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := uuid.New()
	m.patients[id] = &Patient{ID: id, Name: name}
	return id
}

func (m *mockRepo) addDoctor(name string) uuid.UUID {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := uuid.New()
	m.doctors[id] = &Doctor{ID: id, Name: name}
	return id
}

func (m *mockRepo) addRoom(number string) uuid.UUID {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := uuid.New()
	m.rooms[id] = &Room{ID: id, Number: number, Type: "Consultation"}
	return id
}

func (m *mockRepo) GetPatientByID(_ context.Context, id uuid.UUID) (*Patient, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.patients[id]
	if !ok {
		return nil, ErrPatientNotFound
	}
	return p, nil
}

func (m *mockRepo) GetDoctorByID(_ context.Context, id uuid.UUID) (*Doctor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.doctors[id]
	if !ok {
		return nil, ErrDoctorNotFound
	}
	return d, nil
}

func (m *mockRepo) GetRoomByID(_ context.Context, id uuid.UUID) (*Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rooms[id]
	if !ok {
		return nil, ErrRoomNotFound
	}
	return r, nil
}

func (m *mockRepo) GetAppointmentByID(_ context.Context, id uuid.UUID) (*Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.appts[id]
	if !ok {
		return nil, ErrAppointmentNotFound
	}
	cp := *a
	return &cp, nil
}

func (m *mockRepo) findOverlap(match func(*Appointment) bool, start, end time.Time) (*Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.appts {
		if a.Status == StatusScheduled && match(a) && a.Overlaps(start, end) {
			cp := *a
			return &cp, nil
		}
	}
	return nil, ErrAppointmentNotFound
}

func (m *mockRepo) GetScheduledOverlapForDoctor(_ context.Context, doctorID uuid.UUID, start, end time.Time) (*Appointment, error) {
	return m.findOverlap(func(a *Appointment) bool { return a.DoctorID == doctorID }, start, end)
}

func (m *mockRepo) GetScheduledOverlapForPatient(_ context.Context, patientID uuid.UUID, start, end time.Time) (*Appointment, error) {
	return m.findOverlap(func(a *Appointment) bool { return a.PatientID == patientID }, start, end)
}

func (m *mockRepo) GetScheduledOverlapForRoom(_ context.Context, roomID uuid.UUID, start, end time.Time) (*Appointment, error) {
	return m.findOverlap(func(a *Appointment) bool { return a.RoomID != nil && *a.RoomID == roomID }, start, end)
}

func (m *mockRepo) CreateScheduledAppointment(_ context.Context, appt Appointment) (*Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	appt.ID = uuid.New()
	appt.Status = StatusScheduled
	appt.CreatedAt = time.Now()
	appt.UpdatedAt = appt.CreatedAt
	m.appts[appt.ID] = &appt
	cp := appt
	return &cp, nil
}

func (m *mockRepo) UpdateAppointmentStatus(_ context.Context, id uuid.UUID, from, to AppointmentStatus) (*Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.appts[id]
	if !ok || a.Status != from {
		return nil, ErrAppointmentNotFound
	}
	a.Status = to
	a.UpdatedAt = time.Now()
	cp := *a
	return &cp, nil
}

func (m *mockRepo) ListAppointments(_ context.Context, limit, offset int) ([]AppointmentDetail, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []AppointmentDetail
	for _, a := range m.appts {
		result = append(result, AppointmentDetail{Appointment: *a})
	}
	return result, nil
}

func (m *mockRepo) ListAppointmentsByDoctor(_ context.Context, doctorID uuid.UUID, limit, offset int) ([]AppointmentDetail, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []AppointmentDetail
	for _, a := range m.appts {
		if a.DoctorID == doctorID {
			result = append(result, AppointmentDetail{Appointment: *a})
		}
	}
	return result, nil
}

func (m *mockRepo) ListAppointmentsByPatient(_ context.Context, patientID uuid.UUID, limit, offset int) ([]AppointmentDetail, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []AppointmentDetail
	for _, a := range m.appts {
		if a.PatientID == patientID {
			result = append(result, AppointmentDetail{Appointment: *a})
		}
	}
	return result, nil
}

func (m *mockRepo) ListPatients(_ context.Context, limit, offset int) ([]Patient, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []Patient
	for _, p := range m.patients {
		result = append(result, *p)
	}
	return result, nil
}

func (m *mockRepo) ListDoctors(_ context.Context, limit, offset int) ([]Doctor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []Doctor
	for _, d := range m.doctors {
		result = append(result, *d)
	}
	return result, nil
}

func (m *mockRepo) InsertAuditEvent(_ context.Context, ev AuditEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	ev.ID = int64(len(m.events) + 1)
	m.events = append(m.events, ev)
	return nil
}

// mutexLocker serializes every booking through one in-process mutex,
// the simplest strategy that still satisfies the check-then-insert
// atomicity contract.
type mutexLocker struct {
	mu sync.Mutex
}

func (l *mutexLocker) WithBookingLock(ctx context.Context, keys []string, fn func(ctx context.Context) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return fn(ctx)
}

// -- Helpers --

func testConfig() config.Config {
	return config.Config{
		BookingGrace: 5 * time.Minute,
		LockTTL:      5 * time.Second,
	}
}

func newTestService(repo *mockRepo) *Service {
	return NewService(repo, &mutexLocker{}, testConfig())
}

func at(hour, min int) time.Time {
	base := time.Now().Add(24 * time.Hour)
	return time.Date(base.Year(), base.Month(), base.Day(), hour, min, 0, 0, time.UTC)
}

// -- Tests --

func TestRequestBookingBasicAccept(t *testing.T) {
	ctx := context.Background()
	repo := newMockRepo()
	svc := newTestService(repo)

	patient := repo.addPatient("Alice Johnson")
	doctor := repo.addDoctor("Dr. Nimal Fernando")

	appt, err := svc.RequestBooking(ctx, BookingRequest{
		PatientID: patient,
		DoctorID:  doctor,
		Start:     at(10, 0),
		Duration:  30 * time.Minute,
	})
	if err != nil {
		t.Fatalf("RequestBooking: %v", err)
	}

	if appt.Status != StatusScheduled {
		t.Errorf("status = %s, want %s", appt.Status, StatusScheduled)
	}
	if !appt.StartTime.Equal(at(10, 0)) {
		t.Errorf("start = %s, want %s", appt.StartTime, at(10, 0))
	}
	if !appt.EndTime.Equal(at(10, 30)) {
		t.Errorf("end = %s, want %s", appt.EndTime, at(10, 30))
	}
	if appt.ID == uuid.Nil {
		t.Error("expected non-nil appointment ID")
	}
	if len(repo.events) != 1 || repo.events[0].EventType != EventAppointmentScheduled {
		t.Errorf("expected one %s audit event, got %v", EventAppointmentScheduled, repo.events)
	}
}

func TestRequestBookingDoctorConflict(t *testing.T) {
	ctx := context.Background()
	repo := newMockRepo()
	svc := newTestService(repo)

	p1 := repo.addPatient("Alice Johnson")
	p2 := repo.addPatient("Bob Perera")
	doctor := repo.addDoctor("Dr. Nimal Fernando")

	if _, err := svc.RequestBooking(ctx, BookingRequest{
		PatientID: p1, DoctorID: doctor, Start: at(10, 0), Duration: 30 * time.Minute,
	}); err != nil {
		t.Fatalf("first booking: %v", err)
	}

	// 10:15 < 10:30 and 10:00 < 10:45, so the intervals overlap.
	_, err := svc.RequestBooking(ctx, BookingRequest{
		PatientID: p2, DoctorID: doctor, Start: at(10, 15), Duration: 30 * time.Minute,
	})
	if !errors.Is(err, ErrDoctorConflict) {
		t.Fatalf("err = %v, want ErrDoctorConflict", err)
	}
}

func TestRequestBookingBackToBackAccept(t *testing.T) {
	ctx := context.Background()
	repo := newMockRepo()
	svc := newTestService(repo)

	p1 := repo.addPatient("Alice Johnson")
	p2 := repo.addPatient("Bob Perera")
	doctor := repo.addDoctor("Dr. Nimal Fernando")

	if _, err := svc.RequestBooking(ctx, BookingRequest{
		PatientID: p1, DoctorID: doctor, Start: at(10, 0), Duration: 30 * time.Minute,
	}); err != nil {
		t.Fatalf("first booking: %v", err)
	}

	// Half-open intervals: [10:00,10:30) and [10:30,11:00) do not overlap.
	if _, err := svc.RequestBooking(ctx, BookingRequest{
		PatientID: p2, DoctorID: doctor, Start: at(10, 30), Duration: 30 * time.Minute,
	}); err != nil {
		t.Fatalf("back-to-back booking: %v", err)
	}
}

func TestRequestBookingPatientConflict(t *testing.T) {
	ctx := context.Background()
	repo := newMockRepo()
	svc := newTestService(repo)

	patient := repo.addPatient("Alice Johnson")
	d1 := repo.addDoctor("Dr. Nimal Fernando")
	d2 := repo.addDoctor("Dr. Isuri Ranasinghe")

	if _, err := svc.RequestBooking(ctx, BookingRequest{
		PatientID: patient, DoctorID: d1, Start: at(10, 0), Duration: 30 * time.Minute,
	}); err != nil {
		t.Fatalf("first booking: %v", err)
	}

	_, err := svc.RequestBooking(ctx, BookingRequest{
		PatientID: patient, DoctorID: d2, Start: at(10, 15), Duration: 30 * time.Minute,
	})
	if !errors.Is(err, ErrPatientConflict) {
		t.Fatalf("err = %v, want ErrPatientConflict", err)
	}

	// A disjoint window with a different doctor is allowed.
	if _, err := svc.RequestBooking(ctx, BookingRequest{
		PatientID: patient, DoctorID: d2, Start: at(11, 0), Duration: 30 * time.Minute,
	}); err != nil {
		t.Fatalf("disjoint booking with second doctor: %v", err)
	}
}

func TestRequestBookingRoomConflict(t *testing.T) {
	ctx := context.Background()
	repo := newMockRepo()
	svc := newTestService(repo)

	p1 := repo.addPatient("Alice Johnson")
	p2 := repo.addPatient("Bob Perera")
	d1 := repo.addDoctor("Dr. Nimal Fernando")
	d2 := repo.addDoctor("Dr. Isuri Ranasinghe")
	room := repo.addRoom("C101")

	if _, err := svc.RequestBooking(ctx, BookingRequest{
		PatientID: p1, DoctorID: d1, RoomID: &room, Start: at(10, 0), Duration: 30 * time.Minute,
	}); err != nil {
		t.Fatalf("first booking: %v", err)
	}

	_, err := svc.RequestBooking(ctx, BookingRequest{
		PatientID: p2, DoctorID: d2, RoomID: &room, Start: at(10, 15), Duration: 30 * time.Minute,
	})
	if !errors.Is(err, ErrRoomConflict) {
		t.Fatalf("err = %v, want ErrRoomConflict", err)
	}
}

func TestRequestBookingUnknownEntities(t *testing.T) {
	ctx := context.Background()
	repo := newMockRepo()
	svc := newTestService(repo)

	patient := repo.addPatient("Alice Johnson")
	doctor := repo.addDoctor("Dr. Nimal Fernando")
	ghost := uuid.New()

	t.Run("UnknownPatient", func(t *testing.T) {
		_, err := svc.RequestBooking(ctx, BookingRequest{
			PatientID: ghost, DoctorID: doctor, Start: at(11, 0), Duration: 30 * time.Minute,
		})
		if !errors.Is(err, ErrPatientNotFound) {
			t.Fatalf("err = %v, want ErrPatientNotFound", err)
		}
	})

	t.Run("UnknownDoctor", func(t *testing.T) {
		_, err := svc.RequestBooking(ctx, BookingRequest{
			PatientID: patient, DoctorID: ghost, Start: at(11, 0), Duration: 30 * time.Minute,
		})
		if !errors.Is(err, ErrDoctorNotFound) {
			t.Fatalf("err = %v, want ErrDoctorNotFound", err)
		}
	})

	t.Run("UnknownRoom", func(t *testing.T) {
		_, err := svc.RequestBooking(ctx, BookingRequest{
			PatientID: patient, DoctorID: doctor, RoomID: &ghost, Start: at(11, 0), Duration: 30 * time.Minute,
		})
		if !errors.Is(err, ErrRoomNotFound) {
			t.Fatalf("err = %v, want ErrRoomNotFound", err)
		}
	})

	t.Run("UnknownEntityCheckedBeforeInterval", func(t *testing.T) {
		// A request that is wrong in two ways reports the entity error.
		_, err := svc.RequestBooking(ctx, BookingRequest{
			PatientID: ghost, DoctorID: doctor, Start: at(11, 0), Duration: -time.Minute,
		})
		if !errors.Is(err, ErrPatientNotFound) {
			t.Fatalf("err = %v, want ErrPatientNotFound", err)
		}
	})
}

func TestRequestBookingInvalidInterval(t *testing.T) {
	ctx := context.Background()
	repo := newMockRepo()
	svc := newTestService(repo)

	patient := repo.addPatient("Alice Johnson")
	doctor := repo.addDoctor("Dr. Nimal Fernando")

	t.Run("ZeroDuration", func(t *testing.T) {
		_, err := svc.RequestBooking(ctx, BookingRequest{
			PatientID: patient, DoctorID: doctor, Start: at(10, 0), Duration: 0,
		})
		if !errors.Is(err, ErrInvalidInterval) {
			t.Fatalf("err = %v, want ErrInvalidInterval", err)
		}
	})

	t.Run("NegativeDuration", func(t *testing.T) {
		_, err := svc.RequestBooking(ctx, BookingRequest{
			PatientID: patient, DoctorID: doctor, Start: at(10, 0), Duration: -30 * time.Minute,
		})
		if !errors.Is(err, ErrInvalidInterval) {
			t.Fatalf("err = %v, want ErrInvalidInterval", err)
		}
	})
}

func TestRequestBookingGraceWindow(t *testing.T) {
	ctx := context.Background()
	repo := newMockRepo()
	svc := newTestService(repo)

	patient := repo.addPatient("Alice Johnson")
	doctor := repo.addDoctor("Dr. Nimal Fernando")

	now := at(12, 0)
	svc.now = func() time.Time { return now }

	t.Run("WithinGrace", func(t *testing.T) {
		// Start 3 minutes ago, grace is 5 minutes.
		if _, err := svc.RequestBooking(ctx, BookingRequest{
			PatientID: patient, DoctorID: doctor, Start: now.Add(-3 * time.Minute), Duration: 30 * time.Minute,
		}); err != nil {
			t.Fatalf("booking within grace: %v", err)
		}
	})

	t.Run("BeyondGrace", func(t *testing.T) {
		_, err := svc.RequestBooking(ctx, BookingRequest{
			PatientID: patient, DoctorID: doctor, Start: now.Add(-10 * time.Minute), Duration: 5 * time.Minute,
		})
		if !errors.Is(err, ErrInvalidInterval) {
			t.Fatalf("err = %v, want ErrInvalidInterval", err)
		}
	})
}

func TestCancelAppointment(t *testing.T) {
	ctx := context.Background()
	repo := newMockRepo()
	svc := newTestService(repo)

	patient := repo.addPatient("Alice Johnson")
	doctor := repo.addDoctor("Dr. Nimal Fernando")

	appt, err := svc.RequestBooking(ctx, BookingRequest{
		PatientID: patient, DoctorID: doctor, Start: at(10, 0), Duration: 30 * time.Minute,
	})
	if err != nil {
		t.Fatalf("RequestBooking: %v", err)
	}

	t.Run("Cancel", func(t *testing.T) {
		cancelled, err := svc.CancelAppointment(ctx, appt.ID)
		if err != nil {
			t.Fatalf("CancelAppointment: %v", err)
		}
		if cancelled.Status != StatusCancelled {
			t.Errorf("status = %s, want %s", cancelled.Status, StatusCancelled)
		}
	})

	t.Run("Idempotent", func(t *testing.T) {
		again, err := svc.CancelAppointment(ctx, appt.ID)
		if err != nil {
			t.Fatalf("second CancelAppointment: %v", err)
		}
		if again.Status != StatusCancelled {
			t.Errorf("status = %s, want %s", again.Status, StatusCancelled)
		}
	})

	t.Run("FreesWindow", func(t *testing.T) {
		// The identical interval for the same doctor is open again.
		if _, err := svc.RequestBooking(ctx, BookingRequest{
			PatientID: patient, DoctorID: doctor, Start: at(10, 0), Duration: 30 * time.Minute,
		}); err != nil {
			t.Fatalf("rebooking freed window: %v", err)
		}
	})

	t.Run("UnknownAppointment", func(t *testing.T) {
		_, err := svc.CancelAppointment(ctx, uuid.New())
		if !errors.Is(err, ErrAppointmentNotFound) {
			t.Fatalf("err = %v, want ErrAppointmentNotFound", err)
		}
	})
}

func TestCompleteAppointment(t *testing.T) {
	ctx := context.Background()
	repo := newMockRepo()
	svc := newTestService(repo)

	patient := repo.addPatient("Alice Johnson")
	doctor := repo.addDoctor("Dr. Nimal Fernando")

	appt, err := svc.RequestBooking(ctx, BookingRequest{
		PatientID: patient, DoctorID: doctor, Start: at(10, 0), Duration: 30 * time.Minute,
	})
	if err != nil {
		t.Fatalf("RequestBooking: %v", err)
	}

	completed, err := svc.CompleteAppointment(ctx, appt.ID)
	if err != nil {
		t.Fatalf("CompleteAppointment: %v", err)
	}
	if completed.Status != StatusCompleted {
		t.Errorf("status = %s, want %s", completed.Status, StatusCompleted)
	}

	t.Run("CompleteTwice", func(t *testing.T) {
		_, err := svc.CompleteAppointment(ctx, appt.ID)
		if !errors.Is(err, ErrInvalidStatusTransition) {
			t.Fatalf("err = %v, want ErrInvalidStatusTransition", err)
		}
	})

	t.Run("CancelCompleted", func(t *testing.T) {
		_, err := svc.CancelAppointment(ctx, appt.ID)
		if !errors.Is(err, ErrInvalidStatusTransition) {
			t.Fatalf("err = %v, want ErrInvalidStatusTransition", err)
		}
	})

	t.Run("CompleteCancelled", func(t *testing.T) {
		other, err := svc.RequestBooking(ctx, BookingRequest{
			PatientID: patient, DoctorID: doctor, Start: at(11, 0), Duration: 30 * time.Minute,
		})
		if err != nil {
			t.Fatalf("RequestBooking: %v", err)
		}
		if _, err := svc.CancelAppointment(ctx, other.ID); err != nil {
			t.Fatalf("CancelAppointment: %v", err)
		}
		if _, err := svc.CompleteAppointment(ctx, other.ID); !errors.Is(err, ErrInvalidStatusTransition) {
			t.Fatalf("err = %v, want ErrInvalidStatusTransition", err)
		}
	})
}

// TestConcurrentBookingNoDoubleBooking races many workers at the same
// doctor and window. Exactly one booking may win; afterwards no two
// scheduled appointments for the doctor may overlap.
func TestConcurrentBookingNoDoubleBooking(t *testing.T) {
	ctx := context.Background()
	repo := newMockRepo()
	svc := newTestService(repo)

	doctor := repo.addDoctor("Dr. Nimal Fernando")

	const workers = 20
	patients := make([]uuid.UUID, workers)
	for i := range patients {
		patients[i] = repo.addPatient("patient")
	}

	var wg sync.WaitGroup
	var successes int64
	var conflicts int64
	var mu sync.Mutex

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(patientID uuid.UUID) {
			defer wg.Done()
			_, err := svc.RequestBooking(ctx, BookingRequest{
				PatientID: patientID, DoctorID: doctor, Start: at(10, 0), Duration: 30 * time.Minute,
			})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, ErrDoctorConflict):
				conflicts++
			default:
				t.Errorf("unexpected booking error: %v", err)
			}
		}(patients[i])
	}

	wg.Wait()

	if successes != 1 {
		t.Fatalf("successes = %d, want exactly 1", successes)
	}
	if conflicts != workers-1 {
		t.Fatalf("conflicts = %d, want %d", conflicts, workers-1)
	}

	// Cross-check the invariant directly on the ledger.
	var scheduled []*Appointment
	for _, a := range repo.appts {
		if a.Status == StatusScheduled {
			scheduled = append(scheduled, a)
		}
	}
	for i := 0; i < len(scheduled); i++ {
		for j := i + 1; j < len(scheduled); j++ {
			a, b := scheduled[i], scheduled[j]
			if a.DoctorID == b.DoctorID && a.Overlaps(b.StartTime, b.EndTime) {
				t.Fatalf("double booking: %s and %s overlap for doctor %s", a.ID, b.ID, a.DoctorID)
			}
		}
	}
}

// contendedLocker simulates a lock held by another process.
type contendedLocker struct{}

func (contendedLocker) WithBookingLock(ctx context.Context, keys []string, fn func(ctx context.Context) error) error {
	return redisclient.ErrLockNotAcquired
}

func TestRequestBookingContendedLock(t *testing.T) {
	ctx := context.Background()
	repo := newMockRepo()
	svc := NewService(repo, contendedLocker{}, testConfig())

	patient := repo.addPatient("Alice Johnson")
	doctor := repo.addDoctor("Dr. Nimal Fernando")

	_, err := svc.RequestBooking(ctx, BookingRequest{
		PatientID: patient, DoctorID: doctor, Start: at(10, 0), Duration: 30 * time.Minute,
	})
	if !errors.Is(err, ErrBookingContended) {
		t.Fatalf("err = %v, want ErrBookingContended", err)
	}
	if len(repo.appts) != 0 {
		t.Fatal("ledger must stay unchanged when the lock is not acquired")
	}
}

func TestOverlapsHalfOpen(t *testing.T) {
	appt := &Appointment{StartTime: at(10, 0), EndTime: at(10, 30)}

	cases := []struct {
		name  string
		start time.Time
		end   time.Time
		want  bool
	}{
		{"identical", at(10, 0), at(10, 30), true},
		{"contained", at(10, 10), at(10, 20), true},
		{"straddles start", at(9, 45), at(10, 15), true},
		{"straddles end", at(10, 15), at(10, 45), true},
		{"touching before", at(9, 30), at(10, 0), false},
		{"touching after", at(10, 30), at(11, 0), false},
		{"disjoint", at(12, 0), at(12, 30), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := appt.Overlaps(tc.start, tc.end); got != tc.want {
				t.Errorf("Overlaps(%s, %s) = %v, want %v", tc.start, tc.end, got, tc.want)
			}
		})
	}
}
