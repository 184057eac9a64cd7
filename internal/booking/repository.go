package booking

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrPatientNotFound     = errors.New("patient not found")
	ErrDoctorNotFound      = errors.New("doctor not found")
	ErrRoomNotFound        = errors.New("room not found")
	ErrAppointmentNotFound = errors.New("appointment not found")
)

// Repository contains all DB interactions needed by the service and the
// reporting aggregator.
type Repository interface {
	GetPatientByID(ctx context.Context, id uuid.UUID) (*Patient, error)
	GetDoctorByID(ctx context.Context, id uuid.UUID) (*Doctor, error)
	GetRoomByID(ctx context.Context, id uuid.UUID) (*Room, error)

	GetAppointmentByID(ctx context.Context, id uuid.UUID) (*Appointment, error)

	// Conflict checks. Each returns the first scheduled appointment whose
	// [start,end) interval overlaps the given one, or ErrAppointmentNotFound
	// when the window is free.
	GetScheduledOverlapForDoctor(ctx context.Context, doctorID uuid.UUID, start, end time.Time) (*Appointment, error)
	GetScheduledOverlapForPatient(ctx context.Context, patientID uuid.UUID, start, end time.Time) (*Appointment, error)
	GetScheduledOverlapForRoom(ctx context.Context, roomID uuid.UUID, start, end time.Time) (*Appointment, error)

	// Creation and updates
	CreateScheduledAppointment(ctx context.Context, appt Appointment) (*Appointment, error)
	UpdateAppointmentStatus(ctx context.Context, id uuid.UUID, from, to AppointmentStatus) (*Appointment, error)

	// Listing
	ListAppointmentsByDoctor(ctx context.Context, doctorID uuid.UUID, limit, offset int) ([]AppointmentDetail, error)
	ListAppointmentsByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]AppointmentDetail, error)
	ListAppointments(ctx context.Context, limit, offset int) ([]AppointmentDetail, error)
	ListPatients(ctx context.Context, limit, offset int) ([]Patient, error)
	ListDoctors(ctx context.Context, limit, offset int) ([]Doctor, error)

	// Audit logging
	InsertAuditEvent(ctx context.Context, ev AuditEvent) error
}

// ReportView is the read-only slice of the repository the reporting
// aggregator is allowed to see. Both counts are single-statement
// aggregates on the storage side, so callers always observe a consistent
// snapshot of the ledger.
type ReportView interface {
	CountAppointmentsPerDoctor(ctx context.Context, statuses []AppointmentStatus) (map[uuid.UUID]int, error)
	CountRoomUtilization(ctx context.Context, day time.Time) (map[uuid.UUID]int, error)
}
