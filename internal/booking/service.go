package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/careops/hospital-booking/internal/config"
	redisclient "github.com/careops/hospital-booking/internal/redis"
)

const (
	EventAppointmentScheduled = "APPOINTMENT_SCHEDULED"
	EventAppointmentCancelled = "APPOINTMENT_CANCELLED"
	EventAppointmentCompleted = "APPOINTMENT_COMPLETED"
)

var (
	ErrInvalidInterval         = errors.New("appointment interval is invalid")
	ErrDoctorConflict          = errors.New("doctor already has a scheduled appointment in this window")
	ErrPatientConflict         = errors.New("patient already has a scheduled appointment in this window")
	ErrRoomConflict            = errors.New("room already has a scheduled appointment in this window")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
	ErrBookingContended        = errors.New("booking window is currently being reserved, please retry")
)

// BookingRequest carries everything needed to admit a new appointment.
// RoomID is optional; a nil room skips the room conflict check.
type BookingRequest struct {
	PatientID uuid.UUID
	DoctorID  uuid.UUID
	RoomID    *uuid.UUID
	Start     time.Time
	Duration  time.Duration
	Notes     string
}

type Service struct {
	repo   Repository
	locker redisclient.Locker
	cfg    config.Config
	now    func() time.Time
}

func NewService(repo Repository, locker redisclient.Locker, cfg config.Config) *Service {
	return &Service{
		repo:   repo,
		locker: locker,
		cfg:    cfg,
		now:    time.Now,
	}
}

// RequestBooking validates and admits a new appointment. The conflict check
// and the insert run inside a lock covering the doctor, the patient and the
// room, so two concurrent requests for overlapping windows cannot both pass
// the check. Error conditions are evaluated in a fixed order: unknown entity,
// invalid interval, doctor conflict, patient conflict, room conflict.
func (s *Service) RequestBooking(ctx context.Context, req BookingRequest) (*Appointment, error) {
	if _, err := s.repo.GetPatientByID(ctx, req.PatientID); err != nil {
		if errors.Is(err, ErrPatientNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("load patient: %w", err)
	}

	if _, err := s.repo.GetDoctorByID(ctx, req.DoctorID); err != nil {
		if errors.Is(err, ErrDoctorNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("load doctor: %w", err)
	}

	if req.RoomID != nil {
		if _, err := s.repo.GetRoomByID(ctx, *req.RoomID); err != nil {
			if errors.Is(err, ErrRoomNotFound) {
				return nil, err
			}
			return nil, fmt.Errorf("load room: %w", err)
		}
	}

	if req.Duration <= 0 {
		return nil, ErrInvalidInterval
	}
	if req.Start.Before(s.now().Add(-s.cfg.BookingGrace)) {
		return nil, fmt.Errorf("%w: start time is in the past", ErrInvalidInterval)
	}

	start := req.Start
	end := req.Start.Add(req.Duration)

	keys := []string{
		"doctor:" + req.DoctorID.String(),
		"patient:" + req.PatientID.String(),
	}
	if req.RoomID != nil {
		keys = append(keys, "room:"+req.RoomID.String())
	}

	var created *Appointment

	err := s.locker.WithBookingLock(ctx, keys, func(lockCtx context.Context) error {
		// Inside the critical section check every scheduled appointment
		// touching the doctor, the patient and the room for overlap.
		if _, err := s.repo.GetScheduledOverlapForDoctor(lockCtx, req.DoctorID, start, end); err == nil {
			return ErrDoctorConflict
		} else if !errors.Is(err, ErrAppointmentNotFound) {
			return fmt.Errorf("check doctor overlap: %w", err)
		}

		if _, err := s.repo.GetScheduledOverlapForPatient(lockCtx, req.PatientID, start, end); err == nil {
			return ErrPatientConflict
		} else if !errors.Is(err, ErrAppointmentNotFound) {
			return fmt.Errorf("check patient overlap: %w", err)
		}

		if req.RoomID != nil {
			if _, err := s.repo.GetScheduledOverlapForRoom(lockCtx, *req.RoomID, start, end); err == nil {
				return ErrRoomConflict
			} else if !errors.Is(err, ErrAppointmentNotFound) {
				return fmt.Errorf("check room overlap: %w", err)
			}
		}

		appt, err := s.repo.CreateScheduledAppointment(lockCtx, Appointment{
			PatientID: req.PatientID,
			DoctorID:  req.DoctorID,
			RoomID:    req.RoomID,
			StartTime: start,
			EndTime:   end,
			Status:    StatusScheduled,
			Notes:     req.Notes,
		})
		if err != nil {
			return fmt.Errorf("create appointment: %w", err)
		}

		created = appt

		s.logEvent(lockCtx, appt.ID, EventAppointmentScheduled, map[string]any{
			"patient_id": req.PatientID.String(),
			"doctor_id":  req.DoctorID.String(),
			"start_time": start,
			"end_time":   end,
		})

		return nil
	})

	if err != nil {
		if errors.Is(err, redisclient.ErrLockNotAcquired) {
			return nil, ErrBookingContended
		}
		return nil, err
	}

	return created, nil
}

// CancelAppointment moves a scheduled appointment to cancelled, freeing its
// window for future bookings. Cancelling an already cancelled appointment is
// a no-op, not an error.
func (s *Service) CancelAppointment(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	appt, err := s.repo.GetAppointmentByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load appointment: %w", err)
	}

	switch appt.Status {
	case StatusCancelled:
		return appt, nil
	case StatusCompleted:
		return nil, ErrInvalidStatusTransition
	}

	updated, err := s.repo.UpdateAppointmentStatus(ctx, appt.ID, StatusScheduled, StatusCancelled)
	if err != nil {
		if errors.Is(err, ErrAppointmentNotFound) {
			// Lost a race with another transition; report the current state.
			return s.reloadAfterRace(ctx, appt.ID, StatusCancelled)
		}
		return nil, fmt.Errorf("cancel appointment: %w", err)
	}

	s.logEvent(ctx, updated.ID, EventAppointmentCancelled, map[string]any{})

	return updated, nil
}

// CompleteAppointment moves a scheduled appointment to completed.
func (s *Service) CompleteAppointment(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	appt, err := s.repo.GetAppointmentByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load appointment: %w", err)
	}

	if appt.Status != StatusScheduled {
		return nil, ErrInvalidStatusTransition
	}

	updated, err := s.repo.UpdateAppointmentStatus(ctx, appt.ID, StatusScheduled, StatusCompleted)
	if err != nil {
		if errors.Is(err, ErrAppointmentNotFound) {
			return nil, ErrInvalidStatusTransition
		}
		return nil, fmt.Errorf("complete appointment: %w", err)
	}

	s.logEvent(ctx, updated.ID, EventAppointmentCompleted, map[string]any{})

	return updated, nil
}

// reloadAfterRace re-reads an appointment after a compare-and-swap miss.
// The transition counts as idempotent when another caller already applied
// the same target status.
func (s *Service) reloadAfterRace(ctx context.Context, id uuid.UUID, want AppointmentStatus) (*Appointment, error) {
	current, err := s.repo.GetAppointmentByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("reload appointment: %w", err)
	}
	if current.Status == want {
		return current, nil
	}
	return nil, ErrInvalidStatusTransition
}

// GetAppointment retrieves a fully hydrated appointment by ID.
func (s *Service) GetAppointment(ctx context.Context, id uuid.UUID) (*AppointmentDetail, error) {
	var detail *AppointmentDetail
	appt, err := s.repo.GetAppointmentByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get appointment: %w", err)
	}

	detail = &AppointmentDetail{Appointment: *appt}

	if p, err := s.repo.GetPatientByID(ctx, appt.PatientID); err == nil {
		detail.Patient = p
	}
	if d, err := s.repo.GetDoctorByID(ctx, appt.DoctorID); err == nil {
		detail.Doctor = d
	}
	if appt.RoomID != nil {
		if r, err := s.repo.GetRoomByID(ctx, *appt.RoomID); err == nil {
			detail.Room = r
		}
	}

	return detail, nil
}

func (s *Service) ListAppointments(ctx context.Context, limit, offset int) ([]AppointmentDetail, error) {
	limit, offset = clampPage(limit, offset)
	appointments, err := s.repo.ListAppointments(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	return appointments, nil
}

func (s *Service) ListAppointmentsByDoctor(ctx context.Context, doctorID uuid.UUID, limit, offset int) ([]AppointmentDetail, error) {
	limit, offset = clampPage(limit, offset)
	appointments, err := s.repo.ListAppointmentsByDoctor(ctx, doctorID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list appointments by doctor: %w", err)
	}
	return appointments, nil
}

func (s *Service) ListAppointmentsByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]AppointmentDetail, error) {
	limit, offset = clampPage(limit, offset)
	appointments, err := s.repo.ListAppointmentsByPatient(ctx, patientID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list appointments by patient: %w", err)
	}
	return appointments, nil
}

func (s *Service) ListPatients(ctx context.Context, limit, offset int) ([]Patient, error) {
	limit, offset = clampPage(limit, offset)
	patients, err := s.repo.ListPatients(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list patients: %w", err)
	}
	return patients, nil
}

func (s *Service) ListDoctors(ctx context.Context, limit, offset int) ([]Doctor, error) {
	limit, offset = clampPage(limit, offset)
	doctors, err := s.repo.ListDoctors(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list doctors: %w", err)
	}
	return doctors, nil
}

func clampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = 20 // default
	}
	if limit > 100 {
		limit = 100 // max
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func (s *Service) logEvent(ctx context.Context, appointmentID uuid.UUID, eventType string, payload map[string]any) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("failed to marshal audit payload for %s: %v", eventType, err)
		data = nil
	}

	apptID := appointmentID

	ev := AuditEvent{
		EventType:     eventType,
		AppointmentID: &apptID,
		Payload:       data,
		CreatedAt:     time.Now(),
	}

	if err := s.repo.InsertAuditEvent(ctx, ev); err != nil {
		log.Printf("failed to insert audit event %s for appointment %s: %v", eventType, appointmentID, err)
	}
}
