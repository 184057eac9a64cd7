package api

import (
	"time"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	PatientID string `json:"patient_id"`
	DoctorID  string `json:"doctor_id"`
	RoomID    string `json:"room_id,omitempty"`
	Start     string `json:"start"`
	Duration  string `json:"duration"`
	Notes     string `json:"notes,omitempty"`
}

type AppointmentResponse struct {
	ID        uuid.UUID  `json:"id"`
	PatientID uuid.UUID  `json:"patient_id"`
	DoctorID  uuid.UUID  `json:"doctor_id"`
	RoomID    *uuid.UUID `json:"room_id,omitempty"`
	Start     time.Time  `json:"start"`
	End       time.Time  `json:"end"`
	Status    string     `json:"status"`
	Notes     string     `json:"notes,omitempty"`
}

type DoctorReportEntry struct {
	DoctorID uuid.UUID `json:"doctor_id"`
	Count    int       `json:"count"`
}

type RoomUtilizationEntry struct {
	RoomID uuid.UUID `json:"room_id"`
	Count  int       `json:"count"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
