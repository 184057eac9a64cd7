// Package report derives read-only summaries from the appointment ledger.
// It never mutates the ledger and depends only on the booking data model.
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/careops/hospital-booking/internal/booking"
)

type Aggregator struct {
	view     booking.ReportView
	statuses []booking.AppointmentStatus
}

// NewAggregator builds an aggregator counting only the given statuses.
// An empty list counts every status.
func NewAggregator(view booking.ReportView, statuses []booking.AppointmentStatus) *Aggregator {
	if len(statuses) == 0 {
		statuses = booking.AllStatuses
	}
	return &Aggregator{
		view:     view,
		statuses: statuses,
	}
}

// StatusesFromConfig maps the configured status names onto the booking
// package's status values, dropping anything unrecognized.
func StatusesFromConfig(names []string) []booking.AppointmentStatus {
	var statuses []booking.AppointmentStatus
	for _, name := range names {
		switch booking.AppointmentStatus(name) {
		case booking.StatusScheduled, booking.StatusCancelled, booking.StatusCompleted:
			statuses = append(statuses, booking.AppointmentStatus(name))
		}
	}
	return statuses
}

// AppointmentsPerDoctor returns a count of appointments per doctor,
// restricted to the configured statuses.
func (a *Aggregator) AppointmentsPerDoctor(ctx context.Context) (map[uuid.UUID]int, error) {
	counts, err := a.view.CountAppointmentsPerDoctor(ctx, a.statuses)
	if err != nil {
		return nil, fmt.Errorf("count appointments per doctor: %w", err)
	}
	return counts, nil
}

// DailyRoomUtilization returns, per room, how many non-cancelled
// appointments start on the given calendar day.
func (a *Aggregator) DailyRoomUtilization(ctx context.Context, day time.Time) (map[uuid.UUID]int, error) {
	counts, err := a.view.CountRoomUtilization(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("count room utilization: %w", err)
	}
	return counts, nil
}
