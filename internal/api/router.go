package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/careops/hospital-booking/internal/booking"
	"github.com/careops/hospital-booking/internal/report"
)

type RouterConfig struct {
	Service    *booking.Service
	Aggregator *report.Aggregator
	PgPool     *pgxpool.Pool
	Redis      *redis.Client
	Env        string
	Version    string
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware)

	// Health endpoints
	health := NewHealthHandler(cfg.PgPool, cfg.Redis, cfg.Env, cfg.Version)
	r.Get("/health/live", health.Liveness)
	r.Get("/health/ready", health.Readiness)

	// Booking endpoints
	r.Post("/bookings", createBookingHandler(cfg.Service))
	r.Get("/appointments", listAppointmentsHandler(cfg.Service))
	r.Get("/appointments/{id}", getAppointmentHandler(cfg.Service))
	r.Post("/appointments/{id}/cancel", cancelAppointmentHandler(cfg.Service))
	r.Post("/appointments/{id}/complete", completeAppointmentHandler(cfg.Service))

	// Directory endpoints
	r.Get("/patients", listPatientsHandler(cfg.Service))
	r.Get("/doctors", listDoctorsHandler(cfg.Service))

	// Reporting endpoints
	r.Get("/reports/appointments-per-doctor", doctorReportHandler(cfg.Aggregator))
	r.Get("/reports/room-utilization", roomUtilizationHandler(cfg.Aggregator))

	return r
}
