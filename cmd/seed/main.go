package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/careops/hospital-booking/internal/db"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("seed starting")

	dsn := os.Getenv("POSTGRES_DSN")
	if dsn == "" {
		log.Fatal("POSTGRES_DSN is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := db.ConnectPostgres(ctx, dsn)
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	if err := initSchema(context.Background(), pool); err != nil {
		log.Fatalf("init schema: %v", err)
	}

	gofakeit.Seed(time.Now().UnixNano())

	if err := seedDoctors(context.Background(), pool, 50); err != nil {
		log.Fatalf("seed doctors: %v", err)
	}
	if err := seedPatients(context.Background(), pool, 2000); err != nil {
		log.Fatalf("seed patients: %v", err)
	}
	if err := seedRooms(context.Background(), pool, 20); err != nil {
		log.Fatalf("seed rooms: %v", err)
	}

	log.Println("seed complete")
}

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS patients (
		id         UUID PRIMARY KEY,
		name       TEXT NOT NULL,
		email      TEXT,
		phone      TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS doctors (
		id         UUID PRIMARY KEY,
		name       TEXT NOT NULL,
		specialty  TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS rooms (
		id          UUID PRIMARY KEY,
		room_number TEXT NOT NULL UNIQUE,
		room_type   TEXT NOT NULL,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS appointments (
		id         UUID PRIMARY KEY,
		patient_id UUID NOT NULL REFERENCES patients(id),
		doctor_id  UUID NOT NULL REFERENCES doctors(id),
		room_id    UUID REFERENCES rooms(id),
		start_time TIMESTAMPTZ NOT NULL,
		end_time   TIMESTAMPTZ NOT NULL,
		status     TEXT NOT NULL DEFAULT 'scheduled'
			CHECK (status IN ('scheduled', 'cancelled', 'completed')),
		notes      TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		CHECK (start_time < end_time)
	)`,
	`CREATE TABLE IF NOT EXISTS booking_events (
		id             BIGSERIAL PRIMARY KEY,
		event_type     TEXT NOT NULL,
		appointment_id UUID,
		payload        JSONB,
		created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_appt_doctor_time ON appointments (doctor_id, start_time)`,
	`CREATE INDEX IF NOT EXISTS idx_appt_patient_time ON appointments (patient_id, start_time)`,
	`CREATE INDEX IF NOT EXISTS idx_appt_room_time ON appointments (room_id, start_time)`,

	// Defensive trigger rejecting overlapping scheduled appointments for the
	// same doctor. The booking service remains the authoritative check; this
	// is a storage side backstop only.
	`CREATE OR REPLACE FUNCTION reject_doctor_double_booking() RETURNS trigger AS $$
	BEGIN
		IF EXISTS (
			SELECT 1 FROM appointments a
			WHERE a.doctor_id = NEW.doctor_id
			  AND a.id != NEW.id
			  AND a.status = 'scheduled'
			  AND a.start_time < NEW.end_time
			  AND a.end_time > NEW.start_time
		) THEN
			RAISE EXCEPTION 'doctor % already booked in this window', NEW.doctor_id;
		END IF;
		RETURN NEW;
	END;
	$$ LANGUAGE plpgsql`,
	`DROP TRIGGER IF EXISTS trg_no_double_book_doctor ON appointments`,
	`CREATE TRIGGER trg_no_double_book_doctor
		BEFORE INSERT ON appointments
		FOR EACH ROW
		WHEN (NEW.status = 'scheduled')
		EXECUTE FUNCTION reject_doctor_double_booking()`,
}

func initSchema(ctx context.Context, pool *pgxpool.Pool) error {
	log.Println("initializing schema")

	for _, stmt := range schemaStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}

	return nil
}

func seedDoctors(ctx context.Context, pool *pgxpool.Pool, count int) error {
	log.Printf("seeding %d doctors", count)

	specialties := []string{
		"Dermatology",
		"Cardiology",
		"General Practice",
		"Orthopedics",
		"Endocrinology",
		"Neurology",
		"Pediatrics",
		"Psychiatry",
		"Ophthalmology",
		"ENT",
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for i := 0; i < count; i++ {
		id := uuid.New()
		name := "Dr. " + gofakeit.Name()
		specialty := specialties[gofakeit.Number(0, len(specialties)-1)]

		_, err := tx.Exec(ctx, `
			INSERT INTO doctors (id, name, specialty)
			VALUES ($1, $2, $3)
		`, id, name, specialty)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func seedPatients(ctx context.Context, pool *pgxpool.Pool, count int) error {
	log.Printf("seeding %d patients", count)

	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for i := 0; i < count; i++ {
		id := uuid.New()
		name := gofakeit.Name()
		email := gofakeit.Email()
		phone := gofakeit.Phone()

		_, err := tx.Exec(ctx, `
			INSERT INTO patients (id, name, email, phone)
			VALUES ($1, $2, $3, $4)
		`, id, name, email, phone)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func seedRooms(ctx context.Context, pool *pgxpool.Pool, count int) error {
	log.Printf("seeding %d rooms", count)

	roomTypes := []string{"Consultation", "ICU", "Ward"}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for i := 0; i < count; i++ {
		id := uuid.New()
		number := gofakeit.Letter() + gofakeit.DigitN(3)
		roomType := roomTypes[gofakeit.Number(0, len(roomTypes)-1)]

		_, err := tx.Exec(ctx, `
			INSERT INTO rooms (id, room_number, room_type)
			VALUES ($1, $2, $3)
			ON CONFLICT (room_number) DO NOTHING
		`, id, number, roomType)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}
