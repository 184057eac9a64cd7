package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/careops/hospital-booking/internal/booking"
	"github.com/careops/hospital-booking/internal/config"
	"github.com/careops/hospital-booking/internal/db"
	"github.com/careops/hospital-booking/internal/report"
)

// Prints the per-doctor appointment counts and, optionally, room
// utilization for a given day.
func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	utilDay := flag.String("util", "", "also print room utilization for the given day (YYYY-MM-DD)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	pgPool, err := db.ConnectPostgres(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("postgres connection error: %v", err)
	}
	defer pgPool.Close()

	repo := booking.NewPgRepository(pgPool)
	agg := report.NewAggregator(repo, report.StatusesFromConfig(cfg.ReportStatuses))

	counts, err := agg.AppointmentsPerDoctor(ctx)
	if err != nil {
		log.Fatalf("appointments per doctor report error: %v", err)
	}

	doctors, err := repo.ListDoctors(ctx, 100, 0)
	if err != nil {
		log.Fatalf("list doctors error: %v", err)
	}

	names := make(map[uuid.UUID]string, len(doctors))
	for _, d := range doctors {
		names[d.ID] = d.Name
	}

	fmt.Println("Appointments per doctor:")
	printCounts(counts, names)

	if *utilDay != "" {
		day, err := time.Parse("2006-01-02", *utilDay)
		if err != nil {
			log.Fatalf("invalid --util day %q: %v", *utilDay, err)
		}

		util, err := agg.DailyRoomUtilization(ctx, day)
		if err != nil {
			log.Fatalf("room utilization report error: %v", err)
		}

		fmt.Printf("Room utilization for %s:\n", *utilDay)
		printCounts(util, nil)
	}
}

func printCounts(counts map[uuid.UUID]int, names map[uuid.UUID]string) {
	type entry struct {
		label string
		count int
	}

	entries := make([]entry, 0, len(counts))
	for id, count := range counts {
		label := id.String()
		if name, ok := names[id]; ok {
			label = name
		}
		entries = append(entries, entry{label: label, count: count})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].label < entries[j].label
	})

	for _, e := range entries {
		fmt.Printf("  %-40s %d\n", e.label, e.count)
	}
}
