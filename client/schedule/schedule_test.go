package schedule

import (
	"testing"
	"time"

	"dental-clinic-api/client/gateway"

	"github.com/google/uuid"
)

func at(day time.Time, hour, minute int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, time.Local)
}

func TestHoursCoverClinicDay(t *testing.T) {
	hours := Hours()
	if len(hours) != 13 {
		t.Fatalf("got %d slots, want 13", len(hours))
	}
	if hours[0] != 8 || hours[len(hours)-1] != 20 {
		t.Fatalf("slot range [%d, %d], want [8, 20]", hours[0], hours[len(hours)-1])
	}
}

func TestBuildGridIsTotal(t *testing.T) {
	day := time.Now()
	drA := gateway.Ref{ID: uuid.New(), Name: "Dr. Adams"}
	drB := gateway.Ref{ID: uuid.New(), Name: "Dr. Baker"}
	appointments := []gateway.Appointment{
		{ID: uuid.New(), DateTime: at(day, 9, 0), Dentist: drA},
		{ID: uuid.New(), DateTime: at(day, 9, 30), Dentist: drA},
		{ID: uuid.New(), DateTime: at(day, 14, 0), Dentist: drB},
	}

	grid := BuildGrid([]gateway.Ref{drA, drB}, appointments)

	// Every (dentist, hour) pair has a defined bucket, empty or not
	for _, dentist := range grid.Dentists() {
		for _, hour := range Hours() {
			if grid.At(dentist.ID, hour) == nil {
				t.Fatalf("bucket (%s, %d) is undefined", dentist.Name, hour)
			}
		}
	}

	// Bucket sizes sum to the scheduled appointment count
	total := 0
	for _, dentist := range grid.Dentists() {
		for _, hour := range Hours() {
			total += len(grid.At(dentist.ID, hour))
		}
	}
	if total != len(appointments) {
		t.Fatalf("bucket sizes sum to %d, want %d", total, len(appointments))
	}
	if grid.ScheduledCount() != len(appointments) {
		t.Fatalf("scheduled count = %d, want %d", grid.ScheduledCount(), len(appointments))
	}
}

func TestBuildGridStacksCollisionsInInsertionOrder(t *testing.T) {
	day := time.Now()
	dentist := gateway.Ref{ID: uuid.New(), Name: "Dr. Adams"}
	first := gateway.Appointment{ID: uuid.New(), DateTime: at(day, 10, 45), Dentist: dentist}
	second := gateway.Appointment{ID: uuid.New(), DateTime: at(day, 10, 0), Dentist: dentist}

	grid := BuildGrid([]gateway.Ref{dentist}, []gateway.Appointment{first, second})

	slot := grid.At(dentist.ID, 10)
	if len(slot) != 2 {
		t.Fatalf("slot holds %d appointments, want 2 stacked", len(slot))
	}
	// Insertion order from the source collection, not re-sorted by minute
	if slot[0].ID != first.ID || slot[1].ID != second.ID {
		t.Fatal("stacked appointments must keep source order")
	}
}

func TestBuildGridSkipsOutOfScope(t *testing.T) {
	day := time.Now()
	dentist := gateway.Ref{ID: uuid.New(), Name: "Dr. Adams"}
	outsider := gateway.Ref{ID: uuid.New(), Name: "Dr. Elsewhere"}
	appointments := []gateway.Appointment{
		{ID: uuid.New(), DateTime: at(day, 7, 0), Dentist: dentist},   // before opening
		{ID: uuid.New(), DateTime: at(day, 21, 0), Dentist: dentist},  // after closing
		{ID: uuid.New(), DateTime: at(day, 12, 0), Dentist: outsider}, // not in resource set
		{ID: uuid.New(), DateTime: at(day, 12, 0), Dentist: dentist},
	}

	grid := BuildGrid([]gateway.Ref{dentist}, appointments)

	if grid.ScheduledCount() != 1 {
		t.Fatalf("scheduled count = %d, want 1", grid.ScheduledCount())
	}
	if len(grid.At(dentist.ID, 12)) != 1 {
		t.Fatal("in-scope appointment missing from its slot")
	}
	if got := grid.At(outsider.ID, 12); len(got) != 0 {
		t.Fatalf("outsider slot holds %d appointments, want none", len(got))
	}
}

func TestBuildGridBoundaryHours(t *testing.T) {
	day := time.Now()
	dentist := gateway.Ref{ID: uuid.New(), Name: "Dr. Adams"}
	appointments := []gateway.Appointment{
		{ID: uuid.New(), DateTime: at(day, 8, 0), Dentist: dentist},
		{ID: uuid.New(), DateTime: at(day, 20, 59), Dentist: dentist},
	}

	grid := BuildGrid([]gateway.Ref{dentist}, appointments)

	if len(grid.At(dentist.ID, 8)) != 1 {
		t.Fatal("opening-hour appointment missing")
	}
	if len(grid.At(dentist.ID, 20)) != 1 {
		t.Fatal("closing-hour appointment missing")
	}
}
