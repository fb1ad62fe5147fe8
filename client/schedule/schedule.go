// Package schedule projects a day's appointments onto a dentist-by-hour
// grid for calendar rendering.
package schedule

import (
	"dental-clinic-api/client/gateway"

	"github.com/google/uuid"
)

// Clinic hours: one slot per hour, 8:00 through 20:00 inclusive.
const (
	FirstHour = 8
	LastHour  = 20
)

// Hours returns the ordered slot sequence, 13 entries.
func Hours() []int {
	hours := make([]int, 0, LastHour-FirstHour+1)
	for h := FirstHour; h <= LastHour; h++ {
		hours = append(hours, h)
	}
	return hours
}

type slotKey struct {
	dentistID uuid.UUID
	hour      int
}

// Grid maps every (dentist, hour) pair to the appointments in that
// slot. Every pair in the build inputs has a defined bucket, empty or
// not; slots outside the inputs are empty too.
type Grid struct {
	buckets   map[slotKey][]gateway.Appointment
	dentists  []gateway.Ref
	scheduled int
}

// BuildGrid buckets appointments by dentist and hour of day. Multiple
// appointments in one slot stack in input order; collisions are not
// rejected. Appointments for dentists outside the resource set, or
// outside clinic hours, are left out.
func BuildGrid(dentists []gateway.Ref, appointments []gateway.Appointment) *Grid {
	grid := &Grid{
		buckets:  make(map[slotKey][]gateway.Appointment, len(dentists)*(LastHour-FirstHour+1)),
		dentists: dentists,
	}

	inSet := make(map[uuid.UUID]bool, len(dentists))
	for _, dentist := range dentists {
		inSet[dentist.ID] = true
		for h := FirstHour; h <= LastHour; h++ {
			grid.buckets[slotKey{dentistID: dentist.ID, hour: h}] = []gateway.Appointment{}
		}
	}

	for _, appointment := range appointments {
		hour := appointment.DateTime.Hour()
		if !inSet[appointment.Dentist.ID] || hour < FirstHour || hour > LastHour {
			continue
		}
		key := slotKey{dentistID: appointment.Dentist.ID, hour: hour}
		grid.buckets[key] = append(grid.buckets[key], appointment)
		grid.scheduled++
	}

	return grid
}

// At returns the appointments in one slot, in insertion order.
func (g *Grid) At(dentistID uuid.UUID, hour int) []gateway.Appointment {
	return g.buckets[slotKey{dentistID: dentistID, hour: hour}]
}

// Dentists returns the resource set the grid was built for.
func (g *Grid) Dentists() []gateway.Ref {
	return g.dentists
}

// ScheduledCount is the number of appointments placed on the grid.
func (g *Grid) ScheduledCount() int {
	return g.scheduled
}
