package entity

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentFilter is a domain-level filter for querying appointments.
// Used by repository layer to avoid coupling with delivery DTOs.
// Nil fields are ignored.
type AppointmentFilter struct {
	PatientID *uuid.UUID
	DentistID *uuid.UUID
	Status    *AppointmentStatus
	StartDate *time.Time
	EndDate   *time.Time
	SortField string // whitelisted column, defaults to date_time
	SortDesc  bool
}

// appointment sort whitelist, query param name -> column
var appointmentSortColumns = map[string]string{
	"dateTime":    "date_time",
	"date_time":   "date_time",
	"status":      "status",
	"totalAmount": "total_amount",
	"createdAt":   "created_at",
}

// SortColumn resolves SortField against the whitelist so user input never
// reaches the ORDER BY clause directly.
func (f *AppointmentFilter) SortColumn() string {
	if col, ok := appointmentSortColumns[f.SortField]; ok {
		return col
	}
	return "date_time"
}
