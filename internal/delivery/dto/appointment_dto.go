package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LocalDateTimeLayout is the wire format for date query parameters:
// ISO-8601 local date-time, no offset, whole seconds.
const LocalDateTimeLayout = "2006-01-02T15:04:05"

// Request DTOs

type CreateAppointmentRequest struct {
	DateTime  string                      `json:"date_time" validate:"required"`
	PatientID uuid.UUID                   `json:"patient_id" validate:"required"`
	DentistID uuid.UUID                   `json:"dentist_id" validate:"required"`
	Services  []AppointmentServiceRequest `json:"services" validate:"required,min=1,dive"`
}

type AppointmentServiceRequest struct {
	ServiceID uuid.UUID `json:"service_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,min=1"`
}

type UpdateAppointmentStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=COMPLETED NO_SHOW"`
}

// Response DTOs

type AppointmentResponse struct {
	ID          uuid.UUID                 `json:"id"`
	DateTime    time.Time                 `json:"date_time"`
	Status      string                    `json:"status"`
	TotalAmount decimal.Decimal           `json:"total_amount"`
	Patient     AppointmentPatientInfo    `json:"patient"`
	Dentist     AppointmentDentistInfo    `json:"dentist"`
	LineItems   []AppointmentLineItemInfo `json:"line_items"`
	CreatedAt   time.Time                 `json:"created_at"`
	UpdatedAt   time.Time                 `json:"updated_at"`
}

type AppointmentPatientInfo struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Phone string    `json:"phone,omitempty"`
	Email string    `json:"email,omitempty"`
}

type AppointmentDentistInfo struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	LicenseNumber string    `json:"license_number,omitempty"`
}

type AppointmentLineItemInfo struct {
	ID           uuid.UUID       `json:"id"`
	ServiceID    uuid.UUID       `json:"service_id"`
	ServiceName  string          `json:"service_name"`
	Quantity     int             `json:"quantity"`
	PriceApplied decimal.Decimal `json:"price_applied"`
	Paid         bool            `json:"paid"`
	PaymentDate  *time.Time      `json:"payment_date,omitempty"`
}
