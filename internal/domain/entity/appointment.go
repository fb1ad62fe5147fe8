package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AppointmentStatus represents the lifecycle state of an appointment.
type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "PENDING"
	AppointmentStatusCompleted AppointmentStatus = "COMPLETED"
	AppointmentStatusNoShow    AppointmentStatus = "NO_SHOW"
)

// IsValid reports whether the status is one of the known statuses.
func (s AppointmentStatus) IsValid() bool {
	switch s {
	case AppointmentStatusPending, AppointmentStatusCompleted, AppointmentStatusNoShow:
		return true
	}
	return false
}

// IsTerminal reports whether no further status change is allowed.
func (s AppointmentStatus) IsTerminal() bool {
	return s == AppointmentStatusCompleted || s == AppointmentStatusNoShow
}

// CanTransitionTo validates the status lifecycle: PENDING may move to
// COMPLETED or NO_SHOW, terminal states never move again.
func (s AppointmentStatus) CanTransitionTo(target AppointmentStatus) bool {
	if s != AppointmentStatusPending {
		return false
	}
	return target == AppointmentStatusCompleted || target == AppointmentStatusNoShow
}

// Appointment is the aggregate root for a clinical visit and its bill.
// TotalAmount is fixed at creation from the line item price snapshots.
type Appointment struct {
	ID          uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	DateTime    time.Time         `gorm:"not null;index" json:"date_time"`
	Status      AppointmentStatus `gorm:"type:varchar(20);not null;default:'PENDING';index" json:"status"`
	TotalAmount decimal.Decimal   `gorm:"type:decimal(10,2);not null" json:"total_amount"`
	PatientID   uuid.UUID         `gorm:"type:uuid;not null;index" json:"patient_id"`
	DentistID   uuid.UUID         `gorm:"type:uuid;not null;index" json:"dentist_id"`
	CreatedAt   time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient   Patient               `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Dentist   Dentist               `gorm:"foreignKey:DentistID" json:"dentist,omitempty"`
	LineItems []AppointmentLineItem `gorm:"foreignKey:AppointmentID" json:"line_items,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// AppointmentLineItem is one billed service within an appointment.
// ServiceName and PriceApplied are snapshots taken at booking time so
// later price-list edits or renames never change an existing bill.
type AppointmentLineItem struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	AppointmentID uuid.UUID       `gorm:"type:uuid;not null;index" json:"appointment_id"`
	ServiceID     uuid.UUID       `gorm:"type:uuid;not null" json:"service_id"`
	ServiceName   string          `gorm:"type:varchar(255);not null" json:"service_name"`
	Quantity      int             `gorm:"not null;default:1" json:"quantity"`
	PriceApplied  decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price_applied"`
	StandardCost  decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"standard_cost"`
	Paid          bool            `gorm:"not null;default:false" json:"paid"`
	PaymentDate   *time.Time      `json:"payment_date,omitempty"`
	Position      int             `gorm:"not null;default:0" json:"-"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

func (AppointmentLineItem) TableName() string {
	return "appointment_line_items"
}

// Amount is the line total: unit price snapshot times quantity.
func (li *AppointmentLineItem) Amount() decimal.Decimal {
	return li.PriceApplied.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// ComputedTotal recomputes the bill from line items. Must always equal
// TotalAmount; a mismatch means the stored aggregate is corrupt.
func (a *Appointment) ComputedTotal() decimal.Decimal {
	total := decimal.Zero
	for i := range a.LineItems {
		total = total.Add(a.LineItems[i].Amount())
	}
	return total
}

// PaidTotal sums line items already settled.
func (a *Appointment) PaidTotal() decimal.Decimal {
	paid := decimal.Zero
	for i := range a.LineItems {
		if a.LineItems[i].Paid {
			paid = paid.Add(a.LineItems[i].Amount())
		}
	}
	return paid
}

// PendingTotal is the outstanding balance, never negative for a
// consistent aggregate.
func (a *Appointment) PendingTotal() decimal.Decimal {
	return a.TotalAmount.Sub(a.PaidTotal())
}

// HasOutstandingBalance reports whether anything remains to be paid.
func (a *Appointment) HasOutstandingBalance() bool {
	return a.PendingTotal().IsPositive()
}

// SettleAll marks every line item paid at the given time. Settlement is
// all-or-nothing; there is no partial payment operation.
func (a *Appointment) SettleAll(at time.Time) {
	for i := range a.LineItems {
		if !a.LineItems[i].Paid {
			a.LineItems[i].Paid = true
			t := at
			a.LineItems[i].PaymentDate = &t
		}
	}
}
