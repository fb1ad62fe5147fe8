package gateway

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusCompleted Status = "COMPLETED"
	StatusNoShow    Status = "NO_SHOW"
)

// IsTerminal reports whether no further transition can leave the status.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusNoShow
}

// CanTransitionTo mirrors the server's lifecycle rule: only PENDING
// appointments move, and only to a terminal status.
func (s Status) CanTransitionTo(target Status) bool {
	return s == StatusPending && target.IsTerminal()
}

// Ref is a foreign identifier with its display name resolved at
// response-mapping time, so consumers never dig through nested shapes.
type Ref struct {
	ID   uuid.UUID
	Name string
}

type LineItem struct {
	ID           uuid.UUID
	Service      Ref
	Quantity     int
	PriceApplied decimal.Decimal
	Paid         bool
	PaymentDate  *time.Time
}

// Amount is the line total: unit price snapshot times quantity.
func (li LineItem) Amount() decimal.Decimal {
	return li.PriceApplied.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

type Appointment struct {
	ID          uuid.UUID
	DateTime    time.Time
	Status      Status
	TotalAmount decimal.Decimal
	Patient     Ref
	Dentist     Ref
	LineItems   []LineItem
}

// Page is a normalized paginated result: the items plus the total row
// count across all pages.
type Page struct {
	Items      []Appointment
	TotalCount int64
}

// Query carries the server-side list parameters. Nil pointer fields are
// omitted from the request.
type Query struct {
	Page      int
	PageSize  int
	SortField string
	SortDesc  bool
	Status    *Status
	DentistID *uuid.UUID
	StartDate *time.Time
	EndDate   *time.Time
}

type NewLineItem struct {
	ServiceID uuid.UUID
	Quantity  int
}
