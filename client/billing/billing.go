// Package billing derives payment totals from an appointment's line
// items. All money arithmetic is exact fixed-point; the reconciliation
// mirrors what the server computes and must never diverge from it.
package billing

import (
	"dental-clinic-api/client/gateway"

	"github.com/shopspring/decimal"
)

// Reconciliation is the derived payment state of one appointment.
type Reconciliation struct {
	TotalAmount           decimal.Decimal
	PaidTotal             decimal.Decimal
	PendingTotal          decimal.Decimal
	HasOutstandingBalance bool
}

// Reconcile computes paid and pending totals from the line items. An
// appointment with no line items reconciles to all zeros. The pending
// total comes from the authoritative TotalAmount minus what is paid,
// never from a float sum.
func Reconcile(appointment *gateway.Appointment) Reconciliation {
	paid := decimal.Zero
	for _, item := range appointment.LineItems {
		if item.Paid {
			paid = paid.Add(item.Amount())
		}
	}

	total := appointment.TotalAmount
	if len(appointment.LineItems) == 0 {
		total = decimal.Zero
	}

	pending := total.Sub(paid)
	if pending.IsNegative() {
		pending = decimal.Zero
	}

	return Reconciliation{
		TotalAmount:           total,
		PaidTotal:             paid,
		PendingTotal:          pending,
		HasOutstandingBalance: pending.IsPositive(),
	}
}

// ComputedTotal re-sums the line items locally. Callers can compare it
// against TotalAmount to detect divergence from the backend value.
func ComputedTotal(appointment *gateway.Appointment) decimal.Decimal {
	total := decimal.Zero
	for _, item := range appointment.LineItems {
		total = total.Add(item.Amount())
	}
	return total
}

// Diverges reports whether the locally recomputed total disagrees with
// the authoritative one.
func Diverges(appointment *gateway.Appointment) bool {
	if len(appointment.LineItems) == 0 {
		return false
	}
	return !ComputedTotal(appointment).Equal(appointment.TotalAmount)
}
