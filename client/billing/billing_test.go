package billing

import (
	"testing"
	"time"

	"dental-clinic-api/client/gateway"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func dec(t *testing.T, value string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(value)
	if err != nil {
		t.Fatalf("bad decimal %q: %v", value, err)
	}
	return d
}

func TestReconcileMixedPayment(t *testing.T) {
	appointment := &gateway.Appointment{
		ID:          uuid.New(),
		DateTime:    time.Now(),
		Status:      gateway.StatusPending,
		TotalAmount: dec(t, "110.00"),
		LineItems: []gateway.LineItem{
			{Quantity: 1, PriceApplied: dec(t, "50.00"), Paid: true},
			{Quantity: 2, PriceApplied: dec(t, "30.00"), Paid: false},
		},
	}

	r := Reconcile(appointment)

	if !r.TotalAmount.Equal(dec(t, "110.00")) {
		t.Fatalf("total = %s, want 110.00", r.TotalAmount)
	}
	if !r.PaidTotal.Equal(dec(t, "50.00")) {
		t.Fatalf("paid = %s, want 50.00", r.PaidTotal)
	}
	if !r.PendingTotal.Equal(dec(t, "60.00")) {
		t.Fatalf("pending = %s, want 60.00", r.PendingTotal)
	}
	if !r.HasOutstandingBalance {
		t.Fatal("expected outstanding balance")
	}
}

func TestReconcileNoLineItems(t *testing.T) {
	appointment := &gateway.Appointment{TotalAmount: dec(t, "99.00")}

	r := Reconcile(appointment)

	if !r.TotalAmount.IsZero() || !r.PaidTotal.IsZero() || !r.PendingTotal.IsZero() {
		t.Fatalf("expected all zeros, got %s/%s/%s", r.TotalAmount, r.PaidTotal, r.PendingTotal)
	}
	if r.HasOutstandingBalance {
		t.Fatal("empty appointment must not have outstanding balance")
	}
}

func TestReconcileFullyPaid(t *testing.T) {
	appointment := &gateway.Appointment{
		TotalAmount: dec(t, "35.00"),
		LineItems: []gateway.LineItem{
			{Quantity: 1, PriceApplied: dec(t, "35.00"), Paid: true},
		},
	}

	r := Reconcile(appointment)

	if !r.PendingTotal.IsZero() {
		t.Fatalf("pending = %s, want 0", r.PendingTotal)
	}
	if r.HasOutstandingBalance {
		t.Fatal("fully paid appointment must not have outstanding balance")
	}
}

func TestReconcileIdempotent(t *testing.T) {
	appointment := &gateway.Appointment{
		TotalAmount: dec(t, "160.00"),
		LineItems: []gateway.LineItem{
			{Quantity: 2, PriceApplied: dec(t, "80.00"), Paid: false},
		},
	}

	first := Reconcile(appointment)
	second := Reconcile(appointment)

	if !first.PaidTotal.Equal(second.PaidTotal) ||
		!first.PendingTotal.Equal(second.PendingTotal) ||
		first.HasOutstandingBalance != second.HasOutstandingBalance {
		t.Fatal("reconcile must be deterministic on an unchanged aggregate")
	}
}

func TestPendingNeverNegative(t *testing.T) {
	// Authoritative total lower than the paid sum must clamp, not go
	// negative.
	appointment := &gateway.Appointment{
		TotalAmount: dec(t, "40.00"),
		LineItems: []gateway.LineItem{
			{Quantity: 1, PriceApplied: dec(t, "50.00"), Paid: true},
		},
	}

	r := Reconcile(appointment)

	if r.PendingTotal.IsNegative() {
		t.Fatalf("pending = %s, must never be negative", r.PendingTotal)
	}
}

func TestDiverges(t *testing.T) {
	appointment := &gateway.Appointment{
		TotalAmount: dec(t, "100.00"),
		LineItems: []gateway.LineItem{
			{Quantity: 1, PriceApplied: dec(t, "50.00")},
		},
	}

	if !Diverges(appointment) {
		t.Fatal("expected divergence between local sum and authoritative total")
	}

	appointment.TotalAmount = dec(t, "50.00")
	if Diverges(appointment) {
		t.Fatal("matching totals must not report divergence")
	}
}
