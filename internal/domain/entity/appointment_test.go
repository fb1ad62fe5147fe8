package entity

import (
	"testing"
	"time"

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

func TestStatusTransitions(t *testing.T) {
	tests := []struct {
		from    AppointmentStatus
		to      AppointmentStatus
		allowed bool
	}{
		{AppointmentStatusPending, AppointmentStatusCompleted, true},
		{AppointmentStatusPending, AppointmentStatusNoShow, true},
		{AppointmentStatusPending, AppointmentStatusPending, false},
		{AppointmentStatusCompleted, AppointmentStatusPending, false},
		{AppointmentStatusCompleted, AppointmentStatusNoShow, false},
		{AppointmentStatusNoShow, AppointmentStatusCompleted, false},
		{AppointmentStatusNoShow, AppointmentStatusPending, false},
	}

	for _, tt := range tests {
		if got := tt.from.CanTransitionTo(tt.to); got != tt.allowed {
			t.Errorf("%s -> %s: allowed = %v, want %v", tt.from, tt.to, got, tt.allowed)
		}
	}
}

func TestStatusTerminal(t *testing.T) {
	if AppointmentStatusPending.IsTerminal() {
		t.Error("PENDING must not be terminal")
	}
	if !AppointmentStatusCompleted.IsTerminal() || !AppointmentStatusNoShow.IsTerminal() {
		t.Error("COMPLETED and NO_SHOW must be terminal")
	}
}

func TestBillTotals(t *testing.T) {
	appointment := &Appointment{
		TotalAmount: dec(t, "110.00"),
		LineItems: []AppointmentLineItem{
			{ServiceName: "Cleaning", Quantity: 1, PriceApplied: dec(t, "50.00"), Paid: true},
			{ServiceName: "X-Ray", Quantity: 2, PriceApplied: dec(t, "30.00"), Paid: false},
		},
	}

	if !appointment.ComputedTotal().Equal(dec(t, "110.00")) {
		t.Fatalf("computed total = %s, want 110.00", appointment.ComputedTotal())
	}
	if !appointment.PaidTotal().Equal(dec(t, "50.00")) {
		t.Fatalf("paid total = %s, want 50.00", appointment.PaidTotal())
	}
	if !appointment.PendingTotal().Equal(dec(t, "60.00")) {
		t.Fatalf("pending total = %s, want 60.00", appointment.PendingTotal())
	}
	if !appointment.HasOutstandingBalance() {
		t.Fatal("expected outstanding balance")
	}
}

func TestBillTotalsEmpty(t *testing.T) {
	appointment := &Appointment{TotalAmount: decimal.Zero}

	if !appointment.ComputedTotal().IsZero() || !appointment.PaidTotal().IsZero() || !appointment.PendingTotal().IsZero() {
		t.Fatal("empty appointment must report all-zero totals")
	}
	if appointment.HasOutstandingBalance() {
		t.Fatal("empty appointment must not have outstanding balance")
	}
}

func TestLineItemAmountUsesSnapshot(t *testing.T) {
	item := AppointmentLineItem{Quantity: 3, PriceApplied: dec(t, "19.99")}
	if !item.Amount().Equal(dec(t, "59.97")) {
		t.Fatalf("amount = %s, want 59.97", item.Amount())
	}
}

func TestSettleAll(t *testing.T) {
	appointment := &Appointment{
		TotalAmount: dec(t, "110.00"),
		LineItems: []AppointmentLineItem{
			{Quantity: 1, PriceApplied: dec(t, "50.00"), Paid: true},
			{Quantity: 2, PriceApplied: dec(t, "30.00"), Paid: false},
		},
	}
	paidAt := time.Date(2025, time.June, 10, 17, 0, 0, 0, time.Local)
	existingDate := appointment.LineItems[0].PaymentDate

	appointment.SettleAll(paidAt)

	for i := range appointment.LineItems {
		if !appointment.LineItems[i].Paid {
			t.Fatalf("line item %d still unpaid after settlement", i)
		}
	}
	if appointment.LineItems[0].PaymentDate != existingDate {
		t.Fatal("already-paid item must keep its original payment date")
	}
	if appointment.LineItems[1].PaymentDate == nil || !appointment.LineItems[1].PaymentDate.Equal(paidAt) {
		t.Fatal("settled item must record the payment date")
	}
	if appointment.HasOutstandingBalance() {
		t.Fatal("settled appointment must not have outstanding balance")
	}
}
