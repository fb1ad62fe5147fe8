package transition

import (
	"context"
	"errors"
	"testing"

	"dental-clinic-api/client/gateway"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type fakeAPI struct {
	statusCalls int
	settleCalls int
	statusErr   error
	settleErr   error
	returned    *gateway.Appointment
}

func (f *fakeAPI) SetAppointmentStatus(ctx context.Context, id uuid.UUID, status gateway.Status) (*gateway.Appointment, error) {
	f.statusCalls++
	if f.statusErr != nil {
		return nil, f.statusErr
	}
	return f.returned, nil
}

func (f *fakeAPI) SettleAppointment(ctx context.Context, id uuid.UUID) (*gateway.Appointment, error) {
	f.settleCalls++
	if f.settleErr != nil {
		return nil, f.settleErr
	}
	return f.returned, nil
}

func pendingAppointment(t *testing.T) *gateway.Appointment {
	t.Helper()
	price, err := decimal.NewFromString("80.00")
	if err != nil {
		t.Fatal(err)
	}
	return &gateway.Appointment{
		ID:          uuid.New(),
		Status:      gateway.StatusPending,
		TotalAmount: price,
		LineItems: []gateway.LineItem{
			{Quantity: 1, PriceApplied: price, Paid: false},
		},
	}
}

func TestTransitionFromTerminalStatusRejected(t *testing.T) {
	api := &fakeAPI{}
	engine := NewEngine(api, nil, nil)

	for _, from := range []gateway.Status{gateway.StatusCompleted, gateway.StatusNoShow} {
		appointment := pendingAppointment(t)
		appointment.Status = from

		_, err := engine.RequestTransition(context.Background(), appointment, gateway.StatusCompleted)
		if !errors.Is(err, ErrInvalidTransition) {
			t.Fatalf("from %s: err = %v, want ErrInvalidTransition", from, err)
		}
		// Dead requests never reach the wire and nothing changes locally
		if api.statusCalls != 0 {
			t.Fatalf("from %s: gateway was called", from)
		}
		if appointment.Status != from {
			t.Fatalf("from %s: aggregate mutated to %s", from, appointment.Status)
		}
	}
}

func TestTransitionToPendingRejected(t *testing.T) {
	api := &fakeAPI{}
	engine := NewEngine(api, nil, nil)

	_, err := engine.RequestTransition(context.Background(), pendingAppointment(t), gateway.StatusPending)
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("err = %v, want ErrInvalidTransition", err)
	}
}

func TestTransitionSuccessSignalsRefresh(t *testing.T) {
	appointment := pendingAppointment(t)
	updated := *appointment
	updated.Status = gateway.StatusCompleted

	refreshed := false
	api := &fakeAPI{returned: &updated}
	engine := NewEngine(api, nil, func() { refreshed = true })

	result, err := engine.RequestTransition(context.Background(), appointment, gateway.StatusCompleted)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Status != gateway.StatusCompleted {
		t.Fatalf("result status = %s, want COMPLETED", result.Status)
	}
	if !refreshed {
		t.Fatal("successful mutation must signal a refresh")
	}
}

func TestTransitionFailureDoesNotRefresh(t *testing.T) {
	refreshed := false
	api := &fakeAPI{statusErr: &gateway.Error{Kind: gateway.ErrNetwork, Message: "boom"}}
	engine := NewEngine(api, nil, func() { refreshed = true })

	_, err := engine.RequestTransition(context.Background(), pendingAppointment(t), gateway.StatusNoShow)
	if err == nil {
		t.Fatal("expected error")
	}
	if refreshed {
		t.Fatal("failed mutation must not signal a refresh")
	}
}

func TestServerInvalidTransitionSurfaced(t *testing.T) {
	api := &fakeAPI{statusErr: &gateway.Error{Kind: gateway.ErrInvalidTransition, Message: "nope"}}
	engine := NewEngine(api, nil, nil)

	_, err := engine.RequestTransition(context.Background(), pendingAppointment(t), gateway.StatusCompleted)
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("err = %v, want ErrInvalidTransition", err)
	}
}

func TestSettlementRequiresPaymentRole(t *testing.T) {
	api := &fakeAPI{}
	engine := NewEngine(api, func() bool { return false }, nil)

	_, err := engine.RequestSettlement(context.Background(), pendingAppointment(t))
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}
	if api.settleCalls != 0 {
		t.Fatal("forbidden settlement must not reach the gateway")
	}
}

func TestSettlementRequiresOutstandingBalance(t *testing.T) {
	appointment := pendingAppointment(t)
	appointment.LineItems[0].Paid = true

	api := &fakeAPI{}
	engine := NewEngine(api, func() bool { return true }, nil)

	_, err := engine.RequestSettlement(context.Background(), appointment)
	if !errors.Is(err, ErrNothingOutstanding) {
		t.Fatalf("err = %v, want ErrNothingOutstanding", err)
	}
	if api.settleCalls != 0 {
		t.Fatal("settled appointment must not reach the gateway")
	}
}

func TestSettlementSuccess(t *testing.T) {
	appointment := pendingAppointment(t)
	updated := *appointment
	updated.Status = gateway.StatusCompleted

	refreshed := false
	api := &fakeAPI{returned: &updated}
	engine := NewEngine(api, func() bool { return true }, func() { refreshed = true })

	result, err := engine.RequestSettlement(context.Background(), appointment)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Status != gateway.StatusCompleted {
		t.Fatalf("result status = %s, want COMPLETED", result.Status)
	}
	if !refreshed {
		t.Fatal("successful settlement must signal a refresh")
	}
}

func TestActionsRequireConfirmation(t *testing.T) {
	api := &fakeAPI{}
	engine := NewEngine(api, func() bool { return true }, nil)
	actions := NewActions(engine, func(prompt string) bool { return false })

	if _, err := actions.Complete(context.Background(), pendingAppointment(t)); !errors.Is(err, ErrDeclined) {
		t.Fatalf("complete: err = %v, want ErrDeclined", err)
	}
	if _, err := actions.MarkNoShow(context.Background(), pendingAppointment(t)); !errors.Is(err, ErrDeclined) {
		t.Fatalf("no-show: err = %v, want ErrDeclined", err)
	}
	if _, err := actions.Settle(context.Background(), pendingAppointment(t)); !errors.Is(err, ErrDeclined) {
		t.Fatalf("settle: err = %v, want ErrDeclined", err)
	}
	if api.statusCalls != 0 || api.settleCalls != 0 {
		t.Fatal("declined confirmation must not reach the gateway")
	}
}

func TestActionsConfirmedPassThrough(t *testing.T) {
	appointment := pendingAppointment(t)
	updated := *appointment
	updated.Status = gateway.StatusNoShow

	api := &fakeAPI{returned: &updated}
	engine := NewEngine(api, func() bool { return true }, nil)
	actions := NewActions(engine, func(prompt string) bool { return true })

	result, err := actions.MarkNoShow(context.Background(), appointment)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Status != gateway.StatusNoShow {
		t.Fatalf("result status = %s, want NO_SHOW", result.Status)
	}
}
