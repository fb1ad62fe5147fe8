// Package transition validates and requests appointment status changes
// and settlement. It never mutates local state: on success it signals
// that a fresh fetch is required, on failure it reports and leaves
// everything untouched.
package transition

import (
	"context"
	"errors"

	"dental-clinic-api/client/billing"
	"dental-clinic-api/client/gateway"

	"github.com/google/uuid"
)

var (
	ErrInvalidTransition  = errors.New("status cannot change this way")
	ErrForbidden          = errors.New("caller lacks the required role")
	ErrNothingOutstanding = errors.New("appointment has no outstanding balance")
	ErrDeclined           = errors.New("caller declined the confirmation prompt")
)

// API is the slice of the gateway the engine needs.
type API interface {
	SetAppointmentStatus(ctx context.Context, id uuid.UUID, status gateway.Status) (*gateway.Appointment, error)
	SettleAppointment(ctx context.Context, id uuid.UUID) (*gateway.Appointment, error)
}

// RolePredicate answers whether the current caller may register
// payments. Supplied by the identity collaborator.
type RolePredicate func() bool

// RefreshFunc is invoked after any confirmed mutation so views reload
// from the backend instead of patching local state.
type RefreshFunc func()

type Engine struct {
	api       API
	canPay    RolePredicate
	onRefresh RefreshFunc
}

func NewEngine(api API, canPay RolePredicate, onRefresh RefreshFunc) *Engine {
	return &Engine{
		api:       api,
		canPay:    canPay,
		onRefresh: onRefresh,
	}
}

// RequestTransition asks the backend to move an appointment to a
// terminal status. The last-known status is validated locally first so
// obviously dead requests never reach the wire; the backend revalidates
// regardless.
func (e *Engine) RequestTransition(ctx context.Context, appointment *gateway.Appointment, target gateway.Status) (*gateway.Appointment, error) {
	if !appointment.Status.CanTransitionTo(target) {
		return nil, ErrInvalidTransition
	}

	updated, err := e.api.SetAppointmentStatus(ctx, appointment.ID, target)
	if err != nil {
		if gateway.KindOf(err) == gateway.ErrInvalidTransition {
			return nil, ErrInvalidTransition
		}
		return nil, err
	}

	e.signalRefresh()
	return updated, nil
}

// RequestSettlement marks every line item paid. It refuses when the
// caller lacks a payment-capable role or nothing is outstanding.
func (e *Engine) RequestSettlement(ctx context.Context, appointment *gateway.Appointment) (*gateway.Appointment, error) {
	if e.canPay != nil && !e.canPay() {
		return nil, ErrForbidden
	}
	if !billing.Reconcile(appointment).HasOutstandingBalance {
		return nil, ErrNothingOutstanding
	}

	updated, err := e.api.SettleAppointment(ctx, appointment.ID)
	if err != nil {
		if gateway.KindOf(err) == gateway.ErrAuthorization {
			return nil, ErrForbidden
		}
		return nil, err
	}

	e.signalRefresh()
	return updated, nil
}

func (e *Engine) signalRefresh() {
	if e.onRefresh != nil {
		e.onRefresh()
	}
}

// ConfirmFunc is a synchronous yes/no decision port. The UI supplies
// whatever mechanism it likes; the engine never prompts on its own.
type ConfirmFunc func(prompt string) bool

// Actions gates every mutation behind an explicit confirmation.
type Actions struct {
	engine  *Engine
	confirm ConfirmFunc
}

func NewActions(engine *Engine, confirm ConfirmFunc) *Actions {
	return &Actions{
		engine:  engine,
		confirm: confirm,
	}
}

func (a *Actions) Complete(ctx context.Context, appointment *gateway.Appointment) (*gateway.Appointment, error) {
	if !a.confirm("Mark this appointment as completed?") {
		return nil, ErrDeclined
	}
	return a.engine.RequestTransition(ctx, appointment, gateway.StatusCompleted)
}

func (a *Actions) MarkNoShow(ctx context.Context, appointment *gateway.Appointment) (*gateway.Appointment, error) {
	if !a.confirm("Mark this appointment as a no-show?") {
		return nil, ErrDeclined
	}
	return a.engine.RequestTransition(ctx, appointment, gateway.StatusNoShow)
}

func (a *Actions) Settle(ctx context.Context, appointment *gateway.Appointment) (*gateway.Appointment, error) {
	if !a.confirm("Register full payment for this appointment?") {
		return nil, ErrDeclined
	}
	return a.engine.RequestSettlement(ctx, appointment)
}
