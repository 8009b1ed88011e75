package checkout

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/xenking/storefront/internal/domain/cart"
)

// State is a position in the payment flow.
type State uint8

// Flow states. Succeeded is terminal; a declined attempt lands back in
// FormOpen so the user may resubmit indefinitely.
const (
	StateIdle State = iota
	StateFormOpen
	StateValidating
	StateProcessing
	StateSucceeded
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateFormOpen:
		return "form_open"
	case StateValidating:
		return "validating"
	case StateProcessing:
		return "processing"
	case StateSucceeded:
		return "succeeded"
	default:
		return "unknown"
	}
}

// Sentinel errors for flow transitions.
var (
	// ErrEmptyCart rejects opening the payment form for an empty cart.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrNotOpen rejects a submission while the flow is not accepting one.
	// This is the reentrancy guard standing in for the disabled submit
	// control during processing.
	ErrNotOpen = errors.New("no open payment form")
)

// Flow is one checkout/payment interaction. It is created in Idle, opened
// with a non-empty cart, and driven by Submit.
type Flow struct {
	state State
	total decimal.Decimal
}

// NewFlow returns a Flow in the Idle state.
func NewFlow() *Flow {
	return &Flow{state: StateIdle}
}

// State returns the flow's current position.
func (f *Flow) State() State {
	return f.state
}

// Total returns the amount computed when the form was opened.
func (f *Flow) Total() decimal.Decimal {
	return f.total
}

// Open confirms checkout: it computes the total from the cart at confirmation
// time and moves to FormOpen. An empty cart never opens the payment flow.
func (f *Flow) Open(c cart.Cart) error {
	if c.IsEmpty() {
		return ErrEmptyCart
	}
	f.total = c.Total()
	f.state = StateFormOpen
	return nil
}

// Submit drives one payment attempt: Validating, then Processing via the
// gateway. A validation failure or a declined authorization returns the flow
// to FormOpen; nothing besides the caller's form contents carries over to the
// next attempt. Submitting while not in FormOpen returns ErrNotOpen.
func (f *Flow) Submit(ctx context.Context, card Card, gw Gateway) error {
	if f.state != StateFormOpen {
		return ErrNotOpen
	}

	f.state = StateValidating
	if err := Validate(card); err != nil {
		f.state = StateFormOpen
		return err
	}

	f.state = StateProcessing
	err := gw.Authorize(ctx, Payment{
		Amount:     f.total,
		CardNumber: card.Number,
		Cardholder: card.Cardholder,
	})
	if err != nil {
		f.state = StateFormOpen
		return err
	}

	f.state = StateSucceeded
	return nil
}
