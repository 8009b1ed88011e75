package checkout

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// ErrDeclined is the single generic failure for a processed payment. The
// gateway does not distinguish "unreachable" from "card declined"; both
// collapse into this error and the same user message.
var ErrDeclined = errors.New("payment declined")

// DeclinedMessage is shown to the user when processing fails.
const DeclinedMessage = "Payment failed. Please check your card details and try again."

// Payment is one authorization request.
type Payment struct {
	Amount     decimal.Decimal
	CardNumber string
	Cardholder string
}

// Gateway authorizes payments. It is an explicit asynchronous operation with
// a success/declined result and no retry policy, so a real payment provider
// can replace the simulation without touching the flow.
type Gateway interface {
	Authorize(ctx context.Context, p Payment) error
}

// SimulatedGateway stands in for an external payment provider. It waits a
// fixed delay and then succeeds with the configured probability, independent
// of any input. Once the delay elapses the outcome is final for that attempt.
type SimulatedGateway struct {
	delay       time.Duration
	successRate float64
	randFloat   func() float64
}

// GatewayOption customizes a SimulatedGateway.
type GatewayOption func(*SimulatedGateway)

// WithRandSource overrides the randomness source. Tests use it to force
// deterministic outcomes.
func WithRandSource(f func() float64) GatewayOption {
	return func(g *SimulatedGateway) { g.randFloat = f }
}

// NewSimulatedGateway creates a gateway with the given processing delay and
// success probability in [0, 1].
func NewSimulatedGateway(delay time.Duration, successRate float64, opts ...GatewayOption) *SimulatedGateway {
	g := &SimulatedGateway{
		delay:       delay,
		successRate: successRate,
		randFloat:   rand.Float64,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Authorize blocks for the configured delay, then draws the outcome.
func (g *SimulatedGateway) Authorize(ctx context.Context, _ Payment) error {
	timer := time.NewTimer(g.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
	}

	if g.randFloat() < g.successRate {
		return nil
	}
	return ErrDeclined
}
