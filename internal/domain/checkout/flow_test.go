package checkout

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenking/storefront/internal/domain/cart"
)

// gatewayFunc adapts a function to the Gateway interface.
type gatewayFunc func(ctx context.Context, p Payment) error

func (f gatewayFunc) Authorize(ctx context.Context, p Payment) error {
	return f(ctx, p)
}

func approveAll() Gateway {
	return gatewayFunc(func(context.Context, Payment) error { return nil })
}

func declineAll() Gateway {
	return gatewayFunc(func(context.Context, Payment) error { return ErrDeclined })
}

func cartWith(t *testing.T, displayPrices map[string]string) cart.Cart {
	t.Helper()
	var c cart.Cart
	for name, dp := range displayPrices {
		p, err := cart.ParsePrice(dp)
		require.NoError(t, err)
		c.Add(name, p, "")
	}
	return c
}

func TestFlow_OpenEmptyCart(t *testing.T) {
	f := NewFlow()

	err := f.Open(cart.Cart{})
	require.ErrorIs(t, err, ErrEmptyCart)
	assert.Equal(t, StateIdle, f.State())
}

func TestFlow_OpenComputesTotalAtConfirmation(t *testing.T) {
	c := cartWith(t, map[string]string{"Mug": "$9.99"})
	c.Add(c.Items[0].Name, c.Items[0].UnitPrice, "")

	f := NewFlow()
	require.NoError(t, f.Open(c))

	assert.Equal(t, StateFormOpen, f.State())
	assert.True(t, decimal.RequireFromString("19.98").Equal(f.Total()))
}

func TestFlow_SubmitBeforeOpen(t *testing.T) {
	f := NewFlow()

	err := f.Submit(context.Background(), validCard(), approveAll())
	require.ErrorIs(t, err, ErrNotOpen)
}

func TestFlow_ValidationFailureReturnsToFormOpen(t *testing.T) {
	f := NewFlow()
	require.NoError(t, f.Open(cartWith(t, map[string]string{"Mug": "$9.99"})))

	bad := validCard()
	bad.Number = "42"

	err := f.Submit(context.Background(), bad, approveAll())

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, StateFormOpen, f.State())
}

func TestFlow_Success(t *testing.T) {
	f := NewFlow()
	require.NoError(t, f.Open(cartWith(t, map[string]string{"Mug": "$9.99"})))

	err := f.Submit(context.Background(), validCard(), approveAll())

	require.NoError(t, err)
	assert.Equal(t, StateSucceeded, f.State())
}

func TestFlow_DeclinedAllowsRetry(t *testing.T) {
	f := NewFlow()
	require.NoError(t, f.Open(cartWith(t, map[string]string{"Mug": "$9.99"})))

	err := f.Submit(context.Background(), validCard(), declineAll())
	require.ErrorIs(t, err, ErrDeclined)
	assert.Equal(t, StateFormOpen, f.State())

	// Same form contents, second attempt succeeds.
	err = f.Submit(context.Background(), validCard(), approveAll())
	require.NoError(t, err)
	assert.Equal(t, StateSucceeded, f.State())
}

func TestFlow_SucceededRejectsResubmission(t *testing.T) {
	f := NewFlow()
	require.NoError(t, f.Open(cartWith(t, map[string]string{"Mug": "$9.99"})))
	require.NoError(t, f.Submit(context.Background(), validCard(), approveAll()))

	err := f.Submit(context.Background(), validCard(), approveAll())
	require.ErrorIs(t, err, ErrNotOpen)
}

func TestSimulatedGateway_Outcomes(t *testing.T) {
	always := NewSimulatedGateway(0, 0.9, WithRandSource(func() float64 { return 0.5 }))
	require.NoError(t, always.Authorize(context.Background(), Payment{}))

	never := NewSimulatedGateway(0, 0.9, WithRandSource(func() float64 { return 0.95 }))
	err := never.Authorize(context.Background(), Payment{})
	require.ErrorIs(t, err, ErrDeclined)
}

func TestSimulatedGateway_ContextCancelled(t *testing.T) {
	gw := NewSimulatedGateway(time.Minute, 1.0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := gw.Authorize(ctx, Payment{})
	require.ErrorIs(t, err, context.Canceled)
}
