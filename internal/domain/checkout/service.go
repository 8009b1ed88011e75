package checkout

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/xenking/storefront/internal/domain/cart"
	"github.com/xenking/storefront/internal/domain/order"
)

// Service orchestrates the payment flow against the cart store, the order
// repository, and the payment gateway.
type Service struct {
	carts   *cart.Store
	orders  order.Repository
	gateway Gateway
}

// NewService creates a checkout Service with the required dependencies.
func NewService(carts *cart.Store, orders order.Repository, gateway Gateway) *Service {
	return &Service{
		carts:   carts,
		orders:  orders,
		gateway: gateway,
	}
}

// Confirm opens checkout for the cart: it returns the total computed at
// confirmation time, or ErrEmptyCart when there is nothing to pay for.
func (s *Service) Confirm(ctx context.Context, cartID string) (decimal.Decimal, error) {
	c, err := s.carts.Get(ctx, cartID)
	if err != nil {
		return decimal.Zero, err
	}

	f := NewFlow()
	if err := f.Open(c); err != nil {
		return decimal.Zero, err
	}
	return f.Total(), nil
}

// Pay runs one payment attempt end to end. On success the cart is cleared,
// its snapshot removed, and an order receipt recorded. A validation failure
// or declined authorization is returned unchanged so the caller can surface
// its message and let the user retry.
func (s *Service) Pay(ctx context.Context, cartID string, card Card) (*order.Order, error) {
	c, err := s.carts.Get(ctx, cartID)
	if err != nil {
		return nil, err
	}

	f := NewFlow()
	if err := f.Open(c); err != nil {
		return nil, err
	}
	if err := f.Submit(ctx, card, s.gateway); err != nil {
		return nil, err
	}

	o := &order.Order{
		ID:        uuid.New().String(),
		CartID:    cartID,
		Items:     c.Items,
		Total:     f.Total(),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.orders.Create(ctx, o); err != nil {
		return nil, errors.Wrap(err, "create order")
	}

	if err := s.carts.Clear(ctx, cartID); err != nil {
		return nil, errors.Wrap(err, "clear cart")
	}

	return o, nil
}
