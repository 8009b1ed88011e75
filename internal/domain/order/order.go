// Package order records receipts for successfully paid carts.
package order

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/xenking/storefront/internal/domain/cart"
)

// Order is the receipt written when a payment attempt succeeds.
type Order struct {
	ID        string
	CartID    string
	Items     []cart.LineItem
	Total     decimal.Decimal
	CreatedAt time.Time
}

// Repository defines persistence operations for orders.
type Repository interface {
	Create(ctx context.Context, order *Order) error
}
