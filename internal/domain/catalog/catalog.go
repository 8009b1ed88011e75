// Package catalog holds the product catalog and the name-based filter used
// by the storefront search box.
package catalog

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a requested product does not exist.
var ErrNotFound = errors.New("product not found")

// Product represents a storefront item available for purchase. Catalog rows
// are read-only for the cart and filter; nothing in this service writes them
// outside of seeding.
type Product struct {
	ID       string
	Name     string
	Price    decimal.Decimal
	ImageURL string
}

// DisplayPrice renders the product price as the storefront shows it.
func (p Product) DisplayPrice() string {
	return "$" + p.Price.StringFixed(2)
}

// Repository defines read operations for the product catalog.
type Repository interface {
	List(ctx context.Context) ([]Product, error)
	GetByID(ctx context.Context, id string) (*Product, error)
}
