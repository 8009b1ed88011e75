// Package handler exposes the storefront over HTTP: cart operations, the
// catalog with its search filter, and the checkout/payment flow.
package handler

import (
	"net/http"

	"github.com/xenking/storefront/internal/domain/cart"
	"github.com/xenking/storefront/internal/domain/catalog"
	"github.com/xenking/storefront/internal/domain/checkout"
)

// Handler serves the storefront API, delegating business logic to the
// injected cart store, catalog repository, and checkout service.
type Handler struct {
	carts    *cart.Store
	products catalog.Repository
	checkout *checkout.Service
}

// NewHandler constructs a Handler with the required domain dependencies.
func NewHandler(
	carts *cart.Store,
	products catalog.Repository,
	checkoutSvc *checkout.Service,
) *Handler {
	return &Handler{
		carts:    carts,
		products: products,
		checkout: checkoutSvc,
	}
}

// Register mounts all API routes on the mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/cart", h.getCart)
	mux.HandleFunc("POST /api/cart/items", h.addItem)
	mux.HandleFunc("DELETE /api/cart/items/{index}", h.removeItem)
	mux.HandleFunc("POST /api/cart/checkout", h.confirmCheckout)
	mux.HandleFunc("POST /api/cart/payment", h.submitPayment)
	mux.HandleFunc("GET /api/products", h.listProducts)
	mux.HandleFunc("GET /api/products/{id}", h.getProduct)
}
