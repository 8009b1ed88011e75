// Package memory provides in-process storage backends. They are the default
// for local runs and the workhorse for tests; the snapshot store mirrors the
// two-slot layout of the durable backends.
package memory

import (
	"context"
	"sync"

	"github.com/xenking/storefront/internal/domain/cart"
	"github.com/xenking/storefront/internal/domain/catalog"
	"github.com/xenking/storefront/internal/domain/order"
)

var _ cart.SnapshotRepository = (*SnapshotStore)(nil)

// SnapshotStore keeps cart snapshots in a map guarded by a mutex, so the
// items and count slots are always written together.
type SnapshotStore struct {
	mu    sync.RWMutex
	snaps map[string]cart.Snapshot
}

// NewSnapshotStore creates an empty in-memory snapshot store.
func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{snaps: make(map[string]cart.Snapshot)}
}

// Save overwrites both slots for the cart.
func (s *SnapshotStore) Save(_ context.Context, cartID string, snap cart.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]byte, len(snap.Items))
	copy(items, snap.Items)
	s.snaps[cartID] = cart.Snapshot{Items: items, Count: snap.Count}
	return nil
}

// Load returns the stored snapshot or cart.ErrNoSnapshot.
func (s *SnapshotStore) Load(_ context.Context, cartID string) (cart.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap, ok := s.snaps[cartID]
	if !ok {
		return cart.Snapshot{}, cart.ErrNoSnapshot
	}
	return snap, nil
}

// Delete removes both slots; deleting a missing snapshot is not an error.
func (s *SnapshotStore) Delete(_ context.Context, cartID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.snaps, cartID)
	return nil
}

var _ catalog.Repository = (*CatalogRepository)(nil)

// CatalogRepository serves a fixed product list, preserving the given order.
type CatalogRepository struct {
	products []catalog.Product
}

// NewCatalogRepository creates a read-only catalog over the given products.
func NewCatalogRepository(products []catalog.Product) *CatalogRepository {
	return &CatalogRepository{products: products}
}

// List returns all products in catalog order.
func (r *CatalogRepository) List(_ context.Context) ([]catalog.Product, error) {
	out := make([]catalog.Product, len(r.products))
	copy(out, r.products)
	return out, nil
}

// GetByID returns a single product or catalog.ErrNotFound.
func (r *CatalogRepository) GetByID(_ context.Context, id string) (*catalog.Product, error) {
	for _, p := range r.products {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, catalog.ErrNotFound
}

var _ order.Repository = (*OrderRepository)(nil)

// OrderRepository accumulates order receipts in memory.
type OrderRepository struct {
	mu     sync.Mutex
	orders []*order.Order
}

// NewOrderRepository creates an empty in-memory order repository.
func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

// Create appends the order.
func (r *OrderRepository) Create(_ context.Context, o *order.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.orders = append(r.orders, o)
	return nil
}

// All returns the recorded orders in creation order.
func (r *OrderRepository) All() []*order.Order {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*order.Order, len(r.orders))
	copy(out, r.orders)
	return out
}
