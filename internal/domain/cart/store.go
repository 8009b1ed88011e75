package cart

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// Store is the single mutation funnel for carts. Every operation loads the
// cart identified by cartID, applies the change, and synchronously writes the
// snapshot back, so in-memory and persisted state can never observably
// diverge between operations.
type Store struct {
	snapshots SnapshotRepository
}

// NewStore creates a Store backed by the given snapshot repository.
func NewStore(snapshots SnapshotRepository) *Store {
	return &Store{snapshots: snapshots}
}

// Get returns the current cart for cartID. A missing or corrupt snapshot
// yields an empty cart; only infrastructure failures are returned as errors.
func (s *Store) Get(ctx context.Context, cartID string) (Cart, error) {
	snap, err := s.snapshots.Load(ctx, cartID)
	if err != nil {
		if errors.Is(err, ErrNoSnapshot) || errors.Is(err, ErrCorruptSnapshot) {
			return Cart{}, nil
		}
		return Cart{}, errors.Wrap(err, "load snapshot")
	}

	items, err := DecodeItems(snap.Items)
	if err != nil {
		// Malformed stored value: recover locally with an empty cart.
		return Cart{}, nil
	}

	return Cart{Items: items, Count: snap.Count}, nil
}

// Add records one unit of the named product, parsing the display price, and
// persists the updated snapshot. It returns the cart after the mutation.
func (s *Store) Add(ctx context.Context, cartID, name, displayPrice, imageURL string) (Cart, error) {
	price, err := ParsePrice(displayPrice)
	if err != nil {
		return Cart{}, err
	}
	return s.mutate(ctx, cartID, func(c *Cart) {
		c.Add(name, price, imageURL)
	})
}

// AddPriced is Add for callers that already hold a decimal price, such as the
// catalog-backed endpoints.
func (s *Store) AddPriced(ctx context.Context, cartID, name string, price decimal.Decimal, imageURL string) (Cart, error) {
	return s.mutate(ctx, cartID, func(c *Cart) {
		c.Add(name, price, imageURL)
	})
}

// Remove deletes the whole line at the given position and persists the
// updated snapshot. An out-of-range index leaves the cart untouched.
func (s *Store) Remove(ctx context.Context, cartID string, index int) (Cart, error) {
	return s.mutate(ctx, cartID, func(c *Cart) {
		c.Remove(index)
	})
}

// Clear empties the cart and deletes its persisted snapshot entirely.
// Invoked on successful checkout.
func (s *Store) Clear(ctx context.Context, cartID string) error {
	if err := s.snapshots.Delete(ctx, cartID); err != nil {
		return errors.Wrap(err, "delete snapshot")
	}
	return nil
}

func (s *Store) mutate(ctx context.Context, cartID string, fn func(*Cart)) (Cart, error) {
	c, err := s.Get(ctx, cartID)
	if err != nil {
		return Cart{}, err
	}

	fn(&c)

	snap := Snapshot{Items: EncodeItems(c.Items), Count: c.Count}
	if err := s.snapshots.Save(ctx, cartID, snap); err != nil {
		return Cart{}, errors.Wrap(err, "save snapshot")
	}
	return c, nil
}
