package postgres

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/xenking/storefront/internal/domain/cart"
)

var _ cart.SnapshotRepository = (*SnapshotStore)(nil)

// SnapshotStore persists cart snapshots as one row per cart. The items and
// count columns are the two logical slots; a single upsert keeps them atomic.
type SnapshotStore struct {
	pool *pgxpool.Pool
}

// NewSnapshotStore returns a SnapshotStore that uses the given pool.
func NewSnapshotStore(pool *pgxpool.Pool) *SnapshotStore {
	return &SnapshotStore{pool: pool}
}

// Save upserts both slots for the cart.
func (s *SnapshotStore) Save(ctx context.Context, cartID string, snap cart.Snapshot) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO cart_snapshots (cart_id, items, item_count, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (cart_id)
		DO UPDATE SET items = EXCLUDED.items, item_count = EXCLUDED.item_count, updated_at = now()`,
		cartID, snap.Items, snap.Count,
	)
	if err != nil {
		return errors.Wrapf(err, "save snapshot %s", cartID)
	}
	return nil
}

// Load returns the stored snapshot or cart.ErrNoSnapshot.
func (s *SnapshotStore) Load(ctx context.Context, cartID string) (cart.Snapshot, error) {
	var snap cart.Snapshot
	err := s.pool.QueryRow(ctx,
		`SELECT items, item_count FROM cart_snapshots WHERE cart_id = $1`,
		cartID,
	).Scan(&snap.Items, &snap.Count)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return cart.Snapshot{}, cart.ErrNoSnapshot
		}
		return cart.Snapshot{}, errors.Wrapf(err, "load snapshot %s", cartID)
	}
	return snap, nil
}

// Delete removes the snapshot row; deleting a missing row is not an error.
func (s *SnapshotStore) Delete(ctx context.Context, cartID string) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM cart_snapshots WHERE cart_id = $1`, cartID); err != nil {
		return errors.Wrapf(err, "delete snapshot %s", cartID)
	}
	return nil
}
