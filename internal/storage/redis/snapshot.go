// Package redis implements the cart snapshot store on Redis, the closest
// durable analog of the original per-browser key-value storage: two keys per
// cart, written together in one transactional pipeline.
package redis

import (
	"context"
	"strconv"

	"github.com/go-faster/errors"
	"github.com/redis/go-redis/v9"

	"github.com/xenking/storefront/internal/domain/cart"
)

const (
	itemsKeySuffix = ":items"
	countKeySuffix = ":count"
	keyPrefix      = "cart:"
)

var _ cart.SnapshotRepository = (*SnapshotStore)(nil)

// SnapshotStore persists cart snapshots under cart:{id}:items and
// cart:{id}:count. The count slot holds a plain textual integer.
type SnapshotStore struct {
	client *redis.Client
}

// NewSnapshotStore creates a snapshot store over the given client.
func NewSnapshotStore(client *redis.Client) *SnapshotStore {
	return &SnapshotStore{client: client}
}

func itemsKey(cartID string) string { return keyPrefix + cartID + itemsKeySuffix }
func countKey(cartID string) string { return keyPrefix + cartID + countKeySuffix }

// Save writes both slots in a single MULTI/EXEC pipeline so they can never
// be observed half-updated.
func (s *SnapshotStore) Save(ctx context.Context, cartID string, snap cart.Snapshot) error {
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, itemsKey(cartID), snap.Items, 0)
	pipe.Set(ctx, countKey(cartID), strconv.Itoa(snap.Count), 0)

	if _, err := pipe.Exec(ctx); err != nil {
		return errors.Wrapf(err, "save snapshot %s", cartID)
	}
	return nil
}

// Load reads both slots. A missing items slot means no snapshot; a missing
// or malformed count slot degrades to zero, matching the storefront's
// original load behaviour.
func (s *SnapshotStore) Load(ctx context.Context, cartID string) (cart.Snapshot, error) {
	items, err := s.client.Get(ctx, itemsKey(cartID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return cart.Snapshot{}, cart.ErrNoSnapshot
		}
		return cart.Snapshot{}, errors.Wrapf(err, "load snapshot %s", cartID)
	}

	count := 0
	raw, err := s.client.Get(ctx, countKey(cartID)).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return cart.Snapshot{}, errors.Wrapf(err, "load count %s", cartID)
	}
	if err == nil {
		if n, convErr := strconv.Atoi(raw); convErr == nil {
			count = n
		}
	}

	return cart.Snapshot{Items: items, Count: count}, nil
}

// Delete removes both slots.
func (s *SnapshotStore) Delete(ctx context.Context, cartID string) error {
	if err := s.client.Del(ctx, itemsKey(cartID), countKey(cartID)).Err(); err != nil {
		return errors.Wrapf(err, "delete snapshot %s", cartID)
	}
	return nil
}
